package core

import "strings"

const (
	minPhoneDigits = 10
	maxPhoneDigits = 15

	InvalidPhoneNumberMessage = "Invalid phone number format. Must be 10-15 digits with country code."
)

// NormalizePhoneNumber strips every non-digit character and requires the
// remaining digits to be a 10-15 digit number including the country code.
func NormalizePhoneNumber(raw string) (string, error) {
	cleaned := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
	if len(cleaned) < minPhoneDigits || len(cleaned) > maxPhoneDigits {
		return "", ValidationError("target", InvalidPhoneNumberMessage)
	}
	return cleaned, nil
}
