package webhooks

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/goliatone/go-fonnte/core"
)

const UnauthorizedMessage = "Unauthorized"

// SharedSecretVerifier compares a request header against a configured secret.
// An empty secret disables verification.
type SharedSecretVerifier struct {
	Header string
	Secret string
}

func NewSharedSecretVerifier(header string, secret string) SharedSecretVerifier {
	return SharedSecretVerifier{Header: header, Secret: secret}
}

func (v SharedSecretVerifier) Enabled() bool {
	return v.Secret != ""
}

func (v SharedSecretVerifier) Verify(_ context.Context, headers http.Header) error {
	if !v.Enabled() {
		return nil
	}
	header := strings.TrimSpace(v.Header)
	if header == "" {
		header = core.DefaultSecretHeader
	}
	actual := headers.Get(header)
	if subtle.ConstantTimeCompare([]byte(actual), []byte(v.Secret)) != 1 {
		return core.UnauthorizedError(UnauthorizedMessage, map[string]any{
			"secret_header": header,
			"provided":      actual != "",
		})
	}
	return nil
}

var _ core.Verifier = SharedSecretVerifier{}
