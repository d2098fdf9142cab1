package client

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/goliatone/go-fonnte/core"
)

const defaultServerErrorMessage = "API error"

// shapeResult converts a transport outcome into the uniform result. Transport
// errors already carry their no_response or setup classification.
func shapeResult(res core.TransportResponse, err error, successMessage string) core.OutboundResult {
	if err != nil {
		return failedResult(err, 0, err.Error())
	}

	payload := decodePayload(res.Body)
	message := responseMessage(payload)
	if res.StatusCode < 200 || res.StatusCode > 299 {
		if message == "" {
			message = defaultServerErrorMessage
		}
		var detail any = payload
		if payload == nil {
			detail = http.StatusText(res.StatusCode)
		}
		serverErr := core.ServerError(message, res.StatusCode, map[string]any{
			"status_code": res.StatusCode,
		})
		return failedResult(serverErr, res.StatusCode, detail)
	}

	if message == "" {
		message = successMessage
	}
	return core.OutboundResult{
		Succeeded:  true,
		Message:    message,
		Payload:    payload,
		StatusCode: res.StatusCode,
	}
}

func failedResult(err error, statusCode int, detail any) core.OutboundResult {
	return core.OutboundResult{
		Succeeded:   false,
		Message:     core.ErrorMessage(err),
		ErrorDetail: detail,
		StatusCode:  statusCode,
		Err:         err,
	}
}

// decodePayload returns the decoded JSON body, the raw text when the body is
// not JSON, or nil when it is empty.
func decodePayload(body []byte) any {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil
	}
	var payload any
	if err := json.Unmarshal(trimmed, &payload); err != nil {
		return string(body)
	}
	return payload
}

func responseMessage(payload any) string {
	object, ok := payload.(map[string]any)
	if !ok {
		return ""
	}
	message, _ := object["message"].(string)
	return strings.TrimSpace(message)
}
