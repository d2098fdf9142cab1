package inbound

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
)

const defaultMultipartMemory = 32 << 20

// decodeBody reads a webhook body into a raw payload map. JSON objects keep
// numbers as json.Number; form fields with a single value become strings.
func decodeBody(w http.ResponseWriter, req *http.Request, limit int64) (map[string]any, error) {
	if limit > 0 {
		req.Body = http.MaxBytesReader(w, req.Body, limit)
	}

	mediaType := ""
	if contentType := strings.TrimSpace(req.Header.Get("Content-Type")); contentType != "" {
		parsed, _, err := mime.ParseMediaType(contentType)
		if err != nil {
			return nil, fmt.Errorf("inbound: parse content type: %w", err)
		}
		mediaType = parsed
	}

	switch mediaType {
	case "application/x-www-form-urlencoded":
		if err := req.ParseForm(); err != nil {
			return nil, fmt.Errorf("inbound: parse form body: %w", err)
		}
		return formValues(req.PostForm), nil
	case "multipart/form-data":
		memory := int64(defaultMultipartMemory)
		if limit > 0 && limit < memory {
			memory = limit
		}
		if err := req.ParseMultipartForm(memory); err != nil {
			return nil, fmt.Errorf("inbound: parse multipart body: %w", err)
		}
		return formValues(req.MultipartForm.Value), nil
	default:
		return decodeJSONObject(req.Body)
	}
}

func decodeJSONObject(body io.Reader) (map[string]any, error) {
	decoder := json.NewDecoder(body)
	decoder.UseNumber()
	var payload any
	if err := decoder.Decode(&payload); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("inbound: decode json body: %w", err)
	}
	switch typed := payload.(type) {
	case map[string]any:
		return typed, nil
	case nil:
		return map[string]any{}, nil
	default:
		return nil, fmt.Errorf("inbound: json body must be an object, got %T", payload)
	}
}

func formValues(values url.Values) map[string]any {
	out := make(map[string]any, len(values))
	for key, items := range values {
		switch len(items) {
		case 0:
			out[key] = ""
		case 1:
			out[key] = items[0]
		default:
			out[key] = append([]string(nil), items...)
		}
	}
	return out
}
