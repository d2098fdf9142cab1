package transport

import "github.com/goliatone/go-fonnte/core"

// setupError marks failures that happened before the request left the process.
func setupError(source error, message string, metadata map[string]any) error {
	return core.SetupError(source, message, metadata)
}

// noResponseError marks failures after the request was issued where no usable
// response came back.
func noResponseError(source error, stage string, metadata map[string]any) error {
	merged := make(map[string]any, len(metadata)+1)
	for key, value := range metadata {
		merged[key] = value
	}
	merged["stage"] = stage
	return core.NoResponseError(source, merged)
}
