package core

import (
	"errors"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	ErrorValidationFailed    = "FONNTE_VALIDATION_FAILED"
	ErrorServer              = "FONNTE_SERVER_ERROR"
	ErrorNoResponse          = "FONNTE_NO_RESPONSE"
	ErrorSetupFailed         = "FONNTE_SETUP_FAILED"
	ErrorUnauthorized        = "FONNTE_UNAUTHORIZED"
	ErrorNormalizationFailed = "FONNTE_NORMALIZATION_FAILED"
	ErrorHandlerFailed       = "FONNTE_HANDLER_FAILED"
	ErrorAlreadyStarted      = "FONNTE_ALREADY_STARTED"
	ErrorInternal            = "FONNTE_INTERNAL_ERROR"
)

type ErrorKind string

const (
	ErrorKindNone          ErrorKind = ""
	ErrorKindValidation    ErrorKind = "validation"
	ErrorKindServer        ErrorKind = "server"
	ErrorKindNoResponse    ErrorKind = "no_response"
	ErrorKindSetup         ErrorKind = "setup"
	ErrorKindAuth          ErrorKind = "auth"
	ErrorKindNormalization ErrorKind = "normalization"
	ErrorKindHandler       ErrorKind = "handler"
	ErrorKindConflict      ErrorKind = "conflict"
	ErrorKindInternal      ErrorKind = "internal"
)

// ErrAlreadyStarted is matched with errors.Is against the envelope returned by
// a second Start on a running receiver.
var ErrAlreadyStarted = errors.New("core: receiver already started")

// KindOf classifies err by its go-errors text code. Plain errors are internal.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ErrorKindNone
	}
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		return ErrorKindInternal
	}
	switch strings.TrimSpace(rich.TextCode) {
	case ErrorValidationFailed:
		return ErrorKindValidation
	case ErrorServer:
		return ErrorKindServer
	case ErrorNoResponse:
		return ErrorKindNoResponse
	case ErrorSetupFailed:
		return ErrorKindSetup
	case ErrorUnauthorized:
		return ErrorKindAuth
	case ErrorNormalizationFailed:
		return ErrorKindNormalization
	case ErrorHandlerFailed:
		return ErrorKindHandler
	case ErrorAlreadyStarted:
		return ErrorKindConflict
	}
	switch rich.Category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return ErrorKindValidation
	case goerrors.CategoryAuth, goerrors.CategoryAuthz:
		return ErrorKindAuth
	case goerrors.CategoryConflict:
		return ErrorKindConflict
	case goerrors.CategoryExternal:
		return ErrorKindServer
	default:
		return ErrorKindInternal
	}
}

// ErrorMessage returns the human readable message of a go-errors envelope, or
// the plain error text.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var rich *goerrors.Error
	if goerrors.As(err, &rich) && strings.TrimSpace(rich.Message) != "" {
		return rich.Message
	}
	return err.Error()
}

func ValidationError(field string, message string) *goerrors.Error {
	return goerrors.NewValidation(message, goerrors.FieldError{
		Field:   field,
		Message: message,
	}).
		WithCode(http.StatusBadRequest).
		WithTextCode(ErrorValidationFailed).
		WithSeverity(goerrors.SeverityError)
}

func ConfigError(field string, message string) *goerrors.Error {
	return ValidationError(field, message)
}

func ServerError(message string, statusCode int, metadata map[string]any) *goerrors.Error {
	err := goerrors.New(message, goerrors.CategoryExternal).
		WithCode(statusCode).
		WithTextCode(ErrorServer)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func NoResponseError(source error, metadata map[string]any) *goerrors.Error {
	return wrapWithTextCode(source, goerrors.CategoryExternal, "No response from server", 0, ErrorNoResponse, metadata)
}

func SetupError(source error, message string, metadata map[string]any) *goerrors.Error {
	return wrapWithTextCode(source, goerrors.CategoryBadInput, message, 0, ErrorSetupFailed, metadata)
}

func UnauthorizedError(message string, metadata map[string]any) *goerrors.Error {
	err := goerrors.New(message, goerrors.CategoryAuth).
		WithCode(http.StatusUnauthorized).
		WithTextCode(ErrorUnauthorized)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func NormalizationError(source error, message string, metadata map[string]any) *goerrors.Error {
	return wrapWithTextCode(
		source,
		goerrors.CategoryBadInput,
		message,
		http.StatusInternalServerError,
		ErrorNormalizationFailed,
		metadata,
	)
}

func HandlerError(source error, message string, metadata map[string]any) *goerrors.Error {
	return wrapWithTextCode(
		source,
		goerrors.CategoryOperation,
		message,
		http.StatusInternalServerError,
		ErrorHandlerFailed,
		metadata,
	)
}

func AlreadyStartedError(metadata map[string]any) *goerrors.Error {
	return wrapWithTextCode(
		ErrAlreadyStarted,
		goerrors.CategoryConflict,
		"core: receiver already started",
		http.StatusConflict,
		ErrorAlreadyStarted,
		metadata,
	)
}

func InternalError(message string, metadata map[string]any) *goerrors.Error {
	err := goerrors.New(message, goerrors.CategoryInternal).
		WithCode(http.StatusInternalServerError).
		WithTextCode(ErrorInternal)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func wrapWithTextCode(
	source error,
	category goerrors.Category,
	message string,
	code int,
	textCode string,
	metadata map[string]any,
) *goerrors.Error {
	var err *goerrors.Error
	if source == nil {
		err = goerrors.New(message, category)
	} else {
		err = goerrors.Wrap(source, category, message)
	}
	err = err.WithCode(code).WithTextCode(textCode)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}
