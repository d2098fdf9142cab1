package command

import (
	"net/http"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-fonnte/core"
)

func commandDependencyError(message string) error {
	return goerrors.New(message, goerrors.CategoryInternal).
		WithCode(http.StatusInternalServerError).
		WithTextCode(core.ErrorInternal)
}

// resultError surfaces a failed send to command pipelines. The client always
// sets Err on failure; the fallback covers custom Sender implementations.
func resultError(result core.OutboundResult) error {
	if result.Succeeded {
		return nil
	}
	if result.Err != nil {
		return result.Err
	}
	return goerrors.New(result.Message, goerrors.CategoryOperation).
		WithCode(http.StatusBadGateway).
		WithTextCode(core.ErrorServer)
}
