package query

import (
	"net/http"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-fonnte/core"
)

func queryDependencyError(message string) error {
	return goerrors.New(message, goerrors.CategoryInternal).
		WithCode(http.StatusInternalServerError).
		WithTextCode(core.ErrorInternal)
}

func queryResultError(result core.OutboundResult) error {
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
