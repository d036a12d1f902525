package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/bastiangx/traductor/pkg/dictionary"
	"github.com/bastiangx/traductor/pkg/translate"
)

// ErrQueryTooLong is returned for queries longer than server.max_query_len runes.
var ErrQueryTooLong = errors.New("query too long")

type badRequestError struct {
	msg string
}

func (e *badRequestError) Error() string { return e.msg }

func badRequest(format string, args ...any) error {
	return &badRequestError{msg: fmt.Sprintf(format, args...)}
}

// StatusFor maps an error to the status code reported to clients.
func StatusFor(err error) int {
	var (
		schemaErr *dictionary.SchemaError
		loadErr   *dictionary.LoadError
		badReq    *badRequestError
	)
	switch {
	case errors.Is(err, translate.ErrEmptyQuery), errors.Is(err, ErrQueryTooLong), errors.As(err, &badReq):
		return http.StatusBadRequest
	case errors.Is(err, translate.ErrNotLoaded):
		return http.StatusConflict
	case errors.As(err, &schemaErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &loadErr):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// errorMessage returns the text sent to clients for err.
func errorMessage(err error) string {
	if errors.Is(err, ErrQueryTooLong) {
		return "La consulta es demasiado larga."
	}
	return translate.Message(err)
}
