// Package api implements the HTTP request handlers.
package api

import (
	"errors"
	"net/http"

	"github.com/fmardones/reparto-api/internal/service/auth"
	"github.com/fmardones/reparto-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes. Not
// found is always 404, auth failures 401, validation and conflicts 400,
// anything else 500.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized

	case store.IsNotFoundError(err):
		return http.StatusNotFound

	case store.IsDuplicateError(err),
		errors.Is(err, store.ErrReferenced),
		errors.Is(err, store.ErrInvalidReference):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}
