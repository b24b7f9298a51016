package handlers

import (
	"errors"
	"net/http"

	"github.com/arsh246/weather-app/internal/errs"
)

// httpStatus is the single translation point from the error taxonomy to wire
// statuses. Components below the handlers never see HTTP codes.
func httpStatus(err error) int {
	switch {
	case errors.Is(err, errs.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, errs.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
