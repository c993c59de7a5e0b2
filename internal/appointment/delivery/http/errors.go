package http

import (
	"errors"
	"net/http"

	"dinner-scheduler/internal/appointment"
)

// mapError returns the status for a use case error.
func (h *handler) mapError(err error) int {
	switch {
	case errors.Is(err, appointment.ErrInvalidPassword):
		return http.StatusUnauthorized
	case errors.Is(err, appointment.ErrEventIDRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
