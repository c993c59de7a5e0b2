package http

import (
	"errors"

	"dinner-scheduler/internal/optin"
)

// mapError reports whether err is a client error worth echoing back.
func (h *handler) mapError(err error) (error, bool) {
	switch {
	case errors.Is(err, optin.ErrInvalidPhone):
		return optin.ErrInvalidPhone, true
	case errors.Is(err, optin.ErrInvalidType):
		return optin.ErrInvalidType, true
	default:
		return err, false
	}
}
