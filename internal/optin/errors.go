package optin

import "errors"

var (
	ErrInvalidPhone = errors.New("invalid phone number format")
	ErrInvalidType  = errors.New("invalid missionary type")
	ErrUpdateFailed = errors.New("failed to update opt-in status")
)
