package appointment

import "errors"

var (
	ErrInvalidPassword     = errors.New("invalid access code")
	ErrAccessCodeMissing   = errors.New("access code not configured")
	ErrProviderUnavailable = errors.New("appointments are temporarily unavailable")
	ErrEventIDRequired     = errors.New("eventId is required")
)
