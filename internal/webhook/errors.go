package webhook

import "errors"

var (
	ErrSignatureInvalid  = errors.New("webhook signature invalid")
	ErrSigningKeyMissing = errors.New("webhook signing key not configured")
	ErrPayloadInvalid    = errors.New("webhook payload invalid")
)
