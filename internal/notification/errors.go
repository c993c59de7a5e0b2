package notification

import "errors"

var (
	ErrNoRecipients   = errors.New("no recipients to notify")
	ErrEmptyMessage   = errors.New("message is empty")
	ErrDeliveryFailed = errors.New("delivery failed")
)
