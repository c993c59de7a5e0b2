package http

import (
	"dinner-scheduler/internal/optin"
	"dinner-scheduler/pkg/log"
)

// Config controls inbound Twilio request verification. When AuthToken is
// empty the X-Twilio-Signature header is not checked.
type Config struct {
	TwilioAuthToken string
	PublicURL       string
}

type handler struct {
	l   log.Logger
	uc  optin.UseCase
	cfg Config
}

// New creates a new HTTP handler for opt-in and inbound SMS.
func New(l log.Logger, uc optin.UseCase, cfg Config) *handler {
	return &handler{
		l:   l,
		uc:  uc,
		cfg: cfg,
	}
}
