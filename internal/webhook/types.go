package webhook

import (
	"time"

	"dinner-scheduler/internal/model"
)

// SecurityConfig holds webhook security settings
type SecurityConfig struct {
	SigningKey      string        // Calendly webhook signing key
	AllowedIPs      []string      // IP whitelist (optional)
	TrustedProxies  []string      // Peers whose forwarding headers are honored; empty trusts none
	RateLimitPerMin int           // Max requests per minute
	Tolerance       time.Duration // Max age of a timestamped signature; 0 disables the check
}

// Calendly webhook event names.
const (
	EventInviteeCreated  = "invitee.created"
	EventInviteeCanceled = "invitee.canceled"
)

// CalendlyEvent is a parsed and normalized Calendly callback.
type CalendlyEvent struct {
	Type       string
	Event      model.Event
	Attendee   model.Attendee
	InviteeURI string
}
