// Package provider defines the scheduling-provider query interface used by
// ingestion and the appointment list.
package provider

import (
	"context"
	"time"

	"dinner-scheduler/internal/model"
)

// Names accepted by the provider config.
const (
	NameCalendly = "calendly"
	NameGoogle   = "google"
)

// ListEventsOptions bounds an event query. Zero values mean unbounded.
type ListEventsOptions struct {
	MinStart time.Time
	MaxStart time.Time
}

// EventSource fetches active events and their attendees.
// A nil slice with a nil error means the provider had nothing to return.
type EventSource interface {
	ListEvents(ctx context.Context, opt ListEventsOptions) ([]model.Event, error)
	ListAttendees(ctx context.Context, eventID string) ([]model.Attendee, error)
}
