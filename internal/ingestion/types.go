package ingestion

import (
	"time"

	"dinner-scheduler/internal/model"
)

// ProcessSinceInput is the query window. A zero Until leaves the upper end open.
type ProcessSinceInput struct {
	Since time.Time
	Until time.Time
}

// ProcessOutput is the result of one ingestion cycle.
type ProcessOutput struct {
	ProcessedCount int                        `json:"processed"`
	Events         []model.NotificationRecord `json:"events"`
	TotalTracked   int                        `json:"totalTracked"`
	Error          string                     `json:"error,omitempty"`
}

// CheckpointOutput is the result of a checkpointed cycle.
type CheckpointOutput struct {
	Result    ProcessOutput `json:"result"`
	Since     time.Time     `json:"since"`
	CheckedAt time.Time     `json:"lastCheckTime"`
}

// CreatedInput is a booking received from a provider callback.
type CreatedInput struct {
	Event    model.Event
	Attendee model.Attendee
}

// CreatedOutput reports what a booking callback produced.
type CreatedOutput struct {
	Duplicate       bool
	Record          *model.NotificationRecord
	Delivered       int
	Failed          int
	InviteeNotified bool
}

// CancellationInput is a cancellation received from a provider callback.
type CancellationInput struct {
	EventID     string
	InviteeName string
	StartTime   time.Time
}

// CancellationOutput reports the cancellation fan-out.
type CancellationOutput struct {
	Delivered int
	Failed    int
}
