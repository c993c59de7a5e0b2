package appointment

import "time"

const (
	// DefaultWindow is how far ahead List looks.
	DefaultWindow = 30 * 24 * time.Hour
	// UnknownInvitee is shown when an event has no readable attendee.
	UnknownInvitee = "Unknown"
)

type VerifyInput struct {
	Password string
}

type VerifyOutput struct {
	SessionToken string
	ExpiresIn    time.Duration
}

// ListInput is empty for now; the window is configured on the use case.
type ListInput struct{}

// Appointment is an upcoming event with its first attendee projected out.
type Appointment struct {
	EventID     string    `json:"eventId"`
	EventName   string    `json:"eventName,omitempty"`
	InviteeName string    `json:"inviteeName"`
	Email       string    `json:"email,omitempty"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	Address     string    `json:"address,omitempty"`
}

type ListOutput struct {
	Appointments []Appointment
	From         time.Time
	To           time.Time
}

type HideInput struct {
	EventID string
}
