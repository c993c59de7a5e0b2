package gcalendar

import "time"

// Event status values reported by the Calendar API.
const (
	StatusConfirmed = "confirmed"
	StatusTentative = "tentative"
	StatusCancelled = "cancelled"
)

// Attendee is a guest on a calendar event.
type Attendee struct {
	Email          string
	DisplayName    string
	ResponseStatus string // needsAction, declined, tentative, accepted
}

// Event is a simplified representation of a Google Calendar event.
type Event struct {
	ID          string
	Summary     string
	Description string
	HtmlLink    string
	StartTime   time.Time
	EndTime     time.Time
	Location    string
	Status      string
	Attendees   []Attendee
}

// ListEventsRequest is the input for listing Google Calendar events.
type ListEventsRequest struct {
	CalendarID  string
	TimeMin     time.Time
	TimeMax     time.Time
	MaxResults  int64
	ShowDeleted bool
}
