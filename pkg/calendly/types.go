package calendly

import (
	"fmt"
	"time"
)

// User is the authenticated Calendly user.
type User struct {
	URI                 string `json:"uri"`
	Name                string `json:"name"`
	Email               string `json:"email"`
	Timezone            string `json:"timezone"`
	CurrentOrganization string `json:"current_organization"`
}

// Location is where a scheduled event takes place.
type Location struct {
	Type     string `json:"type"`
	Location string `json:"location"`
}

// ScheduledEvent is a booked meeting.
type ScheduledEvent struct {
	URI       string    `json:"uri"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	EventType string    `json:"event_type"`
	Location  *Location `json:"location,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// QuestionAndAnswer is one custom booking question.
type QuestionAndAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Position int    `json:"position"`
}

// Invitee is a person who booked a scheduled event.
type Invitee struct {
	URI                 string              `json:"uri"`
	Name                string              `json:"name"`
	Email               string              `json:"email"`
	Status              string              `json:"status"`
	TextReminderNumber  string              `json:"text_reminder_number"`
	Timezone            string              `json:"timezone"`
	Event               string              `json:"event"`
	QuestionsAndAnswers []QuestionAndAnswer `json:"questions_and_answers"`
	CancelURL           string              `json:"cancel_url"`
	RescheduleURL       string              `json:"reschedule_url"`
}

// ListEventsRequest filters GET /scheduled_events.
type ListEventsRequest struct {
	UserURI      string
	Status       string // "active" or "canceled"; empty means any
	MinStartTime time.Time
	MaxStartTime time.Time
	Count        int
}

// WebhookSubscriptionRequest is the body of POST /webhook_subscriptions.
type WebhookSubscriptionRequest struct {
	URL          string   `json:"url"`
	Events       []string `json:"events"`
	Organization string   `json:"organization"`
	User         string   `json:"user,omitempty"`
	Scope        string   `json:"scope"`
	SigningKey   string   `json:"signing_key,omitempty"`
}

// WebhookSubscription is a registered callback.
type WebhookSubscription struct {
	URI         string `json:"uri"`
	CallbackURL string `json:"callback_url"`
	State       string `json:"state"`
	Scope       string `json:"scope"`
}

// Pagination is the cursor block of list responses.
type Pagination struct {
	Count    int    `json:"count"`
	NextPage string `json:"next_page"`
}

type resourceResponse[T any] struct {
	Resource T `json:"resource"`
}

type collectionResponse[T any] struct {
	Collection []T        `json:"collection"`
	Pagination Pagination `json:"pagination"`
}

// APIError is the error body returned by the Calendly API.
type APIError struct {
	StatusCode int    `json:"-"`
	Title      string `json:"title"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Title != "" {
		return fmt.Sprintf("calendly API error %d: %s: %s", e.StatusCode, e.Title, e.Message)
	}
	return fmt.Sprintf("calendly API error %d: %s", e.StatusCode, e.Message)
}
