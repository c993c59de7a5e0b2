package webhook

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"dinner-scheduler/internal/model"
	calendlyProvider "dinner-scheduler/internal/provider/calendly"
	pkgCalendly "dinner-scheduler/pkg/calendly"
)

// calendlyEnvelope covers the current webhook payload and the older one that
// nested the invitee and event type.
type calendlyEnvelope struct {
	Event   string `json:"event"`
	Payload struct {
		URI                 string                          `json:"uri"`
		EventURI            string                          `json:"event"`
		Name                string                          `json:"name"`
		Email               string                          `json:"email"`
		Status              string                          `json:"status"`
		TextReminderNumber  string                          `json:"text_reminder_number"`
		QuestionsAndAnswers []pkgCalendly.QuestionAndAnswer `json:"questions_and_answers"`
		ScheduledEvent      *pkgCalendly.ScheduledEvent     `json:"scheduled_event"`

		Invitee *struct {
			Name               string `json:"name"`
			Email              string `json:"email"`
			TextReminderNumber string `json:"text_reminder_number"`
		} `json:"invitee"`
		EventType *struct {
			Name      string    `json:"name"`
			StartTime time.Time `json:"start_time"`
			Duration  int       `json:"duration"`
		} `json:"event_type"`
	} `json:"payload"`
}

// ParseCalendlyEvent decodes a webhook body into a normalized event.
func ParseCalendlyEvent(body []byte) (CalendlyEvent, error) {
	var env calendlyEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return CalendlyEvent{}, fmt.Errorf("%w: %v", ErrPayloadInvalid, err)
	}
	if env.Event == "" {
		return CalendlyEvent{}, fmt.Errorf("%w: missing event type", ErrPayloadInvalid)
	}

	p := env.Payload
	inv := pkgCalendly.Invitee{
		URI:                 p.URI,
		Name:                p.Name,
		Email:               p.Email,
		Status:              p.Status,
		TextReminderNumber:  p.TextReminderNumber,
		QuestionsAndAnswers: p.QuestionsAndAnswers,
	}
	if p.Invitee != nil {
		inv.Name = firstNonEmpty(inv.Name, p.Invitee.Name)
		inv.Email = firstNonEmpty(inv.Email, p.Invitee.Email)
		inv.TextReminderNumber = firstNonEmpty(inv.TextReminderNumber, p.Invitee.TextReminderNumber)
	}

	var ev model.Event
	switch {
	case p.ScheduledEvent != nil:
		ev = calendlyProvider.ToEvent(*p.ScheduledEvent)
		ev.Status = model.EventStatusActive
	case p.EventType != nil:
		ev = model.Event{
			ID:        firstNonEmpty(p.EventURI, eventURIFromInvitee(p.URI)),
			Name:      p.EventType.Name,
			StartTime: p.EventType.StartTime,
			EndTime:   p.EventType.StartTime.Add(time.Duration(p.EventType.Duration) * time.Minute),
			Status:    model.EventStatusActive,
		}
	}
	if ev.ID == "" {
		ev.ID = firstNonEmpty(p.EventURI, eventURIFromInvitee(p.URI))
	}

	return CalendlyEvent{
		Type:       env.Event,
		Event:      ev,
		Attendee:   calendlyProvider.ToAttendee(inv),
		InviteeURI: p.URI,
	}, nil
}

// eventURIFromInvitee maps ".../scheduled_events/<id>/invitees/<id>" to the
// scheduled event URI polling uses. Other URIs are returned as is; the
// handler resolves those through the invitee resource.
func eventURIFromInvitee(uri string) string {
	if !strings.Contains(uri, "/scheduled_events/") {
		return uri
	}
	if base, _, ok := strings.Cut(uri, "/invitees/"); ok {
		return base
	}
	return uri
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
