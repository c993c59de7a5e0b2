package calendly

import (
	"context"
	"fmt"
	"sync"

	"dinner-scheduler/internal/model"
	"dinner-scheduler/internal/provider"
	pkgCalendly "dinner-scheduler/pkg/calendly"
	pkgLog "dinner-scheduler/pkg/log"
)

// Client is the subset of the Calendly API client used here.
type Client interface {
	CurrentUser(ctx context.Context) (*pkgCalendly.User, error)
	ListScheduledEvents(ctx context.Context, req pkgCalendly.ListEventsRequest) ([]pkgCalendly.ScheduledEvent, error)
	ListInvitees(ctx context.Context, eventURI string) ([]pkgCalendly.Invitee, error)
}

type implSource struct {
	l      pkgLog.Logger
	client Client

	mu      sync.Mutex
	userURI string
}

// New creates a Calendly-backed EventSource. When userURI is empty it is
// resolved from /users/me on first use.
func New(l pkgLog.Logger, client Client, userURI string) provider.EventSource {
	return &implSource{l: l, client: client, userURI: userURI}
}

func (s *implSource) ListEvents(ctx context.Context, opt provider.ListEventsOptions) ([]model.Event, error) {
	userURI, err := s.resolveUser(ctx)
	if err != nil {
		return nil, err
	}

	events, err := s.client.ListScheduledEvents(ctx, pkgCalendly.ListEventsRequest{
		UserURI:      userURI,
		Status:       "active",
		MinStartTime: opt.MinStart,
		MaxStartTime: opt.MaxStart,
		Count:        100,
	})
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, nil
	}

	out := make([]model.Event, 0, len(events))
	for _, e := range events {
		out = append(out, ToEvent(e))
	}
	return out, nil
}

func (s *implSource) ListAttendees(ctx context.Context, eventID string) ([]model.Attendee, error) {
	invitees, err := s.client.ListInvitees(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if len(invitees) == 0 {
		return nil, nil
	}

	out := make([]model.Attendee, 0, len(invitees))
	for _, inv := range invitees {
		out = append(out, ToAttendee(inv))
	}
	return out, nil
}

func (s *implSource) resolveUser(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userURI != "" {
		return s.userURI, nil
	}

	user, err := s.client.CurrentUser(ctx)
	if err != nil {
		return "", fmt.Errorf("resolve calendly user: %w", err)
	}
	s.userURI = user.URI
	s.l.Infof(ctx, "calendly.resolveUser: using %s (%s)", user.URI, user.Name)
	return s.userURI, nil
}

// ToEvent maps a Calendly scheduled event onto the domain event.
func ToEvent(e pkgCalendly.ScheduledEvent) model.Event {
	status := model.EventStatusActive
	if e.Status == "canceled" {
		status = model.EventStatusCanceled
	}
	return model.Event{
		ID:        e.URI,
		Name:      e.Name,
		StartTime: e.StartTime,
		EndTime:   e.EndTime,
		Status:    status,
	}
}

// ToAttendee maps a Calendly invitee onto the domain attendee.
func ToAttendee(inv pkgCalendly.Invitee) model.Attendee {
	a := model.Attendee{
		URI:      inv.URI,
		Name:     inv.Name,
		Email:    inv.Email,
		Phone:    inv.TextReminderNumber,
		Canceled: inv.Status == "canceled",
	}
	for _, qa := range inv.QuestionsAndAnswers {
		a.Answers = append(a.Answers, model.QuestionAnswer{Question: qa.Question, Answer: qa.Answer})
	}
	return a
}
