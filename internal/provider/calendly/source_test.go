package calendly_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"dinner-scheduler/internal/model"
	"dinner-scheduler/internal/provider"
	"dinner-scheduler/internal/provider/calendly"
	pkgCalendly "dinner-scheduler/pkg/calendly"
	"dinner-scheduler/pkg/log"
)

type fakeClient struct {
	userCalls int
	userErr   error
	lastReq   pkgCalendly.ListEventsRequest
	events    []pkgCalendly.ScheduledEvent
	eventsErr error
	invitees  map[string][]pkgCalendly.Invitee
}

func (f *fakeClient) CurrentUser(ctx context.Context) (*pkgCalendly.User, error) {
	f.userCalls++
	if f.userErr != nil {
		return nil, f.userErr
	}
	return &pkgCalendly.User{URI: "https://api.calendly.com/users/U1", Name: "Ward"}, nil
}

func (f *fakeClient) ListScheduledEvents(ctx context.Context, req pkgCalendly.ListEventsRequest) ([]pkgCalendly.ScheduledEvent, error) {
	f.lastReq = req
	return f.events, f.eventsErr
}

func (f *fakeClient) ListInvitees(ctx context.Context, eventURI string) ([]pkgCalendly.Invitee, error) {
	inv, ok := f.invitees[eventURI]
	if !ok {
		return nil, errors.New("not found")
	}
	return inv, nil
}

func TestSource_ListEvents(t *testing.T) {
	start := time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)

	t.Run("resolves user once and maps events", func(t *testing.T) {
		fc := &fakeClient{events: []pkgCalendly.ScheduledEvent{
			{URI: "evt_1", Name: "Dinner", Status: "active", StartTime: start, EndTime: start.Add(time.Hour)},
		}}
		src := calendly.New(log.NewNop(), fc, "")

		for i := 0; i < 2; i++ {
			events, err := src.ListEvents(context.Background(), provider.ListEventsOptions{MinStart: start})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(events) != 1 || events[0].ID != "evt_1" || events[0].Status != model.EventStatusActive {
				t.Fatalf("unexpected events: %+v", events)
			}
		}
		if fc.userCalls != 1 {
			t.Errorf("expected user to be resolved once, got %d", fc.userCalls)
		}
		if fc.lastReq.Status != "active" || fc.lastReq.UserURI != "https://api.calendly.com/users/U1" {
			t.Errorf("unexpected request: %+v", fc.lastReq)
		}
		if !fc.lastReq.MinStartTime.Equal(start) {
			t.Errorf("expected min start to be passed through")
		}
	})

	t.Run("configured user skips lookup", func(t *testing.T) {
		fc := &fakeClient{}
		src := calendly.New(log.NewNop(), fc, "https://api.calendly.com/users/CFG")

		events, err := src.ListEvents(context.Background(), provider.ListEventsOptions{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if events != nil {
			t.Errorf("expected nil collection, got %+v", events)
		}
		if fc.userCalls != 0 {
			t.Errorf("expected no user lookup")
		}
	})

	t.Run("user lookup failure", func(t *testing.T) {
		fc := &fakeClient{userErr: errors.New("401")}
		src := calendly.New(log.NewNop(), fc, "")
		if _, err := src.ListEvents(context.Background(), provider.ListEventsOptions{}); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("list failure", func(t *testing.T) {
		fc := &fakeClient{eventsErr: errors.New("503")}
		src := calendly.New(log.NewNop(), fc, "u")
		if _, err := src.ListEvents(context.Background(), provider.ListEventsOptions{}); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestSource_ListAttendees(t *testing.T) {
	fc := &fakeClient{invitees: map[string][]pkgCalendly.Invitee{
		"evt_1": {{
			Name: "Jane", Email: "jane@example.com", TextReminderNumber: "+15551234567",
			QuestionsAndAnswers: []pkgCalendly.QuestionAndAnswer{{Question: "Address", Answer: "12 Elm St"}},
		}},
		"evt_empty": {},
	}}
	src := calendly.New(log.NewNop(), fc, "u")

	attendees, err := src.ListAttendees(context.Background(), "evt_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(attendees) != 1 {
		t.Fatalf("expected 1 attendee, got %d", len(attendees))
	}
	a := attendees[0]
	if a.Phone != "+15551234567" || a.Address() != "12 Elm St" {
		t.Errorf("unexpected attendee: %+v", a)
	}

	if got, err := src.ListAttendees(context.Background(), "evt_empty"); err != nil || got != nil {
		t.Errorf("expected nil collection, got %v %v", got, err)
	}
	if _, err := src.ListAttendees(context.Background(), "missing"); err == nil {
		t.Errorf("expected error")
	}
}
