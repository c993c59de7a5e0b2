package gcal

import (
	"context"

	"dinner-scheduler/internal/model"
	"dinner-scheduler/internal/provider"
	"dinner-scheduler/pkg/gcalendar"
)

// Client is the subset of the Google Calendar client used here.
type Client interface {
	ListEvents(ctx context.Context, req gcalendar.ListEventsRequest) ([]gcalendar.Event, error)
	GetEvent(ctx context.Context, calendarID, eventID string) (*gcalendar.Event, error)
}

// addressQuestion labels the calendar location so it is picked up as the
// attendee's address.
const addressQuestion = "Address"

type implSource struct {
	client     Client
	calendarID string
}

// New creates a Google Calendar backed EventSource for one calendar.
func New(client Client, calendarID string) provider.EventSource {
	if calendarID == "" {
		calendarID = "primary"
	}
	return &implSource{client: client, calendarID: calendarID}
}

func (s *implSource) ListEvents(ctx context.Context, opt provider.ListEventsOptions) ([]model.Event, error) {
	items, err := s.client.ListEvents(ctx, gcalendar.ListEventsRequest{
		CalendarID: s.calendarID,
		TimeMin:    opt.MinStart,
		TimeMax:    opt.MaxStart,
	})
	if err != nil {
		return nil, err
	}

	var out []model.Event
	for _, item := range items {
		if item.Status == gcalendar.StatusCancelled {
			continue
		}
		// timeMin filters on end time; the query contract is on start time.
		if !opt.MinStart.IsZero() && item.StartTime.Before(opt.MinStart) {
			continue
		}
		out = append(out, model.Event{
			ID:        item.ID,
			Name:      item.Summary,
			StartTime: item.StartTime,
			EndTime:   item.EndTime,
			Status:    model.EventStatusActive,
		})
	}
	return out, nil
}

func (s *implSource) ListAttendees(ctx context.Context, eventID string) ([]model.Attendee, error) {
	ev, err := s.client.GetEvent(ctx, s.calendarID, eventID)
	if err != nil {
		return nil, err
	}

	var out []model.Attendee
	for _, a := range ev.Attendees {
		att := model.Attendee{
			Name:     a.DisplayName,
			Email:    a.Email,
			Canceled: a.ResponseStatus == "declined",
		}
		if att.Name == "" {
			att.Name = a.Email
		}
		if ev.Location != "" {
			att.Answers = []model.QuestionAnswer{{Question: addressQuestion, Answer: ev.Location}}
		}
		out = append(out, att)
	}
	return out, nil
}
