package usecase

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"dinner-scheduler/internal/appointment"
	"dinner-scheduler/internal/model"
	"dinner-scheduler/internal/provider"
)

func (uc *implUseCase) List(ctx context.Context, _ appointment.ListInput) (appointment.ListOutput, error) {
	from := uc.now()
	to := from.Add(uc.window)
	out := appointment.ListOutput{Appointments: []appointment.Appointment{}, From: from, To: to}

	events, err := uc.source.ListEvents(ctx, provider.ListEventsOptions{MinStart: from, MaxStart: to})
	if err != nil {
		uc.l.Errorf(ctx, "appointment.List: source.ListEvents: %v", err)
		return out, fmt.Errorf("%w: %v", appointment.ErrProviderUnavailable, err)
	}
	if len(events) == 0 {
		return out, nil
	}

	// One slot per event; a nil slot is a projection that failed.
	slots := make([]*appointment.Appointment, len(events))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.concurrency)
	for i, ev := range events {
		if ev.ID == "" || uc.isHidden(ev.ID) {
			continue
		}
		g.Go(func() error {
			a, err := uc.project(gctx, ev)
			if err != nil {
				uc.l.Warnf(gctx, "appointment.List: skipping %s: %v", ev.ID, err)
				return nil
			}
			slots[i] = &a
			return nil
		})
	}
	_ = g.Wait()

	for _, a := range slots {
		if a != nil {
			out.Appointments = append(out.Appointments, *a)
		}
	}
	sort.SliceStable(out.Appointments, func(i, j int) bool {
		return out.Appointments[i].StartTime.Before(out.Appointments[j].StartTime)
	})
	return out, nil
}

func (uc *implUseCase) project(ctx context.Context, ev model.Event) (appointment.Appointment, error) {
	attendees, err := uc.source.ListAttendees(ctx, ev.ID)
	if err != nil {
		return appointment.Appointment{}, err
	}

	a := appointment.Appointment{
		EventID:     ev.ID,
		EventName:   ev.Name,
		InviteeName: appointment.UnknownInvitee,
		StartTime:   ev.StartTime,
		EndTime:     ev.EndTime,
	}
	if len(attendees) == 0 {
		return a, nil
	}

	first := attendees[0]
	if first.Name != "" {
		a.InviteeName = first.Name
	}
	a.Email = first.Email
	a.PhoneNumber = first.Phone
	a.Address = first.Address()
	return a, nil
}
