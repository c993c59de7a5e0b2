package usecase

import (
	"context"

	"dinner-scheduler/internal/ingestion"
	"dinner-scheduler/internal/model"
	"dinner-scheduler/internal/notification"
)

// ProcessCreated shares the dedup cache with polling, so a booking seen by
// both paths is announced once.
func (uc *implUseCase) ProcessCreated(ctx context.Context, input ingestion.CreatedInput) (ingestion.CreatedOutput, error) {
	ev, a := input.Event, input.Attendee
	if ev.ID == "" {
		return ingestion.CreatedOutput{}, ingestion.ErrInvalidEvent
	}

	if !uc.cache.Claim(ev.ID) {
		uc.l.Infof(ctx, "ingestion.ProcessCreated: event %s already notified", ev.ID)
		return ingestion.CreatedOutput{Duplicate: true}, nil
	}
	committed := false
	defer func() {
		if !committed {
			uc.cache.Release(ev.ID)
		}
	}()

	dispatched, err := uc.notifier.Dispatch(ctx, notification.DispatchInput{
		Message: notification.NewAppointmentMessage(uc.formatter, ev, a),
		Mode:    notification.ModeConcurrent,
	})
	if err != nil {
		uc.l.Errorf(ctx, "ingestion.ProcessCreated: dispatch for %s: %v", ev.ID, err)
		return ingestion.CreatedOutput{}, err
	}

	out := ingestion.CreatedOutput{
		Delivered: dispatched.Succeeded(),
		Failed:    dispatched.Failed(),
	}
	if dispatched.AnySucceeded() {
		uc.cache.Commit(ev.ID)
		committed = true
		out.Record = &model.NotificationRecord{
			EventID:     ev.ID,
			InviteeName: a.Name,
			StartTime:   ev.StartTime,
			ProcessedAt: uc.now(),
		}
	} else {
		uc.l.Warnf(ctx, "ingestion.ProcessCreated: every delivery failed for %s", ev.ID)
	}

	if a.Phone != "" {
		confirm, err := uc.notifier.Dispatch(ctx, notification.DispatchInput{
			Message:    notification.InviteeConfirmationMessage(uc.formatter, ev, a),
			Recipients: []string{a.Phone},
		})
		if err != nil {
			uc.l.Errorf(ctx, "ingestion.ProcessCreated: invitee confirmation for %s: %v", ev.ID, err)
		}
		out.InviteeNotified = err == nil && confirm.AnySucceeded()
	}

	return out, nil
}

func (uc *implUseCase) ProcessCancellation(ctx context.Context, input ingestion.CancellationInput) (ingestion.CancellationOutput, error) {
	dispatched, err := uc.notifier.Dispatch(ctx, notification.DispatchInput{
		Message: notification.CancellationMessage(uc.formatter, input.InviteeName, input.StartTime),
		Mode:    notification.ModeConcurrent,
	})
	if err != nil {
		uc.l.Errorf(ctx, "ingestion.ProcessCancellation: dispatch for %s: %v", input.EventID, err)
		return ingestion.CancellationOutput{}, err
	}

	uc.l.Infof(ctx, "ingestion.ProcessCancellation: %s notified %d recipients", input.EventID, dispatched.Succeeded())
	return ingestion.CancellationOutput{
		Delivered: dispatched.Succeeded(),
		Failed:    dispatched.Failed(),
	}, nil
}
