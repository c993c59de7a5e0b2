package usecase

import (
	"context"
	"errors"
	"fmt"

	"dinner-scheduler/internal/ingestion"
	"dinner-scheduler/internal/model"
	"dinner-scheduler/internal/notification"
	"dinner-scheduler/internal/provider"
)

// ProcessSince runs one polling cycle. Provider I/O happens outside the dedup
// lock; only Claim/Commit/Release touch the cache.
func (uc *implUseCase) ProcessSince(ctx context.Context, input ingestion.ProcessSinceInput) (out ingestion.ProcessOutput, err error) {
	defer func() {
		if r := recover(); r != nil {
			uc.l.Errorf(ctx, "ingestion.ProcessSince: recovered panic: %v", r)
			err = fmt.Errorf("%w: %v", ingestion.ErrPanicRecovered, r)
			out = uc.failedOutput(err)
		}
	}()

	uc.l.Infof(ctx, "ingestion.ProcessSince: checking for appointments since %s", input.Since.Format("2006-01-02T15:04:05Z07:00"))

	events, err := uc.source.ListEvents(ctx, provider.ListEventsOptions{
		MinStart: input.Since,
		MaxStart: input.Until,
	})
	if err != nil {
		uc.l.Errorf(ctx, "ingestion.ProcessSince: list events: %v", err)
		err = fmt.Errorf("%w: %v", ingestion.ErrProviderUnavailable, err)
		return uc.failedOutput(err), err
	}
	if len(events) == 0 {
		uc.l.Infof(ctx, "ingestion.ProcessSince: no new appointments found")
		return uc.output(nil), nil
	}

	var records []model.NotificationRecord
	for _, ev := range events {
		if ctx.Err() != nil {
			uc.l.Warnf(ctx, "ingestion.ProcessSince: context done, stopping batch: %v", ctx.Err())
			break
		}
		if ev.ID == "" || ev.Status == model.EventStatusCanceled {
			continue
		}
		if !uc.cache.Claim(ev.ID) {
			uc.l.Debugf(ctx, "ingestion.ProcessSince: skipping already processed event %s", ev.ID)
			continue
		}
		records = append(records, uc.processEvent(ctx, ev)...)
	}

	if evicted := uc.cache.EvictExcess(0); evicted > 0 {
		uc.l.Infof(ctx, "ingestion.ProcessSince: evicted %d tracked events", evicted)
	}

	out = uc.output(records)
	uc.l.Infof(ctx, "ingestion.ProcessSince: processed %d notifications, tracking %d events", out.ProcessedCount, out.TotalTracked)
	return out, nil
}

// processEvent notifies every attendee of a claimed event. The claim is
// committed when at least one recipient got a message and released otherwise,
// so the event is retried next cycle.
func (uc *implUseCase) processEvent(ctx context.Context, ev model.Event) (records []model.NotificationRecord) {
	defer func() {
		if len(records) > 0 {
			uc.cache.Commit(ev.ID)
		} else {
			uc.cache.Release(ev.ID)
		}
	}()

	attendees, err := uc.source.ListAttendees(ctx, ev.ID)
	if err != nil {
		uc.l.Errorf(ctx, "ingestion.processEvent: %v for %s: %v", ingestion.ErrAttendeeFetchFailed, ev.ID, err)
		return nil
	}
	if len(attendees) == 0 {
		uc.l.Infof(ctx, "ingestion.processEvent: no invitees found for event %s", ev.ID)
		return nil
	}

	for _, a := range attendees {
		if a.Canceled {
			continue
		}

		dispatched, err := uc.notifier.Dispatch(ctx, notification.DispatchInput{
			Message: notification.NewAppointmentMessage(uc.formatter, ev, a),
			Mode:    notification.ModeSequential,
		})
		if err != nil {
			uc.l.Errorf(ctx, "ingestion.processEvent: dispatch for %s: %v", ev.ID, err)
			if errors.Is(err, notification.ErrNoRecipients) {
				break
			}
			continue
		}
		if !dispatched.AnySucceeded() {
			uc.l.Warnf(ctx, "ingestion.processEvent: every delivery failed for %s (%s)", ev.ID, a.Name)
			continue
		}

		records = append(records, model.NotificationRecord{
			EventID:     ev.ID,
			InviteeName: a.Name,
			StartTime:   ev.StartTime,
			ProcessedAt: uc.now(),
		})
	}
	return records
}

func (uc *implUseCase) output(records []model.NotificationRecord) ingestion.ProcessOutput {
	if records == nil {
		records = []model.NotificationRecord{}
	}
	return ingestion.ProcessOutput{
		ProcessedCount: len(records),
		Events:         records,
		TotalTracked:   uc.cache.Len(),
	}
}

func (uc *implUseCase) failedOutput(err error) ingestion.ProcessOutput {
	out := uc.output(nil)
	out.Error = err.Error()
	return out
}
