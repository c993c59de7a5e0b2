package usecase

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"dinner-scheduler/internal/notification"
)

// Dispatch sends input.Message to every recipient and reports a Delivery per
// recipient. A failing recipient never stops the others; the returned error is
// only set when there is nothing to send.
func (uc *implUseCase) Dispatch(ctx context.Context, input notification.DispatchInput) (notification.DispatchOutput, error) {
	if input.Message == "" {
		return notification.DispatchOutput{}, notification.ErrEmptyMessage
	}

	recipients := input.Recipients
	if len(recipients) == 0 && uc.directory != nil {
		recipients = uc.directory.OptedIn()
	}
	if len(recipients) == 0 {
		uc.l.Warnf(ctx, "notification.Dispatch: no opted-in recipients, nothing sent")
		return notification.DispatchOutput{}, notification.ErrNoRecipients
	}

	var out notification.DispatchOutput
	switch input.Mode {
	case notification.ModeConcurrent:
		out = uc.sendConcurrent(ctx, input.Message, recipients)
	default:
		out = uc.sendSequential(ctx, input.Message, recipients)
	}

	uc.l.Infof(ctx, "notification.Dispatch: %s fan-out to %d recipients, %d delivered, %d failed",
		input.Mode, len(recipients), out.Succeeded(), out.Failed())
	return out, nil
}

func (uc *implUseCase) sendSequential(ctx context.Context, message string, recipients []string) notification.DispatchOutput {
	deliveries := make([]notification.Delivery, 0, len(recipients))
	for _, to := range recipients {
		deliveries = append(deliveries, uc.send(ctx, to, message))
	}
	return notification.DispatchOutput{Deliveries: deliveries}
}

// sendConcurrent uses a plain errgroup.Group: goroutines never return an error,
// so one failure cannot cancel the siblings.
func (uc *implUseCase) sendConcurrent(ctx context.Context, message string, recipients []string) notification.DispatchOutput {
	deliveries := make([]notification.Delivery, len(recipients))

	var g errgroup.Group
	g.SetLimit(uc.concurrency)
	for i, to := range recipients {
		g.Go(func() error {
			deliveries[i] = uc.send(ctx, to, message)
			return nil
		})
	}
	_ = g.Wait()

	return notification.DispatchOutput{Deliveries: deliveries}
}

func (uc *implUseCase) send(ctx context.Context, to, message string) notification.Delivery {
	d := notification.Delivery{Recipient: to}
	if err := ctx.Err(); err != nil {
		d.Err = fmt.Errorf("%w: %v", notification.ErrDeliveryFailed, err)
		return d
	}

	id, err := uc.sender.Send(ctx, to, message)
	if err != nil {
		uc.l.Errorf(ctx, "notification.send: failed to deliver to %s: %v", to, err)
		d.Err = fmt.Errorf("%w: %v", notification.ErrDeliveryFailed, err)
		return d
	}

	d.DeliveryID = id
	uc.l.Debugf(ctx, "notification.send: delivered to %s (%s)", to, id)
	return d
}
