package usecase

import (
	"context"

	"dinner-scheduler/internal/appointment"
)

// Hide keeps an event out of List until restart. It does not cancel the booking.
func (uc *implUseCase) Hide(ctx context.Context, input appointment.HideInput) error {
	if input.EventID == "" {
		return appointment.ErrEventIDRequired
	}
	uc.hidden.Add(input.EventID, struct{}{})
	uc.l.Infof(ctx, "appointment.Hide: %s hidden", input.EventID)
	return nil
}

func (uc *implUseCase) isHidden(eventID string) bool {
	return uc.hidden.Contains(eventID)
}
