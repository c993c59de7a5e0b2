package usecase

import (
	"context"
	"time"

	"dinner-scheduler/internal/ingestion"
)

func (uc *implUseCase) ProcessCheckpoint(ctx context.Context) (ingestion.CheckpointOutput, error) {
	runStart := uc.now()
	since := uc.Checkpoint()

	result, err := uc.ProcessSince(ctx, ingestion.ProcessSinceInput{Since: since})

	// Advance even on provider failure so a bad cycle cannot pin the window.
	uc.advanceCheckpoint(runStart)

	return ingestion.CheckpointOutput{
		Result:    result,
		Since:     since,
		CheckedAt: uc.Checkpoint(),
	}, err
}

func (uc *implUseCase) Checkpoint() time.Time {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.checkpoint
}

// advanceCheckpoint never moves the checkpoint backwards, so an overlapping
// slower run cannot undo a newer one.
func (uc *implUseCase) advanceCheckpoint(t time.Time) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if t.After(uc.checkpoint) {
		uc.checkpoint = t
	}
}
