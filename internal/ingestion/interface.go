package ingestion

import (
	"context"
	"time"
)

// UseCase turns provider events into missionary notifications.
type UseCase interface {
	// ProcessSince notifies every not-yet-seen event starting at or after
	// input.Since. It never panics; failures are reported in the output's Error
	// field and the returned error.
	ProcessSince(ctx context.Context, input ProcessSinceInput) (ProcessOutput, error)

	// ProcessCheckpoint runs ProcessSince from the stored checkpoint and then
	// advances the checkpoint to the run's start time, even when the provider failed.
	ProcessCheckpoint(ctx context.Context) (CheckpointOutput, error)

	// ProcessCreated notifies a single booking delivered by a provider callback.
	ProcessCreated(ctx context.Context, input CreatedInput) (CreatedOutput, error)

	// ProcessCancellation notifies a cancellation. It does not consult the dedup cache.
	ProcessCancellation(ctx context.Context, input CancellationInput) (CancellationOutput, error)

	// Checkpoint returns the current checkpoint.
	Checkpoint() time.Time
}
