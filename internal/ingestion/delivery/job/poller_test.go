package job_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"dinner-scheduler/internal/ingestion"
	"dinner-scheduler/internal/ingestion/delivery/job"
	"dinner-scheduler/pkg/log"
)

type blockingUC struct {
	mu       sync.Mutex
	calls    int
	finished int
	release  chan struct{}
	// ignoreCtx keeps the run going after cancellation, like a cycle
	// finishing its sends.
	ignoreCtx bool
}

func (b *blockingUC) ProcessSince(ctx context.Context, _ ingestion.ProcessSinceInput) (ingestion.ProcessOutput, error) {
	return ingestion.ProcessOutput{}, nil
}

func (b *blockingUC) ProcessCheckpoint(ctx context.Context) (ingestion.CheckpointOutput, error) {
	b.mu.Lock()
	b.calls++
	b.mu.Unlock()
	if b.ignoreCtx {
		<-b.release
	} else {
		select {
		case <-b.release:
		case <-ctx.Done():
		}
	}
	b.mu.Lock()
	b.finished++
	b.mu.Unlock()
	return ingestion.CheckpointOutput{}, nil
}

func (b *blockingUC) ProcessCreated(ctx context.Context, _ ingestion.CreatedInput) (ingestion.CreatedOutput, error) {
	return ingestion.CreatedOutput{}, nil
}

func (b *blockingUC) ProcessCancellation(ctx context.Context, _ ingestion.CancellationInput) (ingestion.CancellationOutput, error) {
	return ingestion.CancellationOutput{}, nil
}

func (b *blockingUC) Checkpoint() time.Time { return time.Time{} }

func (b *blockingUC) Calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

func TestPoller_SkipsOverlappingTicks(t *testing.T) {
	uc := &blockingUC{release: make(chan struct{})}
	p := job.NewPoller(log.NewNop(), uc, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for (p.Skipped() < 3 || uc.Calls() < 1) && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	if got := uc.Calls(); got != 1 {
		t.Errorf("expected exactly 1 in-flight run, got %d", got)
	}
	if p.Skipped() < 3 {
		t.Errorf("expected skipped ticks while the run was blocked, got %d", p.Skipped())
	}

	cancel()
	close(uc.release)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop after cancel")
	}
}

func (b *blockingUC) Finished() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.finished
}

func TestPoller_RunWaitsForInFlightCycle(t *testing.T) {
	uc := &blockingUC{release: make(chan struct{}), ignoreCtx: true}
	p := job.NewPoller(log.NewNop(), uc, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for uc.Calls() < 1 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if uc.Calls() != 1 {
		t.Fatalf("expected a run to start, got %d calls", uc.Calls())
	}

	cancel()
	select {
	case <-done:
		t.Fatal("Run returned while a cycle was still in flight")
	case <-time.After(50 * time.Millisecond):
	}

	close(uc.release)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop after the cycle finished")
	}
	if uc.Finished() != 1 {
		t.Errorf("expected the in-flight cycle to finish before Run returned, finished=%d", uc.Finished())
	}
}

func TestPoller_RunOnce(t *testing.T) {
	uc := &blockingUC{release: make(chan struct{})}
	close(uc.release)

	p := job.NewPoller(log.NewNop(), uc, 0)
	p.RunOnce(context.Background())
	p.RunOnce(context.Background())

	if uc.Calls() != 2 {
		t.Errorf("expected 2 calls, got %d", uc.Calls())
	}
	if p.Runs() != 2 {
		t.Errorf("expected Runs()=2, got %d", p.Runs())
	}
}
