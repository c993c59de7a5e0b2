// Package job runs the checkpointed ingestion cycle on a fixed interval
// inside the API process.
package job

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"dinner-scheduler/internal/ingestion"
	"dinner-scheduler/pkg/log"
)

// Poller triggers ProcessCheckpoint every interval. A tick that arrives while
// the previous run is still going is skipped.
type Poller struct {
	l        log.Logger
	uc       ingestion.UseCase
	interval time.Duration
	wg       sync.WaitGroup
	running  atomic.Bool
	runs     atomic.Int64
	skipped  atomic.Int64
}

func NewPoller(l log.Logger, uc ingestion.UseCase, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Poller{l: l, uc: uc, interval: interval}
}

// Run blocks until ctx is cancelled and the in-flight run, if any, returns.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.l.Infof(ctx, "job.Poller: started, interval=%s", p.interval)
	for {
		select {
		case <-ctx.Done():
			p.wg.Wait()
			p.l.Infof(ctx, "job.Poller: stopped")
			return
		case <-ticker.C:
			if !p.running.CompareAndSwap(false, true) {
				p.skipped.Add(1)
				p.l.Warnf(ctx, "job.Poller: previous run still in progress, skipping tick")
				continue
			}
			p.wg.Add(1)
			go func() {
				defer p.wg.Done()
				defer p.running.Store(false)
				p.RunOnce(ctx)
			}()
		}
	}
}

// RunOnce executes a single checkpointed cycle and logs the outcome.
func (p *Poller) RunOnce(ctx context.Context) {
	p.runs.Add(1)
	out, err := p.uc.ProcessCheckpoint(ctx)
	if err != nil {
		p.l.Errorf(ctx, "job.Poller.RunOnce: %v", err)
		return
	}
	if out.Result.ProcessedCount > 0 {
		p.l.Infof(ctx, "job.Poller.RunOnce: notified %d booking(s), tracking %d", out.Result.ProcessedCount, out.Result.TotalTracked)
	}
}

// Runs reports how many cycles were started.
func (p *Poller) Runs() int64 { return p.runs.Load() }

// Skipped reports how many ticks were dropped because a run was in flight.
func (p *Poller) Skipped() int64 { return p.skipped.Load() }
