package http

import (
	"time"

	"dinner-scheduler/internal/ingestion"
	"dinner-scheduler/pkg/log"
)

type handler struct {
	l        log.Logger
	uc       ingestion.UseCase
	lookback time.Duration
	now      func() time.Time
}

// New creates the trigger handlers. lookback is the cron window and should
// equal the scheduler interval so consecutive runs leave no gap.
func New(l log.Logger, uc ingestion.UseCase, lookback time.Duration) *handler {
	if lookback <= 0 {
		lookback = 5 * time.Minute
	}
	return &handler{
		l:        l,
		uc:       uc,
		lookback: lookback,
		now:      time.Now,
	}
}
