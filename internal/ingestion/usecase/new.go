package usecase

import (
	"sync"
	"time"

	"dinner-scheduler/internal/dedup"
	"dinner-scheduler/internal/ingestion"
	"dinner-scheduler/internal/notification"
	"dinner-scheduler/internal/provider"
	"dinner-scheduler/pkg/localtime"
	pkgLog "dinner-scheduler/pkg/log"
)

type implUseCase struct {
	l         pkgLog.Logger
	source    provider.EventSource
	cache     *dedup.Cache
	notifier  notification.UseCase
	formatter *localtime.Formatter
	now       func() time.Time

	mu         sync.Mutex
	checkpoint time.Time
}

// Option customizes the ingestion UseCase.
type Option func(*implUseCase)

// WithClock overrides the time source. The initial checkpoint is taken from it.
func WithClock(now func() time.Time) Option {
	return func(uc *implUseCase) { uc.now = now }
}

// New creates a new ingestion UseCase instance. The checkpoint starts at
// construction time; nothing is carried across restarts.
func New(
	l pkgLog.Logger,
	source provider.EventSource,
	cache *dedup.Cache,
	notifier notification.UseCase,
	formatter *localtime.Formatter,
	opts ...Option,
) ingestion.UseCase {
	uc := &implUseCase{
		l:         l,
		source:    source,
		cache:     cache,
		notifier:  notifier,
		formatter: formatter,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	uc.checkpoint = uc.now()
	return uc
}
