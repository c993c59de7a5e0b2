package usecase

import (
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"dinner-scheduler/internal/appointment"
	"dinner-scheduler/internal/provider"
	"dinner-scheduler/internal/session"
	pkgLog "dinner-scheduler/pkg/log"
)

const (
	defaultConcurrency = 8
	maxHidden          = 1000
)

type implUseCase struct {
	l           pkgLog.Logger
	source      provider.EventSource
	sessions    *session.Store
	accessCode  string
	window      time.Duration
	concurrency int
	hidden      *lru.Cache[string, struct{}]
	now         func() time.Time
}

// Option customizes the appointment UseCase.
type Option func(*implUseCase)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(uc *implUseCase) { uc.now = now }
}

// WithWindow overrides how far ahead List looks.
func WithWindow(window time.Duration) Option {
	return func(uc *implUseCase) {
		if window > 0 {
			uc.window = window
		}
	}
}

// New creates a new appointment UseCase instance.
func New(
	l pkgLog.Logger,
	source provider.EventSource,
	sessions *session.Store,
	accessCode string,
	opts ...Option,
) (appointment.UseCase, error) {
	hidden, err := lru.New[string, struct{}](maxHidden)
	if err != nil {
		return nil, fmt.Errorf("appointment.New: %w", err)
	}
	uc := &implUseCase{
		l:           l,
		source:      source,
		sessions:    sessions,
		accessCode:  accessCode,
		window:      appointment.DefaultWindow,
		concurrency: defaultConcurrency,
		hidden:      hidden,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc, nil
}
