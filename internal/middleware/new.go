package middleware

import (
	"dinner-scheduler/internal/session"
	"dinner-scheduler/pkg/log"
)

// Config is the dependency bag for New.
type Config struct {
	CronSecret      string
	APISecretKey    string
	Sessions        *session.Store
	RateLimitPerMin int
}

type Middleware struct {
	l            log.Logger
	cronSecret   string
	apiSecretKey string
	sessions     *session.Store
	ratePerMin   int
}

func New(l log.Logger, cfg Config) Middleware {
	return Middleware{
		l:            l,
		cronSecret:   cfg.CronSecret,
		apiSecretKey: cfg.APISecretKey,
		sessions:     cfg.Sessions,
		ratePerMin:   cfg.RateLimitPerMin,
	}
}
