package webhook

import (
	"context"
	"sync"
	"time"

	"dinner-scheduler/internal/ingestion"
	pkgCalendly "dinner-scheduler/pkg/calendly"
	pkgLog "dinner-scheduler/pkg/log"
)

const defaultProcessTimeout = 2 * time.Minute

// InviteeFetcher loads the full invitee when a payload omits the booking answers.
type InviteeFetcher interface {
	GetInvitee(ctx context.Context, inviteeURI string) (*pkgCalendly.Invitee, error)
}

type Handler struct {
	ingestionUC    ingestion.UseCase
	security       *SecurityValidator
	invitees       InviteeFetcher
	l              pkgLog.Logger
	processTimeout time.Duration
	inflight       sync.WaitGroup
}

// NewHandler creates the Calendly callback handler. invitees may be nil.
func NewHandler(
	ingestionUC ingestion.UseCase,
	securityConfig SecurityConfig,
	invitees InviteeFetcher,
	l pkgLog.Logger,
) *Handler {
	return &Handler{
		ingestionUC:    ingestionUC,
		security:       NewSecurityValidator(securityConfig),
		invitees:       invitees,
		l:              l,
		processTimeout: defaultProcessTimeout,
	}
}

// Wait blocks until every accepted callback has finished processing.
func (h *Handler) Wait() {
	h.inflight.Wait()
}
