package usecase

import (
	"dinner-scheduler/internal/notification"
	pkgLog "dinner-scheduler/pkg/log"
)

// defaultConcurrency caps parallel sends so a large directory does not burst
// past the transport's rate limits.
const defaultConcurrency = 8

type implUseCase struct {
	l           pkgLog.Logger
	sender      notification.Sender
	directory   notification.RecipientSource
	concurrency int
}

// New creates a new notification UseCase instance.
func New(l pkgLog.Logger, sender notification.Sender, directory notification.RecipientSource) notification.UseCase {
	return &implUseCase{
		l:           l,
		sender:      sender,
		directory:   directory,
		concurrency: defaultConcurrency,
	}
}
