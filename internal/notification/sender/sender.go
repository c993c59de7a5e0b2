// Package sender adapts SMS transports to notification.Sender.
package sender

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"dinner-scheduler/internal/notification"
	"dinner-scheduler/pkg/log"
)

// MessageClient is the subset of the Twilio client used for sending.
type MessageClient interface {
	SendMessage(ctx context.Context, to, body string) (string, error)
}

type twilioSender struct {
	client MessageClient
}

// NewTwilio wraps a Twilio messages client.
func NewTwilio(client MessageClient) notification.Sender {
	return &twilioSender{client: client}
}

func (s *twilioSender) Send(ctx context.Context, to, body string) (string, error) {
	sid, err := s.client.SendMessage(ctx, to, body)
	if err != nil {
		return "", fmt.Errorf("twilio send to %s: %w", to, err)
	}
	return sid, nil
}

type dryRunSender struct {
	l log.Logger
}

// NewDryRun returns a Sender that only logs. It is used when no SMS
// credentials are configured.
func NewDryRun(l log.Logger) notification.Sender {
	return &dryRunSender{l: l}
}

func (s *dryRunSender) Send(ctx context.Context, to, body string) (string, error) {
	id := "dryrun-" + uuid.NewString()
	s.l.Infof(ctx, "sender.DryRun: to=%s id=%s body=%q", to, id, body)
	return id, nil
}
