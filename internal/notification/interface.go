package notification

import (
	"context"
)

// UseCase delivers a message to a set of recipients and reports the outcome
// for each of them.
type UseCase interface {
	Dispatch(ctx context.Context, input DispatchInput) (DispatchOutput, error)
}

// Sender is the outbound SMS transport.
type Sender interface {
	// Send delivers body to the E.164 number to and returns the provider's delivery id.
	Send(ctx context.Context, to, body string) (string, error)
}

// RecipientSource provides the current opted-in phone numbers.
type RecipientSource interface {
	OptedIn() []string
}
