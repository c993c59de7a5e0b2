package optin

import "context"

//go:generate mockery --name UseCase
type UseCase interface {
	// OptIn subscribes a phone number from the web form.
	OptIn(ctx context.Context, input OptInInput) (OptInOutput, error)
	// HandleKeyword processes an inbound SMS (START, STOP or anything else).
	HandleKeyword(ctx context.Context, input KeywordInput) (KeywordOutput, error)
	// ValidTypes lists the accepted missionary types.
	ValidTypes() []string
}
