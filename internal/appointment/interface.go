package appointment

import "context"

//go:generate mockery --name UseCase
type UseCase interface {
	// Verify checks the shared access code and issues a session token.
	Verify(ctx context.Context, input VerifyInput) (VerifyOutput, error)
	// List returns upcoming appointments, earliest first.
	List(ctx context.Context, input ListInput) (ListOutput, error)
	// Hide removes an appointment from future listings.
	Hide(ctx context.Context, input HideInput) error
	// Logout revokes a session token.
	Logout(ctx context.Context, token string)
	// HasAccessCode reports whether an access code is configured.
	HasAccessCode() bool
}
