package usecase

import (
	"context"
	"crypto/subtle"

	"dinner-scheduler/internal/appointment"
)

func (uc *implUseCase) Verify(ctx context.Context, input appointment.VerifyInput) (appointment.VerifyOutput, error) {
	if uc.accessCode == "" {
		uc.l.Errorf(ctx, "appointment.Verify: missionary access code is not configured")
		return appointment.VerifyOutput{}, appointment.ErrAccessCodeMissing
	}
	if subtle.ConstantTimeCompare([]byte(input.Password), []byte(uc.accessCode)) != 1 {
		uc.l.Warnf(ctx, "appointment.Verify: access code rejected")
		return appointment.VerifyOutput{}, appointment.ErrInvalidPassword
	}

	token, err := uc.sessions.Issue()
	if err != nil {
		uc.l.Errorf(ctx, "appointment.Verify: %v", err)
		return appointment.VerifyOutput{}, err
	}
	return appointment.VerifyOutput{SessionToken: token, ExpiresIn: uc.sessions.TTL()}, nil
}

func (uc *implUseCase) Logout(ctx context.Context, token string) {
	uc.sessions.Revoke(token)
}

func (uc *implUseCase) HasAccessCode() bool {
	return uc.accessCode != ""
}
