package usecase

import (
	"github.com/go-playground/validator/v10"

	"dinner-scheduler/internal/consent"
	"dinner-scheduler/internal/model"
	"dinner-scheduler/internal/notification"
	"dinner-scheduler/internal/optin"
	pkgLog "dinner-scheduler/pkg/log"
)

// Directory is the part of the Recipient Directory the use case mutates.
type Directory interface {
	SetOptIn(phone, category string, optedIn bool) (model.Recipient, error)
}

type implUseCase struct {
	l          pkgLog.Logger
	directory  Directory
	consent    consent.Repository
	sender     notification.Sender
	validate   *validator.Validate
	validTypes []string
}

// New creates the opt-in UseCase. An empty validTypes uses optin.DefaultValidTypes.
// consentRepo and sender may be nil; the corresponding steps are then skipped.
func New(
	l pkgLog.Logger,
	directory Directory,
	consentRepo consent.Repository,
	sender notification.Sender,
	validTypes []string,
) (optin.UseCase, error) {
	v := validator.New()
	if err := optin.RegisterValidations(v); err != nil {
		return nil, err
	}
	if len(validTypes) == 0 {
		validTypes = optin.DefaultValidTypes
	}
	return &implUseCase{
		l:          l,
		directory:  directory,
		consent:    consentRepo,
		sender:     sender,
		validate:   v,
		validTypes: validTypes,
	}, nil
}

func (uc *implUseCase) ValidTypes() []string {
	out := make([]string, len(uc.validTypes))
	copy(out, uc.validTypes)
	return out
}
