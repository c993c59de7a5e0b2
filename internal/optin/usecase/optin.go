package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"dinner-scheduler/internal/consent"
	"dinner-scheduler/internal/notification"
	"dinner-scheduler/internal/optin"
)

func (uc *implUseCase) OptIn(ctx context.Context, input optin.OptInInput) (optin.OptInOutput, error) {
	phone := strings.TrimSpace(input.PhoneNumber)
	if err := uc.validate.Var(phone, "required,"+optin.PhoneTag); err != nil {
		return optin.OptInOutput{}, optin.ErrInvalidPhone
	}
	if !slices.Contains(uc.validTypes, input.Type) {
		return optin.OptInOutput{}, optin.ErrInvalidType
	}

	r, err := uc.directory.SetOptIn(phone, input.Type, true)
	if err != nil {
		uc.l.Errorf(ctx, "optin.usecase.OptIn: directory.SetOptIn: %v", err)
		return optin.OptInOutput{}, fmt.Errorf("%w: %v", optin.ErrUpdateFailed, err)
	}

	uc.logConsent(ctx, consent.AppendInput{
		PhoneNumber:    phone,
		MissionaryType: input.Type,
		IPAddress:      input.IPAddress,
		Method:         consent.MethodWebForm,
		Status:         consent.StatusOptedIn,
	})

	out := optin.OptInOutput{Recipient: r}
	if uc.sender != nil {
		if _, err := uc.sender.Send(ctx, phone, notification.OptInConfirmationText); err != nil {
			// The subscription stands even if the confirmation text fails.
			uc.l.Errorf(ctx, "optin.usecase.OptIn: confirmation SMS to %s: %v", phone, err)
		} else {
			out.ConfirmationSent = true
		}
	}

	uc.l.Infof(ctx, "optin.usecase.OptIn: %s opted in as %s", phone, input.Type)
	return out, nil
}

func (uc *implUseCase) HandleKeyword(ctx context.Context, input optin.KeywordInput) (optin.KeywordOutput, error) {
	keyword := strings.ToLower(strings.TrimSpace(input.Body))
	if keyword != optin.KeywordStart && keyword != optin.KeywordStop {
		return optin.KeywordOutput{Reply: notification.SMSHelpText}, nil
	}

	optedIn := keyword == optin.KeywordStart
	if _, err := uc.directory.SetOptIn(input.From, "", optedIn); err != nil {
		uc.l.Errorf(ctx, "optin.usecase.HandleKeyword: directory.SetOptIn: %v", err)
		return optin.KeywordOutput{}, fmt.Errorf("%w: %v", optin.ErrUpdateFailed, err)
	}

	status := consent.StatusOptedOut
	reply := notification.SMSOptOutReplyText
	if optedIn {
		status = consent.StatusOptedIn
		reply = notification.SMSOptInReplyText
	}
	uc.logConsent(ctx, consent.AppendInput{
		PhoneNumber:    input.From,
		MissionaryType: consent.UnknownType,
		IPAddress:      string(consent.MethodSMS),
		Method:         consent.MethodSMS,
		Status:         status,
	})

	uc.l.Infof(ctx, "optin.usecase.HandleKeyword: %s sent %s", input.From, strings.ToUpper(keyword))
	return optin.KeywordOutput{Reply: reply, Changed: true, OptedIn: optedIn}, nil
}

// logConsent never fails the caller; the opt-in change has already been applied.
func (uc *implUseCase) logConsent(ctx context.Context, input consent.AppendInput) {
	if uc.consent == nil {
		return
	}
	if _, err := uc.consent.Append(ctx, input); err != nil {
		uc.l.Errorf(ctx, "optin.usecase.logConsent: %v", err)
	}
}
