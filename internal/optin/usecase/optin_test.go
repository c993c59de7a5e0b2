package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dinner-scheduler/internal/consent"
	"dinner-scheduler/internal/notification"
	"dinner-scheduler/internal/optin"
	"dinner-scheduler/internal/optin/usecase"
	"dinner-scheduler/internal/recipient"
	"dinner-scheduler/pkg/log"
)

type fakeConsent struct {
	mu      sync.Mutex
	records []consent.AppendInput
	err     error
}

func (f *fakeConsent) Append(ctx context.Context, in consent.AppendInput) (consent.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return consent.Record{}, f.err
	}
	f.records = append(f.records, in)
	return consent.Record{PhoneNumber: in.PhoneNumber}, nil
}

func (f *fakeConsent) History(ctx context.Context, phone string) ([]consent.Record, error) {
	return nil, nil
}

func (f *fakeConsent) Close() error { return nil }

type fakeSender struct {
	mu   sync.Mutex
	sent map[string]string
	err  error
}

func (f *fakeSender) Send(ctx context.Context, to, body string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	if f.sent == nil {
		f.sent = map[string]string{}
	}
	f.sent[to] = body
	return "SM1", nil
}

func newUC(t *testing.T, dir *recipient.Directory, c consent.Repository, s notification.Sender) optin.UseCase {
	t.Helper()
	uc, err := usecase.New(log.NewNop(), dir, c, s, nil)
	require.NoError(t, err)
	return uc
}

func TestOptIn(t *testing.T) {
	t.Run("adds the number, logs consent and confirms", func(t *testing.T) {
		dir := recipient.NewDirectory("+15550000001:Sisters:true")
		c := &fakeConsent{}
		s := &fakeSender{}
		uc := newUC(t, dir, c, s)

		out, err := uc.OptIn(context.Background(), optin.OptInInput{
			PhoneNumber: "+15551230001",
			Type:        "Elders",
			IPAddress:   "203.0.113.7",
		})
		require.NoError(t, err)
		assert.True(t, out.ConfirmationSent)
		assert.True(t, out.Recipient.OptedIn)

		assert.Equal(t, []string{"+15550000001", "+15551230001"}, dir.OptedIn())

		require.Len(t, c.records, 1)
		assert.Equal(t, consent.MethodWebForm, c.records[0].Method)
		assert.Equal(t, consent.StatusOptedIn, c.records[0].Status)
		assert.Equal(t, "203.0.113.7", c.records[0].IPAddress)
		assert.Equal(t, "Elders", c.records[0].MissionaryType)

		assert.Equal(t, notification.OptInConfirmationText, s.sent["+15551230001"])
	})

	t.Run("rejects malformed phone numbers", func(t *testing.T) {
		dir := recipient.NewDirectory("")
		uc := newUC(t, dir, nil, nil)

		for _, phone := range []string{"", "5551230001", "+4412345678901", "+1555123000", "+1555123000a"} {
			_, err := uc.OptIn(context.Background(), optin.OptInInput{PhoneNumber: phone, Type: "Elders"})
			assert.ErrorIs(t, err, optin.ErrInvalidPhone, phone)
		}
		assert.Empty(t, dir.Recipients())
	})

	t.Run("rejects unknown types", func(t *testing.T) {
		dir := recipient.NewDirectory("")
		uc := newUC(t, dir, nil, nil)

		_, err := uc.OptIn(context.Background(), optin.OptInInput{PhoneNumber: "+15551230001", Type: "Bishop"})
		assert.ErrorIs(t, err, optin.ErrInvalidType)
		assert.Empty(t, dir.Recipients())
	})

	t.Run("confirmation and consent failures do not fail the opt-in", func(t *testing.T) {
		dir := recipient.NewDirectory("")
		c := &fakeConsent{err: errors.New("disk full")}
		s := &fakeSender{err: errors.New("twilio down")}
		uc := newUC(t, dir, c, s)

		out, err := uc.OptIn(context.Background(), optin.OptInInput{PhoneNumber: "+15551230001", Type: "Sisters"})
		require.NoError(t, err)
		assert.False(t, out.ConfirmationSent)
		assert.Equal(t, []string{"+15551230001"}, dir.OptedIn())
	})
}

func TestHandleKeyword(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantReply   string
		wantChanged bool
		wantOptedIn []string
	}{
		{"stop opts out", "STOP", notification.SMSOptOutReplyText, true, []string{}},
		{"start opts in", "  Start ", notification.SMSOptInReplyText, true, []string{"+15551230001"}},
		{"anything else gets help", "when is dinner?", notification.SMSHelpText, false, []string{"+15551230001"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := recipient.NewDirectory("+15551230001:Elders:true")
			c := &fakeConsent{}
			uc := newUC(t, dir, c, nil)

			out, err := uc.HandleKeyword(context.Background(), optin.KeywordInput{From: "+15551230001", Body: tt.body})
			require.NoError(t, err)
			assert.Equal(t, tt.wantReply, out.Reply)
			assert.Equal(t, tt.wantChanged, out.Changed)

			got := dir.OptedIn()
			if got == nil {
				got = []string{}
			}
			assert.Equal(t, tt.wantOptedIn, got)

			if tt.wantChanged {
				require.Len(t, c.records, 1)
				assert.Equal(t, consent.MethodSMS, c.records[0].Method)
				assert.Equal(t, consent.UnknownType, c.records[0].MissionaryType)
			} else {
				assert.Empty(t, c.records)
			}
		})
	}

	t.Run("stop keeps the category", func(t *testing.T) {
		dir := recipient.NewDirectory("+15551230001:Elders:true")
		uc := newUC(t, dir, nil, nil)

		_, err := uc.HandleKeyword(context.Background(), optin.KeywordInput{From: "+15551230001", Body: "stop"})
		require.NoError(t, err)

		r, ok := dir.Lookup("+15551230001")
		require.True(t, ok)
		assert.Equal(t, "Elders", r.Category)
		assert.False(t, r.OptedIn)
	})

	t.Run("missing sender fails", func(t *testing.T) {
		uc := newUC(t, recipient.NewDirectory(""), nil, nil)
		_, err := uc.HandleKeyword(context.Background(), optin.KeywordInput{Body: "start"})
		assert.ErrorIs(t, err, optin.ErrUpdateFailed)
	})
}
