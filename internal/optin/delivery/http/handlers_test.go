package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dinner-scheduler/internal/middleware"
	"dinner-scheduler/internal/notification"
	"dinner-scheduler/internal/optin"
	optinHTTP "dinner-scheduler/internal/optin/delivery/http"
	"dinner-scheduler/internal/optin/usecase"
	"dinner-scheduler/internal/recipient"
	"dinner-scheduler/pkg/log"
	"dinner-scheduler/pkg/twilio"
)

type nopSender struct{ sent int }

func (s *nopSender) Send(ctx context.Context, to, body string) (string, error) {
	s.sent++
	return "SM1", nil
}

func setup(t *testing.T, cfg optinHTTP.Config) (*gin.Engine, *recipient.Directory, *nopSender) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, optinHTTP.RegisterBindings())

	dir := recipient.NewDirectory("+15551230001:Elders:true")
	sender := &nopSender{}
	uc, err := usecase.New(log.NewNop(), dir, nil, sender, nil)
	require.NoError(t, err)

	r := gin.New()
	mw := middleware.New(log.NewNop(), middleware.Config{RateLimitPerMin: 600})
	optinHTTP.RegisterRoutes(r.Group("/api"), optinHTTP.New(log.NewNop(), uc, cfg), mw)
	return r, dir, sender
}

func postJSON(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestOptIn(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		r, dir, sender := setup(t, optinHTTP.Config{})
		w := postJSON(r, "/api/sms/opt-in", `{"phoneNumber":"+15559876543","type":"Sisters"}`)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), `"success":true`)
		assert.Contains(t, dir.OptedIn(), "+15559876543")
		assert.Equal(t, 1, sender.sent)
	})

	t.Run("bad phone", func(t *testing.T) {
		r, dir, _ := setup(t, optinHTTP.Config{})
		w := postJSON(r, "/api/sms/opt-in", `{"phoneNumber":"555-987-6543","type":"Sisters"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), optin.ErrInvalidPhone.Error())
		assert.Len(t, dir.Recipients(), 1)
	})

	t.Run("bad type", func(t *testing.T) {
		r, _, _ := setup(t, optinHTTP.Config{})
		w := postJSON(r, "/api/sms/opt-in", `{"phoneNumber":"+15559876543","type":"Zone Leaders"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), optin.ErrInvalidType.Error())
	})
}

func postForm(r http.Handler, path string, form url.Values, sig string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if sig != "" {
		req.Header.Set(twilio.HeaderSignature, sig)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestInboundSMS(t *testing.T) {
	t.Run("stop replies with TwiML", func(t *testing.T) {
		r, dir, _ := setup(t, optinHTTP.Config{})
		w := postForm(r, "/api/sms", url.Values{"From": {"+15551230001"}, "Body": {"STOP"}}, "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/xml")
		assert.Contains(t, w.Body.String(), "<Response><Message>"+notification.SMSOptOutReplyText+"</Message></Response>")
		assert.Empty(t, dir.OptedIn())
	})

	t.Run("legacy path behaves the same", func(t *testing.T) {
		r, dir, _ := setup(t, optinHTTP.Config{})
		w := postForm(r, "/api/webhooks/twilio", url.Values{"From": {"+15551230002"}, "Body": {"start"}}, "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, dir.OptedIn(), "+15551230002")
	})

	t.Run("signature enforced when configured", func(t *testing.T) {
		cfg := optinHTTP.Config{TwilioAuthToken: "tok", PublicURL: "https://dinner.example.com"}
		r, dir, _ := setup(t, cfg)
		form := url.Values{"From": {"+15551230001"}, "Body": {"STOP"}}

		w := postForm(r, "/api/sms", form, "bogus")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, []string{"+15551230001"}, dir.OptedIn())

		sig := twilio.Signature("tok", "https://dinner.example.com/api/sms", form)
		w = postForm(r, "/api/sms", form, sig)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, dir.OptedIn())
	})
}
