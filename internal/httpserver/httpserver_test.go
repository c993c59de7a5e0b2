package httpserver_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appointmentUsecase "dinner-scheduler/internal/appointment/usecase"
	"dinner-scheduler/internal/httpserver"
	"dinner-scheduler/internal/ingestion"
	"dinner-scheduler/internal/middleware"
	"dinner-scheduler/internal/model"
	"dinner-scheduler/internal/provider"
	"dinner-scheduler/internal/session"
	"dinner-scheduler/pkg/log"
)

type nopIngestion struct{}

func (nopIngestion) ProcessSince(ctx context.Context, _ ingestion.ProcessSinceInput) (ingestion.ProcessOutput, error) {
	return ingestion.ProcessOutput{}, nil
}

func (nopIngestion) ProcessCheckpoint(ctx context.Context) (ingestion.CheckpointOutput, error) {
	return ingestion.CheckpointOutput{}, nil
}

func (nopIngestion) ProcessCreated(ctx context.Context, _ ingestion.CreatedInput) (ingestion.CreatedOutput, error) {
	return ingestion.CreatedOutput{}, nil
}

func (nopIngestion) ProcessCancellation(ctx context.Context, _ ingestion.CancellationInput) (ingestion.CancellationOutput, error) {
	return ingestion.CancellationOutput{}, nil
}

func (nopIngestion) Checkpoint() time.Time { return time.Time{} }

func TestNew_Validation(t *testing.T) {
	_, err := httpserver.New(log.NewNop(), httpserver.Config{Mode: gin.TestMode, Port: 8080})
	assert.Error(t, err, "ingestion use case is required")

	_, err = httpserver.New(log.NewNop(), httpserver.Config{Mode: gin.TestMode, IngestionUC: nopIngestion{}})
	assert.Error(t, err, "port is required")
}

func TestRoutes(t *testing.T) {
	srv, err := httpserver.New(log.NewNop(), httpserver.Config{
		Port:        8080,
		Mode:        gin.TestMode,
		Environment: "development",
		Middleware:  middleware.New(log.NewNop(), middleware.Config{CronSecret: "c"}),
		IngestionUC: nopIngestion{},
	})
	require.NoError(t, err)

	tests := []struct {
		method string
		path   string
		auth   string
		want   int
	}{
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/ready", "", http.StatusOK},
		{http.MethodGet, "/live", "", http.StatusOK},
		{http.MethodGet, "/api/cron", "Bearer c", http.StatusOK},
		{http.MethodGet, "/api/cron", "", http.StatusUnauthorized},
		// Optional domains are not mounted without their use cases.
		{http.MethodPost, "/webhooks/calendly", "", http.StatusNotFound},
		{http.MethodPost, "/api/missionary/verify", "", http.StatusNotFound},
		{http.MethodPost, "/api/sms/opt-in", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			w := httptest.NewRecorder()
			srv.Handler().ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
			assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))
		})
	}
}

type emptySource struct{}

func (emptySource) ListEvents(ctx context.Context, _ provider.ListEventsOptions) ([]model.Event, error) {
	return nil, nil
}

func (emptySource) ListAttendees(ctx context.Context, _ string) ([]model.Attendee, error) {
	return nil, nil
}

func newVerifyServer(t *testing.T, trusted []string) *httpserver.HTTPServer {
	t.Helper()
	sessions := session.NewStore(time.Hour, 10)
	appointmentUC, err := appointmentUsecase.New(log.NewNop(), emptySource{}, sessions, "dinner123")
	require.NoError(t, err)

	srv, err := httpserver.New(log.NewNop(), httpserver.Config{
		Port:           8080,
		Mode:           gin.TestMode,
		TrustedProxies: trusted,
		Middleware: middleware.New(log.NewNop(), middleware.Config{
			Sessions:        sessions,
			RateLimitPerMin: 20, // burst 2
		}),
		IngestionUC:   nopIngestion{},
		AppointmentUC: appointmentUC,
	})
	require.NoError(t, err)
	return srv
}

func verify(srv *httpserver.HTTPServer, remote, xff string) int {
	req := httptest.NewRequest(http.MethodPost, "/api/missionary/verify", strings.NewReader(`{"password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = remote
	if xff != "" {
		req.Header.Set("X-Forwarded-For", xff)
	}
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w.Code
}

func TestRateLimit_IgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	srv := newVerifyServer(t, nil)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		codes = append(codes, verify(srv, "198.51.100.7:4000", fmt.Sprintf("203.0.113.%d", i+1)))
	}
	assert.NotEqual(t, http.StatusTooManyRequests, codes[0])
	assert.NotEqual(t, http.StatusTooManyRequests, codes[1])
	assert.Equal(t, http.StatusTooManyRequests, codes[2], "rotating X-Forwarded-For must not reset the limit")
}

func TestRateLimit_TrustedProxyForwardsClientIP(t *testing.T) {
	srv := newVerifyServer(t, []string{"10.0.0.1"})

	for i := 0; i < 2; i++ {
		assert.NotEqual(t, http.StatusTooManyRequests, verify(srv, "10.0.0.1:4000", "203.0.113.1"))
	}
	assert.Equal(t, http.StatusTooManyRequests, verify(srv, "10.0.0.1:4000", "203.0.113.1"))
	assert.NotEqual(t, http.StatusTooManyRequests, verify(srv, "10.0.0.1:4000", "203.0.113.2"),
		"each forwarded client has its own bucket")
}

func TestNew_InvalidTrustedProxies(t *testing.T) {
	_, err := httpserver.New(log.NewNop(), httpserver.Config{
		Port:           8080,
		Mode:           gin.TestMode,
		TrustedProxies: []string{"not-an-ip"},
		IngestionUC:    nopIngestion{},
	})
	assert.Error(t, err)
}
