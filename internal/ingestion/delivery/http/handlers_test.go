package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dinner-scheduler/internal/ingestion"
	ingestionHTTP "dinner-scheduler/internal/ingestion/delivery/http"
	"dinner-scheduler/internal/middleware"
	"dinner-scheduler/internal/model"
	"dinner-scheduler/pkg/log"
)

type fakeUC struct {
	sinceInput ingestion.ProcessSinceInput
	sinceOut   ingestion.ProcessOutput
	sinceErr   error
	checkOut   ingestion.CheckpointOutput
	checkCalls int
}

func (f *fakeUC) ProcessSince(ctx context.Context, in ingestion.ProcessSinceInput) (ingestion.ProcessOutput, error) {
	f.sinceInput = in
	return f.sinceOut, f.sinceErr
}

func (f *fakeUC) ProcessCheckpoint(ctx context.Context) (ingestion.CheckpointOutput, error) {
	f.checkCalls++
	return f.checkOut, nil
}

func (f *fakeUC) ProcessCreated(ctx context.Context, _ ingestion.CreatedInput) (ingestion.CreatedOutput, error) {
	return ingestion.CreatedOutput{}, nil
}

func (f *fakeUC) ProcessCancellation(ctx context.Context, _ ingestion.CancellationInput) (ingestion.CancellationOutput, error) {
	return ingestion.CancellationOutput{}, nil
}

func (f *fakeUC) Checkpoint() time.Time { return time.Time{} }

type envelope struct {
	ErrorCode int             `json:"error_code"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
}

func newRouter(uc ingestion.UseCase, cfg middleware.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	mw := middleware.New(log.NewNop(), cfg)
	h := ingestionHTTP.New(log.NewNop(), uc, 5*time.Minute)
	ingestionHTTP.RegisterRoutes(r.Group("/api"), h, mw)
	return r
}

func do(r http.Handler, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCron(t *testing.T) {
	t.Run("requires the cron secret", func(t *testing.T) {
		uc := &fakeUC{}
		r := newRouter(uc, middleware.Config{CronSecret: "s3cret"})

		w := do(r, "/api/cron", "wrong")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.True(t, uc.sinceInput.Since.IsZero(), "use case must not run")
	})

	t.Run("unconfigured secret is a server error", func(t *testing.T) {
		r := newRouter(&fakeUC{}, middleware.Config{})
		w := do(r, "/api/cron", "anything")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("runs with a lookback of one interval", func(t *testing.T) {
		uc := &fakeUC{sinceOut: ingestion.ProcessOutput{
			ProcessedCount: 1,
			Events:         []model.NotificationRecord{{EventID: "evt_1", InviteeName: "Jane"}},
			TotalTracked:   1,
		}}
		r := newRouter(uc, middleware.Config{CronSecret: "s3cret"})

		before := time.Now()
		w := do(r, "/api/cron", "s3cret")
		require.Equal(t, http.StatusOK, w.Code)

		lookback := before.Sub(uc.sinceInput.Since)
		assert.InDelta(t, (5 * time.Minute).Seconds(), lookback.Seconds(), 1)

		var env envelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		var data struct {
			Success bool `json:"success"`
			Result  struct {
				Processed int `json:"processed"`
				Events    []struct {
					EventID string `json:"eventId"`
				} `json:"events"`
			} `json:"result"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.True(t, data.Success)
		assert.Equal(t, 1, data.Result.Processed)
		require.Len(t, data.Result.Events, 1)
		assert.Equal(t, "evt_1", data.Result.Events[0].EventID)
	})

	t.Run("provider failure still answers 200", func(t *testing.T) {
		uc := &fakeUC{
			sinceOut: ingestion.ProcessOutput{Events: []model.NotificationRecord{}, Error: "event provider unavailable"},
			sinceErr: errors.New("event provider unavailable"),
		}
		r := newRouter(uc, middleware.Config{CronSecret: "s3cret"})

		w := do(r, "/api/cron", "s3cret")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"success":false`)
	})
}

func TestCheckAppointments(t *testing.T) {
	checked := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	uc := &fakeUC{checkOut: ingestion.CheckpointOutput{
		Result:    ingestion.ProcessOutput{Events: []model.NotificationRecord{}},
		CheckedAt: checked,
	}}
	r := newRouter(uc, middleware.Config{APISecretKey: "key"})

	w := do(r, "/api/check-appointments", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 0, uc.checkCalls)

	w = do(r, "/api/check-appointments", "key")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, uc.checkCalls)
	assert.Contains(t, w.Body.String(), `"lastCheckTime":"2026-10-18T12:00:00Z"`)
}
