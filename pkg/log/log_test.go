package log_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"dinner-scheduler/pkg/log"
)

func TestZapLoggerRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := log.NewZapLogger(zap.New(core))

	ctx := log.WithRequestID(context.Background(), "req-123")
	l.Infof(ctx, "ingestion: processed %d events", 2)
	l.Warn(context.Background(), "no request id")

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, "ingestion: processed 2 events", entries[0].Message)
	assert.Equal(t, "req-123", entries[0].ContextMap()[log.FieldRequestID])

	_, ok := entries[1].ContextMap()[log.FieldRequestID]
	assert.False(t, ok)
}

func TestInit(t *testing.T) {
	t.Run("production json", func(t *testing.T) {
		l := log.Init(log.ZapConfig{Level: "info", Mode: "production", Encoding: "json"})
		assert.NotNil(t, l)
	})

	t.Run("bad level falls back", func(t *testing.T) {
		l := log.Init(log.ZapConfig{Level: "loud", Mode: "debug", Encoding: "console", ColorEnabled: true})
		assert.NotNil(t, l)
		l.Debug(context.Background(), "still works")
	})
}

func TestRequestIDFromContext(t *testing.T) {
	assert.Equal(t, "", log.RequestIDFromContext(context.Background()))
	assert.Equal(t, "abc", log.RequestIDFromContext(log.WithRequestID(context.Background(), "abc")))
}
