package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	appctx "faktura/internal/core/context"
)

func observedLogger() (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.InfoLevel)
	return &Logger{zap.New(core).Sugar()}, logs
}

func fieldMap(logs *observer.ObservedLogs) map[string]any {
	entries := logs.All()
	return entries[len(entries)-1].ContextMap()
}

func TestNew_AppliesComponentAndBadLevelFallsBack(t *testing.T) {
	log, err := New(Config{Level: "nonsense", Component: "server"})
	require.NoError(t, err)
	require.NotNil(t, log)

	log, err = New(Config{Level: "debug", Development: true})
	require.NoError(t, err)
	require.NotNil(t, log)
}

func TestWithComponent_TagsEveryLine(t *testing.T) {
	log, logs := observedLogger()

	log.WithComponent("relay").Infow("message")

	fields := fieldMap(logs)
	assert.Equal(t, "relay", fields["component"])
}

func TestWithContext_AddsTraceAndUserFields(t *testing.T) {
	log, logs := observedLogger()

	ctx := appctx.WithTrace(context.Background(), &appctx.TraceContext{
		TraceID:   "trace-1",
		RequestID: "req-1",
	})
	ctx = appctx.WithUser(ctx, &appctx.UserContext{UserID: "user-1"})

	log.WithContext(ctx).Infow("message")

	fields := fieldMap(logs)
	assert.Equal(t, "trace-1", fields["trace_id"])
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "user-1", fields["user_id"])
	assert.NotContains(t, fields, "admin")
}

func TestWithContext_MarksAdminRequests(t *testing.T) {
	log, logs := observedLogger()

	ctx := appctx.WithUser(context.Background(), &appctx.UserContext{
		UserID:  "admin-1",
		IsAdmin: true,
	})

	log.WithContext(ctx).Infow("message")

	fields := fieldMap(logs)
	assert.Equal(t, "admin-1", fields["user_id"])
	assert.Equal(t, true, fields["admin"])
}

func TestWithContext_NoContextAddsNothing(t *testing.T) {
	log, logs := observedLogger()

	log.WithContext(context.Background()).Infow("message")

	require.Len(t, logs.All(), 1)
	assert.Empty(t, logs.All()[0].Context)
}
