package otel

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	otellog "go.opentelemetry.io/otel/log"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

// recordCapture stores every Record passed to Emit.
type recordCapture struct {
	recs []otellog.Record
}

func (r *recordCapture) Emit(ctx context.Context, rec otellog.Record) {
	r.recs = append(r.recs, rec)
}

func attrsOf(rec otellog.Record) map[string]otellog.Value {
	out := make(map[string]otellog.Value)
	rec.WalkAttributes(func(kv otellog.KeyValue) bool {
		out[kv.Key] = kv.Value
		return true
	})
	return out
}

func TestNewSlogHandler_NilProvider(t *testing.T) {
	assert.Nil(t, NewSlogHandler(nil, slog.LevelInfo))
}

func TestNewSlogHandler_Provider(t *testing.T) {
	provider := sdklog.NewLoggerProvider()
	defer func() { _ = provider.Shutdown(context.Background()) }()

	h := NewSlogHandler(provider, nil)
	require.NotNil(t, h)
	assert.NoError(t, slog.New(h).Handler().Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "hi", 0)))
}

func TestSlogHandler_BodySeverityAndAttrs(t *testing.T) {
	capture := &recordCapture{}
	logger := slog.New(NewSlogHandlerWithLogger(capture, slog.LevelDebug))

	logger.Warn("otp notification failed", "email", "a@x.io", "attempt", 2, "retry", true, "elapsed", 1500*time.Millisecond)

	require.Len(t, capture.recs, 1)
	rec := capture.recs[0]
	assert.Equal(t, "otp notification failed", rec.Body().AsString())
	assert.Equal(t, otellog.SeverityWarn, rec.Severity())
	assert.Equal(t, "WARN", rec.SeverityText())
	assert.False(t, rec.Timestamp().IsZero())

	attrs := attrsOf(rec)
	assert.Equal(t, "a@x.io", attrs["email"].AsString())
	assert.Equal(t, int64(2), attrs["attempt"].AsInt64())
	assert.True(t, attrs["retry"].AsBool())
	assert.Equal(t, int64(1500), attrs["elapsed"].AsInt64())
}

func TestSlogHandler_LevelFilter(t *testing.T) {
	capture := &recordCapture{}
	logger := slog.New(NewSlogHandlerWithLogger(capture, slog.LevelWarn))

	logger.Info("dropped")
	logger.Error("kept")

	require.Len(t, capture.recs, 1)
	assert.Equal(t, "kept", capture.recs[0].Body().AsString())
	assert.Equal(t, otellog.SeverityError, capture.recs[0].Severity())
}

func TestSlogHandler_GroupsAndWithAttrs(t *testing.T) {
	capture := &recordCapture{}
	logger := slog.New(NewSlogHandlerWithLogger(capture, slog.LevelInfo)).
		With("service", "quickswap-auth").
		WithGroup("rpc").
		With("method", "/quickswap.auth.v1.AuthService/Login")

	logger.Info("request", slog.Group("peer", "ip", "10.0.0.1"), "code", "OK")

	require.Len(t, capture.recs, 1)
	attrs := attrsOf(capture.recs[0])
	assert.Equal(t, "quickswap-auth", attrs["service"].AsString())
	assert.Equal(t, "/quickswap.auth.v1.AuthService/Login", attrs["rpc.method"].AsString())
	assert.Equal(t, "10.0.0.1", attrs["rpc.peer.ip"].AsString())
	assert.Equal(t, "OK", attrs["rpc.code"].AsString())
}

func TestSlogHandler_WithAttrsDoesNotLeak(t *testing.T) {
	capture := &recordCapture{}
	base := slog.New(NewSlogHandlerWithLogger(capture, slog.LevelInfo))
	_ = base.With("request_id", "r1")

	base.Info("plain")

	require.Len(t, capture.recs, 1)
	_, ok := attrsOf(capture.recs[0])["request_id"]
	assert.False(t, ok)
}
