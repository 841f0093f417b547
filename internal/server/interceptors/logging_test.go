package interceptors

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func logLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("bad log line %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestLoggingUnary_LogsRequest(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	interceptor := LoggingUnary(logger, nil)

	var seenID string
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		seenID, _ = GetRequestID(ctx)
		return "ok", nil
	}
	resp, err := interceptor(context.Background(), "req", &grpc.UnaryServerInfo{FullMethod: "/quickswap.auth.v1.AuthService/Login"}, handler)
	if err != nil || resp != "ok" {
		t.Fatalf("interceptor = %v, %v", resp, err)
	}
	if seenID == "" {
		t.Fatal("handler should see a request id")
	}

	lines := logLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(lines))
	}
	l := lines[0]
	if l["method"] != "/quickswap.auth.v1.AuthService/Login" || l["code"] != "OK" || l["level"] != "INFO" {
		t.Errorf("log = %v", l)
	}
	if l["request_id"] != seenID {
		t.Errorf("request_id = %v, want %q", l["request_id"], seenID)
	}
}

func TestLoggingUnary_ReusesIncomingRequestID(t *testing.T) {
	var buf bytes.Buffer
	interceptor := LoggingUnary(slog.New(slog.NewJSONHandler(&buf, nil)), nil)
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(RequestIDHeader, "abc-123"))

	var seenID string
	_, _ = interceptor(ctx, nil, &grpc.UnaryServerInfo{FullMethod: "/x/Y"}, func(ctx context.Context, req interface{}) (interface{}, error) {
		seenID, _ = GetRequestID(ctx)
		return nil, nil
	})
	if seenID != "abc-123" {
		t.Errorf("request id = %q, want abc-123", seenID)
	}
}

func TestLoggingUnary_ErrorLevels(t *testing.T) {
	tests := []struct {
		err   error
		level string
	}{
		{status.Error(codes.Unauthenticated, "invalid email or password"), "WARN"},
		{status.Error(codes.Internal, "internal error"), "ERROR"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		interceptor := LoggingUnary(slog.New(slog.NewJSONHandler(&buf, nil)), nil)
		_, err := interceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/x/Y"}, func(ctx context.Context, req interface{}) (interface{}, error) {
			return nil, tt.err
		})
		if err != tt.err {
			t.Errorf("err = %v, want passthrough", err)
		}
		lines := logLines(t, &buf)
		if len(lines) != 1 || lines[0]["level"] != tt.level {
			t.Errorf("lines = %v, want level %s", lines, tt.level)
		}
	}
}

func TestLoggingUnary_SkipMethod(t *testing.T) {
	var buf bytes.Buffer
	interceptor := LoggingUnary(slog.New(slog.NewJSONHandler(&buf, nil)), map[string]bool{"/grpc.health.v1.Health/Check": true})
	_, _ = interceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}, func(ctx context.Context, req interface{}) (interface{}, error) {
		return nil, nil
	})
	if buf.Len() != 0 {
		t.Errorf("skipped method should not log: %s", buf.String())
	}
}
