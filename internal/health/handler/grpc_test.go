package handler

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"quickswap/backend/internal/logging"
)

type mockPinger struct {
	pingErr error
	calls   int
}

func (m *mockPinger) Ping(context.Context) error {
	m.calls++
	return m.pingErr
}

func TestCheck_NoDependencies(t *testing.T) {
	srv := NewServer(nil, nil, logging.Discard())
	resp, err := srv.Check(context.Background(), &healthpb.HealthCheckRequest{})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		t.Errorf("status = %v, want SERVING", resp.GetStatus())
	}
}

func TestCheck_AllHealthy(t *testing.T) {
	store, otps := &mockPinger{}, &mockPinger{}
	srv := NewServer(map[string]Pinger{"store": store, "otp": otps}, nil, logging.Discard())
	resp, err := srv.Check(context.Background(), &healthpb.HealthCheckRequest{})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		t.Errorf("status = %v, want SERVING", resp.GetStatus())
	}
	if store.calls != 1 || otps.calls != 1 {
		t.Errorf("calls = %d/%d, want 1/1", store.calls, otps.calls)
	}
}

func TestCheck_DependencyFailure(t *testing.T) {
	srv := NewServer(map[string]Pinger{
		"store": &mockPinger{pingErr: errors.New("connection refused")},
		"otp":   nil,
	}, nil, logging.Discard())
	resp, err := srv.Check(context.Background(), &healthpb.HealthCheckRequest{})
	if err != nil {
		t.Fatalf("Check must not return gRPC error on ping failure: %v", err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Errorf("status = %v, want NOT_SERVING", resp.GetStatus())
	}
}

func TestCheck_NamedService(t *testing.T) {
	srv := NewServer(map[string]Pinger{"store": PingFunc(func(context.Context) error { return nil })},
		[]string{"quickswap.auth.v1.AuthService"}, logging.Discard())

	resp, err := srv.Check(context.Background(), &healthpb.HealthCheckRequest{Service: "quickswap.auth.v1.AuthService"})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		t.Errorf("status = %v, want SERVING", resp.GetStatus())
	}

	_, err = srv.Check(context.Background(), &healthpb.HealthCheckRequest{Service: "other.Service"})
	if status.Code(err) != codes.NotFound {
		t.Errorf("unknown service code = %v, want NotFound", status.Code(err))
	}
}
