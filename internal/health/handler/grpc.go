// Package handler implements the standard gRPC health protocol for the auth server.
package handler

import (
	"context"
	"log/slog"

	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// Pinger is a dependency whose reachability decides readiness (credential store, OTP registry).
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// Server answers Check for the empty service name and for every name in services.
// Watch and List fall through to the embedded Unimplemented server.
type Server struct {
	healthpb.UnimplementedHealthServer
	checks   map[string]Pinger
	services map[string]struct{}
	logger   *slog.Logger
}

// NewServer returns a health server. checks maps a dependency name to its Pinger; nil
// Pingers are skipped. services lists the gRPC service names this server reports on.
func NewServer(checks map[string]Pinger, services []string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	known := make(map[string]struct{}, len(services))
	for _, s := range services {
		known[s] = struct{}{}
	}
	return &Server{checks: checks, services: known, logger: logger}
}

// Check returns SERVING when every dependency answers its ping, otherwise NOT_SERVING.
// Dependency failures never surface as gRPC errors.
func (s *Server) Check(ctx context.Context, req *healthpb.HealthCheckRequest) (*healthpb.HealthCheckResponse, error) {
	if name := req.GetService(); name != "" {
		if _, ok := s.services[name]; !ok {
			return nil, status.Error(codes.NotFound, "unknown service")
		}
	}
	for name, p := range s.checks {
		if p == nil {
			continue
		}
		if err := p.Ping(ctx); err != nil {
			s.logger.WarnContext(ctx, "health check failed", "dependency", name, "error", err)
			return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_NOT_SERVING}, nil
		}
	}
	return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING}, nil
}
