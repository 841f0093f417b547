package server

import (
	"log/slog"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	authv1 "quickswap/backend/api/auth/v1"
	devv1 "quickswap/backend/api/dev/v1"
	"quickswap/backend/internal/devotp"
	devotphandler "quickswap/backend/internal/devotp/handler"
	healthhandler "quickswap/backend/internal/health/handler"
	identityhandler "quickswap/backend/internal/identity/handler"
	"quickswap/backend/internal/server/interceptors"
)

// Deps holds service dependencies for gRPC handlers.
type Deps struct {
	// Auth backs AuthService. If nil, auth RPCs return Unavailable.
	Auth identityhandler.Authenticator
	// HealthChecks are pinged by the health service; any failure reports NOT_SERVING.
	HealthChecks map[string]healthhandler.Pinger
	// DevOTPStore backs the dev-only DevService. If nil, DevService is not registered.
	// Set only when OTP_RETURN_TO_CLIENT is enabled outside production.
	DevOTPStore devotp.Store
	Logger      *slog.Logger
}

// RegisterServices registers the gRPC services with s.
//
//   - AuthService   → internal/identity/handler
//   - Health        → internal/health/handler
//   - DevService    → internal/devotp/handler (only with DevOTPStore)
func RegisterServices(s grpc.ServiceRegistrar, deps Deps) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	authv1.RegisterAuthServiceServer(s, identityhandler.NewAuthServer(deps.Auth, logger))

	services := []string{authv1.ServiceName}
	if deps.DevOTPStore != nil {
		devv1.RegisterDevServiceServer(s, devotphandler.NewServer(deps.DevOTPStore))
		services = append(services, devv1.ServiceName)
	}
	healthpb.RegisterHealthServer(s, healthhandler.NewServer(deps.HealthChecks, services, logger))
}

// NewGRPCServer returns a server with tracing, request logging and all services registered.
// Health checks are not request-logged.
func NewGRPCServer(deps Deps, opts ...grpc.ServerOption) *grpc.Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	skip := map[string]bool{
		healthpb.Health_Check_FullMethodName: true,
		healthpb.Health_Watch_FullMethodName: true,
	}
	base := []grpc.ServerOption{
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(interceptors.LoggingUnary(logger, skip)),
	}
	s := grpc.NewServer(append(base, opts...)...)
	RegisterServices(s, deps)
	return s
}
