package main

import (
	"context"
	"log"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quickswap/backend/internal/app"
	"quickswap/backend/internal/config"
	"quickswap/backend/internal/devotp"
	healthhandler "quickswap/backend/internal/health/handler"
	"quickswap/backend/internal/identity/service"
	"quickswap/backend/internal/logging"
	"quickswap/backend/internal/server"
	telemetryotel "quickswap/backend/internal/telemetry/otel"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	level := logging.ParseLevel(cfg.LogLevel)
	providers, err := telemetryotel.NewProviders(ctx, telemetryotel.Config{
		Endpoint:       cfg.OTLPEndpoint,
		ServiceName:    cfg.ServiceName,
		ServiceVersion: version,
		Insecure:       cfg.OTLPInsecure,
	})
	if err != nil {
		return err
	}
	providers.SetGlobal()

	var bridge slog.Handler
	if providers.Exporting {
		bridge = telemetryotel.NewSlogHandler(providers.LoggerProvider, level)
	}
	logger := logging.SetDefault(cfg.ServiceName, version, cfg.LogFormat, level, bridge)
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := providers.Shutdown(sctx); err != nil {
			logger.Warn("telemetry shutdown", "error", err)
		}
	}()

	accounts, closeStore, err := app.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	hasher, err := app.NewHasher(cfg)
	if err != nil {
		return err
	}

	otps, err := app.OpenOTPRegistry(ctx, cfg, providers.MeterProvider)
	if err != nil {
		return err
	}
	defer func() { _ = otps.Close() }()

	var devStore *devotp.MemoryStore
	if cfg.DevOTPEnabled() {
		devStore = devotp.NewMemoryStore(cfg.OTPTTL)
		logger.Warn("dev OTP retrieval enabled; issued codes are readable over DevService")
	}
	notifier, dispatcher := app.NewNotifier(cfg, devStore, logger)

	auth := service.NewAuthService(accounts, hasher, otps, notifier, logger)

	deps := server.Deps{
		Auth: auth,
		HealthChecks: map[string]healthhandler.Pinger{
			"store": accounts,
			"otp":   healthhandler.PingFunc(otps.Ping),
		},
		Logger: logger,
	}
	if devStore != nil {
		deps.DevOTPStore = devStore
	}
	s := server.NewGRPCServer(deps)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return err
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("gRPC server listening",
			"addr", cfg.GRPCAddr,
			"store", cfg.StoreDriver,
			"otp_store", cfg.OTPStore,
			"otp_ttl", cfg.OTPTTL.String(),
		)
		serveErr <- s.Serve(lis)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down gRPC server")
	s.GracefulStop()

	dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := dispatcher.Close(dctx); err != nil {
		logger.Warn("pending notifications abandoned", "error", err)
	}
	logger.Info("gRPC server stopped")
	return nil
}
