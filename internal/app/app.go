// Package app builds the auth server's dependencies from Config. It is shared by
// cmd/server and cmd/seed.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"quickswap/backend/internal/account/repository"
	"quickswap/backend/internal/config"
	"quickswap/backend/internal/db"
	"quickswap/backend/internal/devotp"
	"quickswap/backend/internal/notify"
	"quickswap/backend/internal/otp"
	"quickswap/backend/internal/security"
)

// CloseFunc releases a resource opened by this package.
type CloseFunc func() error

func noClose() error { return nil }

// OpenStore opens the credential store selected by cfg.StoreDriver.
func OpenStore(ctx context.Context, cfg *config.Config) (repository.Repository, CloseFunc, error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		pool, err := db.Open(ctx, cfg.DatabaseURL, db.DefaultConnectRetries)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewPostgresRepository(pool), func() error { pool.Close(); return nil }, nil
	case config.StoreSQLite:
		repo, err := repository.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	case config.StoreMemory, "":
		return repository.NewMemoryRepository(), noClose, nil
	default:
		return nil, nil, fmt.Errorf("app: unknown store driver %q", cfg.StoreDriver)
	}
}

// NewHasher returns the configured password hasher.
func NewHasher(cfg *config.Config) (security.PasswordHasher, error) {
	return security.NewPasswordHasher(cfg.PasswordHasher, cfg.BcryptCost)
}

// Registry is an OTP registry together with its health probe.
type Registry struct {
	otp.Registry
	Ping  func(ctx context.Context) error
	Close CloseFunc
}

// OpenOTPRegistry builds the registry selected by cfg.OTPStore and wraps it with metrics
// recorded on mp. A nil mp disables metrics.
func OpenOTPRegistry(ctx context.Context, cfg *config.Config, mp metric.MeterProvider) (*Registry, error) {
	if mp == nil {
		mp = noop.NewMeterProvider()
	}
	opts := []otp.Option{otp.WithTTL(cfg.OTPTTL)}

	var (
		base    otp.Registry
		ping    = func(context.Context) error { return nil }
		closeFn = noClose
	)
	switch cfg.OTPStore {
	case config.OTPStoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		rr := otp.NewRedisRegistry(client, cfg.OTPKeyPrefix, opts...)
		if err := rr.Ping(ctx); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("app: redis otp registry: %w", err)
		}
		base, ping, closeFn = rr, rr.Ping, client.Close
	case config.OTPStoreMemory, "":
		base = otp.NewMemoryRegistry(opts...)
	default:
		return nil, fmt.Errorf("app: unknown otp store %q", cfg.OTPStore)
	}

	instrumented, err := otp.NewInstrumentedRegistry(base, mp)
	if err != nil {
		_ = closeFn()
		return nil, err
	}
	return &Registry{Registry: instrumented, Ping: ping, Close: closeFn}, nil
}

// NewNotifier composes the OTP side channels. The log notifier and, when configured, the
// webhook run in the background through the returned Dispatcher, which the caller must Close.
// devStore, when non-nil, is written synchronously so the code is readable as soon as the
// RPC returns.
func NewNotifier(cfg *config.Config, devStore *devotp.MemoryStore, logger *slog.Logger) (notify.Notifier, *notify.Dispatcher) {
	chain := notify.Multi{notify.LogNotifier{Logger: logger}}
	if cfg.NotifyWebhookURL != "" {
		chain = append(chain, notify.NewWebhookNotifier(cfg.NotifyWebhookURL, cfg.NotifyWebhookToken))
	}
	dispatcher := notify.NewDispatcher(chain, logger, notify.DefaultDispatchTimeout)
	if devStore == nil {
		return dispatcher, dispatcher
	}
	return notify.Multi{devStore, dispatcher}, dispatcher
}
