// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Store drivers.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

// OTP registry backends.
const (
	OTPStoreMemory = "memory"
	OTPStoreRedis  = "redis"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	// GRPCAddr is the address the gRPC server listens on (e.g. :8080).
	GRPCAddr string `mapstructure:"GRPC_ADDR"`
	// Env is the application environment (e.g. "development", "production").
	Env string `mapstructure:"APP_ENV"`

	// StoreDriver selects the credential store. Empty derives it: postgres when DatabaseURL is
	// set, else sqlite when SQLitePath is set, else memory.
	StoreDriver string `mapstructure:"STORE_DRIVER"`
	// DatabaseURL is the Postgres DSN.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	// SQLitePath is the SQLite database file.
	SQLitePath string `mapstructure:"SQLITE_PATH"`

	// PasswordHasher is bcrypt or argon2id.
	PasswordHasher string `mapstructure:"PASSWORD_HASHER"`
	// BcryptCost is the bcrypt cost factor (4–31); default 12.
	BcryptCost int `mapstructure:"BCRYPT_COST"`

	// OTPStore is memory or redis.
	OTPStore      string `mapstructure:"OTP_STORE"`
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`
	OTPKeyPrefix  string `mapstructure:"OTP_KEY_PREFIX"`
	// OTPTTLRaw is the raw OTP_TTL value; use OTPTTL.
	OTPTTLRaw string `mapstructure:"OTP_TTL"`
	// OTPTTL is the parsed code lifetime. Zero means codes never expire.
	OTPTTL time.Duration `mapstructure:"-"`
	// OTPReturnToClient enables the dev OTP retrieval service. Rejected when Env is production.
	OTPReturnToClient bool `mapstructure:"OTP_RETURN_TO_CLIENT"`

	// NotifyWebhookURL, when set, receives {"email","code"} for every issued code.
	NotifyWebhookURL   string `mapstructure:"NOTIFY_WEBHOOK_URL"`
	NotifyWebhookToken string `mapstructure:"NOTIFY_WEBHOOK_TOKEN"`

	// OTLPEndpoint is the collector address; empty disables export.
	OTLPEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPInsecure bool   `mapstructure:"OTEL_EXPORTER_OTLP_INSECURE"`
	ServiceName  string `mapstructure:"OTEL_SERVICE_NAME"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
}

var defaults = map[string]any{
	"GRPC_ADDR":                   ":8080",
	"APP_ENV":                     "",
	"STORE_DRIVER":                "",
	"DATABASE_URL":                "",
	"SQLITE_PATH":                 "",
	"PASSWORD_HASHER":             "bcrypt",
	"BCRYPT_COST":                 12,
	"OTP_STORE":                   OTPStoreMemory,
	"REDIS_ADDR":                  "localhost:6379",
	"REDIS_PASSWORD":              "",
	"REDIS_DB":                    0,
	"OTP_KEY_PREFIX":              "otp",
	"OTP_TTL":                     "",
	"OTP_RETURN_TO_CLIENT":        false,
	"NOTIFY_WEBHOOK_URL":          "",
	"NOTIFY_WEBHOOK_TOKEN":        "",
	"OTEL_EXPORTER_OTLP_ENDPOINT": "",
	"OTEL_EXPORTER_OTLP_INSECURE": false,
	"OTEL_SERVICE_NAME":           "quickswap-auth",
	"LOG_LEVEL":                   "info",
	"LOG_FORMAT":                  "json",
}

// Load reads .env (if present), then builds and validates Config from the environment via Viper.
// Missing .env is ignored (e.g. in CI). Env vars override .env.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() error {
	if c.GRPCAddr == "" {
		return errors.New("config: GRPC_ADDR must be set")
	}

	if c.OTPReturnToClient && c.IsProduction() {
		return errors.New("config: OTP_RETURN_TO_CLIENT must not be true when APP_ENV=production")
	}

	c.StoreDriver = strings.ToLower(strings.TrimSpace(c.StoreDriver))
	if c.StoreDriver == "" {
		switch {
		case c.DatabaseURL != "":
			c.StoreDriver = StorePostgres
		case c.SQLitePath != "":
			c.StoreDriver = StoreSQLite
		default:
			c.StoreDriver = StoreMemory
		}
	}
	switch c.StoreDriver {
	case StoreMemory:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return errors.New("config: DATABASE_URL must be set when STORE_DRIVER=postgres")
		}
	case StoreSQLite:
		if c.SQLitePath == "" {
			return errors.New("config: SQLITE_PATH must be set when STORE_DRIVER=sqlite")
		}
	default:
		return fmt.Errorf("config: unknown STORE_DRIVER %q", c.StoreDriver)
	}

	c.PasswordHasher = strings.ToLower(strings.TrimSpace(c.PasswordHasher))
	if c.PasswordHasher != "bcrypt" && c.PasswordHasher != "argon2id" {
		return fmt.Errorf("config: unknown PASSWORD_HASHER %q", c.PasswordHasher)
	}
	if c.BcryptCost == 0 {
		c.BcryptCost = 12
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return errors.New("config: BCRYPT_COST must be between 4 and 31")
	}

	c.OTPStore = strings.ToLower(strings.TrimSpace(c.OTPStore))
	switch c.OTPStore {
	case OTPStoreMemory:
	case OTPStoreRedis:
		if c.RedisAddr == "" {
			return errors.New("config: REDIS_ADDR must be set when OTP_STORE=redis")
		}
	default:
		return fmt.Errorf("config: unknown OTP_STORE %q", c.OTPStore)
	}
	if c.OTPKeyPrefix == "" {
		c.OTPKeyPrefix = "otp"
	}

	if raw := strings.TrimSpace(c.OTPTTLRaw); raw != "" && raw != "0" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("config: invalid OTP_TTL %q: %w", raw, err)
		}
		if d < 0 {
			return errors.New("config: OTP_TTL must not be negative")
		}
		c.OTPTTL = d
	}

	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return fmt.Errorf("config: unknown LOG_FORMAT %q", c.LogFormat)
	}
	return nil
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), "production")
}

// DevOTPEnabled reports whether issued codes should be readable over DevService.
func (c *Config) DevOTPEnabled() bool {
	return c.OTPReturnToClient && !c.IsProduction()
}
