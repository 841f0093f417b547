// seed creates a demo account in the configured credential store for local testing.
// Idempotent: does nothing if the demo email is already registered.
package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"quickswap/backend/internal/app"
	"quickswap/backend/internal/config"
	"quickswap/backend/internal/identity/service"
	"quickswap/backend/internal/logging"
)

const (
	demoEmail    = "dev@example.com"
	demoName     = "Dev User"
	demoPassword = "password123"
)

func main() {
	email := flag.String("email", demoEmail, "account email")
	name := flag.String("name", demoName, "full name")
	password := flag.String("password", demoPassword, "account password")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.StoreDriver == config.StoreMemory {
		log.Fatal("seed: memory store does not persist; set DATABASE_URL or SQLITE_PATH")
	}

	ctx := context.Background()
	accounts, closeStore, err := app.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer func() { _ = closeStore() }()

	hasher, err := app.NewHasher(cfg)
	if err != nil {
		log.Fatalf("hasher: %v", err)
	}

	auth := service.NewAuthService(accounts, hasher, nil, nil, logging.Discard())
	profile, err := auth.Register(ctx, *name, *email, *password, *password)
	switch {
	case errors.Is(err, service.ErrEmailTaken):
		log.Printf("Seed already applied (%s exists). Skipping.", *email)
	case err != nil:
		log.Fatalf("seed: %v", err)
	default:
		log.Printf("Seeded %s (%s) with password %q", profile.Email, profile.FullName, *password)
	}
}
