package repository

import (
	"context"
	"errors"

	"quickswap/backend/internal/account/domain"
)

var (
	// ErrDuplicateEmail is returned by Create when an account with the same email already exists.
	// Every implementation enforces this atomically so concurrent registrations cannot both succeed.
	ErrDuplicateEmail = errors.New("account email already exists")
	// ErrNotFound is returned by Update when no account has the given id.
	ErrNotFound = errors.New("account not found")
)

// Repository defines persistence for accounts.
type Repository interface {
	// GetByEmail returns the account with the given email, or nil if not found.
	// It returns an error only for storage failures, not for missing rows.
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	// Create inserts a new account. Returns ErrDuplicateEmail if the email is taken.
	Create(ctx context.Context, a *domain.Account) error
	// Update overwrites full name, password hash and updated_at of the account with a.ID.
	Update(ctx context.Context, a *domain.Account) error
	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}
