package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"

	"quickswap/backend/internal/account/domain"
)

// pgxIface is the subset of *pgxpool.Pool used by PostgresRepository; pgxmock.PgxPoolIface satisfies it.
type pgxIface interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

// PostgresRepository implements Repository on the accounts table. Email uniqueness is
// enforced by the accounts_email_key constraint.
type PostgresRepository struct {
	pool pgxIface
}

// NewPostgresRepository returns an account repository that uses the given pool for persistence.
func NewPostgresRepository(pool pgxIface) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// GetByEmail returns the account with the given email, or nil if not found.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, full_name, password_hash, created_at, updated_at
		FROM accounts
		WHERE email = $1
	`, email)

	var a domain.Account
	err := row.Scan(&a.ID, &a.Email, &a.FullName, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, oops.Code("ACCOUNT_GET_BY_EMAIL_FAILED").
			With("operation", "get account by email").
			Wrap(err)
	}
	return &a, nil
}

// Create inserts the account. A unique violation on email is reported as ErrDuplicateEmail.
func (r *PostgresRepository) Create(ctx context.Context, a *domain.Account) error {
	if err := a.Validate(); err != nil {
		return oops.Code("ACCOUNT_INVALID").Wrap(err)
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO accounts (id, email, full_name, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, a.ID, a.Email, a.FullName, a.PasswordHash, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateEmail
		}
		return oops.Code("ACCOUNT_CREATE_FAILED").
			With("operation", "insert account").
			With("account_id", a.ID).
			Wrap(err)
	}
	return nil
}

// Update overwrites full_name, password_hash and updated_at for a.ID.
func (r *PostgresRepository) Update(ctx context.Context, a *domain.Account) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE accounts
		SET full_name = $2, password_hash = $3, updated_at = $4
		WHERE id = $1
	`, a.ID, a.FullName, a.PasswordHash, a.UpdatedAt)
	if err != nil {
		return oops.Code("ACCOUNT_UPDATE_FAILED").
			With("operation", "update account").
			With("account_id", a.ID).
			Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Ping checks connectivity to Postgres.
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

var _ Repository = (*PostgresRepository)(nil)
