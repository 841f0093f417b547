package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/samber/oops"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"quickswap/backend/internal/account/domain"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS accounts (
	id            TEXT PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	full_name     TEXT NOT NULL DEFAULT '',
	password_hash TEXT NOT NULL,
	created_at    INTEGER NOT NULL,
	updated_at    INTEGER NOT NULL
);
`

// SQLiteRepository implements Repository over a single SQLite file.
type SQLiteRepository struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the SQLite file at path and applies the accounts schema.
func OpenSQLite(path string) (*SQLiteRepository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	if path == ":memory:" {
		dsn = path
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if path == ":memory:" {
		// each connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply sqlite schema: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

// Close closes the underlying database.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// GetByEmail returns the account with the given email, or nil if not found.
func (r *SQLiteRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var (
		a                    domain.Account
		createdAt, updatedAt int64
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, email, full_name, password_hash, created_at, updated_at
		FROM accounts WHERE email = ?1
	`, email).Scan(&a.ID, &a.Email, &a.FullName, &a.PasswordHash, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, oops.Code("ACCOUNT_GET_BY_EMAIL_FAILED").
			With("operation", "get account by email").
			Wrap(err)
	}
	a.CreatedAt = fromMillis(createdAt)
	a.UpdatedAt = fromMillis(updatedAt)
	return &a, nil
}

// Create inserts the account; the UNIQUE constraint on email makes it race-free.
func (r *SQLiteRepository) Create(ctx context.Context, a *domain.Account) error {
	if err := a.Validate(); err != nil {
		return oops.Code("ACCOUNT_INVALID").Wrap(err)
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO accounts (id, email, full_name, password_hash, created_at, updated_at)
		VALUES (?1, ?2, ?3, ?4, ?5, ?6)
	`, a.ID, a.Email, a.FullName, a.PasswordHash, toMillis(a.CreatedAt), toMillis(a.UpdatedAt))
	if err != nil {
		if isSQLiteUniqueViolation(err) {
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
func (r *SQLiteRepository) Update(ctx context.Context, a *domain.Account) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE accounts SET full_name = ?2, password_hash = ?3, updated_at = ?4
		WHERE id = ?1
	`, a.ID, a.FullName, a.PasswordHash, toMillis(a.UpdatedAt))
	if err != nil {
		return oops.Code("ACCOUNT_UPDATE_FAILED").
			With("operation", "update account").
			With("account_id", a.ID).
			Wrap(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return oops.Code("ACCOUNT_UPDATE_FAILED").With("operation", "rows affected").Wrap(err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Ping checks the database handle.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func isSQLiteUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(v int64) time.Time {
	return time.UnixMilli(v).UTC()
}

var _ Repository = (*SQLiteRepository)(nil)
