package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresRepository_GetByEmail(t *testing.T) {
	now := time.Now().UTC()
	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantID    string
		wantNil   bool
		wantErr   bool
	}{
		{
			name: "found",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{"id", "email", "full_name", "password_hash", "created_at", "updated_at"}).
					AddRow("a1", "a@x.com", "Alice", "hash", now, now)
				mock.ExpectQuery(`SELECT id, email, full_name, password_hash, created_at, updated_at`).
					WithArgs("a@x.com").
					WillReturnRows(rows)
			},
			wantID: "a1",
		},
		{
			name: "not found",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT id, email`).
					WithArgs("a@x.com").
					WillReturnError(pgx.ErrNoRows)
			},
			wantNil: true,
		},
		{
			name: "database error",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT id, email`).
					WithArgs("a@x.com").
					WillReturnError(errors.New("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err, "failed to create mock")
			defer mock.Close()
			tt.setupMock(mock)

			repo := NewPostgresRepository(mock)
			got, err := repo.GetByEmail(context.Background(), "a@x.com")

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "connection refused")
			} else {
				require.NoError(t, err)
				if tt.wantNil {
					assert.Nil(t, got)
				} else {
					require.NotNil(t, got)
					assert.Equal(t, tt.wantID, got.ID)
					assert.Equal(t, "Alice", got.FullName)
				}
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresRepository_Create(t *testing.T) {
	t.Run("inserts account", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		a := newAccount("a1", "a@x.com")
		mock.ExpectExec(`INSERT INTO accounts`).
			WithArgs(a.ID, a.Email, a.FullName, a.PasswordHash, pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		require.NoError(t, NewPostgresRepository(mock).Create(context.Background(), a))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation maps to ErrDuplicateEmail", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`INSERT INTO accounts`).
			WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "accounts_email_key"})

		err = NewPostgresRepository(mock).Create(context.Background(), newAccount("a2", "a@x.com"))
		assert.ErrorIs(t, err, ErrDuplicateEmail)
	})

	t.Run("other errors are wrapped", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`INSERT INTO accounts`).WillReturnError(errors.New("disk full"))

		err = NewPostgresRepository(mock).Create(context.Background(), newAccount("a3", "a@x.com"))
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrDuplicateEmail)
		assert.Contains(t, err.Error(), "disk full")
	})

	t.Run("invalid account is rejected before insert", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		err = NewPostgresRepository(mock).Create(context.Background(), newAccount("", "a@x.com"))
		require.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresRepository_Update(t *testing.T) {
	t.Run("updates row", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		a := newAccount("a1", "a@x.com")
		mock.ExpectExec(`UPDATE accounts`).
			WithArgs(a.ID, a.FullName, a.PasswordHash, pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		require.NoError(t, NewPostgresRepository(mock).Update(context.Background(), a))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no rows is ErrNotFound", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`UPDATE accounts`).WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err = NewPostgresRepository(mock).Update(context.Background(), newAccount("gone", "g@x.com"))
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestPostgresRepository_Ping(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectPing().WillReturnError(errors.New("down"))
	assert.Error(t, NewPostgresRepository(mock).Ping(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
