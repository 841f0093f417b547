package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/samber/oops"

	"quickswap/backend/internal/account/domain"
	"quickswap/backend/internal/account/repository"
	"quickswap/backend/internal/notify"
	"quickswap/backend/internal/otp"
	"quickswap/backend/internal/security"
)

// Sentinel errors for the auth service; the handler maps them to gRPC codes.
// Anything else returned by AuthService is an internal failure.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrPasswordMismatch   = errors.New("password and confirm password do not match")
	ErrSamePassword       = errors.New("new password must differ from the current password")
	ErrInvalidOldPassword = errors.New("old password is incorrect")
	ErrInvalidOTP         = errors.New("invalid otp")
	ErrNotVerified        = errors.New("otp not verified")
)

// AccountStore is the subset of the account repository the auth service needs.
type AccountStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	Create(ctx context.Context, a *domain.Account) error
	Update(ctx context.Context, a *domain.Account) error
}

// AuthService implements login, registration, password change and OTP-based password recovery.
type AuthService struct {
	accounts AccountStore
	hasher   security.PasswordHasher
	otps     otp.Registry
	notifier notify.Notifier
	logger   *slog.Logger
	now      func() time.Time
}

// NewAuthService returns an AuthService. notifier may be nil, in which case issued codes are
// only stored. logger may be nil.
func NewAuthService(
	accounts AccountStore,
	hasher security.PasswordHasher,
	otps otp.Registry,
	notifier notify.Notifier,
	logger *slog.Logger,
) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		accounts: accounts,
		hasher:   hasher,
		otps:     otps,
		notifier: notifier,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func internal(err error, op, email string) error {
	return oops.
		In("auth").
		Code("AUTH_INTERNAL").
		With("operation", op).
		With("email", email).
		Wrap(err)
}

// matches reports whether password verifies against hash. A hash that cannot be processed is an error.
func (s *AuthService) matches(hash, password string) (bool, error) {
	err := s.hasher.Compare(hash, []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, security.ErrPasswordMismatch):
		return false, nil
	default:
		return false, err
	}
}

// Login returns the account profile when password matches. A missing account and a wrong
// password both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Profile, error) {
	a, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return domain.Profile{}, internal(err, "login", email)
	}
	if a == nil {
		return domain.Profile{}, ErrInvalidCredentials
	}
	ok, err := s.matches(a.PasswordHash, password)
	if err != nil {
		return domain.Profile{}, internal(err, "login", email)
	}
	if !ok {
		return domain.Profile{}, ErrInvalidCredentials
	}
	return a.Profile(), nil
}

// Register creates an account. The confirm check runs before any store access; the store's
// uniqueness constraint decides concurrent registrations for the same email.
func (s *AuthService) Register(ctx context.Context, fullName, email, password, confirmPassword string) (domain.Profile, error) {
	if password != confirmPassword {
		return domain.Profile{}, ErrPasswordMismatch
	}
	existing, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return domain.Profile{}, internal(err, "register", email)
	}
	if existing != nil {
		return domain.Profile{}, ErrEmailTaken
	}
	hash, err := s.hasher.Hash([]byte(password))
	if err != nil {
		return domain.Profile{}, internal(err, "register", email)
	}
	now := s.now()
	a := &domain.Account{
		ID:           uuid.New().String(),
		Email:        email,
		FullName:     fullName,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.accounts.Create(ctx, a); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return domain.Profile{}, ErrEmailTaken
		}
		return domain.Profile{}, internal(err, "register", email)
	}
	s.logger.InfoContext(ctx, "account registered", "account_id", a.ID, "email", email)
	return a.Profile(), nil
}

// ChangePassword replaces the password after checking the old one. newPassword must not
// verify against the current hash.
func (s *AuthService) ChangePassword(ctx context.Context, email, oldPassword, newPassword string) error {
	a, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return internal(err, "change_password", email)
	}
	if a == nil {
		return ErrAccountNotFound
	}
	ok, err := s.matches(a.PasswordHash, oldPassword)
	if err != nil {
		return internal(err, "change_password", email)
	}
	if !ok {
		return ErrInvalidOldPassword
	}
	if err := s.setPassword(ctx, a, newPassword, "change_password"); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "password changed", "account_id", a.ID)
	return nil
}

// setPassword rejects a password equal to the current one, then hashes and persists it.
func (s *AuthService) setPassword(ctx context.Context, a *domain.Account, password, op string) error {
	same, err := s.matches(a.PasswordHash, password)
	if err != nil {
		return internal(err, op, a.Email)
	}
	if same {
		return ErrSamePassword
	}
	hash, err := s.hasher.Hash([]byte(password))
	if err != nil {
		return internal(err, op, a.Email)
	}
	a.PasswordHash = hash
	a.UpdatedAt = s.now()
	if err := s.accounts.Update(ctx, a); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAccountNotFound
		}
		return internal(err, op, a.Email)
	}
	return nil
}

// RequestOTP issues a fresh code for an existing account and hands it to the notifier.
// It serves both the forgot-password and resend flows. Delivery failures are logged only.
func (s *AuthService) RequestOTP(ctx context.Context, email string) error {
	a, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return internal(err, "request_otp", email)
	}
	if a == nil {
		return ErrAccountNotFound
	}
	code, err := s.otps.Issue(ctx, email)
	if err != nil {
		return internal(err, "request_otp", email)
	}
	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, email, code); err != nil {
			s.logger.WarnContext(ctx, "otp notification failed", "email", email, "error", err)
		}
	}
	return nil
}

// ConfirmOTP marks the current code for email as verified.
func (s *AuthService) ConfirmOTP(ctx context.Context, email, code string) error {
	err := s.otps.Verify(ctx, email, code)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, otp.ErrInvalidOTP):
		return ErrInvalidOTP
	default:
		return internal(err, "confirm_otp", email)
	}
}

// ResetWithOTP sets a new password for an account whose code has been verified.
//
// The verified entry is claimed before the account is touched, so two concurrent resets
// cannot both succeed. If the reset is then rejected the claim is given back, unless a
// newer code was issued in the meantime.
func (s *AuthService) ResetWithOTP(ctx context.Context, email, newPassword string) error {
	claimed, err := s.otps.Consume(ctx, email)
	if err != nil {
		if errors.Is(err, otp.ErrNotVerified) {
			return ErrNotVerified
		}
		return internal(err, "reset_with_otp", email)
	}

	if err := s.resetClaimed(ctx, email, newPassword); err != nil {
		// The claim must go back even if the caller has gone away.
		if rerr := s.otps.Restore(context.WithoutCancel(ctx), email, claimed); rerr != nil {
			s.logger.ErrorContext(ctx, "restore verified otp failed", "email", email, "error", rerr)
		}
		return err
	}
	s.logger.InfoContext(ctx, "password reset with otp", "email", email)
	return nil
}

func (s *AuthService) resetClaimed(ctx context.Context, email, newPassword string) error {
	a, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return internal(err, "reset_with_otp", email)
	}
	if a == nil {
		return ErrAccountNotFound
	}
	return s.setPassword(ctx, a, newPassword, "reset_with_otp")
}
