// Package notify delivers freshly issued OTP codes to the account owner.
package notify

import (
	"context"
	"errors"
	"log/slog"
)

// Notifier delivers code to email. Implementations must not log the code.
type Notifier interface {
	Notify(ctx context.Context, email, code string) error
}

// Multi fans out to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, email, code string) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, email, code); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LogNotifier records that a code was issued without revealing it.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Notify(ctx context.Context, email, code string) error {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "otp issued", "email", email, "digits", len(code))
	return nil
}
