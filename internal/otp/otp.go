// Package otp implements the per-email one-time passcode registry used for password recovery.
//
// Each email moves through absent → issued → verified → absent. Issuing again from any
// state replaces the entry with a fresh unverified code. A verified entry is removed by
// Consume, so it authorizes at most one password reset.
package otp

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrInvalidOTP is returned by Verify when no entry exists or the code does not match.
	ErrInvalidOTP = errors.New("otp is invalid or expired")
	// ErrNotVerified is returned by Consume when no verified entry exists.
	ErrNotVerified = errors.New("otp has not been verified")
)

// Entry is the live OTP state for one email. Only the SHA-256 of the code is kept.
type Entry struct {
	CodeHash string
	Verified bool
	IssuedAt time.Time

	// Generation counts issues for the email. It outlives the entry, so Restore can tell a
	// claimed entry from one issued after it.
	Generation uint64
}

// Registry stores at most one Entry per email. Operations on the same email are atomic
// with respect to each other; different emails do not contend.
type Registry interface {
	// Issue generates a new code for email, replacing any existing entry, and returns the plaintext code.
	Issue(ctx context.Context, email string) (string, error)
	// Verify marks the entry verified when code matches the current code. The entry is kept.
	Verify(ctx context.Context, email, code string) error
	// Consume atomically removes and returns a verified entry; ErrNotVerified otherwise.
	Consume(ctx context.Context, email string) (Entry, error)
	// Restore puts back an entry returned by Consume unless a newer entry has been issued since,
	// even if that newer entry has itself been consumed.
	Restore(ctx context.Context, email string, e Entry) error
}

type options struct {
	ttl      time.Duration
	generate CodeGenerator
	now      func() time.Time
}

// Option configures a Registry implementation.
type Option func(*options)

// WithTTL makes entries expire ttl after issuance. Zero (the default) means entries never expire.
func WithTTL(ttl time.Duration) Option {
	return func(o *options) {
		if ttl > 0 {
			o.ttl = ttl
		}
	}
}

// WithGenerator overrides the code generator.
func WithGenerator(g CodeGenerator) Option {
	return func(o *options) {
		if g != nil {
			o.generate = g
		}
	}
}

// WithClock overrides time.Now; used in tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		generate: GenerateCode,
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) expired(e Entry) bool {
	return o.ttl > 0 && !o.now().Before(e.IssuedAt.Add(o.ttl))
}
