// Package devotp keeps the plaintext of the most recent OTP per email so local environments
// can read it back through DevService.GetOTP. It is wired only when dev OTP mode is enabled
// outside production.
package devotp

import (
	"context"
	"sync"
	"time"
)

// Store holds the latest plain OTP per email for dev-only retrieval.
type Store interface {
	// Put stores otp for email until expiresAt. A zero expiresAt never expires.
	Put(ctx context.Context, email, otp string, expiresAt time.Time)
	// Get returns the otp for email if present and not expired.
	Get(ctx context.Context, email string) (otp string, ok bool)
}

type entry struct {
	otp       string
	expiresAt time.Time
}

// MemoryStore is an in-memory Store. It also implements notify.Notifier, so it can sit
// next to the real delivery channel and capture every issued code.
type MemoryStore struct {
	mu        sync.RWMutex
	m         map[string]entry
	retention time.Duration
	nowF      func() time.Time
}

// NewMemoryStore returns a store whose entries expire retention after being captured.
// Zero retention keeps entries until overwritten, matching an OTP registry without TTL.
func NewMemoryStore(retention time.Duration) *MemoryStore {
	return &MemoryStore{
		m:         make(map[string]entry),
		retention: retention,
		nowF:      func() time.Time { return time.Now().UTC() },
	}
}

// Put stores otp for email until expiresAt.
func (s *MemoryStore) Put(ctx context.Context, email, otp string, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[email] = entry{otp: otp, expiresAt: expiresAt}
}

// Get returns the otp for email if present and not expired.
func (s *MemoryStore) Get(ctx context.Context, email string) (string, bool) {
	s.mu.RLock()
	e, ok := s.m[email]
	s.mu.RUnlock()
	if !ok {
		return "", false
	}
	if !e.expiresAt.IsZero() && !e.expiresAt.After(s.nowF()) {
		s.mu.Lock()
		if cur, ok := s.m[email]; ok && cur == e {
			delete(s.m, email)
		}
		s.mu.Unlock()
		return "", false
	}
	return e.otp, true
}

// Notify records code as the latest OTP for email.
func (s *MemoryStore) Notify(ctx context.Context, email, code string) error {
	var expiresAt time.Time
	if s.retention > 0 {
		expiresAt = s.nowF().Add(s.retention)
	}
	s.Put(ctx, email, code, expiresAt)
	return nil
}
