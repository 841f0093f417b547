package otp

import (
	"context"
	"sync"

	"github.com/cespare/xxhash/v2"
)

const shardCount = 64

type shard struct {
	mu sync.Mutex
	m  map[string]Entry

	// gen holds the last issued generation per email and is never cleared.
	gen map[string]uint64
}

// MemoryRegistry is an in-process Registry. Emails are spread over a fixed table of
// locked shards, so operations on one email serialize while other emails proceed.
type MemoryRegistry struct {
	shards [shardCount]shard
	opts   options
}

// NewMemoryRegistry returns an empty in-memory registry.
func NewMemoryRegistry(opts ...Option) *MemoryRegistry {
	r := &MemoryRegistry{opts: buildOptions(opts)}
	for i := range r.shards {
		r.shards[i].m = make(map[string]Entry)
		r.shards[i].gen = make(map[string]uint64)
	}
	return r
}

func (r *MemoryRegistry) shardFor(email string) *shard {
	return &r.shards[xxhash.Sum64String(email)%shardCount]
}

// get returns the live entry for email, dropping it if expired. Caller holds s.mu.
func (r *MemoryRegistry) get(s *shard, email string) (Entry, bool) {
	e, ok := s.m[email]
	if !ok {
		return Entry{}, false
	}
	if r.opts.expired(e) {
		delete(s.m, email)
		return Entry{}, false
	}
	return e, true
}

// Issue stores a fresh unverified code for email, discarding any previous entry.
func (r *MemoryRegistry) Issue(ctx context.Context, email string) (string, error) {
	code, err := r.opts.generate()
	if err != nil {
		return "", err
	}
	s := r.shardFor(email)
	s.mu.Lock()
	s.gen[email]++
	s.m[email] = Entry{CodeHash: HashCode(code), IssuedAt: r.opts.now(), Generation: s.gen[email]}
	s.mu.Unlock()
	return code, nil
}

// Verify marks the entry verified if code matches.
func (r *MemoryRegistry) Verify(ctx context.Context, email, code string) error {
	s := r.shardFor(email)
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := r.get(s, email)
	if !ok || !CodeEqual(code, e.CodeHash) {
		return ErrInvalidOTP
	}
	e.Verified = true
	s.m[email] = e
	return nil
}

// Consume removes and returns the entry if it is verified.
func (r *MemoryRegistry) Consume(ctx context.Context, email string) (Entry, error) {
	s := r.shardFor(email)
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := r.get(s, email)
	if !ok || !e.Verified {
		return Entry{}, ErrNotVerified
	}
	delete(s.m, email)
	return e, nil
}

// Restore reinstates e unless the email has been issued a code since e was.
func (r *MemoryRegistry) Restore(ctx context.Context, email string, e Entry) error {
	s := r.shardFor(email)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen[email] != e.Generation {
		return nil
	}
	if _, ok := r.get(s, email); ok {
		return nil
	}
	if r.opts.expired(e) {
		return nil
	}
	s.m[email] = e
	return nil
}

var _ Registry = (*MemoryRegistry)(nil)
