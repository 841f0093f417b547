package otp

import "context"

// lookup returns the live entry for email.
func (r *MemoryRegistry) lookup(ctx context.Context, email string) (Entry, bool) {
	s := r.shardFor(email)
	s.mu.Lock()
	defer s.mu.Unlock()
	return r.get(s, email)
}
