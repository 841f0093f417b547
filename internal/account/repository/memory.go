package repository

import (
	"context"
	"sync"

	"quickswap/backend/internal/account/domain"
)

// MemoryRepository is an in-process Repository. Used when no database is configured and in tests.
type MemoryRepository struct {
	mu      sync.RWMutex
	byEmail map[string]*domain.Account
	byID    map[string]*domain.Account
}

// NewMemoryRepository returns an empty in-memory account repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byEmail: make(map[string]*domain.Account),
		byID:    make(map[string]*domain.Account),
	}
}

// GetByEmail returns a copy of the stored account, or nil if not found.
func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

// Create stores a copy of a. The existence check and insert happen under one lock.
func (r *MemoryRepository) Create(ctx context.Context, a *domain.Account) error {
	if err := a.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[a.Email]; ok {
		return ErrDuplicateEmail
	}
	cp := *a
	r.byEmail[a.Email] = &cp
	r.byID[a.ID] = &cp
	return nil
}

// Update overwrites the mutable fields of the account with a.ID.
func (r *MemoryRepository) Update(ctx context.Context, a *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.byID[a.ID]
	if !ok {
		return ErrNotFound
	}
	cur.FullName = a.FullName
	cur.PasswordHash = a.PasswordHash
	cur.UpdatedAt = a.UpdatedAt
	return nil
}

// Ping always succeeds.
func (r *MemoryRepository) Ping(ctx context.Context) error {
	return nil
}

// Count returns the number of stored accounts.
func (r *MemoryRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

var _ Repository = (*MemoryRepository)(nil)
