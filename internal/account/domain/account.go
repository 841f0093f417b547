package domain

import (
	"errors"
	"time"
)

// Account is the persisted user identity record. Email is the lookup key and is
// compared exactly as stored (no case folding).
type Account struct {
	ID           string
	Email        string
	FullName     string
	PasswordHash string // encoder-produced; never the plaintext
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate validates the account for persistence. Returns an error describing the first validation failure.
func (a *Account) Validate() error {
	if a.ID == "" {
		return errors.New("id is required")
	}
	if a.Email == "" {
		return errors.New("email is required")
	}
	if a.PasswordHash == "" {
		return errors.New("password hash is required")
	}
	return nil
}

// Profile is the public projection of an account returned by login and register.
type Profile struct {
	Email    string
	FullName string
}

// Profile returns the public projection of a.
func (a *Account) Profile() Profile {
	return Profile{Email: a.Email, FullName: a.FullName}
}
