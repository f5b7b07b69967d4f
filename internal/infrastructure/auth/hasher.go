package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordTooLong is returned for input bcrypt would silently truncate.
var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

const bcryptMaxInput = 72

// BcryptPasswordHasher hashes club admin and operator passwords.
type BcryptPasswordHasher struct {
	cost int
}

// NewBcryptPasswordHasher falls back to bcrypt.DefaultCost for out-of-range costs.
func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost: cost}
}

func (h *BcryptPasswordHasher) Hash(password string) (string, error) {
	if len(password) > bcryptMaxInput {
		return "", ErrPasswordTooLong
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify gives one opaque error for a mismatch, a malformed hash or oversized input.
func (h *BcryptPasswordHasher) Verify(password, hashed string) error {
	if len(password) > bcryptMaxInput {
		return errors.New("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)); err != nil {
		return errors.New("invalid credentials")
	}
	return nil
}
