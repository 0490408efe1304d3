package service

import (
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the work factor the account base was hashed with.
const bcryptCost = 10

// BcryptHasher implements ports.PasswordHasher with bcrypt. The salt is
// embedded in the produced digest, so Verify needs no extra state.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcryptCost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports a plain mismatch and a malformed digest identically: false.
func (h *BcryptHasher) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
