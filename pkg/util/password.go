package util

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hashing cost. 12 keeps a single hash around 250ms on current hardware,
// slow enough for stored credentials without stalling login.
const bcryptCost = 12

// HashPassword derives a bcrypt hash for storage. The plain text is never
// persisted anywhere.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether the plain text matches the stored hash.
// Any comparison failure, including a malformed hash, counts as a mismatch.
func VerifyPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
