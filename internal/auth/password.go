package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// bcrypt cost factor; ~100ms per hash on current hardware
const bcryptCost = 10

// hashes a plaintext password with a per-hash random salt.
// The plaintext is never logged or returned.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// reports whether the plaintext password matches the stored hash.
// A mismatch is a normal negative result, not an error.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
