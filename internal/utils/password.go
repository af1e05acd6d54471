package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// passwordHashCost is pinned above bcrypt.DefaultCost. Accounts guard paid
// credits, and hashes issued by earlier releases used cost 12, so new hashes
// stay comparable.
const passwordHashCost = 12

// HashPassword hashes a plaintext password using bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	return string(hash), err
}

// CheckPasswordHash compares a plaintext password with a bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
