// Package credential owns password hashing and email normalization. It holds
// no state; everything here is a pure function over strings.
package credential

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a password with bcrypt. The embedded salt makes every
// call produce a different digest for the same input.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckPassword reports whether password matches the bcrypt digest.
func CheckPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}

// NormalizeEmail lowercases the domain portion of an email address, leaving
// the local part untouched. The split is on the rightmost "@" so quoted local
// parts containing "@" keep their domain. Strings without "@" pass through
// unchanged, and the function is idempotent.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}
