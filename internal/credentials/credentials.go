// Package credentials holds the pure validation and hashing helpers shared
// by the admin and user authentication flows.
package credentials

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"unicode"
)

var (
	// Local part of [A-Za-z0-9._%+-]+, dot-separated domain labels, TLD of
	// at least two letters. Case-sensitive, no normalization.
	emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

	// First character alphabetic, then 2-19 of [A-Za-z0-9_] (3-20 total).
	usernameRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]{2,19}$`)
)

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// ValidUsername reports whether s is an acceptable username.
func ValidUsername(s string) bool {
	return usernameRe.MatchString(s)
}

// StrongPassword requires at least 8 characters with at least one letter
// and one digit. No upper bound, no special-character requirement.
func StrongPassword(s string) bool {
	if len(s) < 8 {
		return false
	}
	hasLetter, hasDigit := false, false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
		if hasLetter && hasDigit {
			return true
		}
	}
	return false
}

// HashPassword returns the deterministic SHA-256 hex digest stored for every
// account password. Verification recomputes the digest and compares it with
// plain equality; the comparison is not constant-time.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
