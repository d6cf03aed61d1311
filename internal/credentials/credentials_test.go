package credentials

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidEmail(t *testing.T) {
	cases := []struct {
		email string
		want  bool
	}{
		{"alice@example.com", true},
		{"a.b_c%d+e-f@mail.example.co", true},
		{"user@sub.domain.org", true},
		{"", false},
		{"no-at-sign.com", false},
		{"user@domain", false},
		{"user@domain.c", false},
		{"user@domain.123", false},
		{"@example.com", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ValidEmail(tc.email), "email %q", tc.email)
	}
}

func TestValidUsername(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"bob", true},
		{"Alice_99", true},
		{"a23456789012345678901", false}, // 21 chars
		{"ab", false},
		{"1abc", false},
		{"_abc", false},
		{"abc-def", false},
		{"", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ValidUsername(tc.name), "username %q", tc.name)
	}
}

func TestStrongPassword(t *testing.T) {
	cases := []struct {
		password string
		want     bool
	}{
		{"abcdef12", true},
		{"1a345678", true},
		{"P@ssw0rd!!", true},
		{"short1a", false},
		{"abcdefgh", false},
		{"12345678", false},
		{"", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StrongPassword(tc.password), "password %q", tc.password)
	}
}

func TestHashPassword(t *testing.T) {
	h1 := HashPassword("passw0rd")
	h2 := HashPassword("passw0rd")

	assert.Equal(t, h1, h2, "digest must be deterministic")
	assert.Len(t, h1, 64, "sha256 hex digest is 64 characters")
	assert.NotEqual(t, h1, HashPassword("passw0rd "))

	// Known vector so the algorithm cannot silently change under stored rows.
	assert.Equal(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		HashPassword(""))
}
