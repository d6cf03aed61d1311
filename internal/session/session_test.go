package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdminSessionLifecycle(t *testing.T) {
	var s Admin
	assert.False(t, s.LoggedIn())
	assert.Empty(t, s.Name())

	s.Set(7, "root")
	assert.True(t, s.LoggedIn())
	assert.Equal(t, int64(7), s.ID())
	assert.Equal(t, "root", s.Name())

	s.Clear()
	assert.False(t, s.LoggedIn())
	assert.Zero(t, s.ID())
	assert.Empty(t, s.Name())

	// Clearing twice stays logged out.
	s.Clear()
	assert.False(t, s.LoggedIn())
}

func TestUserSessionLifecycle(t *testing.T) {
	var s User
	assert.False(t, s.LoggedIn())

	s.Set(42, "alice", "alice@example.com")
	assert.True(t, s.LoggedIn())
	assert.Equal(t, int64(42), s.ID())
	assert.Equal(t, "alice", s.Name())
	assert.Equal(t, "alice@example.com", s.Email())

	s.Clear()
	assert.False(t, s.LoggedIn())
	assert.Empty(t, s.Email())
}
