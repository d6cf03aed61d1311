package core

import (
	"context"

	"github.com/gytech/flightdesk/internal/credentials"
	"github.com/gytech/flightdesk/internal/domain"
	"go.uber.org/zap"
)

// Register creates a user account. Validations run in a fixed order and the
// first violation wins, so the UI always learns exactly one reason.
func (c *Core) Register(ctx context.Context, email, username, password, confirm string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.store.Connected() {
		return c.fail("registration failed", domain.ErrNotConnected)
	}
	if email == "" || username == "" || password == "" || confirm == "" {
		return c.fail("registration failed", domain.Invalid("input", "email, username and password must not be empty"))
	}
	if !credentials.ValidEmail(email) {
		return c.fail("registration failed", domain.Invalid("email", "invalid email format"))
	}
	if !credentials.StrongPassword(password) {
		return c.fail("registration failed", domain.Invalid("password", "at least 8 characters with letters and digits"))
	}
	if password != confirm {
		return c.fail("registration failed", domain.Invalid("password", "passwords do not match"))
	}
	if !credentials.ValidUsername(username) {
		return c.fail("registration failed", domain.Invalid("username", "must start with a letter, 3-20 letters, digits or underscores"))
	}

	taken, err := c.accounts.UsernameTaken(ctx, username)
	if err != nil {
		return c.fail("registration failed", err)
	}
	if taken {
		return c.fail("registration failed", domain.Conflict("username "+username))
	}

	taken, err = c.accounts.EmailTaken(ctx, email)
	if err != nil {
		return c.fail("registration failed", err)
	}
	if taken {
		return c.fail("registration failed", domain.Conflict("email "+email))
	}

	id, err := c.accounts.InsertUser(ctx, username, email, credentials.HashPassword(password))
	if err != nil {
		return c.fail("registration failed", err)
	}

	c.log.Info("user registered", zap.Int64("id", id), zap.String("name", username))
	c.bus.Outcome(true, "user "+username+" registered")
	return nil
}

// Login authenticates the end-user session, distinguishing not connected,
// empty input, unknown username and password mismatch.
func (c *Core) Login(ctx context.Context, username, password string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.store.Connected() {
		return c.fail("login failed", domain.ErrNotConnected)
	}
	if username == "" || password == "" {
		return c.fail("login failed", domain.Invalid("credentials", "username and password must not be empty"))
	}

	user, err := c.accounts.UserByName(ctx, username)
	if err != nil {
		return c.fail("login failed", err)
	}
	if user == nil {
		return c.fail("login failed", domain.ErrUnknownUser)
	}
	if user.PasswordHash != credentials.HashPassword(password) {
		return c.fail("login failed", domain.ErrPasswordMismatch)
	}

	c.user.Set(user.ID, user.Name, user.Email)
	if err := c.accounts.TouchLastLogin(ctx, user.ID); err != nil {
		// The session is already established; losing the timestamp is not
		// worth failing the login over.
		c.log.Warn("record last login", zap.Int64("user", user.ID), zap.Error(err))
	}

	c.log.Info("user logged in", zap.String("name", user.Name))
	c.bus.UserSession(true, user.Name)
	c.bus.Outcome(true, "welcome back, "+user.Name)
	return nil
}

// Logout always succeeds, logged in or not.
func (c *Core) Logout() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.user.Clear()
	c.bus.UserSession(false, "")
	c.bus.Outcome(true, "logged out")
}

func (c *Core) IsUserLoggedIn() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user.LoggedIn()
}

func (c *Core) CurrentUserID() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user.ID()
}

func (c *Core) CurrentUserName() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user.Name()
}

func (c *Core) CurrentUserEmail() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user.Email()
}
