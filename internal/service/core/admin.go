package core

import (
	"context"

	"github.com/gytech/flightdesk/internal/credentials"
	"github.com/gytech/flightdesk/internal/domain"
	"go.uber.org/zap"
)

// AdminLogin authenticates the back-office session. Failure reasons stay
// distinct so the UI can retry a connection problem but reject bad input.
func (c *Core) AdminLogin(ctx context.Context, name, password string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.store.Connected() {
		return c.fail("admin login failed", domain.ErrNotConnected)
	}
	if name == "" || password == "" {
		return c.fail("admin login failed", domain.Invalid("credentials", "name and password must not be empty"))
	}

	admin, err := c.accounts.AdminByName(ctx, name)
	if err != nil {
		return c.fail("admin login failed", err)
	}
	if admin == nil || admin.PasswordHash != credentials.HashPassword(password) {
		return c.fail("admin login failed", domain.ErrBadCredentials)
	}

	c.admin.Set(admin.ID, admin.Name)
	c.log.Info("admin logged in", zap.String("name", admin.Name))
	c.bus.AdminSession(true, admin.Name)
	c.bus.Outcome(true, "admin "+admin.Name+" logged in")
	return nil
}

// AdminLogout always succeeds, logged in or not.
func (c *Core) AdminLogout() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.admin.Clear()
	c.bus.AdminSession(false, "")
	c.bus.Outcome(true, "admin logged out")
}

func (c *Core) IsAdminLoggedIn() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.admin.LoggedIn()
}

func (c *Core) CurrentAdminID() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.admin.ID()
}

func (c *Core) CurrentAdminName() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.admin.Name()
}
