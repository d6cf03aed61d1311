// Package core is the single entry point for every database-backed
// operation: connection lifecycle, both authentication contexts, flight
// inventory and the post feed. One mutex serializes all public methods for
// their full duration; the connection handle underneath is not safe for
// concurrent use and the two session values are only ever touched under the
// same lock.
package core

import (
	"context"
	"sync"

	"github.com/gytech/flightdesk/internal/events"
	"github.com/gytech/flightdesk/internal/repository"
	"github.com/gytech/flightdesk/internal/session"
	"github.com/gytech/flightdesk/internal/store"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// Store is the connection lifecycle the core drives.
type Store interface {
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context)
	Connected() bool
}

// ImageReader loads a selected image path into payload + format tag.
type ImageReader interface {
	Read(path string) ([]byte, string, error)
}

type Core struct {
	mu sync.Mutex

	store    Store
	flights  repository.FlightRepository
	accounts repository.AccountRepository
	posts    repository.PostRepository

	admin session.Admin
	user  session.User

	bus    *events.Bus
	images ImageReader
	log    *zap.Logger
}

// New wires the core over the production store manager. The repositories
// share the manager's live connection through a small adapter so they always
// see the handle opened by the most recent Connect.
func New(m *store.Manager, bus *events.Bus, images ImageReader, log *zap.Logger) *Core {
	q := managerQuerier{m: m}
	return &Core{
		store:    m,
		flights:  repository.NewFlightRepository(q),
		accounts: repository.NewAccountRepository(q),
		posts:    repository.NewPostRepository(q),
		bus:      bus,
		images:   images,
		log:      log,
	}
}

// managerQuerier resolves the current connection on every call. The core
// checks Connected before reaching the repositories, so the handle is never
// nil here.
type managerQuerier struct {
	m *store.Manager
}

func (q managerQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return q.m.Conn().Exec(ctx, sql, args...)
}

func (q managerQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return q.m.Conn().Query(ctx, sql, args...)
}

func (q managerQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return q.m.Conn().QueryRow(ctx, sql, args...)
}

// Connect opens the store. Calling it while connected re-verifies the user
// schema and reports success without reopening.
func (c *Core) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Connect(ctx); err != nil {
		c.log.Error("connect failed", zap.Error(err))
		c.bus.ConnectionState(false)
		c.bus.Outcome(false, "database connection failed: "+err.Error())
		return err
	}

	c.bus.ConnectionState(true)
	c.bus.Outcome(true, "database connected")
	return nil
}

// Disconnect closes the store and resets both sessions: a stale identity
// against no connection is unsafe.
func (c *Core) Disconnect(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.store.Connected() {
		return
	}
	c.store.Disconnect(ctx)

	if c.admin.LoggedIn() {
		c.admin.Clear()
		c.bus.AdminSession(false, "")
	}
	if c.user.LoggedIn() {
		c.user.Clear()
		c.bus.UserSession(false, "")
	}
	c.bus.ConnectionState(false)
	c.bus.Outcome(true, "database disconnected")
}

func (c *Core) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Connected()
}

// fail publishes the failure outcome and returns err unchanged.
func (c *Core) fail(msg string, err error) error {
	c.bus.Outcome(false, msg+": "+err.Error())
	return err
}
