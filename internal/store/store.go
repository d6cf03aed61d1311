// Package store owns the single database connection. The handle is a plain
// *pgx.Conn, which is not safe for concurrent use; the service layer holds
// its lock across every call into this package.
package store

import (
	"context"
	"fmt"

	"github.com/gytech/flightdesk/config"
	"github.com/gytech/flightdesk/internal/credentials"
	"github.com/gytech/flightdesk/internal/repository"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id BIGSERIAL PRIMARY KEY,
    name TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL,
    email TEXT UNIQUE NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    last_login TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS admins (
    id BIGSERIAL PRIMARY KEY,
    name TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS flights (
    id TEXT PRIMARY KEY,
    departure TEXT NOT NULL,
    destination TEXT NOT NULL,
    depart_time TIMESTAMPTZ NOT NULL,
    arrive_time TIMESTAMPTZ NOT NULL,
    price NUMERIC(10,2) NOT NULL,
    total_seats INT NOT NULL,
    remain_seats INT NOT NULL
);

CREATE TABLE IF NOT EXISTS posts (
    id BIGSERIAL PRIMARY KEY,
    author_id BIGINT NOT NULL REFERENCES users(id),
    title TEXT NOT NULL,
    body TEXT NOT NULL,
    image BYTEA,
    image_format TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS post_likes (
    post_id BIGINT NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
    user_id BIGINT NOT NULL REFERENCES users(id),
    PRIMARY KEY (post_id, user_id)
);
`

// ensureUsers is re-run on idempotent reconnects: schema bootstrap for the
// user table is a connection-time responsibility, not a query-time one.
const ensureUsers = `
CREATE TABLE IF NOT EXISTS users (
    id BIGSERIAL PRIMARY KEY,
    name TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL,
    email TEXT UNIQUE NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    last_login TIMESTAMPTZ
);
`

// Manager opens and closes the one connection and bootstraps the schema.
type Manager struct {
	db    config.DatabaseConfig
	admin config.AdminConfig
	log   *zap.Logger
	conn  *pgx.Conn
}

func NewManager(db config.DatabaseConfig, admin config.AdminConfig, log *zap.Logger) *Manager {
	return &Manager{db: db, admin: admin, log: log}
}

// Connected reports whether the handle is open.
func (m *Manager) Connected() bool {
	return m.conn != nil && !m.conn.IsClosed()
}

// Conn returns the live handle, or nil when disconnected.
func (m *Manager) Conn() *pgx.Conn {
	if !m.Connected() {
		return nil
	}
	return m.conn
}

// Connect opens the connection if needed. When already open it only
// re-verifies that the user table exists and returns success.
func (m *Manager) Connect(ctx context.Context) error {
	if m.Connected() {
		if err := m.verifyUserSchema(ctx, m.conn); err != nil {
			return err
		}
		m.log.Debug("connect requested while already connected")
		return nil
	}

	conn, err := pgx.Connect(ctx, m.db.DSN())
	if err != nil {
		return fmt.Errorf("open connection: %w", err)
	}

	if _, err := conn.Exec(ctx, schema); err != nil {
		_ = conn.Close(ctx)
		return fmt.Errorf("create schema: %w", err)
	}

	if err := m.seedAdmin(ctx, conn); err != nil {
		_ = conn.Close(ctx)
		return err
	}

	m.conn = conn
	m.log.Info("database connected", zap.String("host", m.db.Host), zap.String("name", m.db.Name))
	return nil
}

// Disconnect closes the handle. Closing an already closed manager is a no-op.
func (m *Manager) Disconnect(ctx context.Context) {
	if m.conn == nil {
		return
	}
	if err := m.conn.Close(ctx); err != nil {
		m.log.Warn("close connection", zap.Error(err))
	}
	m.conn = nil
	m.log.Info("database disconnected")
}

// verifyUserSchema re-runs the user-table bootstrap on idempotent reconnects.
func (m *Manager) verifyUserSchema(ctx context.Context, q repository.Querier) error {
	if _, err := q.Exec(ctx, ensureUsers); err != nil {
		return fmt.Errorf("verify user schema: %w", err)
	}
	return nil
}

// seedAdmin inserts the configured default admin when the table is empty, so
// a fresh install has a working back office.
func (m *Manager) seedAdmin(ctx context.Context, q repository.Querier) error {
	if m.admin.Name == "" || m.admin.Password == "" {
		return nil
	}
	tag, err := q.Exec(ctx,
		`INSERT INTO admins (name, password_hash)
		 SELECT $1, $2
		 WHERE NOT EXISTS (SELECT 1 FROM admins)`,
		m.admin.Name, credentials.HashPassword(m.admin.Password))
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if tag.RowsAffected() > 0 {
		m.log.Info("seeded default admin", zap.String("name", m.admin.Name))
	}
	return nil
}
