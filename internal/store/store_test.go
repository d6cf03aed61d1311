package store

import (
	"context"
	"testing"

	"github.com/gytech/flightdesk/config"
	"github.com/gytech/flightdesk/internal/credentials"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMock(t *testing.T) pgxmock.PgxConnIface {
	t.Helper()
	mock, err := pgxmock.NewConn()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = mock.Close(context.Background())
	})
	return mock
}

func TestManagerStartsDisconnected(t *testing.T) {
	m := NewManager(config.DatabaseConfig{}, config.AdminConfig{}, zap.NewNop())

	assert.False(t, m.Connected())
	assert.Nil(t, m.Conn())
}

func TestDisconnectWhenClosedIsNoop(t *testing.T) {
	m := NewManager(config.DatabaseConfig{}, config.AdminConfig{}, zap.NewNop())

	m.Disconnect(context.Background())
	m.Disconnect(context.Background())
	assert.False(t, m.Connected())
}

func TestSeedAdminInsertsWhenTableEmpty(t *testing.T) {
	mock := newMock(t)
	m := NewManager(config.DatabaseConfig{},
		config.AdminConfig{Name: "admin", Password: "change-me"}, zap.NewNop())

	mock.ExpectExec(`INSERT INTO admins \(name, password_hash\)`).
		WithArgs("admin", credentials.HashPassword("change-me")).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, m.seedAdmin(context.Background(), mock))
}

func TestSeedAdminSkipsPopulatedTable(t *testing.T) {
	mock := newMock(t)
	m := NewManager(config.DatabaseConfig{},
		config.AdminConfig{Name: "admin", Password: "change-me"}, zap.NewNop())

	// The guarded insert touches nothing when an admin row already exists.
	mock.ExpectExec(`INSERT INTO admins \(name, password_hash\)`).
		WithArgs("admin", credentials.HashPassword("change-me")).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	require.NoError(t, m.seedAdmin(context.Background(), mock))
}

func TestSeedAdminSkipsWithoutConfiguredAdmin(t *testing.T) {
	mock := newMock(t)
	m := NewManager(config.DatabaseConfig{}, config.AdminConfig{}, zap.NewNop())

	// No expectations: an unset admin config must not reach the database.
	require.NoError(t, m.seedAdmin(context.Background(), mock))
}

func TestSeedAdminPropagatesFailure(t *testing.T) {
	mock := newMock(t)
	m := NewManager(config.DatabaseConfig{},
		config.AdminConfig{Name: "admin", Password: "change-me"}, zap.NewNop())

	mock.ExpectExec(`INSERT INTO admins \(name, password_hash\)`).
		WithArgs("admin", credentials.HashPassword("change-me")).
		WillReturnError(assert.AnError)

	err := m.seedAdmin(context.Background(), mock)
	assert.ErrorContains(t, err, "seed admin")
}

func TestVerifyUserSchemaRerunsBootstrap(t *testing.T) {
	mock := newMock(t)
	m := NewManager(config.DatabaseConfig{}, config.AdminConfig{}, zap.NewNop())

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS users`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, m.verifyUserSchema(context.Background(), mock))
}

func TestVerifyUserSchemaPropagatesFailure(t *testing.T) {
	mock := newMock(t)
	m := NewManager(config.DatabaseConfig{}, config.AdminConfig{}, zap.NewNop())

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS users`).
		WillReturnError(assert.AnError)

	err := m.verifyUserSchema(context.Background(), mock)
	assert.ErrorContains(t, err, "verify user schema")
}
