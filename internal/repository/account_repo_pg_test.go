package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/gytech/flightdesk/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminByName(t *testing.T) {
	mock := newMock(t)
	repo := NewAccountRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, password_hash FROM admins WHERE name=$1`)).
		WithArgs("root").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "password_hash"}).AddRow(int64(1), "root", "abc"))

	admin, err := repo.AdminByName(context.Background(), "root")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, int64(1), admin.ID)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, password_hash FROM admins WHERE name=$1`)).
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	admin, err = repo.AdminByName(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, admin)
}

func TestUserByName(t *testing.T) {
	mock := newMock(t)
	repo := NewAccountRepository(mock)

	created := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT .+ FROM users WHERE name=\$1`).
		WithArgs("alice").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at", "last_login"}).
			AddRow(int64(42), "alice", "alice@example.com", "hash", created, (*time.Time)(nil)))

	u, err := repo.UserByName(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Nil(t, u.LastLogin)
}

func TestUsernameAndEmailTaken(t *testing.T) {
	mock := newMock(t)
	repo := NewAccountRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM users WHERE name=$1)`)).
		WithArgs("alice").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	taken, err := repo.UsernameTaken(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, taken)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM users WHERE email=$1)`)).
		WithArgs("new@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	taken, err = repo.EmailTaken(context.Background(), "new@example.com")
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestInsertUser(t *testing.T) {
	mock := newMock(t)
	repo := NewAccountRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users (name, email, password_hash) VALUES ($1, $2, $3) RETURNING id`)).
		WithArgs("bob", "bob@example.com", "hash").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))

	id, err := repo.InsertUser(context.Background(), "bob", "bob@example.com", "hash")
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
}

func TestInsertUserConflict(t *testing.T) {
	mock := newMock(t)
	repo := NewAccountRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WithArgs("bob", "bob@example.com", "hash").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.InsertUser(context.Background(), "bob", "bob@example.com", "hash")
	var conflict *domain.ConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestTouchLastLogin(t *testing.T) {
	mock := newMock(t)
	repo := NewAccountRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET last_login=now() WHERE id=$1`)).
		WithArgs(int64(42)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	assert.NoError(t, repo.TouchLastLogin(context.Background(), 42))
}
