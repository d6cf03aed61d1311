package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/gytech/flightdesk/internal/domain"
	"github.com/jackc/pgx/v5"
)

type AccountRepository interface {
	AdminByName(ctx context.Context, name string) (*domain.Admin, error)
	UserByName(ctx context.Context, name string) (*domain.User, error)
	UsernameTaken(ctx context.Context, name string) (bool, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	InsertUser(ctx context.Context, name, email, passwordHash string) (int64, error)
	TouchLastLogin(ctx context.Context, userID int64) error
}

type PGAccountRepository struct {
	db Querier
}

func NewAccountRepository(db Querier) *PGAccountRepository {
	return &PGAccountRepository{db: db}
}

// AdminByName returns nil without an error when no such admin exists.
func (r *PGAccountRepository) AdminByName(ctx context.Context, name string) (*domain.Admin, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, password_hash FROM admins WHERE name=$1`, name)
	var a domain.Admin
	if err := row.Scan(&a.ID, &a.Name, &a.PasswordHash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query admin %s: %w", name, err)
	}
	return &a, nil
}

// UserByName returns nil without an error when no such user exists.
func (r *PGAccountRepository) UserByName(ctx context.Context, name string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, email, password_hash, created_at, last_login FROM users WHERE name=$1`, name)
	var u domain.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.LastLogin); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user %s: %w", name, err)
	}
	return &u, nil
}

func (r *PGAccountRepository) UsernameTaken(ctx context.Context, name string) (bool, error) {
	var taken bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE name=$1)`, name).Scan(&taken)
	return taken, err
}

func (r *PGAccountRepository) EmailTaken(ctx context.Context, email string) (bool, error) {
	var taken bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email=$1)`, email).Scan(&taken)
	return taken, err
}

// InsertUser stores a new account and returns the id assigned by the store.
// Unique violations on name or email come back as ConflictError in case a
// second writer slipped between the uniqueness pre-checks and the insert.
func (r *PGAccountRepository) InsertUser(ctx context.Context, name, email, passwordHash string) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `INSERT INTO users (name, email, password_hash) VALUES ($1, $2, $3) RETURNING id`,
		name, email, passwordHash).Scan(&id)
	if isUniqueViolation(err) {
		return 0, domain.Conflict("account")
	}
	if err != nil {
		return 0, fmt.Errorf("insert user %s: %w", name, err)
	}
	return id, nil
}

func (r *PGAccountRepository) TouchLastLogin(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET last_login=now() WHERE id=$1`, userID)
	if err != nil {
		return fmt.Errorf("touch last login for %d: %w", userID, err)
	}
	return nil
}

var _ AccountRepository = (*PGAccountRepository)(nil)
