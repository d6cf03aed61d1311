package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/gytech/flightdesk/internal/domain"
	"github.com/jackc/pgx/v5"
)

type FlightRepository interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id string) (*domain.Flight, error)
	Exists(ctx context.Context, id string) (bool, error)
	Insert(ctx context.Context, f domain.Flight) error
	UpdatePrice(ctx context.Context, id string, price float64) error
	TotalSeats(ctx context.Context, id string) (int, error)
	UpdateRemainSeats(ctx context.Context, id string, remain int) error
	Delete(ctx context.Context, id string) error
}

type PGFlightRepository struct {
	db Querier
}

func NewFlightRepository(db Querier) *PGFlightRepository {
	return &PGFlightRepository{db: db}
}

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT id, departure, destination, depart_time, arrive_time, price, total_seats, remain_seats FROM flights ORDER BY depart_time DESC`)
	if err != nil {
		return nil, fmt.Errorf("query flights: %w", err)
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := rows.Scan(&f.ID, &f.Departure, &f.Destination, &f.DepartTime, &f.ArriveTime, &f.Price, &f.TotalSeats, &f.RemainSeats); err != nil {
			return nil, fmt.Errorf("scan flight: %w", err)
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

// GetByID returns nil without an error when the flight does not exist.
func (r *PGFlightRepository) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT id, departure, destination, depart_time, arrive_time, price, total_seats, remain_seats FROM flights WHERE id=$1`, id)
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.Departure, &f.Destination, &f.DepartTime, &f.ArriveTime, &f.Price, &f.TotalSeats, &f.RemainSeats); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query flight %s: %w", id, err)
	}
	return &f, nil
}

func (r *PGFlightRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM flights WHERE id=$1)`, id).Scan(&exists)
	return exists, err
}

// Insert maps a primary-key collision to a ConflictError: the pre-check in
// the service only exists for the friendlier message, the PK is the authority.
func (r *PGFlightRepository) Insert(ctx context.Context, f domain.Flight) error {
	_, err := r.db.Exec(ctx, `INSERT INTO flights (id, departure, destination, depart_time, arrive_time, price, total_seats, remain_seats)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		f.ID, f.Departure, f.Destination, f.DepartTime, f.ArriveTime, f.Price, f.TotalSeats, f.RemainSeats)
	if isUniqueViolation(err) {
		return domain.Conflict("flight " + f.ID)
	}
	if err != nil {
		return fmt.Errorf("insert flight %s: %w", f.ID, err)
	}
	return nil
}

func (r *PGFlightRepository) UpdatePrice(ctx context.Context, id string, price float64) error {
	tag, err := r.db.Exec(ctx, `UPDATE flights SET price=$1 WHERE id=$2`, price, id)
	if err != nil {
		return fmt.Errorf("update price for %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGFlightRepository) TotalSeats(ctx context.Context, id string) (int, error) {
	var total int
	err := r.db.QueryRow(ctx, `SELECT total_seats FROM flights WHERE id=$1`, id).Scan(&total)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, domain.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("query total seats for %s: %w", id, err)
	}
	return total, nil
}

func (r *PGFlightRepository) UpdateRemainSeats(ctx context.Context, id string, remain int) error {
	tag, err := r.db.Exec(ctx, `UPDATE flights SET remain_seats=$1 WHERE id=$2`, remain, id)
	if err != nil {
		return fmt.Errorf("update seats for %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGFlightRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM flights WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete flight %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
