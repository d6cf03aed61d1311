package core

import (
	"context"
	"fmt"
	"time"

	"github.com/gytech/flightdesk/internal/domain"
)

// AddFlightInput carries the raw fields of a new flight. Times arrive as
// strings in the fixed wire format and are parsed here.
type AddFlightInput struct {
	ID          string  `json:"id"`
	Departure   string  `json:"departure"`
	Destination string  `json:"destination"`
	DepartTime  string  `json:"departTime"`
	ArriveTime  string  `json:"arriveTime"`
	Price       float64 `json:"price"`
	TotalSeats  int     `json:"totalSeats"`
	RemainSeats int     `json:"remainSeats"`
}

// ListFlights returns all flights ordered by departure time, newest first.
// On a closed connection it returns an empty slice alongside the error, so
// the UI can render an empty table while the bus reports the failure.
func (c *Core) ListFlights(ctx context.Context) ([]domain.Flight, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.store.Connected() {
		return []domain.Flight{}, c.fail("flight query failed", domain.ErrNotConnected)
	}

	flights, err := c.flights.List(ctx)
	if err != nil {
		return []domain.Flight{}, c.fail("flight query failed", err)
	}
	c.bus.Outcome(true, fmt.Sprintf("loaded %d flights", len(flights)))
	return flights, nil
}

// GetFlight looks a flight up by id. Absence is a normal outcome: the result
// is nil with no error, while the bus still reports the miss.
func (c *Core) GetFlight(ctx context.Context, id string) (*domain.Flight, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.store.Connected() {
		return nil, c.fail("flight query failed", domain.ErrNotConnected)
	}

	f, err := c.flights.GetByID(ctx, id)
	if err != nil {
		return nil, c.fail("flight query failed", err)
	}
	if f == nil {
		c.bus.Outcome(false, "flight "+id+" not found")
		return nil, nil
	}
	c.bus.Outcome(true, "flight "+id+" loaded")
	return f, nil
}

// AddFlight validates every inventory invariant before inserting. The
// duplicate pre-check produces the friendly message; the primary key remains
// the authority if another writer races between the two statements.
func (c *Core) AddFlight(ctx context.Context, in AddFlightInput) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.store.Connected() {
		return c.fail("add flight failed", domain.ErrNotConnected)
	}
	if in.ID == "" || in.Departure == "" || in.Destination == "" {
		return c.fail("add flight failed", domain.Invalid("flight", "id, departure and destination must not be empty"))
	}

	depart, err := time.ParseInLocation(domain.TimeLayout, in.DepartTime, time.Local)
	if err != nil {
		return c.fail("add flight failed", domain.Invalid("departTime", "must match YYYY-MM-DD HH:MM:SS"))
	}
	arrive, err := time.ParseInLocation(domain.TimeLayout, in.ArriveTime, time.Local)
	if err != nil {
		return c.fail("add flight failed", domain.Invalid("arriveTime", "must match YYYY-MM-DD HH:MM:SS"))
	}
	if !depart.Before(arrive) {
		return c.fail("add flight failed", domain.Invalid("departTime", "departure must precede arrival"))
	}
	if in.Price <= 0 {
		return c.fail("add flight failed", domain.Invalid("price", "must be greater than 0"))
	}
	if in.TotalSeats <= 0 || in.RemainSeats < 0 || in.RemainSeats > in.TotalSeats {
		return c.fail("add flight failed", domain.Invalid("seats", "remaining seats must be between 0 and the total"))
	}

	exists, err := c.flights.Exists(ctx, in.ID)
	if err != nil {
		return c.fail("add flight failed", err)
	}
	if exists {
		return c.fail("add flight failed", domain.Conflict("flight "+in.ID))
	}

	if err := c.flights.Insert(ctx, domain.Flight{
		ID:          in.ID,
		Departure:   in.Departure,
		Destination: in.Destination,
		DepartTime:  depart,
		ArriveTime:  arrive,
		Price:       in.Price,
		TotalSeats:  in.TotalSeats,
		RemainSeats: in.RemainSeats,
	}); err != nil {
		return c.fail("add flight failed", err)
	}

	c.bus.Outcome(true, "flight "+in.ID+" added")
	return nil
}

// SetPrice updates a flight's price. Zero affected rows means the id is
// missing, which is reported as not-found rather than a store failure.
func (c *Core) SetPrice(ctx context.Context, id string, price float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.store.Connected() {
		return c.fail("price update failed", domain.ErrNotConnected)
	}
	if price <= 0 {
		return c.fail("price update failed", domain.Invalid("price", "must be greater than 0"))
	}

	if err := c.flights.UpdatePrice(ctx, id, price); err != nil {
		if err == domain.ErrNotFound {
			return c.fail("price update failed", fmt.Errorf("flight %s %w", id, domain.ErrNotFound))
		}
		return c.fail("price update failed", err)
	}

	c.bus.Outcome(true, fmt.Sprintf("flight %s price set to %.2f", id, price))
	return nil
}

// SetRemainingSeats fetches the flight's total first, so the bound check
// always runs against the stored capacity. The two statements are not atomic
// against external writers, but this process serializes them under its lock.
func (c *Core) SetRemainingSeats(ctx context.Context, id string, remain int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.store.Connected() {
		return c.fail("seat update failed", domain.ErrNotConnected)
	}

	total, err := c.flights.TotalSeats(ctx, id)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.fail("seat update failed", fmt.Errorf("flight %s %w", id, domain.ErrNotFound))
		}
		return c.fail("seat update failed", err)
	}
	if remain < 0 || remain > total {
		return c.fail("seat update failed", domain.Invalid("seats", fmt.Sprintf("remaining seats must be between 0 and %d", total)))
	}

	if err := c.flights.UpdateRemainSeats(ctx, id, remain); err != nil {
		return c.fail("seat update failed", err)
	}

	c.bus.Outcome(true, fmt.Sprintf("flight %s remaining seats set to %d", id, remain))
	return nil
}

// DeleteFlight removes a flight, reporting not-found on zero affected rows.
func (c *Core) DeleteFlight(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.store.Connected() {
		return c.fail("delete flight failed", domain.ErrNotConnected)
	}

	if err := c.flights.Delete(ctx, id); err != nil {
		if err == domain.ErrNotFound {
			return c.fail("delete flight failed", fmt.Errorf("flight %s %w", id, domain.ErrNotFound))
		}
		return c.fail("delete flight failed", err)
	}

	c.bus.Outcome(true, "flight "+id+" deleted")
	return nil
}
