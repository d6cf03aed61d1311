// Package events carries the outcome and state notifications the UI layer
// subscribes to. Every mutating operation publishes an outcome event; the
// connection and both sessions publish state-changed events.
package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindOutcome         Kind = "outcome"
	KindConnectionState Kind = "connection_state"
	KindAdminSession    Kind = "admin_session"
	KindUserSession     Kind = "user_session"
)

type Event struct {
	ID      string    `json:"id"`
	Kind    Kind      `json:"kind"`
	Success bool      `json:"success"`
	Message string    `json:"message,omitempty"`
	// State is the new value for state-changed kinds (connected / logged in).
	State bool      `json:"state"`
	Name  string    `json:"name,omitempty"`
	At    time.Time `json:"at"`
}

// Bus fans events out to subscribers. Delivery is non-blocking: a subscriber
// that stops draining its channel loses events rather than stalling the
// publisher, which runs under the core's lock.
type Bus struct {
	mu   sync.Mutex
	next int
	subs map[int]chan Event
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan Event)}
}

// Subscribe registers a subscriber and returns its channel plus a cancel
// function. The channel is closed on cancel.
func (b *Bus) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	ch := make(chan Event, 64)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

func (b *Bus) publish(ev Event) {
	ev.ID = uuid.NewString()
	ev.At = time.Now()

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Outcome reports the result of a mutating operation.
func (b *Bus) Outcome(success bool, message string) {
	b.publish(Event{Kind: KindOutcome, Success: success, Message: message})
}

// ConnectionState reports a connect/disconnect transition.
func (b *Bus) ConnectionState(connected bool) {
	b.publish(Event{Kind: KindConnectionState, Success: true, State: connected})
}

// AdminSession reports an admin login/logout transition.
func (b *Bus) AdminSession(loggedIn bool, name string) {
	b.publish(Event{Kind: KindAdminSession, Success: true, State: loggedIn, Name: name})
}

// UserSession reports a user login/logout transition.
func (b *Bus) UserSession(loggedIn bool, name string) {
	b.publish(Event{Kind: KindUserSession, Success: true, State: loggedIn, Name: name})
}
