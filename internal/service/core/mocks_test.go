package core

import (
	"context"
	"errors"

	"github.com/gytech/flightdesk/internal/domain"
	"github.com/gytech/flightdesk/internal/events"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockFlightRepository) Insert(ctx context.Context, f domain.Flight) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFlightRepository) UpdatePrice(ctx context.Context, id string, price float64) error {
	args := m.Called(ctx, id, price)
	return args.Error(0)
}

func (m *MockFlightRepository) TotalSeats(ctx context.Context, id string) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *MockFlightRepository) UpdateRemainSeats(ctx context.Context, id string, remain int) error {
	args := m.Called(ctx, id, remain)
	return args.Error(0)
}

func (m *MockFlightRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) AdminByName(ctx context.Context, name string) (*domain.Admin, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Admin), args.Error(1)
}

func (m *MockAccountRepository) UserByName(ctx context.Context, name string) (*domain.User, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAccountRepository) UsernameTaken(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) EmailTaken(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) InsertUser(ctx context.Context, name, email, passwordHash string) (int64, error) {
	args := m.Called(ctx, name, email, passwordHash)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) TouchLastLogin(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) LatestID(ctx context.Context) (int64, bool, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *MockPostRepository) GetDetail(ctx context.Context, id, viewerID int64) (*domain.Post, error) {
	args := m.Called(ctx, id, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *MockPostRepository) Insert(ctx context.Context, p *domain.Post) (int64, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPostRepository) AuthorID(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPostRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPostRepository) SetLiked(ctx context.Context, postID, userID int64, liked bool) error {
	args := m.Called(ctx, postID, userID, liked)
	return args.Error(0)
}

// fakeStore stands in for the connection manager.
type fakeStore struct {
	connected  bool
	connectErr error
	connects   int
}

func (f *fakeStore) Connect(ctx context.Context) error {
	f.connects++
	if f.connectErr != nil {
		return f.connectErr
	}
	f.connected = true
	return nil
}

func (f *fakeStore) Disconnect(ctx context.Context) {
	f.connected = false
}

func (f *fakeStore) Connected() bool {
	return f.connected
}

// fakeImages returns a fixed payload for any path, or an error when set.
type fakeImages struct {
	data   []byte
	format string
	err    error
}

func (f *fakeImages) Read(path string) ([]byte, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	return f.data, f.format, nil
}

func newTestCore(connected bool) (*Core, *MockFlightRepository, *MockAccountRepository, *MockPostRepository, *fakeStore) {
	flights := &MockFlightRepository{}
	accounts := &MockAccountRepository{}
	posts := &MockPostRepository{}
	fs := &fakeStore{connected: connected}
	c := &Core{
		store:    fs,
		flights:  flights,
		accounts: accounts,
		posts:    posts,
		bus:      events.NewBus(),
		images:   &fakeImages{data: []byte("img"), format: "png"},
		log:      zap.NewNop(),
	}
	return c, flights, accounts, posts, fs
}

var errStore = errors.New("store exploded")
