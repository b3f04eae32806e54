package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/food-delivery-api/internal/domain"
	"github.com/phrazzld/food-delivery-api/internal/store"
)

// MockUserStore implements store.UserStore for testing. Without function
// overrides it behaves like an in-memory store that enforces username and
// email uniqueness.
type MockUserStore struct {
	// Function fields for customizable behavior
	CreateFn        func(ctx context.Context, user *domain.User) error
	GetByIDFn       func(ctx context.Context, id string) (*domain.User, error)
	GetByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	SetSuperuserFn  func(ctx context.Context, username string, superuser bool) error

	// Default errors returned before touching the in-memory data
	CreateError error
	GetError    error

	mu    sync.Mutex
	users map[string]*domain.User // keyed by ID
}

var _ store.UserStore = (*MockUserStore)(nil)

// NewMockUserStore creates a new mock store with initialized defaults
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{users: make(map[string]*domain.User)}
}

// Create implements the UserStore interface
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	if m.CreateError != nil {
		return m.CreateError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return store.ErrUserExists
		}
	}

	user.ID = uuid.NewString()
	stored := *user
	stored.Password = ""
	m.users[user.ID] = &stored
	return nil
}

// GetByID implements the UserStore interface
func (m *MockUserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	if m.GetError != nil {
		return nil, m.GetError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

// GetByUsername implements the UserStore interface
func (m *MockUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, username)
	}
	if m.GetError != nil {
		return nil, m.GetError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// SetSuperuser implements the UserStore interface
func (m *MockUserStore) SetSuperuser(ctx context.Context, username string, superuser bool) error {
	if m.SetSuperuserFn != nil {
		return m.SetSuperuserFn(ctx, username, superuser)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.users {
		if user.Username == username {
			user.Superuser = superuser
			return nil
		}
	}
	return store.ErrUserNotFound
}

// Count returns the number of stored users.
func (m *MockUserStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}
