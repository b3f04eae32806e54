package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/food-delivery-api/internal/domain"
	"github.com/phrazzld/food-delivery-api/internal/store"
)

// MockRestaurantStore implements store.RestaurantStore for testing. Without
// function overrides it keeps restaurants in memory, enforces name
// uniqueness, and hands out copies so callers cannot mutate stored state.
type MockRestaurantStore struct {
	CreateFn     func(ctx context.Context, restaurant *domain.Restaurant) error
	GetByIDFn    func(ctx context.Context, id string) (*domain.Restaurant, error)
	GetByNameFn  func(ctx context.Context, name string) (*domain.Restaurant, error)
	UpdateMenuFn func(ctx context.Context, id string, menu []domain.MenuItem) error

	// UpdateMenuCalls counts UpdateMenu invocations that reached the store.
	UpdateMenuCalls int

	mu          sync.Mutex
	restaurants map[string]*domain.Restaurant // keyed by ID
}

var _ store.RestaurantStore = (*MockRestaurantStore)(nil)

// NewMockRestaurantStore creates an empty in-memory restaurant store.
func NewMockRestaurantStore() *MockRestaurantStore {
	return &MockRestaurantStore{restaurants: make(map[string]*domain.Restaurant)}
}

// Create implements the RestaurantStore interface
func (m *MockRestaurantStore) Create(ctx context.Context, restaurant *domain.Restaurant) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, restaurant)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.restaurants {
		if existing.Name == restaurant.Name {
			return store.ErrRestaurantExists
		}
	}

	assignIDs(restaurant.Menu)
	restaurant.ID = uuid.NewString()
	m.restaurants[restaurant.ID] = cloneRestaurant(restaurant)
	return nil
}

// GetByID implements the RestaurantStore interface
func (m *MockRestaurantStore) GetByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.restaurants[id]
	if !ok {
		return nil, store.ErrRestaurantNotFound
	}
	return cloneRestaurant(r), nil
}

// GetByName implements the RestaurantStore interface
func (m *MockRestaurantStore) GetByName(ctx context.Context, name string) (*domain.Restaurant, error) {
	if m.GetByNameFn != nil {
		return m.GetByNameFn(ctx, name)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.restaurants {
		if r.Name == name {
			return cloneRestaurant(r), nil
		}
	}
	return nil, store.ErrRestaurantNotFound
}

// UpdateMenu implements the RestaurantStore interface
func (m *MockRestaurantStore) UpdateMenu(ctx context.Context, id string, menu []domain.MenuItem) error {
	if m.UpdateMenuFn != nil {
		return m.UpdateMenuFn(ctx, id, menu)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateMenuCalls++

	r, ok := m.restaurants[id]
	if !ok {
		return store.ErrRestaurantNotFound
	}

	assignIDs(menu)
	r.Menu = make([]domain.MenuItem, len(menu))
	copy(r.Menu, menu)
	return nil
}

// Put stores a restaurant as-is, assigning an ID if it has none.
// It is a test helper for seeding state.
func (m *MockRestaurantStore) Put(restaurant *domain.Restaurant) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if restaurant.ID == "" {
		restaurant.ID = uuid.NewString()
	}
	assignIDs(restaurant.Menu)
	m.restaurants[restaurant.ID] = cloneRestaurant(restaurant)
}

// Count returns the number of stored restaurants.
func (m *MockRestaurantStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.restaurants)
}

func assignIDs(menu []domain.MenuItem) {
	domain.AssignMenuItemIDs(menu,
		func(id string) bool { _, err := uuid.Parse(id); return err == nil },
		uuid.NewString,
	)
}

func cloneRestaurant(r *domain.Restaurant) *domain.Restaurant {
	clone := *r
	clone.Password = ""
	clone.Menu = make([]domain.MenuItem, len(r.Menu))
	copy(clone.Menu, r.Menu)
	return &clone
}
