package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/food-delivery-api/internal/domain"
	"github.com/phrazzld/food-delivery-api/internal/redact"
	"github.com/phrazzld/food-delivery-api/internal/store"
)

// PostgresRestaurantStore implements store.RestaurantStore. The menu is
// stored as a JSONB array in the restaurants row.
type PostgresRestaurantStore struct {
	db     DBTX
	logger *slog.Logger
}

// NewPostgresRestaurantStore creates a new PostgreSQL implementation of the
// RestaurantStore interface. If logger is nil, a default logger will be used.
func NewPostgresRestaurantStore(db DBTX, logger *slog.Logger) *PostgresRestaurantStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresRestaurantStore{
		db:     db,
		logger: logger.With(slog.String("component", "restaurant_store")),
	}
}

var _ store.RestaurantStore = (*PostgresRestaurantStore)(nil)

const restaurantColumns = `id, name, description, location, password_hash, menu, owner_id, created_at, updated_at`

// Create implements store.RestaurantStore.Create
func (s *PostgresRestaurantStore) Create(ctx context.Context, restaurant *domain.Restaurant) error {
	if restaurant.HashedPassword == "" {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, domain.ErrEmptyPassword)
	}

	var ownerID *uuid.UUID
	if restaurant.OwnerID != "" {
		parsed, err := uuid.Parse(restaurant.OwnerID)
		if err != nil {
			return fmt.Errorf("%w: owner id: %w", store.ErrInvalidEntity, domain.ErrInvalidID)
		}
		ownerID = &parsed
	}

	menu := cloneMenu(restaurant.Menu)
	assignMenuItemIDs(menu)
	menuJSON, err := encodeMenu(menu)
	if err != nil {
		return err
	}

	id := uuid.New()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO restaurants (`+restaurantColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		id,
		restaurant.Name,
		restaurant.Description,
		restaurant.Location,
		restaurant.HashedPassword,
		string(menuJSON),
		ownerID,
		restaurant.CreatedAt,
		restaurant.UpdatedAt,
	)
	if err != nil {
		mapped := store.WrapOperation("restaurant", "create", MapError(err))
		if !store.IsDuplicateError(mapped) {
			s.logger.Error("failed to insert restaurant", slog.String("error", redact.Error(err)))
		}
		return mapped
	}

	restaurant.ID = id.String()
	restaurant.Menu = menu
	s.logger.Debug("restaurant created",
		slog.String("restaurant_id", restaurant.ID),
		slog.Int("menu_items", len(menu)))
	return nil
}

// GetByID implements store.RestaurantStore.GetByID
func (s *PostgresRestaurantStore) GetByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	rid, err := uuid.Parse(id)
	if err != nil {
		return nil, store.ErrRestaurantNotFound
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+restaurantColumns+` FROM restaurants WHERE id = $1`, rid)
	return s.scanRestaurant(row)
}

// GetByName implements store.RestaurantStore.GetByName
func (s *PostgresRestaurantStore) GetByName(ctx context.Context, name string) (*domain.Restaurant, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+restaurantColumns+` FROM restaurants WHERE name = $1`, name)
	return s.scanRestaurant(row)
}

// UpdateMenu implements store.RestaurantStore.UpdateMenu
func (s *PostgresRestaurantStore) UpdateMenu(ctx context.Context, id string, menu []domain.MenuItem) error {
	rid, err := uuid.Parse(id)
	if err != nil {
		return store.ErrRestaurantNotFound
	}

	assignMenuItemIDs(menu)
	menuJSON, err := encodeMenu(menu)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE restaurants SET menu = $1, updated_at = $2 WHERE id = $3`,
		string(menuJSON), time.Now().UTC(), rid,
	)
	if err != nil {
		s.logger.Error("failed to update menu", slog.String("error", redact.Error(err)))
		return store.WrapOperation("restaurant", "update_menu", MapError(err))
	}
	return CheckRowsAffected(result, store.ErrRestaurantNotFound)
}

func (s *PostgresRestaurantStore) scanRestaurant(row *sql.Row) (*domain.Restaurant, error) {
	var (
		id         uuid.UUID
		ownerID    uuid.NullUUID
		menuJSON   []byte
		restaurant domain.Restaurant
	)
	err := row.Scan(
		&id,
		&restaurant.Name,
		&restaurant.Description,
		&restaurant.Location,
		&restaurant.HashedPassword,
		&menuJSON,
		&ownerID,
		&restaurant.CreatedAt,
		&restaurant.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrRestaurantNotFound
		}
		s.logger.Error("failed to read restaurant", slog.String("error", redact.Error(err)))
		return nil, store.WrapOperation("restaurant", "read", MapError(err))
	}

	menu, err := decodeMenu(menuJSON)
	if err != nil {
		return nil, err
	}

	restaurant.ID = id.String()
	restaurant.Menu = menu
	if ownerID.Valid {
		restaurant.OwnerID = ownerID.UUID.String()
	}
	return &restaurant, nil
}

// assignMenuItemIDs gives items without a UUID id a fresh one.
func assignMenuItemIDs(menu []domain.MenuItem) {
	domain.AssignMenuItemIDs(menu, isUUID, func() string { return uuid.NewString() })
}

func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func cloneMenu(menu []domain.MenuItem) []domain.MenuItem {
	out := make([]domain.MenuItem, len(menu))
	copy(out, menu)
	return out
}

func encodeMenu(menu []domain.MenuItem) ([]byte, error) {
	if menu == nil {
		menu = []domain.MenuItem{}
	}
	data, err := json.Marshal(menu)
	if err != nil {
		return nil, fmt.Errorf("%w: menu: %v", store.ErrInvalidEntity, err)
	}
	return data, nil
}

func decodeMenu(data []byte) ([]domain.MenuItem, error) {
	menu := []domain.MenuItem{}
	if len(data) == 0 {
		return menu, nil
	}
	if err := json.Unmarshal(data, &menu); err != nil {
		return nil, fmt.Errorf("failed to decode stored menu: %w", err)
	}
	return menu, nil
}
