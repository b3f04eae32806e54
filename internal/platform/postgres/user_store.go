package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/food-delivery-api/internal/domain"
	"github.com/phrazzld/food-delivery-api/internal/redact"
	"github.com/phrazzld/food-delivery-api/internal/store"
)

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// It accepts a database connection or transaction that is managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresUserStore(db DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

const userColumns = `id, username, email, password_hash, superuser, created_at`

// Create implements store.UserStore.Create
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	if user.HashedPassword == "" {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, domain.ErrEmptyPassword)
	}

	id := uuid.New()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		id, user.Username, user.Email, user.HashedPassword, user.Superuser, user.CreatedAt,
	)
	if err != nil {
		mapped := store.WrapOperation("user", "create", MapError(err))
		if !store.IsDuplicateError(mapped) {
			s.logger.Error("failed to insert user", slog.String("error", redact.Error(err)))
		}
		return mapped
	}

	user.ID = id.String()
	s.logger.Debug("user created", slog.String("user_id", user.ID))
	return nil
}

// GetByID implements store.UserStore.GetByID
func (s *PostgresUserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, store.ErrUserNotFound
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, uid)
	return s.scanUser(row)
}

// GetByUsername implements store.UserStore.GetByUsername
func (s *PostgresUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	return s.scanUser(row)
}

// SetSuperuser implements store.UserStore.SetSuperuser
func (s *PostgresUserStore) SetSuperuser(ctx context.Context, username string, superuser bool) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE users SET superuser = $1 WHERE username = $2`,
		superuser, username,
	)
	if err != nil {
		s.logger.Error("failed to update superuser flag", slog.String("error", redact.Error(err)))
		return store.WrapOperation("user", "set_superuser", MapError(err))
	}
	return CheckRowsAffected(result, store.ErrUserNotFound)
}

func (s *PostgresUserStore) scanUser(row *sql.Row) (*domain.User, error) {
	var (
		id   uuid.UUID
		user domain.User
	)
	err := row.Scan(&id, &user.Username, &user.Email, &user.HashedPassword, &user.Superuser, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		s.logger.Error("failed to read user", slog.String("error", redact.Error(err)))
		return nil, store.WrapOperation("user", "read", MapError(err))
	}

	user.ID = id.String()
	return &user, nil
}
