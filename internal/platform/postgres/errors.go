package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/food-delivery-api/internal/store"
)

// PostgreSQL error codes
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
	notNullViolationCode    = "23502"
)

// Unique constraints declared by the migrations.
const (
	usersUsernameKey   = "users_username_key"
	usersEmailKey      = "users_email_key"
	restaurantsNameKey = "restaurants_name_key"
)

// MapError maps a database error to the store's error vocabulary, wrapping
// the original so details survive for logging.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if IsUniqueViolation(pgErr) {
			switch pgErr.ConstraintName {
			case usersUsernameKey, usersEmailKey:
				return fmt.Errorf("%w: %v", store.ErrUserExists, err)
			case restaurantsNameKey:
				return fmt.Errorf("%w: %v", store.ErrRestaurantExists, err)
			}
			return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
		}

		switch pgErr.Code {
		case foreignKeyViolationCode, checkViolationCode:
			return fmt.Errorf(
				"%w: constraint violation (%s): %v",
				store.ErrInvalidEntity,
				pgErr.ConstraintName,
				err,
			)
		case notNullViolationCode:
			return fmt.Errorf(
				"%w: not null violation (%s): %v",
				store.ErrInvalidEntity,
				pgErr.ColumnName,
				err,
			)
		}
	}

	return err
}

// IsUniqueViolation checks if the given error is a PostgreSQL unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// CheckRowsAffected returns notFound when an UPDATE or DELETE touched no rows.
func CheckRowsAffected(result sql.Result, notFound error) error {
	if result == nil {
		return fmt.Errorf("nil result provided to CheckRowsAffected")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		if notFound == nil {
			return store.ErrNotFound
		}
		return notFound
	}

	return nil
}
