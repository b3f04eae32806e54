package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// Field-level errors wrap it.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrMenuItemNotFound is returned when a menu item is not part of a restaurant's menu.
	ErrMenuItemNotFound = errors.New("menu item not found")
)
