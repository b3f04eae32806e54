package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// Callers check for them with errors.Is; the API layer maps them to status codes.
var (
	// ErrInvalidCredentials indicates an unknown account name or a wrong password.
	// The two cases are deliberately indistinguishable to callers.
	// API layer should map this to HTTP 401 Unauthorized.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrForbidden indicates the caller may not perform a catalog operation:
	// the caller does not exist, is not a superuser, or does not own the restaurant.
	// API layer should map this to HTTP 403 Forbidden.
	ErrForbidden = errors.New("caller is not allowed to perform this operation")
)
