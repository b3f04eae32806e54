package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/food-delivery-api/internal/api/shared"
	"github.com/phrazzld/food-delivery-api/internal/domain"
	"github.com/phrazzld/food-delivery-api/internal/service"
	"github.com/phrazzld/food-delivery-api/internal/service/auth"
	"github.com/phrazzld/food-delivery-api/internal/store"
)

// Client-facing messages. Anything not listed collapses to the route's
// generic failure message.
const (
	MsgUserExists            = "Username or email already in use"
	MsgInvalidUserLogin      = "Invalid username or password"
	MsgRestaurantExists      = "Restaurant name already in use"
	MsgInvalidRestaurantAuth = "Invalid restaurant name or password"
	MsgUnauthorized          = "Unauthorized access"
	MsgRestaurantNotFound    = "Restaurant not found"
	MsgMenuItemNotFound      = "Menu item not found"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Bad or foreign bearer tokens reject the catalog request outright.
	case errors.Is(err, service.ErrForbidden),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrWrongPrincipal):
		return http.StatusForbidden

	case errors.Is(err, store.ErrRestaurantNotFound),
		errors.Is(err, domain.ErrMenuItemNotFound):
		return http.StatusNotFound

	case errors.Is(err, store.ErrUserExists),
		errors.Is(err, store.ErrRestaurantExists):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the client-facing message for err, or
// fallback when err has no specific message.
func GetSafeErrorMessage(err error, fallback string) string {
	switch {
	case errors.Is(err, store.ErrUserExists):
		return MsgUserExists
	case errors.Is(err, store.ErrRestaurantExists):
		return MsgRestaurantExists
	case errors.Is(err, service.ErrForbidden),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrWrongPrincipal):
		return MsgUnauthorized
	case errors.Is(err, store.ErrRestaurantNotFound):
		return MsgRestaurantNotFound
	case errors.Is(err, domain.ErrMenuItemNotFound):
		return MsgMenuItemNotFound
	default:
		return fallback
	}
}

// HandleAPIError writes the status and safe message for err, logging the
// redacted details.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err, fallback), err)
}
