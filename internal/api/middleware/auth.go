package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/food-delivery-api/internal/api/shared"
	"github.com/phrazzld/food-delivery-api/internal/platform/logger"
	"github.com/phrazzld/food-delivery-api/internal/redact"
	"github.com/phrazzld/food-delivery-api/internal/service/auth"
)

// UnauthorizedMessage is the error body for rejected catalog requests.
const UnauthorizedMessage = "Unauthorized access"

// AuthMiddleware validates optional bearer tokens on catalog routes.
// Requests without an Authorization header pass through untouched; a
// present header must hold a valid user or restaurant token, whose claims
// are stored in the request context.
type AuthMiddleware struct {
	userTokens       auth.JWTService
	restaurantTokens auth.JWTService
	logger           *slog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(userTokens, restaurantTokens auth.JWTService, logger *slog.Logger) *AuthMiddleware {
	if userTokens == nil || restaurantTokens == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("token services cannot be nil for AuthMiddleware")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthMiddleware{
		userTokens:       userTokens,
		restaurantTokens: restaurantTokens,
		logger:           logger.With(slog.String("component", "auth_middleware")),
	}
}

// OptionalAuthenticate validates a bearer token when one is sent.
func (m *AuthMiddleware) OptionalAuthenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromContextOrDefault(r.Context(), m.logger)

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			log.Debug("malformed authorization header")
			shared.RespondWithError(w, r, http.StatusForbidden, UnauthorizedMessage)
			return
		}

		claims, err := m.validate(r, parts[1])
		if err != nil {
			log.Debug("bearer token rejected", slog.String("error", redact.Error(err)))
			shared.RespondWithError(w, r, http.StatusForbidden, UnauthorizedMessage)
			return
		}

		next.ServeHTTP(w, r.WithContext(shared.WithClaims(r.Context(), claims)))
	})
}

// validate tries the user key first and then the restaurant key. Each
// principal has its own signing key, so at most one can succeed.
func (m *AuthMiddleware) validate(r *http.Request, token string) (*auth.Claims, error) {
	claims, err := m.userTokens.ValidateToken(r.Context(), token)
	if err == nil {
		return claims, nil
	}
	if errors.Is(err, auth.ErrExpiredToken) {
		return nil, err
	}
	return m.restaurantTokens.ValidateToken(r.Context(), token)
}

// MatchesPrincipal reports whether the request's token, if any, was issued
// to the account named in the body. Requests without a token match.
func MatchesPrincipal(r *http.Request, id string, principal auth.Principal) bool {
	claims, ok := shared.GetClaims(r.Context())
	if !ok {
		return true
	}
	return claims.Principal == principal && claims.SubjectID == id
}
