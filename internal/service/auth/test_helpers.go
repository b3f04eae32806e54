package auth

import (
	"testing"
	"time"

	"github.com/phrazzld/food-delivery-api/internal/config"
	"github.com/stretchr/testify/require"
)

// DefaultTestAuthConfig returns an AuthConfig suitable for tests, with the
// minimum bcrypt cost so hashing stays fast.
func DefaultTestAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		UserJWTSecret:        "test-user-jwt-secret-that-is-32-chars",
		RestaurantJWTSecret:  "test-restaurant-jwt-secret-32-chars-x",
		TokenLifetimeMinutes: 60,
		BcryptCost:           4,
	}
}

// RequireUserJWTService builds the user token service from DefaultTestAuthConfig.
func RequireUserJWTService(t *testing.T) JWTService {
	t.Helper()
	svc, err := NewUserJWTService(DefaultTestAuthConfig())
	require.NoError(t, err, "Failed to create user JWT service")
	return svc
}

// RequireRestaurantJWTService builds the restaurant token service from DefaultTestAuthConfig.
func RequireRestaurantJWTService(t *testing.T) JWTService {
	t.Helper()
	svc, err := NewRestaurantJWTService(DefaultTestAuthConfig())
	require.NoError(t, err, "Failed to create restaurant JWT service")
	return svc
}

// NewTestJWTService creates a service with an injected clock so tests can
// move time past expiry.
func NewTestJWTService(
	principal Principal,
	secret string,
	lifetime time.Duration,
	timeFunc func() time.Time,
) JWTService {
	return &hmacJWTService{
		principal:     principal,
		signingKey:    []byte(secret),
		tokenLifetime: lifetime,
		timeFunc:      timeFunc,
		clockSkew:     30 * time.Second,
	}
}
