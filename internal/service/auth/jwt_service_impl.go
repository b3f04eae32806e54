package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/food-delivery-api/internal/config"
	"github.com/phrazzld/food-delivery-api/internal/platform/logger"
)

// minSecretLength is the shortest signing key accepted.
const minSecretLength = 32

// hmacJWTService is an implementation of JWTService using HMAC-SHA signing.
type hmacJWTService struct {
	principal     Principal
	signingKey    []byte
	tokenLifetime time.Duration
	timeFunc      func() time.Time // Injectable for testing
	clockSkew     time.Duration    // Allowed time difference for validation to handle clock drift
}

// jwtCustomClaims is the token payload: {"userId": ...} for users and
// {"restaurantId": ...} for restaurants, plus the registered claims.
type jwtCustomClaims struct {
	UserID       string `json:"userId,omitempty"`
	RestaurantID string `json:"restaurantId,omitempty"`
	jwt.RegisteredClaims
}

func (c *jwtCustomClaims) subjectID(p Principal) string {
	if p == PrincipalRestaurant {
		return c.RestaurantID
	}
	return c.UserID
}

// Ensure hmacJWTService implements JWTService interface
var _ JWTService = (*hmacJWTService)(nil)

// NewUserJWTService creates the token service for user accounts.
func NewUserJWTService(cfg config.AuthConfig) (JWTService, error) {
	return NewJWTService(PrincipalUser, cfg.UserJWTSecret, cfg.TokenLifetimeMinutes)
}

// NewRestaurantJWTService creates the token service for restaurant accounts.
func NewRestaurantJWTService(cfg config.AuthConfig) (JWTService, error) {
	return NewJWTService(PrincipalRestaurant, cfg.RestaurantJWTSecret, cfg.TokenLifetimeMinutes)
}

// NewJWTService creates a JWT service for principal using HMAC-SHA256 signing.
func NewJWTService(principal Principal, secret string, lifetimeMinutes int) (JWTService, error) {
	if principal != PrincipalUser && principal != PrincipalRestaurant {
		return nil, fmt.Errorf("unknown token principal %q", principal)
	}
	if len(secret) < minSecretLength {
		return nil, fmt.Errorf("%s jwt secret must be at least %d characters", principal, minSecretLength)
	}
	if lifetimeMinutes <= 0 {
		return nil, fmt.Errorf("token lifetime must be positive")
	}

	return &hmacJWTService{
		principal:     principal,
		signingKey:    []byte(secret),
		tokenLifetime: time.Duration(lifetimeMinutes) * time.Minute,
		timeFunc:      time.Now,
		clockSkew:     30 * time.Second,
	}, nil
}

// GenerateToken creates a signed JWT access token for subjectID.
func (s *hmacJWTService) GenerateToken(ctx context.Context, subjectID string) (string, error) {
	log := logger.FromContext(ctx)
	if subjectID == "" {
		return "", fmt.Errorf("cannot issue %s token without an id", s.principal)
	}

	now := s.timeFunc()
	claims := jwtCustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenLifetime)),
			ID:        uuid.New().String(),
		},
	}
	if s.principal == PrincipalRestaurant {
		claims.RestaurantID = subjectID
	} else {
		claims.UserID = subjectID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(s.signingKey)
	if err != nil {
		log.Error("failed to sign JWT access token",
			"error", err,
			"principal", s.principal,
			"signing_method", jwt.SigningMethodHS256.Name)
		return "", fmt.Errorf("failed to sign access token with HMAC-SHA256: %w", err)
	}

	return signedToken, nil
}

// ValidateToken validates a JWT access token and returns the claims if valid.
func (s *hmacJWTService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	log := logger.FromContext(ctx).With("principal", s.principal)
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	now := s.timeFunc()
	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwtCustomClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(s.clockSkew),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			log.Debug("token validation failed: token expired")
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			log.Debug("token validation failed: token not yet valid")
			return nil, ErrTokenNotYetValid
		default:
			log.Debug("token validation failed",
				"error", err,
				"error_type", fmt.Sprintf("%T", err))
			return nil, ErrInvalidToken
		}
	}

	claims, ok := token.Claims.(*jwtCustomClaims)
	if !ok || !token.Valid {
		log.Debug("token validation failed: invalid claims")
		return nil, ErrInvalidToken
	}

	subjectID := claims.subjectID(s.principal)
	if subjectID == "" {
		log.Debug("token validation failed: principal claim missing")
		return nil, ErrWrongPrincipal
	}

	log.Debug("token validated successfully", "token_id", claims.ID)
	return &Claims{
		SubjectID: subjectID,
		Principal: s.principal,
		Subject:   claims.Subject,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
		ID:        claims.ID,
	}, nil
}
