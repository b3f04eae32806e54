package auth

import (
	"context"
	"time"
)

// Principal identifies which kind of account a token was issued for.
type Principal string

// Principal kinds. User and restaurant tokens are signed with separate keys
// and carry the identifier under different claim names.
const (
	PrincipalUser       Principal = "user"
	PrincipalRestaurant Principal = "restaurant"
)

// JWTService defines operations for managing JWT authentication tokens for
// one kind of principal.
type JWTService interface {
	// GenerateToken creates a signed JWT access token for the given account ID.
	// Returns the token string or an error if token generation fails.
	GenerateToken(ctx context.Context, subjectID string) (string, error)

	// ValidateToken validates the provided token string and extracts the claims.
	// Returns ErrExpiredToken, ErrInvalidToken or ErrWrongPrincipal on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the validated content of a token.
type Claims struct {
	// SubjectID is the user or restaurant ID the token was issued for, taken
	// from the userId or restaurantId claim.
	SubjectID string

	// Principal says which of the two claims carried SubjectID.
	Principal Principal

	// Standard registered JWT claims
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}
