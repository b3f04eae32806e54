package shared

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/food-delivery-api/internal/service/auth"
)

// ContextKey is the type of request context keys set by the API layer.
type ContextKey string

const (
	// TraceIDKey is the key for the trace ID in the request context
	TraceIDKey ContextKey = "traceID"

	// ClaimsKey is the key for validated bearer token claims
	ClaimsKey ContextKey = "claims"
)

// SetTraceID adds a fresh trace ID to the context.
// Trace IDs correlate log lines with error responses.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, uuid.NewString())
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// WithClaims stores validated token claims in the context.
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, ClaimsKey, claims)
}

// GetClaims returns the token claims stored by the bearer middleware, if any.
func GetClaims(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*auth.Claims)
	return claims, ok && claims != nil
}
