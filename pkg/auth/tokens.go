package auth

import (
	"context"
	"time"
)

// TokenIssuer abstracts signed token creation and verification (e.g., JWT).
// It allows use cases to stay framework-agnostic.
type TokenIssuer interface {
	Generate(ctx context.Context, user User) (string, Claims, error)
	Parse(ctx context.Context, token string) (Claims, error)
}

// Denylist keeps ids of tokens that were logged out before their expiry.
type Denylist interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
