package jwt

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/tracker/pkg/auth"
)

const claimsKey = "claims"

// Verifier is the part of the auth use case the middleware needs.
type Verifier interface {
	VerifyToken(ctx context.Context, token string) (auth.Claims, error)
}

// NewAuthMiddleware returns a Fiber middleware that validates the Bearer token.
// On success the decoded claims are stored in c.Locals and can be read with ClaimsFrom.
func NewAuthMiddleware(v Verifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := bearerToken(c.Get(fiber.HeaderAuthorization))
		if tokenStr == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "missing token"})
		}
		claims, err := v.VerifyToken(c.UserContext(), tokenStr)
		if err != nil {
			if errors.Is(err, auth.ErrUnauthenticated) {
				return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
			}
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to verify token"})
		}
		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// RequireRole rejects requests whose token does not carry the given role.
// It must run after NewAuthMiddleware.
func RequireRole(role auth.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFrom(c)
		if !ok {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "missing token"})
		}
		if err := auth.RequireRole(claims, role); err != nil {
			return c.Status(http.StatusForbidden).JSON(fiber.Map{"error": "admin access only"})
		}
		return c.Next()
	}
}

// ClaimsFrom returns the claims stored by NewAuthMiddleware.
func ClaimsFrom(c *fiber.Ctx) (auth.Claims, bool) {
	claims, ok := c.Locals(claimsKey).(auth.Claims)
	return claims, ok
}

// WithClaims stores claims the way NewAuthMiddleware does; handlers' tests use it.
func WithClaims(c *fiber.Ctx, claims auth.Claims) {
	c.Locals(claimsKey, claims)
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
