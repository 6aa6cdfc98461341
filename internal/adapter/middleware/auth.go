package middleware

import (
	"net/http"
	"strings"

	"lendcircle-backend/internal/auth"

	"github.com/labstack/echo/v4"
)

const identityKey = "auth.identity"

// Identity is the authenticated caller, extracted from the bearer token
// and stashed in the echo context.
type Identity struct {
	UserID string
	Email  string
	Roles  []string
}

func (i Identity) HasRole(role string) bool {
	for _, r := range i.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// JWTAuth rejects requests without a valid HS256 bearer token.
func JWTAuth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			}
			claims, err := auth.ParseToken(strings.TrimSpace(token), secret)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid or expired token"})
			}
			c.Set(identityKey, Identity{UserID: claims.UserID, Email: claims.Email, Roles: claims.Roles})
			return next(c)
		}
	}
}

// IdentityFrom returns the caller identity set by JWTAuth.
func IdentityFrom(c echo.Context) (Identity, bool) {
	ident, ok := c.Get(identityKey).(Identity)
	return ident, ok
}

// RequireRole guards a route group behind a role claim.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ident, ok := IdentityFrom(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
			}
			if !ident.HasRole(role) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "INSUFFICIENT_ROLE"})
			}
			return next(c)
		}
	}
}
