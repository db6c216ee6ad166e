package middleware

import (
	"net/http"
	"strings"

	"paint-it-black-manufacturer/internal/service"

	"github.com/labstack/echo/v4"
)

const identityKey = "identity"

// TokenVerifier turns a bearer credential into the caller identity.
type TokenVerifier interface {
	Verify(token string) (service.Identity, error)
}

// JWTAuth rejects requests without a valid bearer token and stores the caller identity on the context.
func JWTAuth(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			scheme, token, ok := strings.Cut(auth, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			identity, err := verifier.Verify(strings.TrimSpace(token))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(identityKey, identity)
			return next(c)
		}
	}
}

// RequireAdmin must run after JWTAuth.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !IdentityFrom(c).IsAdmin() {
				return echo.NewHTTPError(http.StatusForbidden, "admin role required")
			}
			return next(c)
		}
	}
}

// IdentityFrom returns the caller identity, or the zero Identity on unauthenticated routes.
func IdentityFrom(c echo.Context) service.Identity {
	identity, _ := c.Get(identityKey).(service.Identity)
	return identity
}
