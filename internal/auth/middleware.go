package auth

import (
	"net/http"
	"slices"
	"strings"

	"github.com/labstack/echo/v4"

	"courseMarketplace/models"
)

// ctxPrincipal is the echo context key the middleware stores the Principal under.
const ctxPrincipal = "principal"

// RequireAuth returns echo middleware that extracts and validates a Bearer
// session token from the Authorization header and stores the Principal on the
// request context.
func RequireAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing or malformed authorization header")
			}
			p, err := Parse(strings.TrimSpace(parts[1]), secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}
			c.Set(ctxPrincipal, p)
			return next(c)
		}
	}
}

// RequireRole returns echo middleware that rejects callers whose role is not
// in the allowed set. Must run after RequireAuth.
func RequireRole(allowed ...models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := CurrentPrincipal(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing principal")
			}
			if !slices.Contains(allowed, p.Role) {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
			}
			return next(c)
		}
	}
}

// CurrentPrincipal returns the Principal stored by RequireAuth, if present.
func CurrentPrincipal(c echo.Context) (*Principal, bool) {
	p, ok := c.Get(ctxPrincipal).(*Principal)
	return p, ok
}
