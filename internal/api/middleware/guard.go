package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/projecthub/portal-api/internal/api/metrics"
	"github.com/projecthub/portal-api/internal/core/ports"
)

// Guard asks the access guard whether the request's session may proceed and
// translates a denial into the HTTP-level redirect side effect (401/403).
// The guard itself only decides; this middleware owns the consequence.
func Guard(guard ports.AccessGuard, requiredRoles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid, _ := c.Get("sid").(string)

			decision := guard.Authorize(c.Request().Context(), sid, requiredRoles...)
			if !decision.Allowed {
				metrics.AccessDeniedTotal.WithLabelValues(string(decision.Reason)).Inc()
				switch decision.Reason {
				case ports.DenyRoleMismatch:
					return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
				default:
					return c.JSON(http.StatusUnauthorized, map[string]string{"error": "not logged in"})
				}
			}

			c.Set("user", decision.User)
			return next(c)
		}
	}
}
