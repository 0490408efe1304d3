package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marketplace/identity-service/internal/core/ports"
)

// SessionAuth resolves the request's session identifier against the
// server-side session store and injects the identity into context. Requests
// without a live session are rejected before the handler runs.
func SessionAuth(store ports.SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid, ok := CurrentSessionID(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			sess, err := store.Get(c.Request().Context(), sid)
			if err != nil {
				return fmt.Errorf("session lookup: %w", err)
			}
			if sess == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			c.Set("user_id", sess.UserID)
			c.Set("role", sess.Role)

			return next(c)
		}
	}
}
