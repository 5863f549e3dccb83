package auth

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/printshop/internal/service"
	"github.com/Skotchmaster/printshop/pkg/logging"
)

// Protect requires a valid bearer token whose user still exists.
func (m *Middleware) Protect(next echo.HandlerFunc) echo.HandlerFunc {
	return m.jwt(false)(m.loadUser(false, next))
}

// Optional loads the user when a bearer token is sent and lets anonymous
// requests through.
func (m *Middleware) Optional(next echo.HandlerFunc) echo.HandlerFunc {
	return m.jwt(true)(m.loadUser(true, next))
}

func (m *Middleware) loadUser(optional bool, next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		l := logging.FromContext(ctx).With("middleware", "auth")

		claims, ok := claimsFrom(c)
		if !ok {
			if optional {
				return next(c)
			}
			return echo.NewHTTPError(http.StatusUnauthorized, msgNoToken)
		}

		user, err := m.Users.Authenticate(ctx, claims)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				l.Warnw("auth_failed", "status", 401, "reason", "user not found", "user_id", claims.UserID)
				return echo.NewHTTPError(http.StatusUnauthorized, msgUserNotFound)
			}
			l.Errorw("auth_failed", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
		}

		c.Set(userKey, user)
		ctx = logging.IntoContext(ctx, logging.FromContext(ctx).With("user_id", user.ID))
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}
