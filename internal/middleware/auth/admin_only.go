package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/printshop/pkg/logging"
)

// Admin lets only admins through; chain it after Protect.
func (m *Middleware) Admin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := CurrentUser(c)
		if !user.IsAdmin() {
			logging.FromContext(c.Request().Context()).Warnw("admin_required", "status", 403)
			return echo.NewHTTPError(http.StatusForbidden, msgNotAdmin)
		}
		return next(c)
	}
}
