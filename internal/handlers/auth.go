package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/printshop/internal/middleware/auth"
	"github.com/Skotchmaster/printshop/internal/service"
	"github.com/Skotchmaster/printshop/internal/transport"
	"github.com/Skotchmaster/printshop/pkg/logging"
)

type AuthHandler struct {
	Svc *service.AuthService
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := bindAndValidate(c, l, "register_error", &req); err != nil {
		return err
	}

	res, err := h.Svc.Register(ctx, req)
	if err != nil {
		return fail(l, "register_error", err)
	}
	return c.JSON(http.StatusCreated, res)
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := bindAndValidate(c, l, "login_error", &req); err != nil {
		return err
	}

	res, err := h.Svc.Login(ctx, req)
	if err != nil {
		return fail(l, "login_error", err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *AuthHandler) Profile(c echo.Context) error {
	return c.JSON(http.StatusOK, auth.CurrentUser(c))
}
