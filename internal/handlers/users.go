package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/printshop/internal/models"
	"github.com/Skotchmaster/printshop/internal/service"
	"github.com/Skotchmaster/printshop/internal/transport"
	"github.com/Skotchmaster/printshop/pkg/logging"
)

type UserHandler struct {
	Svc *service.UserService
}

type userResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

func (h *UserHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin_users.list")

	users, err := h.Svc.List(ctx)
	if err != nil {
		return fail(l, "list_users_error", err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin_users.create")

	var req transport.CreateUserRequest
	if err := bindAndValidate(c, l, "create_user_error", &req); err != nil {
		return err
	}

	user, err := h.Svc.Create(ctx, req)
	if err != nil {
		return fail(l, "create_user_error", err)
	}
	return c.JSON(http.StatusCreated, userResponse{Message: "User created successfully", User: user})
}

func (h *UserHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin_users.update")

	id, err := parseID(c, l, "update_user_error", "id")
	if err != nil {
		return err
	}
	var req transport.UpdateUserRequest
	if err := bindAndValidate(c, l, "update_user_error", &req); err != nil {
		return err
	}

	user, err := h.Svc.Update(ctx, id, req)
	if err != nil {
		return fail(l, "update_user_error", err)
	}
	return c.JSON(http.StatusOK, userResponse{Message: "User updated successfully", User: user})
}

func (h *UserHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin_users.delete")

	id, err := parseID(c, l, "delete_user_error", "id")
	if err != nil {
		return err
	}
	if err := h.Svc.Delete(ctx, id); err != nil {
		return fail(l, "delete_user_error", err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "User deleted successfully"})
}
