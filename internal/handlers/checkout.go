package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/printshop/internal/middleware/auth"
	"github.com/Skotchmaster/printshop/internal/service"
	"github.com/Skotchmaster/printshop/internal/transport"
	"github.com/Skotchmaster/printshop/pkg/logging"
)

type CheckoutHandler struct {
	Svc *service.CheckoutService
}

func (h *CheckoutHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.create")

	var req transport.CheckoutRequest
	if err := bindAndValidate(c, l, "create_checkout_error", &req); err != nil {
		return err
	}

	co, err := h.Svc.Create(ctx, auth.CurrentUser(c), req)
	if err != nil {
		return fail(l, "create_checkout_error", err)
	}
	return c.JSON(http.StatusCreated, co)
}

func (h *CheckoutHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.get")

	id, err := parseID(c, l, "get_checkout_error", "id")
	if err != nil {
		return err
	}
	co, err := h.Svc.Get(ctx, auth.CurrentUser(c), id)
	if err != nil {
		return fail(l, "get_checkout_error", err)
	}
	return c.JSON(http.StatusOK, co)
}

func (h *CheckoutHandler) Pay(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.pay")

	id, err := parseID(c, l, "pay_checkout_error", "id")
	if err != nil {
		return err
	}
	var req transport.PayRequest
	if err := bindAndValidate(c, l, "pay_checkout_error", &req); err != nil {
		return err
	}

	co, err := h.Svc.Pay(ctx, auth.CurrentUser(c), id, req)
	if err != nil {
		return fail(l, "pay_checkout_error", err)
	}
	return c.JSON(http.StatusOK, co)
}

func (h *CheckoutHandler) Finalize(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.finalize")

	id, err := parseID(c, l, "finalize_checkout_error", "id")
	if err != nil {
		return err
	}
	order, err := h.Svc.Finalize(ctx, auth.CurrentUser(c), id)
	if err != nil {
		return fail(l, "finalize_checkout_error", err)
	}
	l.Infow("checkout_finalized", "status", 201, "checkout_id", id, "order_id", order.ID)
	return c.JSON(http.StatusCreated, order)
}
