package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Skotchmaster/printshop/internal/middleware/auth"
	"github.com/Skotchmaster/printshop/internal/repo"
	"github.com/Skotchmaster/printshop/internal/service"
	"github.com/Skotchmaster/printshop/internal/transport"
	"github.com/Skotchmaster/printshop/pkg/logging"
)

// CartHandler serves both guest and signed-in carts. Routes sit behind the
// optional auth middleware; a guest names the cart with guestId.
type CartHandler struct {
	Svc *service.CartService
}

func owner(c echo.Context, l *zap.SugaredLogger, event, guestID string) (repo.CartOwner, error) {
	o, err := service.Owner(auth.CurrentUser(c), guestID)
	if err != nil {
		return repo.CartOwner{}, fail(l, event, err)
	}
	return o, nil
}

func (h *CartHandler) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	o, err := owner(c, l, "get_cart_error", c.QueryParam("guestId"))
	if err != nil {
		return err
	}
	cart, err := h.Svc.Get(ctx, o)
	if err != nil {
		return fail(l, "get_cart_error", err)
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	var req transport.CartLineRequest
	if err := bindAndValidate(c, l, "add_to_cart_error", &req); err != nil {
		return err
	}
	o, err := owner(c, l, "add_to_cart_error", req.GuestID)
	if err != nil {
		return err
	}

	cart, err := h.Svc.Add(ctx, o, req)
	if err != nil {
		return fail(l, "add_to_cart_error", err)
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) UpdateCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update")

	var req transport.CartLineRequest
	if err := bindAndValidate(c, l, "update_cart_error", &req); err != nil {
		return err
	}
	o, err := owner(c, l, "update_cart_error", req.GuestID)
	if err != nil {
		return err
	}

	cart, err := h.Svc.Update(ctx, o, req)
	if err != nil {
		return fail(l, "update_cart_error", err)
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	var req transport.CartLineRequest
	if err := bindAndValidate(c, l, "remove_from_cart_error", &req); err != nil {
		return err
	}
	o, err := owner(c, l, "remove_from_cart_error", req.GuestID)
	if err != nil {
		return err
	}

	cart, err := h.Svc.Remove(ctx, o, req)
	if err != nil {
		return fail(l, "remove_from_cart_error", err)
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) MergeCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.merge")

	var req transport.MergeCartRequest
	if err := bindAndValidate(c, l, "merge_cart_error", &req); err != nil {
		return err
	}

	cart, err := h.Svc.Merge(ctx, auth.CurrentUser(c).ID, req.GuestID)
	if err != nil {
		return fail(l, "merge_cart_error", err)
	}
	return c.JSON(http.StatusOK, cart)
}
