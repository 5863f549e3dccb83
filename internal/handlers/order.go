package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/printshop/internal/middleware/auth"
	"github.com/Skotchmaster/printshop/internal/service"
	"github.com/Skotchmaster/printshop/internal/transport"
	"github.com/Skotchmaster/printshop/pkg/logging"
)

type OrderHandler struct {
	Svc *service.OrderService
}

func (h *OrderHandler) MyOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.mine")

	orders, err := h.Svc.MyOrders(ctx, auth.CurrentUser(c).ID)
	if err != nil {
		return fail(l, "my_orders_error", err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.get")

	id, err := parseID(c, l, "get_order_error", "id")
	if err != nil {
		return err
	}
	order, err := h.Svc.Get(ctx, auth.CurrentUser(c), id)
	if err != nil {
		return fail(l, "get_order_error", err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin_orders.list")

	orders, err := h.Svc.List(ctx)
	if err != nil {
		return fail(l, "list_orders_error", err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin_orders.update")

	id, err := parseID(c, l, "update_order_error", "id")
	if err != nil {
		return err
	}
	var req transport.OrderStatusRequest
	if err := bindAndValidate(c, l, "update_order_error", &req); err != nil {
		return err
	}

	order, err := h.Svc.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		return fail(l, "update_order_error", err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin_orders.delete")

	id, err := parseID(c, l, "delete_order_error", "id")
	if err != nil {
		return err
	}
	if err := h.Svc.Delete(ctx, id); err != nil {
		return fail(l, "delete_order_error", err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Order deleted successfully"})
}

func (h *OrderHandler) Export(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin_orders.export")

	var buf bytes.Buffer
	if err := h.Svc.ExportCSV(ctx, &buf); err != nil {
		return fail(l, "export_orders_error", err)
	}
	return sendCSV(c, "orders", buf.Bytes())
}

func sendCSV(c echo.Context, name string, data []byte) error {
	filename := fmt.Sprintf("%s-%s.csv", name, time.Now().UTC().Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", data)
}
