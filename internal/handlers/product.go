package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/printshop/internal/middleware/auth"
	"github.com/Skotchmaster/printshop/internal/service"
	"github.com/Skotchmaster/printshop/internal/transport"
	"github.com/Skotchmaster/printshop/pkg/logging"
)

type ProductHandler struct {
	Svc *service.ProductService
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.list")

	var q transport.ProductQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		l.Warnw("list_products_error", "status", 400, "reason", "invalid query", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}

	items, err := h.Svc.List(ctx, q)
	if err != nil {
		return fail(l, "list_products_error", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.get")

	id, err := parseID(c, l, "get_product_error", "id")
	if err != nil {
		return err
	}
	p, err := h.Svc.Get(ctx, id)
	if err != nil {
		return fail(l, "get_product_error", err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) BestSeller(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.best_seller")

	p, err := h.Svc.BestSeller(ctx)
	if err != nil {
		return fail(l, "best_seller_error", err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) NewArrivals(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.new_arrivals")

	items, err := h.Svc.NewArrivals(ctx)
	if err != nil {
		return fail(l, "new_arrivals_error", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ProductHandler) Similar(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.similar")

	id, err := parseID(c, l, "similar_products_error", "id")
	if err != nil {
		return err
	}
	items, err := h.Svc.Similar(ctx, id)
	if err != nil {
		return fail(l, "similar_products_error", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.create")

	var req transport.ProductRequest
	if err := bindAndValidate(c, l, "create_product_error", &req); err != nil {
		return err
	}

	p, err := h.Svc.Create(ctx, auth.CurrentUser(c).ID, req)
	if err != nil {
		return fail(l, "create_product_error", err)
	}
	l.Infow("product_created", "status", 201, "product_id", p.ID)
	return c.JSON(http.StatusCreated, p)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.update")

	id, err := parseID(c, l, "update_product_error", "id")
	if err != nil {
		return err
	}
	var req transport.ProductRequest
	if err := bindAndValidate(c, l, "update_product_error", &req); err != nil {
		return err
	}

	p, err := h.Svc.Update(ctx, id, req)
	if err != nil {
		return fail(l, "update_product_error", err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.delete")

	id, err := parseID(c, l, "delete_product_error", "id")
	if err != nil {
		return err
	}
	if err := h.Svc.Delete(ctx, id); err != nil {
		return fail(l, "delete_product_error", err)
	}
	l.Infow("product_deleted", "status", 200, "product_id", id)
	return c.JSON(http.StatusOK, MessageResponse{Message: "Product removed"})
}

func (h *ProductHandler) AdminProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin_products.list")

	items, err := h.Svc.AdminList(ctx)
	if err != nil {
		return fail(l, "admin_products_error", err)
	}
	return c.JSON(http.StatusOK, items)
}
