package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/printshop/internal/service"
	"github.com/Skotchmaster/printshop/internal/util"
	"github.com/Skotchmaster/printshop/pkg/logging"
)

type SearchHandler struct {
	Products *service.ProductService
}

// Search answers GET /api/products/search?q=&page=&size= with one page of
// matches and its paging meta.
func (h *SearchHandler) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.search")

	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		l.Warnw("search_error", "status", 400, "reason", "empty query")
		return echo.NewHTTPError(http.StatusBadRequest, "Search query is required")
	}
	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)

	res, err := h.Products.Search(ctx, q, page, size)
	if err != nil {
		return fail(l, "search_error", err)
	}
	return c.JSON(http.StatusOK, res)
}
