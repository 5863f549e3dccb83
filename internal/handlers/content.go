package handlers

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/printshop/internal/middleware/auth"
	"github.com/Skotchmaster/printshop/internal/models"
	"github.com/Skotchmaster/printshop/internal/service"
	"github.com/Skotchmaster/printshop/internal/transport"
	"github.com/Skotchmaster/printshop/pkg/logging"
)

type PortfolioHandler struct {
	Svc *service.PortfolioService
}

func (h *PortfolioHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "portfolio.list")

	items, err := h.Svc.List(ctx)
	if err != nil {
		return fail(l, "list_portfolio_error", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *PortfolioHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "portfolio.get")

	id, err := parseID(c, l, "get_portfolio_error", "id")
	if err != nil {
		return err
	}
	item, err := h.Svc.Get(ctx, id)
	if err != nil {
		return fail(l, "get_portfolio_error", err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *PortfolioHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "portfolio.create")

	var req transport.PortfolioRequest
	if err := bindAndValidate(c, l, "create_portfolio_error", &req); err != nil {
		return err
	}
	item, err := h.Svc.Create(ctx, req)
	if err != nil {
		return fail(l, "create_portfolio_error", err)
	}
	return c.JSON(http.StatusCreated, item)
}

func (h *PortfolioHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "portfolio.update")

	id, err := parseID(c, l, "update_portfolio_error", "id")
	if err != nil {
		return err
	}
	var req transport.PortfolioRequest
	if err := bindAndValidate(c, l, "update_portfolio_error", &req); err != nil {
		return err
	}
	item, err := h.Svc.Update(ctx, id, req)
	if err != nil {
		return fail(l, "update_portfolio_error", err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *PortfolioHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "portfolio.delete")

	id, err := parseID(c, l, "delete_portfolio_error", "id")
	if err != nil {
		return err
	}
	if err := h.Svc.Delete(ctx, id); err != nil {
		return fail(l, "delete_portfolio_error", err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Portfolio deleted"})
}

type ReviewHandler struct {
	Svc *service.ReviewService
}

type reviewCreated struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Review  *models.Review `json:"review"`
}

type reviewList struct {
	Success bool `json:"success"`
	*service.ReviewSummary
}

func (h *ReviewHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "reviews.create")

	var req transport.ReviewRequest
	if err := bindAndValidate(c, l, "create_review_error", &req); err != nil {
		return err
	}
	r, err := h.Svc.Create(ctx, req)
	if err != nil {
		return fail(l, "create_review_error", err)
	}
	return c.JSON(http.StatusCreated, reviewCreated{Success: true, Message: "Review submitted successfully", Review: r})
}

func (h *ReviewHandler) ForProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "reviews.list")

	id, err := parseID(c, l, "list_reviews_error", "productId")
	if err != nil {
		return err
	}
	sum, err := h.Svc.ForProduct(ctx, id)
	if err != nil {
		return fail(l, "list_reviews_error", err)
	}
	return c.JSON(http.StatusOK, reviewList{Success: true, ReviewSummary: sum})
}

type ContactHandler struct {
	Svc *service.ContactService
}

func (h *ContactHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "contact.create")

	var req transport.ContactRequest
	if err := bindAndValidate(c, l, "create_contact_error", &req); err != nil {
		return err
	}
	msg, err := h.Svc.Create(ctx, req)
	if err != nil {
		return fail(l, "create_contact_error", err)
	}
	return c.JSON(http.StatusCreated, msg)
}

func (h *ContactHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "contact.list")

	items, err := h.Svc.List(ctx)
	if err != nil {
		return fail(l, "list_contact_error", err)
	}
	return c.JSON(http.StatusOK, items)
}

type SubscribeHandler struct {
	Svc *service.SubscribeService
}

func (h *SubscribeHandler) Subscribe(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "subscribe.create")

	var req transport.SubscribeRequest
	if err := bindAndValidate(c, l, "subscribe_error", &req); err != nil {
		return err
	}
	if _, err := h.Svc.Subscribe(ctx, req.Email); err != nil {
		return fail(l, "subscribe_error", err)
	}
	return c.JSON(http.StatusCreated, MessageResponse{Message: "You have been subscribed to our newsletter."})
}

func (h *SubscribeHandler) Export(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "subscribe.export")

	var buf bytes.Buffer
	if err := h.Svc.ExportCSV(ctx, &buf); err != nil {
		return fail(l, "export_subscribers_error", err)
	}
	return sendCSV(c, "subscribers", buf.Bytes())
}

type BlogHandler struct {
	Svc *service.BlogService
}

func (h *BlogHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "blog.list")

	posts, err := h.Svc.List(ctx)
	if err != nil {
		return fail(l, "list_blog_error", err)
	}
	return c.JSON(http.StatusOK, posts)
}

func (h *BlogHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "blog.get")

	id, err := parseID(c, l, "get_blog_error", "id")
	if err != nil {
		return err
	}
	post, err := h.Svc.Get(ctx, id)
	if err != nil {
		return fail(l, "get_blog_error", err)
	}
	return c.JSON(http.StatusOK, post)
}

func (h *BlogHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "blog.create")

	var req transport.BlogPostRequest
	if err := bindAndValidate(c, l, "create_blog_error", &req); err != nil {
		return err
	}
	post, err := h.Svc.Create(ctx, auth.CurrentUser(c), req)
	if err != nil {
		return fail(l, "create_blog_error", err)
	}
	return c.JSON(http.StatusCreated, post)
}

func (h *BlogHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "blog.update")

	id, err := parseID(c, l, "update_blog_error", "id")
	if err != nil {
		return err
	}
	var req transport.BlogPostRequest
	if err := bindAndValidate(c, l, "update_blog_error", &req); err != nil {
		return err
	}
	post, err := h.Svc.Update(ctx, id, req)
	if err != nil {
		return fail(l, "update_blog_error", err)
	}
	return c.JSON(http.StatusOK, post)
}

func (h *BlogHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "blog.delete")

	id, err := parseID(c, l, "delete_blog_error", "id")
	if err != nil {
		return err
	}
	if err := h.Svc.Delete(ctx, id); err != nil {
		return fail(l, "delete_blog_error", err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Blog post removed"})
}
