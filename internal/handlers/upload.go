package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/printshop/internal/storage"
	"github.com/Skotchmaster/printshop/pkg/logging"
)

const msgUploadImage = "Please upload an image"

type ImageStore interface {
	SaveImage(ctx context.Context, r io.Reader) (string, error)
}

type UploadHandler struct {
	Store ImageStore
}

type uploadResponse struct {
	ImageURL string `json:"imageUrl"`
}

func (h *UploadHandler) Upload(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "upload.image")

	fh, err := c.FormFile("image")
	if err != nil {
		l.Warnw("upload_error", "status", 400, "reason", "missing file", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, msgUploadImage)
	}
	f, err := fh.Open()
	if err != nil {
		l.Errorw("upload_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}
	defer f.Close()

	url, err := h.Store.SaveImage(ctx, f)
	switch {
	case errors.Is(err, storage.ErrNotImage):
		l.Warnw("upload_error", "status", 400, "reason", "not an image", "filename", fh.Filename)
		return echo.NewHTTPError(http.StatusBadRequest, msgUploadImage)
	case errors.Is(err, storage.ErrTooLarge):
		l.Warnw("upload_error", "status", 400, "reason", "too large", "size", fh.Size)
		return echo.NewHTTPError(http.StatusBadRequest, "Image is too large")
	case err != nil:
		l.Errorw("upload_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	l.Infow("image_uploaded", "status", 200, "url", url)
	return c.JSON(http.StatusOK, uploadResponse{ImageURL: url})
}
