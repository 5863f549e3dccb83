package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Skotchmaster/printshop/internal/service"
)

type MessageResponse struct {
	Message string `json:"message"`
}

func parseID(c echo.Context, l *zap.SugaredLogger, event, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		l.Warnw(event, "status", 400, "reason", "invalid id", "error", err)
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func bindAndValidate(c echo.Context, l *zap.SugaredLogger, event string, req any) error {
	if err := c.Bind(req); err != nil {
		l.Warnw(event, "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(req); err != nil {
		l.Warnw(event, "status", 400, "reason", "validation failed", "error", err)
		return err
	}
	return nil
}

// fail turns a service error into the HTTP error the client sees.
func fail(l *zap.SugaredLogger, event string, err error) error {
	code := service.HTTPStatus(err)
	if code == http.StatusInternalServerError {
		l.Errorw(event, "status", code, "error", err)
		return echo.NewHTTPError(code, "Server error")
	}
	msg := service.Message(err)
	l.Warnw(event, "status", code, "reason", msg)
	return echo.NewHTTPError(code, msg)
}
