package presenter

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/NefariousNGGA/backend/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

// OK wraps a successful response.
func OK(c echo.Context, payload any) error {
	return c.JSON(http.StatusOK, payload)
}

func Created(c echo.Context, payload any) error {
	return c.JSON(http.StatusCreated, payload)
}

func BadRequest(c echo.Context, err error) error {
	slog.DebugContext(c.Request().Context(), "bad request", slog.String("error", err.Error()), slog.String("module", "presenter"))
	return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
}

func BadRequestMessage(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Error: msg})
}

func Unauthorized(c echo.Context, msg string) error {
	return c.JSON(http.StatusUnauthorized, errorResponse{Error: msg})
}

func NotFound(c echo.Context, msg string) error {
	return c.JSON(http.StatusNotFound, errorResponse{Error: msg})
}

func InternalError(c echo.Context, err error) error {
	slog.ErrorContext(c.Request().Context(), "internal error", slog.String("error", err.Error()), slog.String("module", "presenter"))
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

// Error renders a domain error with its matching status. Anything unknown is
// an internal error and its details stay in the log.
func Error(c echo.Context, err error) error {
	cause := errors.Cause(err)
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return BadRequest(c, cause)
	case errors.Is(err, domain.ErrUnauthorized):
		return Unauthorized(c, cause.Error())
	case errors.Is(err, domain.ErrForbidden):
		return c.JSON(http.StatusForbidden, errorResponse{Error: cause.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return NotFound(c, cause.Error())
	case errors.Is(err, domain.ErrConflict):
		return c.JSON(http.StatusConflict, errorResponse{Error: cause.Error()})
	default:
		return InternalError(c, err)
	}
}
