package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/NefariousNGGA/backend/internal/config"
	"github.com/NefariousNGGA/backend/internal/domain"
	"github.com/NefariousNGGA/backend/internal/monitoring"
	"github.com/NefariousNGGA/backend/internal/present/rest/middleware"
)

const serviceName = "platos-lair"

// NewServer assembles the echo instance with the shared middleware stack and
// every route.
func NewServer(conf config.Config, handler *Handler, auth *middleware.AuthMiddleware) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	if conf.Server.EnableTrace {
		e.Use(otelecho.Middleware(serviceName))
	}
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURIPath:  true,
		LogMethod:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			// The query string can carry a credential, so only the path is logged.
			slog.LogAttrs(
				context.Background(), level, "request",
				slog.String("method", v.Method),
				slog.String("path", v.URIPath),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("module", "http"),
			)
			return nil
		},
	}))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOriginFunc: func(origin string) (bool, error) {
			return true, nil
		},
		AllowHeaders: []string{
			echo.HeaderContentType,
			domain.CredentialHeader,
			domain.LookupKeyHeader,
			domain.AdminTokenHeader,
		},
		AllowCredentials: true,
	}))
	e.Use(monitoring.Instrument)
	e.Use(auth.IdentifyIdentity)

	handler.RegisterRoutes(e)
	return e
}
