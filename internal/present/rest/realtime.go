package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/NefariousNGGA/backend/internal/domain"
	"github.com/NefariousNGGA/backend/internal/present/rest/middleware"
	"github.com/NefariousNGGA/backend/internal/present/rest/presenter"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type realtimeRequest struct {
	Type string `json:"type"`
}

// handleRealtime streams the requester's new notifications. Browsers cannot
// set headers on a websocket handshake, so the credential may also arrive as
// the token and key query parameters.
func (h *Handler) handleRealtime(c echo.Context) error {
	if h.signal == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "realtime disabled"})
	}

	ctx := c.Request().Context()
	requester := middleware.Requester(ctx)
	if requester == nil && c.QueryParam("token") != "" {
		identity, err := h.identity.Resolve(ctx, c.QueryParam("token"), c.QueryParam("key"))
		if err != nil {
			return presenter.Error(c, err)
		}
		requester = identity
	}
	if requester == nil {
		return presenter.Unauthorized(c, "not authenticated")
	}

	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error(
			"Failed to upgrade WebSocket",
			slog.String("error", err.Error()),
			slog.String("module", "socket"),
		)
		return err
	}
	defer ws.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan domain.Event)
	go func() {
		err := h.signal.Subscribe(ctx, requester.ID, events)
		if err != nil {
			slog.ErrorContext(
				ctx, "Realtime subscription failed",
				slog.String("error", err.Error()),
				slog.String("module", "socket"),
			)
		}
		cancel()
	}()

	go func() {
		defer cancel()
		for {
			var req realtimeRequest
			err := ws.ReadJSON(&req)
			if err != nil {
				wsErr, ok := err.(*websocket.CloseError)
				if ok {
					if !(wsErr.Code == websocket.CloseNormalClosure || wsErr.Code == websocket.CloseGoingAway) {
						slog.DebugContext(
							ctx, "WebSocket closed",
							slog.String("error", wsErr.Error()),
							slog.String("module", "socket"),
						)
					}
				} else {
					slog.DebugContext(
						ctx, "Error reading message",
						slog.String("error", err.Error()),
						slog.String("module", "socket"),
					)
				}
				return
			}

			switch req.Type {
			case "h": // heartbeat
			default:
				slog.InfoContext(
					ctx, "Unknown request type",
					slog.String("type", req.Type),
					slog.String("module", "socket"),
				)
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event := <-events:
			err := ws.WriteJSON(event)
			if err != nil {
				slog.ErrorContext(
					ctx, "Error writing message",
					slog.String("error", err.Error()),
					slog.String("module", "socket"),
				)
				return nil
			}
		}
	}
}
