package api

import (
	"OddsLens/internal/service/ticker"

	"github.com/labstack/echo/v4"
)

// TickerHandler exposes the live price feed.
type TickerHandler struct {
	hub *ticker.Hub
}

func NewTickerHandler(hub *ticker.Hub) *TickerHandler {
	return &TickerHandler{hub: hub}
}

func (h *TickerHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws/prices", h.hub.HandleWS)
}
