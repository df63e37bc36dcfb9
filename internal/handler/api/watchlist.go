package api

import (
	"OddsLens/internal/domain/models"
	"OddsLens/internal/usecase"
	xhttp "OddsLens/pkg/http"
	xlogger "OddsLens/pkg/logger"

	"github.com/labstack/echo/v4"
)

type WatchlistHandler struct {
	logger    *xlogger.Logger
	watchlist *usecase.WatchlistUseCase
}

func NewWatchlistHandler(logger *xlogger.Logger, watchlist *usecase.WatchlistUseCase) *WatchlistHandler {
	return &WatchlistHandler{logger: logger, watchlist: watchlist}
}

func (h *WatchlistHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/watchlist")
	g.GET("/:address", h.Get)
	g.POST("/:address", h.Add)
	g.DELETE("/:address/:marketId", h.Remove)
}

func (h *WatchlistHandler) Get(c echo.Context) error {
	entries, err := h.watchlist.Get(c.Request().Context(), c.Param("address"))
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, entries)
}

func (h *WatchlistHandler) Add(c echo.Context) error {
	req := &models.AddWatchlistRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	entries, err := h.watchlist.Add(c.Request().Context(), c.Param("address"), req.MarketID)
	if err != nil {
		h.logger.Error("watchlist add", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.CreatedResponse(c, entries)
}

func (h *WatchlistHandler) Remove(c echo.Context) error {
	entries, err := h.watchlist.Remove(c.Request().Context(), c.Param("address"), c.Param("marketId"))
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, entries)
}
