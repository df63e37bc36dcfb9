package api

import (
	"OddsLens/internal/domain/models"
	"OddsLens/internal/usecase"
	xhttp "OddsLens/pkg/http"
	xlogger "OddsLens/pkg/logger"

	"github.com/labstack/echo/v4"
)

// MarketsHandler serves market browsing: listings, search, single market,
// order book and price history.
type MarketsHandler struct {
	logger  *xlogger.Logger
	markets *usecase.MarketsUseCase
}

func NewMarketsHandler(logger *xlogger.Logger, markets *usecase.MarketsUseCase) *MarketsHandler {
	return &MarketsHandler{logger: logger, markets: markets}
}

func (h *MarketsHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/markets")
	g.GET("", h.List)
	g.GET("/search", h.Search)
	g.GET("/:id", h.Get)
	g.GET("/:id/book", h.Book)
	g.GET("/:id/history", h.History)
}

func (h *MarketsHandler) List(c echo.Context) error {
	req := &models.ListMarketsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.markets.ListMarkets(c.Request().Context(), usecase.ListMarketsParams{
		Limit:         req.Limit,
		Offset:        req.Offset,
		ActiveOnly:    !req.IncludeInactive,
		ExcludeClosed: !req.IncludeClosed,
	})
	if err != nil {
		h.logger.Error("list markets", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "public, max-age=15")
	return xhttp.SuccessResponse(c, res)
}

func (h *MarketsHandler) Search(c echo.Context) error {
	req := &models.SearchMarketsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.markets.SearchMarkets(c.Request().Context(), req.Q, req.Limit)
	if err != nil {
		h.logger.Error("search markets", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *MarketsHandler) Get(c echo.Context) error {
	m, err := h.markets.GetMarket(c.Request().Context(), c.Param("id"))
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, m)
}

func (h *MarketsHandler) Book(c echo.Context) error {
	book, err := h.markets.GetOrderBook(c.Request().Context(), c.Param("id"))
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "public, max-age=5")
	return xhttp.SuccessResponse(c, book)
}

func (h *MarketsHandler) History(c echo.Context) error {
	req := &models.PriceHistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.markets.GetPriceHistory(c.Request().Context(), c.Param("id"), req.Interval)
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "public, max-age=60")
	return xhttp.SuccessResponse(c, res)
}
