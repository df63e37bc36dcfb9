package api

import (
	"OddsLens/internal/domain/models"
	"OddsLens/internal/usecase"
	xhttp "OddsLens/pkg/http"
	xlogger "OddsLens/pkg/logger"

	"github.com/labstack/echo/v4"
)

type PortfolioHandler struct {
	logger    *xlogger.Logger
	portfolio *usecase.PortfolioUseCase
}

func NewPortfolioHandler(logger *xlogger.Logger, portfolio *usecase.PortfolioUseCase) *PortfolioHandler {
	return &PortfolioHandler{logger: logger, portfolio: portfolio}
}

func (h *PortfolioHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/portfolio")
	g.GET("/:address", h.Get)
	g.PUT("/:address", h.Upsert)
	g.DELETE("/:address/:marketId", h.Remove)
}

func (h *PortfolioHandler) Get(c echo.Context) error {
	positions, err := h.portfolio.Get(c.Request().Context(), c.Param("address"))
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, positions)
}

func (h *PortfolioHandler) Upsert(c echo.Context) error {
	req := &models.UpsertPositionRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	positions, err := h.portfolio.Upsert(c.Request().Context(), c.Param("address"), models.Position{
		MarketID: req.MarketID,
		Title:    req.Title,
		Outcome:  models.Direction(req.Outcome),
		Shares:   req.Shares,
		AvgPrice: req.AvgPrice,
	})
	if err != nil {
		h.logger.Error("portfolio upsert", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, positions)
}

func (h *PortfolioHandler) Remove(c echo.Context) error {
	outcome := models.Direction(c.QueryParam("outcome"))
	positions, err := h.portfolio.Remove(c.Request().Context(), c.Param("address"), c.Param("marketId"), outcome)
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, positions)
}
