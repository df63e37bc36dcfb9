package api

import (
	"OddsLens/internal/domain/models"
	"OddsLens/internal/service/ratelimit"
	"OddsLens/internal/usecase"
	xhttp "OddsLens/pkg/http"
	xlogger "OddsLens/pkg/logger"

	"github.com/labstack/echo/v4"
)

// OrdersHandler relays signed orders, throttled per client IP.
type OrdersHandler struct {
	logger  *xlogger.Logger
	orders  *usecase.OrdersUseCase
	limiter *ratelimit.Limiter
}

func NewOrdersHandler(logger *xlogger.Logger, orders *usecase.OrdersUseCase, limiter *ratelimit.Limiter) *OrdersHandler {
	return &OrdersHandler{logger: logger, orders: orders, limiter: limiter}
}

func (h *OrdersHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/orders", h.Place)
}

func (h *OrdersHandler) Place(c echo.Context) error {
	if h.limiter != nil && !h.limiter.Allow(c.RealIP()) {
		return xhttp.TooManyRequestsResponse(c)
	}

	req := &models.PlaceOrderRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	ack, err := h.orders.PlaceOrder(c.Request().Context(), models.OrderRequest{
		MarketID:  req.MarketID,
		TokenID:   req.TokenID,
		Side:      req.Side,
		Price:     req.Price,
		Size:      req.Size,
		Signature: req.Signature,
		Owner:     req.Owner,
	})
	if err != nil {
		h.logger.Error("place order", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.CreatedResponse(c, ack)
}
