package usecase

import (
	"context"

	"OddsLens/internal/domain/models"
	domsvc "OddsLens/internal/domain/service"
	xhttp "OddsLens/pkg/http"
	xlogger "OddsLens/pkg/logger"
)

// OrdersUseCase relays signed orders to the trading backend. No signing or
// key material lives in this service; the wallet signs client-side.
type OrdersUseCase struct {
	trader domsvc.Trader
	log    *xlogger.Logger
}

func NewOrdersUseCase(trader domsvc.Trader, log *xlogger.Logger) *OrdersUseCase {
	if log == nil {
		log = xlogger.Nop()
	}
	return &OrdersUseCase{trader: trader, log: log}
}

func (uc *OrdersUseCase) PlaceOrder(ctx context.Context, req models.OrderRequest) (*models.OrderAck, error) {
	if uc.trader == nil {
		return nil, xhttp.NewAppError("TRADING_DISABLED", "", "trading backend not configured", 503)
	}
	if req.TokenID == "" {
		return nil, xhttp.BadRequestError("token id required")
	}
	if req.Side != "buy" && req.Side != "sell" {
		return nil, xhttp.BadRequestError("side must be buy or sell")
	}
	if req.Price <= 0 || req.Price >= 100 {
		return nil, xhttp.BadRequestError("price must be between 0 and 100 exclusive")
	}
	if req.Size <= 0 {
		return nil, xhttp.BadRequestError("size must be positive")
	}
	if req.Signature == "" {
		return nil, xhttp.BadRequestError("signature required")
	}

	ack, err := uc.trader.PlaceOrder(ctx, req)
	if err != nil {
		uc.log.Error("order relay failed",
			xlogger.String("token", req.TokenID),
			xlogger.String("side", req.Side),
			xlogger.Error(err),
		)
		return nil, xhttp.UpstreamError("order placement failed").WithError(err)
	}

	uc.log.Info("order relayed",
		xlogger.String("order_id", ack.OrderID),
		xlogger.String("token", req.TokenID),
		xlogger.String("side", req.Side),
		xlogger.Float64("price", req.Price),
		xlogger.Float64("size", req.Size),
	)
	return &ack, nil
}
