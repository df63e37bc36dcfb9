package service

import (
	"context"

	"OddsLens/internal/domain/models"
)

// MarketDataProvider is the narrow interface to the external market-data
// venue. Implementations live in internal/provider; the analysis engine and
// tests depend only on this contract.
type MarketDataProvider interface {
	// ListMarkets returns market snapshots matching the filters, ranked by
	// combined volume descending.
	ListMarkets(ctx context.Context, f models.ListFilters) ([]models.MarketSnapshot, error)

	// SearchMarkets returns snapshots matching a free-text query.
	SearchMarkets(ctx context.Context, query string, limit int) ([]models.MarketSnapshot, error)

	// GetMarket returns a single market by venue id.
	GetMarket(ctx context.Context, id string) (models.MarketSnapshot, error)

	// GetOrderBook returns the order book for a market's clob token, or
	// (nil, nil) when the venue has no book for it.
	GetOrderBook(ctx context.Context, tokenID string) (*models.OrderBookSnapshot, error)

	// GetPriceHistory returns historical price samples for a clob token.
	GetPriceHistory(ctx context.Context, tokenID, interval string) ([]models.PricePoint, error)
}

// Trader forwards signed orders to the external trading backend.
type Trader interface {
	PlaceOrder(ctx context.Context, req models.OrderRequest) (models.OrderAck, error)
}
