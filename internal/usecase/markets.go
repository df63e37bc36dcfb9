package usecase

import (
	"context"
	"errors"
	"time"

	"OddsLens/internal/domain/models"
	domrepo "OddsLens/internal/domain/repository"
	domsvc "OddsLens/internal/domain/service"
	xhttp "OddsLens/pkg/http"
	xlogger "OddsLens/pkg/logger"
)

// MarketsUseCase provides business logic for browsing markets, order books
// and price history.
type MarketsUseCase struct {
	provider domsvc.MarketDataProvider
	history  domrepo.HistoryStore
	log      *xlogger.Logger
}

// NewMarketsUseCase wires the market browsing flows. history may be nil when
// no ClickHouse backend is configured; charting then serves venue data only.
func NewMarketsUseCase(provider domsvc.MarketDataProvider, history domrepo.HistoryStore, log *xlogger.Logger) *MarketsUseCase {
	if log == nil {
		log = xlogger.Nop()
	}
	return &MarketsUseCase{provider: provider, history: history, log: log}
}

type ListMarketsParams struct {
	Limit         int
	Offset        int
	ActiveOnly    bool
	ExcludeClosed bool
}

type ListMarketsResult struct {
	Count   int                     `json:"count"`
	Markets []models.MarketSnapshot `json:"markets"`
}

func (uc *MarketsUseCase) ListMarkets(ctx context.Context, p ListMarketsParams) (*ListMarketsResult, error) {
	if p.Limit <= 0 {
		p.Limit = 50
	}
	if p.Limit > 500 {
		p.Limit = 500
	}
	if p.Offset < 0 {
		p.Offset = 0
	}

	markets, err := uc.provider.ListMarkets(ctx, models.ListFilters{
		ActiveOnly:    p.ActiveOnly,
		ExcludeClosed: p.ExcludeClosed,
		Limit:         p.Limit,
		Offset:        p.Offset,
	})
	if err != nil {
		return nil, xhttp.UpstreamError("market listing unavailable").WithError(err)
	}

	return &ListMarketsResult{Count: len(markets), Markets: markets}, nil
}

func (uc *MarketsUseCase) SearchMarkets(ctx context.Context, query string, limit int) (*ListMarketsResult, error) {
	if limit <= 0 {
		limit = 25
	}
	if limit > 100 {
		limit = 100
	}

	markets, err := uc.provider.SearchMarkets(ctx, query, limit)
	if err != nil {
		return nil, xhttp.UpstreamError("market search unavailable").WithError(err)
	}
	return &ListMarketsResult{Count: len(markets), Markets: markets}, nil
}

func (uc *MarketsUseCase) GetMarket(ctx context.Context, id string) (*models.MarketSnapshot, error) {
	if id == "" {
		return nil, xhttp.BadRequestError("market id required")
	}
	m, err := uc.provider.GetMarket(ctx, id)
	if err != nil {
		if errors.Is(err, xhttp.ErrNotFound) {
			return nil, xhttp.NotFoundErrorf("market %s not found", id)
		}
		return nil, xhttp.UpstreamError("market lookup failed").WithError(err)
	}
	return &m, nil
}

// GetOrderBook resolves a market id to its clob token and fetches the book.
func (uc *MarketsUseCase) GetOrderBook(ctx context.Context, marketID string) (*models.OrderBookSnapshot, error) {
	m, err := uc.GetMarket(ctx, marketID)
	if err != nil {
		return nil, err
	}
	if m.BookTokenID == "" {
		return nil, xhttp.NotFoundErrorf("market %s has no order book", marketID)
	}

	book, err := uc.provider.GetOrderBook(ctx, m.BookTokenID)
	if err != nil {
		return nil, xhttp.UpstreamError("order book unavailable").WithError(err)
	}
	if book == nil {
		return nil, xhttp.NotFoundErrorf("market %s has no order book", marketID)
	}
	return book, nil
}

type PriceHistoryResult struct {
	MarketID string              `json:"market_id"`
	Interval string              `json:"interval"`
	Count    int                 `json:"count"`
	Points   []models.PricePoint `json:"points"`
}

// GetPriceHistory fetches history from the venue and tees it into the local
// history store so charts survive venue retention limits. Store failures are
// logged, never surfaced.
func (uc *MarketsUseCase) GetPriceHistory(ctx context.Context, marketID, interval string) (*PriceHistoryResult, error) {
	switch interval {
	case "", "1m", "1h", "6h", "1d", "1w", "max":
	default:
		return nil, xhttp.BadRequestError("unsupported interval")
	}
	if interval == "" {
		interval = "1d"
	}

	m, err := uc.GetMarket(ctx, marketID)
	if err != nil {
		return nil, err
	}
	if m.BookTokenID == "" {
		return nil, xhttp.NotFoundErrorf("market %s has no price history", marketID)
	}

	points, err := uc.provider.GetPriceHistory(ctx, m.BookTokenID, interval)
	if err != nil {
		return nil, xhttp.UpstreamError("price history unavailable").WithError(err)
	}

	if uc.history != nil && len(points) > 0 {
		insertCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := uc.history.Insert(insertCtx, marketID, points); err != nil {
			uc.log.Warn("history store insert",
				xlogger.String("market", marketID),
				xlogger.Error(err),
			)
		}
	}

	return &PriceHistoryResult{
		MarketID: marketID,
		Interval: interval,
		Count:    len(points),
		Points:   points,
	}, nil
}
