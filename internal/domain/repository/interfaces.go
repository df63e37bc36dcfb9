package repository

import (
	"context"
	"time"

	"OddsLens/internal/domain/models"
)

// Metrics records operational measurements.
type Metrics interface {
	RecordAnalyzed(outcome string)
	RecordError(kind string)
	RecordYesPrice(market string, price float64)
	RecordLatency(op string, seconds float64)
}

// PredictionSink receives computed market analyses for downstream consumers.
type PredictionSink interface {
	Publish(ctx context.Context, a models.MarketAnalysis) error
	Close() error
}

// WatchlistStore persists per-address watchlists. Load returns an empty
// slice, not an error, when the address has no watchlist yet.
type WatchlistStore interface {
	Load(ctx context.Context, address string) ([]models.WatchlistEntry, error)
	Save(ctx context.Context, address string, entries []models.WatchlistEntry) error
}

// PortfolioStore persists per-address positions.
type PortfolioStore interface {
	Load(ctx context.Context, address string) ([]models.Position, error)
	Save(ctx context.Context, address string, positions []models.Position) error
}

// HistoryStore persists fetched price points for charting.
type HistoryStore interface {
	Insert(ctx context.Context, marketID string, points []models.PricePoint) error
	Range(ctx context.Context, marketID string, from, to time.Time) ([]models.PricePoint, error)
}
