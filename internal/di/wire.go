//go:build wireinject
// +build wireinject

package di

import (
	"OddsLens/pkg/config"
	"OddsLens/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation in wire_gen.go.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideCache,
		ProvideMetrics,

		// Market data
		ProvideMarketDataProvider,
		ProvideAnalyzer,

		// Optional backends
		ProvideClickHouseClient,
		ProvideHistoryStore,
		ProvideKafkaProducer,
		ProvidePredictionSink,
		ProvideTrader,
		ProvideHub,
		ProvideOrderLimiter,

		// Stores
		ProvideWatchlistStore,
		ProvidePortfolioStore,

		// Use cases
		ProvideMarketsUseCase,
		ProvideAnalysisUseCase,
		ProvideWatchlistUseCase,
		ProvidePortfolioUseCase,
		ProvideOrdersUseCase,

		// HTTP surface
		ProvideRouter,
		ProvideApp,
	)
	return &server.App{}, nil
}
