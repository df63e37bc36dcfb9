package di

import (
	"context"
	"fmt"
	"time"

	"OddsLens/internal/analysis"
	domrepo "OddsLens/internal/domain/repository"
	domsvc "OddsLens/internal/domain/service"
	"OddsLens/internal/handler/api"
	"OddsLens/internal/provider"
	"OddsLens/internal/provider/clob"
	"OddsLens/internal/provider/gamma"
	internalrepo "OddsLens/internal/repository"
	"OddsLens/internal/service/ratelimit"
	"OddsLens/internal/service/ticker"
	"OddsLens/internal/service/trading"
	"OddsLens/internal/usecase"
	"OddsLens/pkg/cache"
	pkgch "OddsLens/pkg/clickhouse"
	"OddsLens/pkg/config"
	pkgkafka "OddsLens/pkg/kafka"
	xlogger "OddsLens/pkg/logger"
	"OddsLens/pkg/metrics"
	"OddsLens/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*xlogger.Logger, error) {
	return xlogger.New(&xlogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
}

// ProvideCache creates the key-value store: Redis when configured, otherwise
// an in-process store so watchlists and caching work in a single binary.
func ProvideCache(cfg *config.Config, log *xlogger.Logger) (cache.Service, error) {
	if !cfg.Redis.Enabled {
		log.Info("redis disabled, using in-memory store")
		return cache.NewMemoryCache(), nil
	}
	kv, err := cache.NewRedisCache(
		cache.WithAddr(cfg.Redis.Host, cfg.Redis.Port),
		cache.WithAuth(cfg.Redis.Password, cfg.Redis.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return kv, nil
}

// ProvideMarketDataProvider composes the gamma and clob clients.
func ProvideMarketDataProvider(cfg *config.Config, kv cache.Service, log *xlogger.Logger) domsvc.MarketDataProvider {
	g := gamma.New(cfg.Provider.GammaURL, cfg.Provider.Timeout)
	c := clob.New(cfg.Provider.ClobURL, cfg.Provider.Timeout)
	return provider.NewService(g, c, kv, provider.TTLs{
		Markets: cfg.Provider.CacheTTL.Markets,
		Book:    cfg.Provider.CacheTTL.Book,
		History: cfg.Provider.CacheTTL.History,
	}, log)
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() domrepo.Metrics {
	return metrics.New()
}

// ProvideAnalyzer creates the signal engine.
func ProvideAnalyzer(p domsvc.MarketDataProvider, log *xlogger.Logger, m domrepo.Metrics, cfg *config.Config) *analysis.Analyzer {
	return analysis.New(p, log, m, cfg.Analysis.DepthTimeout)
}

// ProvideClickHouseClient creates a ClickHouse client, or nil when the
// backend is disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.ClickHouse.Enabled {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.InitSchema(ctx, internalrepo.HistorySchema); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return client, nil
}

// ProvideHistoryStore creates the price history store, or nil without a
// ClickHouse backend.
func ProvideHistoryStore(chClient *pkgch.Client) domrepo.HistoryStore {
	if chClient == nil {
		return nil
	}
	return internalrepo.NewClickHouseHistoryStore(chClient.DB(), "oddslens.price_history")
}

// ProvideKafkaProducer creates a Kafka producer, or nil when disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithMaxAttempts(cfg.Kafka.MaxAttempts),
		pkgkafka.WithBatch(cfg.Kafka.BatchSize, cfg.Kafka.Linger),
		pkgkafka.WithWriteTimeout(cfg.Kafka.WriteTimeout),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvidePredictionSink creates the Kafka prediction sink, or nil without a
// producer.
func ProvidePredictionSink(producer *pkgkafka.Producer, cfg *config.Config) domrepo.PredictionSink {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaPredictionSink(producer, cfg.Kafka.Topic)
}

// ProvideTrader creates the trading relay, or nil when no backend is
// configured. Order placement then answers 503.
func ProvideTrader(cfg *config.Config, log *xlogger.Logger) domsvc.Trader {
	if cfg.Trading.BaseURL == "" {
		return nil
	}
	return trading.New(cfg.Trading.BaseURL, cfg.Trading.APIKey,
		trading.WithTimeout(cfg.Trading.Timeout),
		trading.WithLogger(log),
	)
}

// ProvideHub creates the websocket price feed, or nil when disabled.
func ProvideHub(p domsvc.MarketDataProvider, cfg *config.Config, log *xlogger.Logger) *ticker.Hub {
	if !cfg.Ticker.Enabled {
		return nil
	}
	return ticker.NewHub(p, log, cfg.Ticker.Interval, cfg.Ticker.Markets)
}

// ProvideOrderLimiter throttles order placement per client IP.
func ProvideOrderLimiter() *ratelimit.Limiter {
	return ratelimit.New(5, 0.5)
}

func ProvideMarketsUseCase(p domsvc.MarketDataProvider, history domrepo.HistoryStore, log *xlogger.Logger) *usecase.MarketsUseCase {
	return usecase.NewMarketsUseCase(p, history, log)
}

func ProvideAnalysisUseCase(p domsvc.MarketDataProvider, analyzer *analysis.Analyzer, sink domrepo.PredictionSink, log *xlogger.Logger, cfg *config.Config) *usecase.AnalysisUseCase {
	return usecase.NewAnalysisUseCase(p, analyzer, sink, log, cfg.Analysis.TopMarkets, cfg.Analysis.InitialBatch)
}

// ProvideWatchlistStore backs watchlists with the key-value store.
func ProvideWatchlistStore(kv cache.Service) domrepo.WatchlistStore {
	return internalrepo.NewKVWatchlistStore(kv)
}

// ProvidePortfolioStore backs portfolios with the key-value store.
func ProvidePortfolioStore(kv cache.Service) domrepo.PortfolioStore {
	return internalrepo.NewKVPortfolioStore(kv)
}

func ProvideWatchlistUseCase(store domrepo.WatchlistStore, p domsvc.MarketDataProvider, log *xlogger.Logger) *usecase.WatchlistUseCase {
	return usecase.NewWatchlistUseCase(store, p, log)
}

func ProvidePortfolioUseCase(store domrepo.PortfolioStore, log *xlogger.Logger) *usecase.PortfolioUseCase {
	return usecase.NewPortfolioUseCase(store, log)
}

func ProvideOrdersUseCase(trader domsvc.Trader, log *xlogger.Logger) *usecase.OrdersUseCase {
	return usecase.NewOrdersUseCase(trader, log)
}

// ProvideRouter builds every handler and aggregates their routes.
func ProvideRouter(
	log *xlogger.Logger,
	markets *usecase.MarketsUseCase,
	analysisUC *usecase.AnalysisUseCase,
	watchlist *usecase.WatchlistUseCase,
	portfolio *usecase.PortfolioUseCase,
	orders *usecase.OrdersUseCase,
	limiter *ratelimit.Limiter,
	hub *ticker.Hub,
) *api.Router {
	var tickerH *api.TickerHandler
	if hub != nil {
		tickerH = api.NewTickerHandler(hub)
	}
	return api.NewRouter(
		api.NewMarketsHandler(log, markets),
		api.NewAnalysisHandler(log, analysisUC),
		api.NewWatchlistHandler(log, watchlist),
		api.NewPortfolioHandler(log, portfolio),
		api.NewOrdersHandler(log, orders, limiter),
		tickerH,
	)
}

// ProvideApp assembles the application.
func ProvideApp(
	cfg *config.Config,
	log *xlogger.Logger,
	router *api.Router,
	hub *ticker.Hub,
	sink domrepo.PredictionSink,
	kv cache.Service,
	chClient *pkgch.Client,
) *server.App {
	return server.New(cfg, log, router, hub, sink, kv, chClient)
}
