package usecase

import (
	"context"
	"errors"

	"OddsLens/internal/analysis"
	"OddsLens/internal/domain/models"
	domrepo "OddsLens/internal/domain/repository"
	domsvc "OddsLens/internal/domain/service"
	xhttp "OddsLens/pkg/http"
	xlogger "OddsLens/pkg/logger"
)

// AnalysisUseCase runs the signal engine over the top-volume markets and
// streams results out incrementally.
type AnalysisUseCase struct {
	provider     domsvc.MarketDataProvider
	analyzer     *analysis.Analyzer
	sink         domrepo.PredictionSink
	log          *xlogger.Logger
	topMarkets   int
	initialBatch int
}

// NewAnalysisUseCase wires the engine. sink may be nil when no Kafka backend
// is configured; predictions are then served to clients only.
func NewAnalysisUseCase(provider domsvc.MarketDataProvider, analyzer *analysis.Analyzer, sink domrepo.PredictionSink, log *xlogger.Logger, topMarkets, initialBatch int) *AnalysisUseCase {
	if log == nil {
		log = xlogger.Nop()
	}
	if topMarkets <= 0 {
		topMarkets = 20
	}
	if initialBatch < 0 || initialBatch > topMarkets {
		initialBatch = 0
	}
	return &AnalysisUseCase{
		provider:     provider,
		analyzer:     analyzer,
		sink:         sink,
		log:          log,
		topMarkets:   topMarkets,
		initialBatch: initialBatch,
	}
}

// StreamAnalysis ranks active markets by combined volume and analyzes the top
// of the list. The first initialBatch results come back synchronously for
// immediate rendering; the rest arrive through the channel in rank order, one
// at a time, so the caller can flush each to the client before the next
// market is processed. The channel closes when the batch completes.
func (uc *AnalysisUseCase) StreamAnalysis(ctx context.Context) ([]models.MarketAnalysis, <-chan models.MarketAnalysis, error) {
	markets, err := uc.provider.ListMarkets(ctx, models.ListFilters{
		ActiveOnly:    true,
		ExcludeClosed: true,
		Limit:         uc.topMarkets,
	})
	if err != nil {
		return nil, nil, xhttp.UpstreamError("market listing unavailable").WithError(err)
	}
	if len(markets) > uc.topMarkets {
		markets = markets[:uc.topMarkets]
	}

	first, rest := uc.analyzer.AnalyzeTop(ctx, markets, uc.initialBatch)
	for _, res := range first {
		uc.publish(ctx, res)
	}

	out := make(chan models.MarketAnalysis)
	go func() {
		defer close(out)
		for res := range rest {
			uc.publish(ctx, res)
			select {
			case out <- res:
			case <-ctx.Done():
				return
			}
		}
	}()

	return first, out, nil
}

// AnalyzeMarket runs the engine for a single market, with peer statistics
// drawn from the current top-volume batch.
func (uc *AnalysisUseCase) AnalyzeMarket(ctx context.Context, marketID string) (*models.MarketAnalysis, error) {
	m, err := uc.provider.GetMarket(ctx, marketID)
	if err != nil {
		if errors.Is(err, xhttp.ErrNotFound) {
			return nil, xhttp.NotFoundErrorf("market %s not found", marketID)
		}
		return nil, xhttp.UpstreamError("market lookup failed").WithError(err)
	}

	peers, err := uc.provider.ListMarkets(ctx, models.ListFilters{
		ActiveOnly:    true,
		ExcludeClosed: true,
		Limit:         uc.topMarkets,
	})
	if err != nil {
		uc.log.Warn("peer listing failed, analyzing without peer context", xlogger.Error(err))
	}

	batch := append([]models.MarketSnapshot{m}, peers...)
	res := uc.analyzer.AnalyzeOne(ctx, m, analysis.BuildPeerContext(batch))
	uc.publish(ctx, res)
	return &res, nil
}

// publish forwards a result to the prediction sink. Sink failures never block
// or fail the analysis flow.
func (uc *AnalysisUseCase) publish(ctx context.Context, res models.MarketAnalysis) {
	if uc.sink == nil {
		return
	}
	if err := uc.sink.Publish(ctx, res); err != nil {
		uc.log.Warn("prediction sink publish",
			xlogger.String("market", res.Market.ID),
			xlogger.Error(err),
		)
	}
}
