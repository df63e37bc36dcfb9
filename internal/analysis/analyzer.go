package analysis

import (
	"context"
	"time"

	"OddsLens/internal/domain/models"
	domrepo "OddsLens/internal/domain/repository"
	domsvc "OddsLens/internal/domain/service"
	xlogger "OddsLens/pkg/logger"
)

// Per-extractor weights, assigned here rather than by the extractors
// themselves.
const (
	weightPriceTrend = 0.30
	weightVolume     = 0.20
	weightMomentum   = 0.25
	weightDepth      = 0.25
)

// Analyzer runs the signal extractors over a ranked batch of markets and
// aggregates their results. Each call to AnalyzeBatch builds its own
// PeerContext; runs share no mutable state.
type Analyzer struct {
	provider     domsvc.MarketDataProvider
	log          *xlogger.Logger
	metrics      domrepo.Metrics
	depthTimeout time.Duration
}

func New(provider domsvc.MarketDataProvider, log *xlogger.Logger, metrics domrepo.Metrics, depthTimeout time.Duration) *Analyzer {
	if depthTimeout <= 0 {
		depthTimeout = 3 * time.Second
	}
	if log == nil {
		log = xlogger.Nop()
	}
	return &Analyzer{
		provider:     provider,
		log:          log,
		metrics:      metrics,
		depthTimeout: depthTimeout,
	}
}

// AnalyzeBatch analyzes markets strictly in the given rank order and delivers
// results through an unbuffered channel: result i is received by the consumer
// before analysis of market i+1 begins, so early results render while later
// markets are still being processed. The channel is closed when the batch is
// done. A failure in one market never aborts its siblings.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, markets []models.MarketSnapshot) <-chan models.MarketAnalysis {
	out := make(chan models.MarketAnalysis)

	go func() {
		defer close(out)
		peers := BuildPeerContext(markets)
		for _, m := range markets {
			res := a.analyzeOne(ctx, m, peers)
			select {
			case out <- res:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

// AnalyzeTop analyzes the first n markets synchronously so the caller can
// render them immediately, then streams the remainder in order. PeerContext
// covers the whole batch in both phases.
func (a *Analyzer) AnalyzeTop(ctx context.Context, markets []models.MarketSnapshot, n int) ([]models.MarketAnalysis, <-chan models.MarketAnalysis) {
	if n > len(markets) {
		n = len(markets)
	}
	if n < 0 {
		n = 0
	}

	peers := BuildPeerContext(markets)

	first := make([]models.MarketAnalysis, 0, n)
	for _, m := range markets[:n] {
		first = append(first, a.analyzeOne(ctx, m, peers))
	}

	rest := make(chan models.MarketAnalysis)
	go func() {
		defer close(rest)
		for _, m := range markets[n:] {
			res := a.analyzeOne(ctx, m, peers)
			select {
			case rest <- res:
			case <-ctx.Done():
				return
			}
		}
	}()

	return first, rest
}

// AnalyzeOne analyzes a single market against the given peer statistics.
func (a *Analyzer) AnalyzeOne(ctx context.Context, m models.MarketSnapshot, peers models.PeerContext) models.MarketAnalysis {
	return a.analyzeOne(ctx, m, peers)
}

// analyzeOne runs all four extractors for one market and aggregates the
// non-abstaining results. Panics are contained here: the worst case for any
// market is a degraded neutral prediction at the confidence floor.
func (a *Analyzer) analyzeOne(ctx context.Context, m models.MarketSnapshot, peers models.PeerContext) (res models.MarketAnalysis) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Error("market analysis panic",
				xlogger.String("market", m.ID),
				xlogger.Any("panic", r),
			)
			if a.metrics != nil {
				a.metrics.RecordError("analysis_panic")
			}
			res = degraded(m)
		}
	}()

	start := time.Now()

	// The depth signal is the only one doing I/O; fetch it while the
	// synchronous extractors run.
	depthCh := make(chan *models.SignalResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				a.log.Error("depth signal panic",
					xlogger.String("market", m.ID),
					xlogger.Any("panic", r),
				)
				depthCh <- nil
			}
		}()
		depthCh <- a.depthSignal(ctx, m)
	}()

	signals := make([]models.SignalResult, 0, 4)
	appendSignal := func(s *models.SignalResult, weight float64) {
		if s == nil {
			return
		}
		s.Weight = weight
		signals = append(signals, *s)
	}

	appendSignal(PriceTrend(m), weightPriceTrend)
	appendSignal(VolumeActivity(m, peers), weightVolume)
	appendSignal(Momentum(m), weightMomentum)
	appendSignal(<-depthCh, weightDepth)

	prediction := Aggregate(signals)

	if a.metrics != nil {
		a.metrics.RecordAnalyzed(string(prediction.Outcome))
		a.metrics.RecordYesPrice(m.ID, m.YesPrice)
		a.metrics.RecordLatency("analyze_market", time.Since(start).Seconds())
	}

	return models.MarketAnalysis{
		Market:     m,
		Prediction: prediction,
		Signals:    signals,
		AnalyzedAt: time.Now().UTC(),
	}
}

// depthSignal fetches the order book and classifies its imbalance. Any fetch
// failure is an abstention: a missing book is common and must not abort the
// market's analysis.
func (a *Analyzer) depthSignal(ctx context.Context, m models.MarketSnapshot) *models.SignalResult {
	if m.BookTokenID == "" {
		return nil
	}

	fetchCtx, cancel := context.WithTimeout(ctx, a.depthTimeout)
	defer cancel()

	book, err := a.provider.GetOrderBook(fetchCtx, m.BookTokenID)
	if err != nil {
		a.log.Debug("order book fetch failed, depth signal abstains",
			xlogger.String("market", m.ID),
			xlogger.Error(err),
		)
		if a.metrics != nil {
			a.metrics.RecordError("depth_fetch")
		}
		return nil
	}
	return DepthImbalance(book)
}

func degraded(m models.MarketSnapshot) models.MarketAnalysis {
	return models.MarketAnalysis{
		Market: m,
		Prediction: models.Prediction{
			Outcome:    models.DirectionNeutral,
			Confidence: minConfidence,
		},
		AnalyzedAt: time.Now().UTC(),
		Degraded:   true,
	}
}
