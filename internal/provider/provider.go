// Package provider composes the gamma and clob clients behind the
// MarketDataProvider interface and layers a short-lived cache over them.
package provider

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"OddsLens/internal/domain/models"
	domsvc "OddsLens/internal/domain/service"
	"OddsLens/internal/provider/clob"
	"OddsLens/internal/provider/gamma"
	"OddsLens/pkg/cache"
	xlogger "OddsLens/pkg/logger"
	"OddsLens/pkg/util"
)

// TTLs control cache lifetimes per resource type.
type TTLs struct {
	Markets time.Duration
	Book    time.Duration
	History time.Duration
}

type Service struct {
	gamma *gamma.Client
	clob  *clob.Client
	cache cache.Service
	ttl   TTLs
	log   *xlogger.Logger
}

func NewService(g *gamma.Client, c *clob.Client, kv cache.Service, ttl TTLs, log *xlogger.Logger) *Service {
	if ttl.Markets <= 0 {
		ttl.Markets = 30 * time.Second
	}
	if ttl.Book <= 0 {
		ttl.Book = 10 * time.Second
	}
	if ttl.History <= 0 {
		ttl.History = 5 * time.Minute
	}
	return &Service{gamma: g, clob: c, cache: kv, ttl: ttl, log: log}
}

func (s *Service) ListMarkets(ctx context.Context, f models.ListFilters) ([]models.MarketSnapshot, error) {
	key := fmt.Sprintf("markets:%t:%t:%d:%d", f.ActiveOnly, f.ExcludeClosed, f.Limit, f.Offset)

	var cached []models.MarketSnapshot
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	raw, err := s.gamma.GetMarkets(ctx, gamma.ListParams{
		Active:        f.ActiveOnly,
		ExcludeClosed: f.ExcludeClosed,
		Limit:         f.Limit,
		Offset:        f.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list markets: %w", err)
	}

	markets := make([]models.MarketSnapshot, 0, len(raw))
	for _, m := range raw {
		markets = append(markets, toSnapshot(m))
	}
	// The venue orders by 24h volume only; rank by combined volume for the
	// analysis batch contract.
	sort.SliceStable(markets, func(i, j int) bool {
		return markets[i].CombinedVolume() > markets[j].CombinedVolume()
	})

	s.cacheSet(ctx, key, markets, s.ttl.Markets)
	return markets, nil
}

func (s *Service) SearchMarkets(ctx context.Context, query string, limit int) ([]models.MarketSnapshot, error) {
	if limit <= 0 {
		limit = 25
	}
	// Listings are small enough to filter locally; the venue has no
	// dedicated text-search endpoint on the markets resource.
	all, err := s.ListMarkets(ctx, models.ListFilters{ActiveOnly: true, ExcludeClosed: true, Limit: 500})
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		if len(all) > limit {
			all = all[:limit]
		}
		return all, nil
	}

	matched := make([]models.MarketSnapshot, 0, limit)
	for _, m := range all {
		if strings.Contains(strings.ToLower(m.Title), q) || strings.Contains(strings.ToLower(m.Slug), q) {
			matched = append(matched, m)
			if len(matched) == limit {
				break
			}
		}
	}
	return matched, nil
}

func (s *Service) GetMarket(ctx context.Context, id string) (models.MarketSnapshot, error) {
	key := "market:" + id

	var cached models.MarketSnapshot
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	raw, err := s.gamma.GetMarketByID(ctx, id)
	if err != nil {
		return models.MarketSnapshot{}, err
	}

	m := toSnapshot(*raw)
	s.cacheSet(ctx, key, m, s.ttl.Markets)
	return m, nil
}

func (s *Service) GetOrderBook(ctx context.Context, tokenID string) (*models.OrderBookSnapshot, error) {
	if tokenID == "" {
		return nil, nil
	}
	key := "book:" + tokenID

	var cached models.OrderBookSnapshot
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	raw, err := s.clob.GetBook(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	book := toBook(raw)
	s.cacheSet(ctx, key, book, s.ttl.Book)
	return book, nil
}

func (s *Service) GetPriceHistory(ctx context.Context, tokenID, interval string) ([]models.PricePoint, error) {
	if interval == "" {
		interval = "1d"
	}
	key := "history:" + tokenID + ":" + interval

	var cached []models.PricePoint
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	raw, err := s.clob.GetPriceHistory(ctx, tokenID, interval)
	if err != nil {
		return nil, err
	}

	points := make([]models.PricePoint, 0, len(raw))
	for _, p := range raw {
		points = append(points, models.PricePoint{
			T:     time.Unix(p.T, 0).UTC(),
			Price: p.P * 100,
		})
	}

	s.cacheSet(ctx, key, points, s.ttl.History)
	return points, nil
}

func (s *Service) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	err := s.cache.Get(ctx, key, dest)
	if err == nil {
		return true
	}
	if !errors.Is(err, cache.ErrCacheMiss) && s.log != nil {
		s.log.Warn("provider cache get", xlogger.String("key", key), xlogger.Error(err))
	}
	return false
}

func (s *Service) cacheSet(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, ttl); err != nil && s.log != nil {
		s.log.Warn("provider cache set", xlogger.String("key", key), xlogger.Error(err))
	}
}

// toSnapshot converts a raw gamma market to the domain snapshot. Prices are
// rescaled from 0-1 to 0-100; a missing quote defaults to 50.
func toSnapshot(m gamma.Market) models.MarketSnapshot {
	yes, no := 50.0, 50.0
	if v, ok := m.OutcomePrice(0); ok {
		yes = v * 100
	}
	if v, ok := m.OutcomePrice(1); ok {
		no = v * 100
	}

	var bookToken string
	if len(m.ClobTokenIDs) > 0 {
		bookToken = m.ClobTokenIDs[0]
	}

	var endDate time.Time
	if t, ok := util.ParseTime(m.EndDate); ok {
		endDate = t
	}

	return models.MarketSnapshot{
		ID:          m.ID,
		Title:       m.Question,
		Slug:        m.Slug,
		YesPrice:    yes,
		NoPrice:     no,
		Volume24h:   m.Volume24hr,
		VolumeTotal: m.VolumeNum,
		BookTokenID: bookToken,
		Active:      m.Active,
		Closed:      m.Closed,
		EndDate:     endDate,
	}
}

func toBook(b *clob.Book) *models.OrderBookSnapshot {
	book := &models.OrderBookSnapshot{
		MarketID: b.Market,
		Bids:     make([]models.PriceLevel, 0, len(b.Bids)),
		Asks:     make([]models.PriceLevel, 0, len(b.Asks)),
	}
	for _, l := range b.Bids {
		book.Bids = append(book.Bids, models.PriceLevel{
			Price: util.ParseFloatDefault(l.Price, 0),
			Size:  util.ParseFloatDefault(l.Size, 0),
		})
	}
	for _, l := range b.Asks {
		book.Asks = append(book.Asks, models.PriceLevel{
			Price: util.ParseFloatDefault(l.Price, 0),
			Size:  util.ParseFloatDefault(l.Size, 0),
		})
	}
	return book
}

var _ domsvc.MarketDataProvider = (*Service)(nil)
