package usecase

import (
	"context"
	"errors"
	"testing"

	"OddsLens/internal/domain/models"
	internalrepo "OddsLens/internal/repository"
	"OddsLens/pkg/cache"
	xhttp "OddsLens/pkg/http"
)

// stubProvider serves a fixed set of markets by id.
type stubProvider struct {
	markets map[string]models.MarketSnapshot
}

func (s *stubProvider) ListMarkets(context.Context, models.ListFilters) ([]models.MarketSnapshot, error) {
	return nil, nil
}

func (s *stubProvider) SearchMarkets(context.Context, string, int) ([]models.MarketSnapshot, error) {
	return nil, nil
}

func (s *stubProvider) GetMarket(_ context.Context, id string) (models.MarketSnapshot, error) {
	m, ok := s.markets[id]
	if !ok {
		return models.MarketSnapshot{}, xhttp.ErrNotFound
	}
	return m, nil
}

func (s *stubProvider) GetOrderBook(context.Context, string) (*models.OrderBookSnapshot, error) {
	return nil, nil
}

func (s *stubProvider) GetPriceHistory(context.Context, string, string) ([]models.PricePoint, error) {
	return nil, nil
}

func newWatchlistUC(t *testing.T) (*WatchlistUseCase, *cache.MemoryCache) {
	t.Helper()
	kv := cache.NewMemoryCache()
	t.Cleanup(func() { _ = kv.Close() })
	provider := &stubProvider{markets: map[string]models.MarketSnapshot{
		"m1": {ID: "m1", Title: "Will it rain tomorrow?"},
		"m2": {ID: "m2", Title: "Will the election flip?"},
	}}
	return NewWatchlistUseCase(internalrepo.NewKVWatchlistStore(kv), provider, nil), kv
}

func TestWatchlistEmptyByDefault(t *testing.T) {
	uc, _ := newWatchlistUC(t)

	entries, err := uc.Get(context.Background(), "0xabc")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("fresh address has %d entries, want 0", len(entries))
	}
}

func TestWatchlistAddAndGet(t *testing.T) {
	uc, _ := newWatchlistUC(t)
	ctx := context.Background()

	entries, err := uc.Add(ctx, "0xABC", "m1")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(entries) != 1 || entries[0].MarketID != "m1" {
		t.Fatalf("unexpected entries after add: %+v", entries)
	}
	if entries[0].Title != "Will it rain tomorrow?" {
		t.Fatalf("title not resolved at add time: %q", entries[0].Title)
	}
	if entries[0].AddedAt.IsZero() {
		t.Fatalf("AddedAt not stamped")
	}

	// Address lookup is case-insensitive.
	got, err := uc.Get(ctx, "0xabc")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d entries via lowercased address, want 1", len(got))
	}
}

func TestWatchlistAddIdempotent(t *testing.T) {
	uc, _ := newWatchlistUC(t)
	ctx := context.Background()

	if _, err := uc.Add(ctx, "0xabc", "m1"); err != nil {
		t.Fatalf("first add: %v", err)
	}
	entries, err := uc.Add(ctx, "0xabc", "m1")
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("duplicate add produced %d entries, want 1", len(entries))
	}
}

func TestWatchlistAddUnknownMarket(t *testing.T) {
	uc, _ := newWatchlistUC(t)

	_, err := uc.Add(context.Background(), "0xabc", "nope")
	var appErr *xhttp.AppError
	if !errors.As(err, &appErr) || appErr.Status != 404 {
		t.Fatalf("want 404 AppError, got %v", err)
	}
}

func TestWatchlistRemove(t *testing.T) {
	uc, _ := newWatchlistUC(t)
	ctx := context.Background()

	if _, err := uc.Add(ctx, "0xabc", "m1"); err != nil {
		t.Fatalf("add m1: %v", err)
	}
	if _, err := uc.Add(ctx, "0xabc", "m2"); err != nil {
		t.Fatalf("add m2: %v", err)
	}

	entries, err := uc.Remove(ctx, "0xabc", "m1")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(entries) != 1 || entries[0].MarketID != "m2" {
		t.Fatalf("unexpected entries after remove: %+v", entries)
	}

	// Removing an absent entry is a no-op.
	entries, err = uc.Remove(ctx, "0xabc", "m1")
	if err != nil {
		t.Fatalf("remove again: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("no-op remove changed entries: %+v", entries)
	}
}

func TestWatchlistAddressRequired(t *testing.T) {
	uc, _ := newWatchlistUC(t)

	_, err := uc.Get(context.Background(), "  ")
	var appErr *xhttp.AppError
	if !errors.As(err, &appErr) || appErr.Status != 400 {
		t.Fatalf("want 400 AppError, got %v", err)
	}
}

func TestPortfolioUpsertAndRemove(t *testing.T) {
	kv := cache.NewMemoryCache()
	t.Cleanup(func() { _ = kv.Close() })
	uc := NewPortfolioUseCase(internalrepo.NewKVPortfolioStore(kv), nil)
	ctx := context.Background()

	positions, err := uc.Upsert(ctx, "0xabc", models.Position{
		MarketID: "m1", Outcome: models.DirectionYes, Shares: 10, AvgPrice: 62,
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if len(positions) != 1 || positions[0].Shares != 10 {
		t.Fatalf("unexpected positions: %+v", positions)
	}

	// Same market+outcome replaces; other outcome is a distinct position.
	positions, err = uc.Upsert(ctx, "0xabc", models.Position{
		MarketID: "m1", Outcome: models.DirectionYes, Shares: 25, AvgPrice: 58,
	})
	if err != nil {
		t.Fatalf("upsert replace: %v", err)
	}
	if len(positions) != 1 || positions[0].Shares != 25 {
		t.Fatalf("replace did not take: %+v", positions)
	}

	positions, err = uc.Upsert(ctx, "0xabc", models.Position{
		MarketID: "m1", Outcome: models.DirectionNo, Shares: 5, AvgPrice: 40,
	})
	if err != nil {
		t.Fatalf("upsert other side: %v", err)
	}
	if len(positions) != 2 {
		t.Fatalf("got %d positions, want 2", len(positions))
	}

	positions, err = uc.Remove(ctx, "0xabc", "m1", models.DirectionYes)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(positions) != 1 || positions[0].Outcome != models.DirectionNo {
		t.Fatalf("unexpected positions after remove: %+v", positions)
	}

	// Empty outcome clears both sides.
	positions, err = uc.Remove(ctx, "0xabc", "m1", "")
	if err != nil {
		t.Fatalf("remove all: %v", err)
	}
	if len(positions) != 0 {
		t.Fatalf("positions remain after full remove: %+v", positions)
	}
}

func TestPortfolioValidation(t *testing.T) {
	kv := cache.NewMemoryCache()
	t.Cleanup(func() { _ = kv.Close() })
	uc := NewPortfolioUseCase(internalrepo.NewKVPortfolioStore(kv), nil)
	ctx := context.Background()

	cases := []models.Position{
		{MarketID: "", Outcome: models.DirectionYes, Shares: 1, AvgPrice: 50},
		{MarketID: "m1", Outcome: models.DirectionNeutral, Shares: 1, AvgPrice: 50},
		{MarketID: "m1", Outcome: models.DirectionYes, Shares: 0, AvgPrice: 50},
		{MarketID: "m1", Outcome: models.DirectionYes, Shares: 1, AvgPrice: 101},
	}
	for i, p := range cases {
		_, err := uc.Upsert(ctx, "0xabc", p)
		var appErr *xhttp.AppError
		if !errors.As(err, &appErr) || appErr.Status != 400 {
			t.Fatalf("case %d: want 400 AppError, got %v", i, err)
		}
	}
}
