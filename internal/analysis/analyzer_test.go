package analysis

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"OddsLens/internal/domain/models"
)

// fakeProvider serves canned order books and records how often each token was
// fetched. Listing, search and history are not exercised by the analyzer.
type fakeProvider struct {
	mu      sync.Mutex
	books   map[string]*models.OrderBookSnapshot
	errs    map[string]error
	panics  map[string]bool
	fetches map[string]int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		books:   make(map[string]*models.OrderBookSnapshot),
		errs:    make(map[string]error),
		panics:  make(map[string]bool),
		fetches: make(map[string]int),
	}
}

func (f *fakeProvider) ListMarkets(context.Context, models.ListFilters) ([]models.MarketSnapshot, error) {
	return nil, nil
}

func (f *fakeProvider) SearchMarkets(context.Context, string, int) ([]models.MarketSnapshot, error) {
	return nil, nil
}

func (f *fakeProvider) GetMarket(context.Context, string) (models.MarketSnapshot, error) {
	return models.MarketSnapshot{}, nil
}

func (f *fakeProvider) GetPriceHistory(context.Context, string, string) ([]models.PricePoint, error) {
	return nil, nil
}

func (f *fakeProvider) GetOrderBook(_ context.Context, tokenID string) (*models.OrderBookSnapshot, error) {
	f.mu.Lock()
	f.fetches[tokenID]++
	panics := f.panics[tokenID]
	err := f.errs[tokenID]
	book := f.books[tokenID]
	f.mu.Unlock()

	if panics {
		panic("order book backend exploded")
	}
	if err != nil {
		return nil, err
	}
	return book, nil
}

func (f *fakeProvider) fetchCount(tokenID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches[tokenID]
}

func market(id, token string, yes, vol float64) models.MarketSnapshot {
	return models.MarketSnapshot{
		ID:          id,
		Title:       "market " + id,
		YesPrice:    yes,
		NoPrice:     100 - yes,
		Volume24h:   vol,
		BookTokenID: token,
		Active:      true,
	}
}

func balancedBook() *models.OrderBookSnapshot {
	return &models.OrderBookSnapshot{
		Bids: []models.PriceLevel{{Price: 0.5, Size: 100}},
		Asks: []models.PriceLevel{{Price: 0.5, Size: 100}},
	}
}

func receiveOne(t *testing.T, ch <-chan models.MarketAnalysis) models.MarketAnalysis {
	t.Helper()
	select {
	case res, ok := <-ch:
		if !ok {
			t.Fatalf("channel closed early")
		}
		return res
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for a result")
	}
	return models.MarketAnalysis{}
}

func TestAnalyzeBatchIncrementalDelivery(t *testing.T) {
	provider := newFakeProvider()
	markets := make([]models.MarketSnapshot, 5)
	tokens := []string{"tok-0", "tok-1", "tok-2", "tok-3", "tok-4"}
	for i, tok := range tokens {
		markets[i] = market(string(rune('a'+i)), tok, 60, 50_000)
		provider.books[tok] = balancedBook()
	}

	a := New(provider, nil, nil, time.Second)
	ch := a.AnalyzeBatch(context.Background(), markets)

	first := receiveOne(t, ch)
	second := receiveOne(t, ch)
	if first.Market.ID != "a" || second.Market.ID != "b" {
		t.Fatalf("results out of rank order: %s, %s", first.Market.ID, second.Market.ID)
	}

	// Delivery is unbuffered, so after receiving result 1 the producer is at
	// most working on market 2. Markets 3 and 4 must be untouched.
	if n := provider.fetchCount("tok-3"); n != 0 {
		t.Fatalf("market 3 fetched %d times before its turn", n)
	}
	if n := provider.fetchCount("tok-4"); n != 0 {
		t.Fatalf("market 4 fetched %d times before its turn", n)
	}

	var rest []models.MarketAnalysis
	for res := range ch {
		rest = append(rest, res)
	}
	if len(rest) != 3 {
		t.Fatalf("got %d remaining results, want 3", len(rest))
	}
	for i, res := range rest {
		want := markets[i+2].ID
		if res.Market.ID != want {
			t.Fatalf("result %d is market %s, want %s", i+2, res.Market.ID, want)
		}
	}
	for _, tok := range tokens {
		if n := provider.fetchCount(tok); n != 1 {
			t.Fatalf("token %s fetched %d times, want 1", tok, n)
		}
	}
}

func TestAnalyzeBatchBookFetchErrorAbstains(t *testing.T) {
	provider := newFakeProvider()
	provider.errs["tok-bad"] = errors.New("upstream 502")

	a := New(provider, nil, nil, time.Second)
	ch := a.AnalyzeBatch(context.Background(), []models.MarketSnapshot{
		market("m1", "tok-bad", 85, 600_000),
	})

	res := receiveOne(t, ch)
	if res.Degraded {
		t.Fatalf("a failed book fetch must not degrade the whole market")
	}
	if len(res.Signals) != 3 {
		t.Fatalf("got %d signals, want 3 with depth abstaining", len(res.Signals))
	}
	if res.Prediction.Outcome != models.DirectionYes {
		t.Fatalf("remaining signals still point yes, got %s", res.Prediction.Outcome)
	}
}

func TestAnalyzeBatchPanicIsolation(t *testing.T) {
	provider := newFakeProvider()
	provider.panics["tok-boom"] = true
	provider.books["tok-ok"] = balancedBook()

	a := New(provider, nil, nil, time.Second)
	ch := a.AnalyzeBatch(context.Background(), []models.MarketSnapshot{
		market("m1", "tok-boom", 70, 50_000),
		market("m2", "tok-ok", 70, 50_000),
	})

	first := receiveOne(t, ch)
	if first.Market.ID != "m1" {
		t.Fatalf("got %s first, want m1", first.Market.ID)
	}
	if len(first.Signals) != 3 {
		t.Fatalf("panicking book fetch must abstain, got %d signals", len(first.Signals))
	}

	second := receiveOne(t, ch)
	if second.Market.ID != "m2" {
		t.Fatalf("sibling market lost after panic, got %s", second.Market.ID)
	}
	if len(second.Signals) != 4 {
		t.Fatalf("sibling got %d signals, want 4", len(second.Signals))
	}

	if _, ok := <-ch; ok {
		t.Fatalf("expected channel closed after batch")
	}
}

func TestAnalyzeBatchMissingBookToken(t *testing.T) {
	provider := newFakeProvider()

	a := New(provider, nil, nil, time.Second)
	ch := a.AnalyzeBatch(context.Background(), []models.MarketSnapshot{
		market("m1", "", 60, 50_000),
	})

	res := receiveOne(t, ch)
	if len(res.Signals) != 3 {
		t.Fatalf("got %d signals, want 3", len(res.Signals))
	}
	if n := provider.fetchCount(""); n != 0 {
		t.Fatalf("fetched a book for an empty token %d times", n)
	}
}

func TestAnalyzeBatchContextCancel(t *testing.T) {
	provider := newFakeProvider()
	var markets []models.MarketSnapshot
	for i := 0; i < 10; i++ {
		markets = append(markets, market(string(rune('a'+i)), "", 60, 50_000))
	}

	ctx, cancel := context.WithCancel(context.Background())
	a := New(provider, nil, nil, time.Second)
	ch := a.AnalyzeBatch(ctx, markets)

	receiveOne(t, ch)
	cancel()

	deadline := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatalf("channel not closed after cancel")
		}
	}
}

func TestAnalyzeTop(t *testing.T) {
	provider := newFakeProvider()
	var markets []models.MarketSnapshot
	for i := 0; i < 5; i++ {
		markets = append(markets, market(string(rune('a'+i)), "", 60, 50_000))
	}

	a := New(provider, nil, nil, time.Second)
	first, rest := a.AnalyzeTop(context.Background(), markets, 3)

	if len(first) != 3 {
		t.Fatalf("got %d synchronous results, want 3", len(first))
	}
	for i, res := range first {
		if res.Market.ID != markets[i].ID {
			t.Fatalf("synchronous result %d is %s, want %s", i, res.Market.ID, markets[i].ID)
		}
	}

	var streamed []models.MarketAnalysis
	for res := range rest {
		streamed = append(streamed, res)
	}
	if len(streamed) != 2 {
		t.Fatalf("got %d streamed results, want 2", len(streamed))
	}
	if streamed[0].Market.ID != "d" || streamed[1].Market.ID != "e" {
		t.Fatalf("streamed order wrong: %s, %s", streamed[0].Market.ID, streamed[1].Market.ID)
	}
}

func TestAnalyzeTopOversizedN(t *testing.T) {
	provider := newFakeProvider()
	markets := []models.MarketSnapshot{market("a", "", 60, 50_000)}

	a := New(provider, nil, nil, time.Second)
	first, rest := a.AnalyzeTop(context.Background(), markets, 10)
	if len(first) != 1 {
		t.Fatalf("got %d results, want 1", len(first))
	}
	if _, ok := <-rest; ok {
		t.Fatalf("rest channel should be empty and closed")
	}
}

// A confident market: strong yes price, heavy volume, bid-dominated book.
func TestAnalyzeBatchConfidentYesScenario(t *testing.T) {
	provider := newFakeProvider()
	provider.books["tok-1"] = &models.OrderBookSnapshot{
		Bids: []models.PriceLevel{{Price: 0.84, Size: 700}},
		Asks: []models.PriceLevel{{Price: 0.86, Size: 300}},
	}

	batch := []models.MarketSnapshot{
		market("m1", "tok-1", 85, 600_000),
		market("m2", "", 50, 100_000),
	}

	a := New(provider, nil, nil, time.Second)
	ch := a.AnalyzeBatch(context.Background(), batch)

	res := receiveOne(t, ch)
	if res.Prediction.Outcome != models.DirectionYes {
		t.Fatalf("got %s, want yes", res.Prediction.Outcome)
	}
	if res.Prediction.Confidence <= 70 {
		t.Fatalf("got confidence %v, want > 70", res.Prediction.Confidence)
	}
	if len(res.Signals) != 4 {
		t.Fatalf("got %d signals, want all 4", len(res.Signals))
	}
	for _, s := range res.Signals {
		if s.Weight <= 0 {
			t.Fatalf("signal %q delivered without a weight", s.Label)
		}
	}
}

// A dead-even market with no activity and no book stays neutral at the floor.
func TestAnalyzeBatchUncertainScenario(t *testing.T) {
	provider := newFakeProvider()

	a := New(provider, nil, nil, time.Second)
	ch := a.AnalyzeBatch(context.Background(), []models.MarketSnapshot{
		market("m1", "", 50, 0),
	})

	res := receiveOne(t, ch)
	if res.Prediction.Outcome != models.DirectionNeutral {
		t.Fatalf("got %s, want neutral", res.Prediction.Outcome)
	}
	if res.Prediction.Confidence != 10 {
		t.Fatalf("got confidence %v, want floor 10", res.Prediction.Confidence)
	}
}
