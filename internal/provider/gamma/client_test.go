package gamma

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// The gamma API double-encodes list fields: a JSON string whose content is
// itself a JSON array.
const marketPayload = `{
	"id": "512329",
	"question": "Will it happen?",
	"slug": "will-it-happen",
	"outcomePrices": "[\"0.85\", \"0.15\"]",
	"clobTokenIds": "[\"71321045679252212594626385532706912750332728571942532289631379312455583992563\", \"52114319501245915516055106046884209969926127482827954674443846427813813222426\"]",
	"volume24hr": 600000.5,
	"volumeNum": 1250000,
	"active": true,
	"closed": false,
	"endDate": "2026-12-31T00:00:00Z"
}`

func TestGetMarketsDecodesDoubleEncodedLists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/markets" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("order") != "volume24hr" || q.Get("ascending") != "false" {
			t.Errorf("listing not ordered by volume: %v", q)
		}
		if q.Get("active") != "true" || q.Get("closed") != "false" || q.Get("limit") != "20" {
			t.Errorf("filters not forwarded: %v", q)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("[" + marketPayload + "]"))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	markets, err := c.GetMarkets(context.Background(), ListParams{Active: true, ExcludeClosed: true, Limit: 20})
	if err != nil {
		t.Fatalf("get markets: %v", err)
	}
	if len(markets) != 1 {
		t.Fatalf("got %d markets, want 1", len(markets))
	}

	m := markets[0]
	if len(m.OutcomePrices) != 2 || m.OutcomePrices[0] != "0.85" {
		t.Fatalf("outcome prices not decoded: %v", m.OutcomePrices)
	}
	if len(m.ClobTokenIDs) != 2 {
		t.Fatalf("clob token ids not decoded: %v", m.ClobTokenIDs)
	}
	if m.Volume24hr != 600000.5 {
		t.Fatalf("volume24hr = %v", m.Volume24hr)
	}

	yes, ok := m.OutcomePrice(0)
	if !ok || yes != 0.85 {
		t.Fatalf("OutcomePrice(0) = %v, %v", yes, ok)
	}
	if _, ok := m.OutcomePrice(5); ok {
		t.Fatalf("out-of-range outcome price reported present")
	}
}

func TestGetMarketsEmptyListFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id": "1", "question": "q", "outcomePrices": "", "clobTokenIds": ""}]`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	markets, err := c.GetMarkets(context.Background(), ListParams{})
	if err != nil {
		t.Fatalf("get markets: %v", err)
	}
	if len(markets[0].OutcomePrices) != 0 || len(markets[0].ClobTokenIDs) != 0 {
		t.Fatalf("empty double-encoded fields should decode to nil")
	}
}

func TestGetMarketByID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/markets/512329" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(marketPayload))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	m, err := c.GetMarketByID(context.Background(), "512329")
	if err != nil {
		t.Fatalf("get market: %v", err)
	}
	if m.ID != "512329" || m.Question != "Will it happen?" {
		t.Fatalf("unexpected market: %+v", m)
	}

	if _, err := c.GetMarketByID(context.Background(), "0"); err == nil {
		t.Fatalf("missing market should error")
	}
}
