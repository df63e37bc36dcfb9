package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"OddsLens/internal/domain/models"
	"OddsLens/internal/usecase"
	xhttp "OddsLens/pkg/http"
	xlogger "OddsLens/pkg/logger"

	"github.com/labstack/echo/v4"
)

type listOnlyProvider struct {
	markets []models.MarketSnapshot
}

func (p *listOnlyProvider) ListMarkets(context.Context, models.ListFilters) ([]models.MarketSnapshot, error) {
	return p.markets, nil
}

func (p *listOnlyProvider) SearchMarkets(context.Context, string, int) ([]models.MarketSnapshot, error) {
	return p.markets, nil
}

func (p *listOnlyProvider) GetMarket(_ context.Context, id string) (models.MarketSnapshot, error) {
	for _, m := range p.markets {
		if m.ID == id {
			return m, nil
		}
	}
	return models.MarketSnapshot{}, xhttp.ErrNotFound
}

func (p *listOnlyProvider) GetOrderBook(context.Context, string) (*models.OrderBookSnapshot, error) {
	return nil, nil
}

func (p *listOnlyProvider) GetPriceHistory(context.Context, string, string) ([]models.PricePoint, error) {
	return nil, nil
}

func newMarketsServer() *echo.Echo {
	provider := &listOnlyProvider{markets: []models.MarketSnapshot{
		{ID: "m1", Title: "Will it rain?", YesPrice: 62, NoPrice: 38},
	}}
	h := NewMarketsHandler(xlogger.Nop(), usecase.NewMarketsUseCase(provider, nil, nil))

	e := echo.New()
	h.RegisterRoutes(e)
	return e
}

func TestListMarketsEndpoint(t *testing.T) {
	e := newMarketsServer()

	req := httptest.NewRequest(http.MethodGet, "/api/markets?limit=10", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data struct {
			Count   int                     `json:"count"`
			Markets []models.MarketSnapshot `json:"markets"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Count != 1 || envelope.Data.Markets[0].ID != "m1" {
		t.Fatalf("unexpected payload: %+v", envelope.Data)
	}
}

func TestListMarketsRejectsBadLimit(t *testing.T) {
	e := newMarketsServer()

	req := httptest.NewRequest(http.MethodGet, "/api/markets?limit=9999", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGetMarketNotFound(t *testing.T) {
	e := newMarketsServer()

	req := httptest.NewRequest(http.MethodGet, "/api/markets/nope", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
