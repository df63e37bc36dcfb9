// Package gamma consumes the venue's gamma (market metadata) endpoints.
package gamma

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	xhttp "OddsLens/pkg/http"
)

type Client struct {
	http    *xhttp.Client
	baseURL string
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		http:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
		baseURL: baseURL,
	}
}

// StringList handles the double-encoded JSON arrays the API returns
// (a JSON string containing a JSON array).
type StringList []string

func (t *StringList) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*t = nil
		return nil
	}
	return json.Unmarshal([]byte(s), (*[]string)(t))
}

// Market is the raw gamma market payload. Prices and token ids arrive as
// double-encoded string arrays; volumes as plain numbers.
type Market struct {
	ID            string     `json:"id"`
	Question      string     `json:"question"`
	Slug          string     `json:"slug"`
	OutcomePrices StringList `json:"outcomePrices"`
	ClobTokenIDs  StringList `json:"clobTokenIds"`
	Volume24hr    float64    `json:"volume24hr"`
	VolumeNum     float64    `json:"volumeNum"`
	Active        bool       `json:"active"`
	Closed        bool       `json:"closed"`
	EndDate       string     `json:"endDate"`
}

// OutcomePrice returns the price for outcome index i on a 0-1 scale,
// or (0, false) when absent.
func (m Market) OutcomePrice(i int) (float64, bool) {
	if i >= len(m.OutcomePrices) {
		return 0, false
	}
	v, err := strconv.ParseFloat(m.OutcomePrices[i], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ListParams narrows a markets listing.
type ListParams struct {
	Active        bool
	ExcludeClosed bool
	Limit         int
	Offset        int
}

// GetMarkets fetches market listings ordered by 24h volume descending.
func (c *Client) GetMarkets(ctx context.Context, p ListParams) ([]Market, error) {
	q := map[string][]string{
		"order":     {"volume24hr"},
		"ascending": {"false"},
	}
	if p.Active {
		q["active"] = []string{"true"}
	}
	if p.ExcludeClosed {
		q["closed"] = []string{"false"}
	}
	if p.Limit > 0 {
		q["limit"] = []string{strconv.Itoa(p.Limit)}
	}
	if p.Offset > 0 {
		q["offset"] = []string{strconv.Itoa(p.Offset)}
	}

	var markets []Market
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         c.baseURL + "/markets",
		QueryParams: q,
	}, &markets)
	if err != nil {
		return nil, fmt.Errorf("gamma markets: %w", err)
	}
	return markets, nil
}

// GetMarketByID fetches one market.
func (c *Client) GetMarketByID(ctx context.Context, id string) (*Market, error) {
	var market Market
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/markets/" + id,
	}, &market)
	if err != nil {
		return nil, fmt.Errorf("gamma market %s: %w", id, err)
	}
	return &market, nil
}
