// Package clob consumes the venue's CLOB (order book) endpoints.
package clob

import (
	"context"
	"errors"
	"fmt"
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

// Level is one book level; the API quotes price and size as strings.
type Level struct {
	Price string `json:"price"`
	Size  string `json:"size"`
}

// Book is the raw order book payload for one token.
type Book struct {
	Market  string  `json:"market"`
	AssetID string  `json:"asset_id"`
	Bids    []Level `json:"bids"`
	Asks    []Level `json:"asks"`
}

// GetBook fetches the order book for a token. Returns (nil, nil) when the
// venue has no book for it; absence is a normal condition, not an error.
func (c *Client) GetBook(ctx context.Context, tokenID string) (*Book, error) {
	var book Book
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         c.baseURL + "/book",
		QueryParams: map[string][]string{"token_id": {tokenID}},
	}, &book)
	if err != nil {
		if errors.Is(err, xhttp.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("clob book %s: %w", tokenID, err)
	}
	return &book, nil
}

// PricePoint is one raw history sample (unix seconds, 0-1 price).
type PricePoint struct {
	T int64   `json:"t"`
	P float64 `json:"p"`
}

type historyResponse struct {
	History []PricePoint `json:"history"`
}

// GetPriceHistory fetches historical prices for a token at an interval
// understood by the venue ("1m", "1h", "1d", "max").
func (c *Client) GetPriceHistory(ctx context.Context, tokenID, interval string) ([]PricePoint, error) {
	var resp historyResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/prices-history",
		QueryParams: map[string][]string{
			"market":   {tokenID},
			"interval": {interval},
		},
	}, &resp)
	if err != nil {
		if errors.Is(err, xhttp.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("clob history %s: %w", tokenID, err)
	}
	return resp.History, nil
}
