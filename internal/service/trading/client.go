// Package trading relays signed orders to the external trading backend over
// its REST API. The relay holds no keys and never mutates order payloads.
package trading

import (
	"context"
	"fmt"
	"time"

	"OddsLens/internal/domain/models"
	domsvc "OddsLens/internal/domain/service"
	xhttp "OddsLens/pkg/http"
	xlogger "OddsLens/pkg/logger"
)

type Client struct {
	baseURL string
	apiKey  string
	http    *xhttp.Client
	log     *xlogger.Logger
}

// Option configures Client.
type Option func(*Client)

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.http = xhttp.NewClient(xhttp.WithTimeout(timeout))
	}
}

func WithLogger(log *xlogger.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

func New(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    xhttp.NewClient(xhttp.WithTimeout(10 * time.Second)),
		log:     xlogger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type orderPayload struct {
	TokenID   string  `json:"token_id"`
	Side      string  `json:"side"`
	Price     float64 `json:"price"`
	Size      float64 `json:"size"`
	Signature string  `json:"signature"`
	Owner     string  `json:"owner,omitempty"`
}

type orderResponse struct {
	OrderID string `json:"orderID"`
	Status  string `json:"status"`
	Success bool   `json:"success"`
	ErrMsg  string `json:"errorMsg,omitempty"`
}

// PlaceOrder forwards the signed order. Prices cross the wire on the venue's
// 0-1 scale.
func (c *Client) PlaceOrder(ctx context.Context, req models.OrderRequest) (models.OrderAck, error) {
	payload := orderPayload{
		TokenID:   req.TokenID,
		Side:      req.Side,
		Price:     req.Price / 100,
		Size:      req.Size,
		Signature: req.Signature,
		Owner:     req.Owner,
	}

	var resp orderResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    c.baseURL + "/order",
		Headers: map[string]string{
			"Authorization": "Bearer " + c.apiKey,
		},
		Body: payload,
	}, &resp)
	if err != nil {
		return models.OrderAck{}, fmt.Errorf("place order: %w", err)
	}
	if !resp.Success {
		return models.OrderAck{}, fmt.Errorf("order rejected: %s", resp.ErrMsg)
	}

	c.log.Debug("order accepted",
		xlogger.String("order_id", resp.OrderID),
		xlogger.String("status", resp.Status),
	)

	return models.OrderAck{
		OrderID: resp.OrderID,
		Status:  resp.Status,
		Placed:  time.Now().UTC(),
	}, nil
}

var _ domsvc.Trader = (*Client)(nil)
