package models

import "time"

// WatchlistEntry is one market a user tracks.
type WatchlistEntry struct {
	MarketID string    `json:"market_id"`
	Title    string    `json:"title"`
	AddedAt  time.Time `json:"added_at"`
}

// Position is a user's holding in one market outcome.
type Position struct {
	MarketID  string    `json:"market_id"`
	Title     string    `json:"title,omitempty"`
	Outcome   Direction `json:"outcome"`
	Shares    float64   `json:"shares"`
	AvgPrice  float64   `json:"avg_price"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderRequest is a signed order payload forwarded to the trading backend.
// Signing happens client-side in the wallet; this service only relays.
type OrderRequest struct {
	MarketID  string  `json:"market_id"`
	TokenID   string  `json:"token_id"`
	Side      string  `json:"side"`
	Price     float64 `json:"price"`
	Size      float64 `json:"size"`
	Signature string  `json:"signature"`
	Owner     string  `json:"owner"`
}

// OrderAck is the trading backend's acknowledgement.
type OrderAck struct {
	OrderID string    `json:"order_id"`
	Status  string    `json:"status"`
	Placed  time.Time `json:"placed"`
}
