package models

import "time"

// MarketSnapshot is a point-in-time view of one binary prediction market.
// Yes/No prices are implied probabilities on a 0-100 scale, independently
// quoted per outcome book, so they need not sum to 100. Missing quotes
// default to 50 (fully uncertain) at conversion time.
type MarketSnapshot struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug,omitempty"`
	YesPrice    float64   `json:"yes_price"`
	NoPrice     float64   `json:"no_price"`
	Volume24h   float64   `json:"volume_24h"`
	VolumeTotal float64   `json:"volume_total"`
	BookTokenID string    `json:"book_token_id,omitempty"`
	Active      bool      `json:"active"`
	Closed      bool      `json:"closed"`
	EndDate     time.Time `json:"end_date,omitempty"`
}

// CombinedVolume is the activity magnitude used for ranking and the volume
// signal: trailing 24h volume plus cumulative volume.
func (m MarketSnapshot) CombinedVolume() float64 {
	return m.Volume24h + m.VolumeTotal
}

// PriceLevel is one resting order book level.
type PriceLevel struct {
	Price float64 `json:"price"`
	Size  float64 `json:"size"`
}

// OrderBookSnapshot holds both sides of a market's order book.
type OrderBookSnapshot struct {
	MarketID string       `json:"market_id,omitempty"`
	Bids     []PriceLevel `json:"bids"`
	Asks     []PriceLevel `json:"asks"`
}

// PricePoint is one sample of a market's price history.
type PricePoint struct {
	T     time.Time `json:"t"`
	Price float64   `json:"price"`
}

// ListFilters narrows market listings from the data provider.
type ListFilters struct {
	ActiveOnly    bool
	ExcludeClosed bool
	Limit         int
	Offset        int
}
