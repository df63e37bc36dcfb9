package models

// Requests for the HTTP API. Defined in domain for consistency and reuse.

type ListMarketsRequest struct {
	Limit           int  `query:"limit" json:"limit" default:"50" validate:"gte=1,lte=500"`
	Offset          int  `query:"offset" json:"offset" validate:"gte=0"`
	IncludeInactive bool `query:"include_inactive" json:"include_inactive"`
	IncludeClosed   bool `query:"include_closed" json:"include_closed"`
}

type SearchMarketsRequest struct {
	Q     string `query:"q" json:"q" validate:"required,max=200"`
	Limit int    `query:"limit" json:"limit" default:"25" validate:"gte=1,lte=100"`
}

type PriceHistoryRequest struct {
	Interval string `query:"interval" json:"interval" default:"1d" validate:"oneof=1m 1h 6h 1d 1w max"`
}

type AddWatchlistRequest struct {
	MarketID string `json:"market_id" validate:"required,max=64"`
}

type UpsertPositionRequest struct {
	MarketID string  `json:"market_id" validate:"required,max=64"`
	Title    string  `json:"title" validate:"max=500"`
	Outcome  string  `json:"outcome" validate:"oneof=yes no"`
	Shares   float64 `json:"shares" validate:"gt=0"`
	AvgPrice float64 `json:"avg_price" validate:"gte=0,lte=100"`
}

type PlaceOrderRequest struct {
	MarketID  string  `json:"market_id" validate:"max=64"`
	TokenID   string  `json:"token_id" validate:"required,max=128"`
	Side      string  `json:"side" validate:"oneof=buy sell"`
	Price     float64 `json:"price" validate:"gt=0,lt=100"`
	Size      float64 `json:"size" validate:"gt=0"`
	Signature string  `json:"signature" validate:"required"`
	Owner     string  `json:"owner" validate:"max=128"`
}
