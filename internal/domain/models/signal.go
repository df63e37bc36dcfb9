package models

import "time"

// Direction is the outcome a signal or prediction leans toward.
type Direction string

const (
	DirectionYes     Direction = "yes"
	DirectionNo      Direction = "no"
	DirectionNeutral Direction = "neutral"
)

// SignalResult is one extractor's opinion about a market. Score is the
// magnitude in [0, 1]; Direction gives the lean. A Neutral direction with a
// nonzero Score (the volume signal) contributes to the aggregation normalizer
// without voting for either outcome. A nil *SignalResult is an abstention and
// is excluded from aggregation entirely.
type SignalResult struct {
	Direction Direction `json:"direction"`
	Score     float64   `json:"score"`
	Weight    float64   `json:"weight"`
	Label     string    `json:"label"`
	Detail    string    `json:"detail"`
}

// Signed returns the directional score: positive for Yes, negative for No,
// zero for Neutral.
func (s SignalResult) Signed() float64 {
	switch s.Direction {
	case DirectionYes:
		return s.Score
	case DirectionNo:
		return -s.Score
	default:
		return 0
	}
}

// Prediction is the aggregated directional call for one market. Confidence is
// bounded to [10, 95]: never zero certainty, never full certainty.
type Prediction struct {
	Outcome    Direction `json:"outcome"`
	Confidence float64   `json:"confidence"`
}

// PeerContext carries batch-relative volume statistics consumed by the volume
// signal. Built once per analysis batch and discarded at batch end.
type PeerContext struct {
	AvgVolume float64
	MaxVolume float64
}

// MarketAnalysis pairs a market with its prediction and the signals behind it.
type MarketAnalysis struct {
	Market     MarketSnapshot `json:"market"`
	Prediction Prediction     `json:"prediction"`
	Signals    []SignalResult `json:"signals"`
	AnalyzedAt time.Time      `json:"analyzed_at"`
	Degraded   bool           `json:"degraded,omitempty"`
}
