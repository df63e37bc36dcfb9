package analysis

import (
	"fmt"
	"math"

	"OddsLens/internal/domain/models"
)

// The extractors below are pure: one market facet in, one signal out. A nil
// return is an abstention and is excluded from aggregation, not counted as a
// zero vote. Tier breakpoints are fixed constants; they are not derived from
// batch statistics.

// PriceTrend reads the yes price directly. The yes price is itself an implied
// probability, so a high yes price is itself bullish. Tiers start at 55 rather
// than the 50 midpoint to avoid reacting to small deviations.
func PriceTrend(m models.MarketSnapshot) *models.SignalResult {
	tier := func(p float64) (float64, string) {
		switch {
		case p >= 80:
			return 0.9, "Very Strong"
		case p >= 65:
			return 0.7, "Strong"
		case p >= 55:
			return 0.4, "Moderate"
		default:
			return 0, ""
		}
	}

	if score, strength := tier(m.YesPrice); score > 0 {
		return &models.SignalResult{
			Direction: models.DirectionYes,
			Score:     score,
			Label:     strength + " Yes",
			Detail:    fmt.Sprintf("yes price at %.1f", m.YesPrice),
		}
	}
	if score, strength := tier(m.NoPrice); score > 0 {
		return &models.SignalResult{
			Direction: models.DirectionNo,
			Score:     score,
			Label:     strength + " No",
			Detail:    fmt.Sprintf("no price at %.1f", m.NoPrice),
		}
	}
	return &models.SignalResult{
		Direction: models.DirectionNeutral,
		Score:     0,
		Label:     "Neutral",
		Detail:    fmt.Sprintf("prices near even (yes %.1f / no %.1f)", m.YesPrice, m.NoPrice),
	}
}

// VolumeActivity rates the market's trading activity against its peers. It
// measures conviction and liquidity, never direction, so its Direction is
// always Neutral: the score feeds the aggregation normalizer without voting.
// Each tier is an OR across relative-to-max, absolute-floor and
// relative-to-average conditions, so any one strong reading qualifies.
func VolumeActivity(m models.MarketSnapshot, peers models.PeerContext) *models.SignalResult {
	combined := m.CombinedVolume()

	var relMax, relAvg float64
	if peers.MaxVolume > 0 {
		relMax = combined / peers.MaxVolume
	}
	if peers.AvgVolume > 0 {
		relAvg = combined / peers.AvgVolume
	}

	var score float64
	var label string
	switch {
	case relMax >= 0.8 || combined > 500_000:
		score, label = 0.8, "Very High Volume"
	case relMax >= 0.5 || combined > 100_000 || relAvg > 1.5:
		score, label = 0.6, "High Volume"
	case relMax >= 0.2 || combined > 10_000 || relAvg > 0.8:
		score, label = 0.3, "Moderate Volume"
	default:
		score, label = 0.1, "Low Volume"
	}

	return &models.SignalResult{
		Direction: models.DirectionNeutral,
		Score:     score,
		Label:     label,
		Detail:    fmt.Sprintf("combined volume %.0f (%.2fx batch avg)", combined, relAvg),
	}
}

// Momentum classifies the spread between the independently quoted yes and no
// prices. The spread can disagree with the absolute yes level when books are
// thin, which is why this is a separate signal from PriceTrend.
func Momentum(m models.MarketSnapshot) *models.SignalResult {
	spread := m.YesPrice - m.NoPrice
	mag := math.Abs(spread)

	var score float64
	var strength string
	switch {
	case mag > 30:
		score, strength = 0.9, "Strong"
	case mag > 15:
		score, strength = 0.7, "Solid"
	case mag > 5:
		score, strength = 0.4, "Mild"
	default:
		return &models.SignalResult{
			Direction: models.DirectionNeutral,
			Score:     0,
			Label:     "Flat",
			Detail:    fmt.Sprintf("spread %.1f within noise band", spread),
		}
	}

	dir := models.DirectionYes
	side := "Yes"
	if spread < 0 {
		dir = models.DirectionNo
		side = "No"
	}
	return &models.SignalResult{
		Direction: dir,
		Score:     score,
		Label:     strength + " " + side + " Momentum",
		Detail:    fmt.Sprintf("yes/no spread %.1f", spread),
	}
}

// DepthImbalance classifies which side of the order book carries more resting
// size. Returns nil when there is no book or no depth: absence of a book is
// common and must not count as a neutral vote.
func DepthImbalance(book *models.OrderBookSnapshot) *models.SignalResult {
	if book == nil {
		return nil
	}

	var bidDepth, askDepth float64
	for _, l := range book.Bids {
		bidDepth += l.Size
	}
	for _, l := range book.Asks {
		askDepth += l.Size
	}

	total := bidDepth + askDepth
	if total <= 0 {
		return nil
	}

	bidShare := bidDepth / total
	askShare := askDepth / total

	tier := func(share float64) (float64, string) {
		switch {
		case share >= 0.7:
			return 0.8, "Heavy"
		case share >= 0.6:
			return 0.6, "Solid"
		case share >= 0.55:
			return 0.3, "Slight"
		default:
			return 0, ""
		}
	}

	if score, strength := tier(bidShare); score > 0 {
		return &models.SignalResult{
			Direction: models.DirectionYes,
			Score:     score,
			Label:     strength + " Bid Support",
			Detail:    fmt.Sprintf("bids hold %.0f%% of book depth", bidShare*100),
		}
	}
	if score, strength := tier(askShare); score > 0 {
		return &models.SignalResult{
			Direction: models.DirectionNo,
			Score:     score,
			Label:     strength + " Ask Pressure",
			Detail:    fmt.Sprintf("asks hold %.0f%% of book depth", askShare*100),
		}
	}
	return &models.SignalResult{
		Direction: models.DirectionNeutral,
		Score:     0,
		Label:     "Balanced Book",
		Detail:    fmt.Sprintf("bids %.0f%% / asks %.0f%%", bidShare*100, askShare*100),
	}
}
