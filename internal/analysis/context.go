package analysis

import "OddsLens/internal/domain/models"

// BuildPeerContext computes batch-relative volume statistics. Volume is only
// meaningful relative to peers: $50K is high activity in a batch averaging
// $5K and low in one averaging $500K.
func BuildPeerContext(markets []models.MarketSnapshot) models.PeerContext {
	if len(markets) == 0 {
		return models.PeerContext{}
	}

	var sum, max float64
	for _, m := range markets {
		v := m.CombinedVolume()
		sum += v
		if v > max {
			max = v
		}
	}

	return models.PeerContext{
		AvgVolume: sum / float64(len(markets)),
		MaxVolume: max,
	}
}
