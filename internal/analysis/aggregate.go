package analysis

import (
	"math"

	"OddsLens/internal/domain/models"
)

const (
	// Confidence floor and ceiling: never claim zero confidence, never claim
	// certainty.
	minConfidence = 10
	maxConfidence = 95

	// Dead zone around zero; marginal signal noise must not flip predictions.
	neutralBand = 0.15
)

// Aggregate combines weighted signals into one prediction. The normalizer is
// the maximum achievable magnitude given these signals' own scores and
// weights, so confidence scales with how strongly each signal committed, not
// just with how many fired. Abstaining extractors are simply not in the slice.
func Aggregate(signals []models.SignalResult) models.Prediction {
	var weighted, maxPossible float64
	for _, s := range signals {
		weighted += s.Signed() * s.Weight
		maxPossible += s.Score * s.Weight
	}

	var normalized float64
	if maxPossible > 0 {
		normalized = weighted / maxPossible
	}

	confidence := math.Abs(normalized) * 100
	if confidence < minConfidence {
		confidence = minConfidence
	}
	if confidence > maxConfidence {
		confidence = maxConfidence
	}

	outcome := models.DirectionNeutral
	if normalized > neutralBand {
		outcome = models.DirectionYes
	} else if normalized < -neutralBand {
		outcome = models.DirectionNo
	}

	return models.Prediction{
		Outcome:    outcome,
		Confidence: confidence,
	}
}
