package analysis

import (
	"math"
	"testing"

	"OddsLens/internal/domain/models"
)

func sig(dir models.Direction, score, weight float64) models.SignalResult {
	return models.SignalResult{Direction: dir, Score: score, Weight: weight}
}

func TestAggregateAllZeroScores(t *testing.T) {
	signals := []models.SignalResult{
		sig(models.DirectionNeutral, 0, 0.30),
		sig(models.DirectionNeutral, 0, 0.25),
		sig(models.DirectionNeutral, 0, 0.25),
	}
	p := Aggregate(signals)
	if p.Outcome != models.DirectionNeutral {
		t.Fatalf("got %s, want neutral", p.Outcome)
	}
	if p.Confidence != 10 {
		t.Fatalf("got confidence %v, want exactly the floor 10", p.Confidence)
	}
	if math.IsNaN(p.Confidence) {
		t.Fatalf("confidence must never be NaN")
	}
}

func TestAggregateNoSignals(t *testing.T) {
	p := Aggregate(nil)
	if p.Outcome != models.DirectionNeutral || p.Confidence != 10 {
		t.Fatalf("all-abstained batch must be neutral at floor, got %+v", p)
	}
}

func TestAggregateConfidenceBounds(t *testing.T) {
	cases := [][]models.SignalResult{
		{sig(models.DirectionYes, 1, 1)},
		{sig(models.DirectionNo, 1, 1)},
		{sig(models.DirectionYes, 0.9, 0.3), sig(models.DirectionNo, 0.9, 0.3)},
		{sig(models.DirectionYes, 0.01, 0.01)},
		{sig(models.DirectionNeutral, 0.8, 0.2)},
	}
	for i, signals := range cases {
		p := Aggregate(signals)
		if p.Confidence < 10 || p.Confidence > 95 {
			t.Fatalf("case %d: confidence %v out of [10, 95]", i, p.Confidence)
		}
	}
}

// The 0.15 dead zone uses strict inequalities: a normalized score of exactly
// 0.15 is still Neutral.
func TestAggregateDeadZoneBoundaries(t *testing.T) {
	// A directional signal of score 0.15 plus a neutral signal of score 0.85
	// (unit weights) gives weighted = 0.15 and a normalizer that rounds to
	// exactly 1.0, so normalized lands on the threshold itself.
	exactly := []models.SignalResult{
		sig(models.DirectionYes, 0.15, 1),
		sig(models.DirectionNeutral, 0.85, 1),
	}
	if p := Aggregate(exactly); p.Outcome != models.DirectionNeutral {
		t.Fatalf("normalized 0.15 must be neutral, got %s", p.Outcome)
	}

	mirrored := []models.SignalResult{
		sig(models.DirectionNo, 0.15, 1),
		sig(models.DirectionNeutral, 0.85, 1),
	}
	if p := Aggregate(mirrored); p.Outcome != models.DirectionNeutral {
		t.Fatalf("normalized -0.15 must be neutral, got %s", p.Outcome)
	}

	above := []models.SignalResult{
		sig(models.DirectionYes, 0.16, 1),
		sig(models.DirectionNeutral, 0.84, 1),
	}
	if p := Aggregate(above); p.Outcome != models.DirectionYes {
		t.Fatalf("normalized 0.16 must be yes, got %s", p.Outcome)
	}

	below := []models.SignalResult{
		sig(models.DirectionNo, 0.16, 1),
		sig(models.DirectionNeutral, 0.84, 1),
	}
	if p := Aggregate(below); p.Outcome != models.DirectionNo {
		t.Fatalf("normalized -0.16 must be no, got %s", p.Outcome)
	}
}

// A neutral-direction signal (volume) dilutes confidence through the
// normalizer but must never push the outcome by itself.
func TestAggregateNeutralSignalAlone(t *testing.T) {
	signals := []models.SignalResult{
		sig(models.DirectionNeutral, 0.1, 0.2), // low-volume signal only
	}
	p := Aggregate(signals)
	if p.Outcome != models.DirectionNeutral {
		t.Fatalf("volume alone must not vote, got %s", p.Outcome)
	}
	if p.Confidence != 10 {
		t.Fatalf("got confidence %v, want floor 10", p.Confidence)
	}
}

func TestAggregateAgreementRaisesConfidence(t *testing.T) {
	aligned := Aggregate([]models.SignalResult{
		sig(models.DirectionYes, 0.9, 0.3),
		sig(models.DirectionYes, 0.9, 0.25),
		sig(models.DirectionYes, 0.6, 0.25),
	})
	split := Aggregate([]models.SignalResult{
		sig(models.DirectionYes, 0.9, 0.3),
		sig(models.DirectionNo, 0.9, 0.25),
		sig(models.DirectionYes, 0.6, 0.25),
	})
	if aligned.Confidence <= split.Confidence {
		t.Fatalf("aligned %v should beat split %v", aligned.Confidence, split.Confidence)
	}
	if aligned.Confidence != 95 {
		t.Fatalf("full agreement caps at the ceiling, got %v", aligned.Confidence)
	}
}
