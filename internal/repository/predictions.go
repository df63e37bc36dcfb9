// Package repository provides the storage-backed implementations of the
// domain repository interfaces.
package repository

import (
	"context"
	"time"

	"OddsLens/internal/domain/models"
	domrepo "OddsLens/internal/domain/repository"
	"OddsLens/pkg/kafka"
)

// predictionEvent is the wire shape published per analyzed market. It is
// flatter than MarketAnalysis so downstream consumers need no knowledge of
// the engine's internals.
type predictionEvent struct {
	MarketID   string                `json:"market_id"`
	Title      string                `json:"title"`
	Outcome    string                `json:"outcome"`
	Confidence float64               `json:"confidence"`
	YesPrice   float64               `json:"yes_price"`
	NoPrice    float64               `json:"no_price"`
	Signals    []models.SignalResult `json:"signals,omitempty"`
	Degraded   bool                  `json:"degraded,omitempty"`
	AnalyzedAt time.Time             `json:"analyzed_at"`
}

// KafkaPredictionSink publishes each analysis result to a Kafka topic, keyed
// by market id so per-market ordering holds across partitions.
type KafkaPredictionSink struct {
	producer *kafka.Producer
	topic    string
}

func NewKafkaPredictionSink(producer *kafka.Producer, topic string) *KafkaPredictionSink {
	return &KafkaPredictionSink{producer: producer, topic: topic}
}

func (s *KafkaPredictionSink) Publish(ctx context.Context, a models.MarketAnalysis) error {
	event := predictionEvent{
		MarketID:   a.Market.ID,
		Title:      a.Market.Title,
		Outcome:    string(a.Prediction.Outcome),
		Confidence: a.Prediction.Confidence,
		YesPrice:   a.Market.YesPrice,
		NoPrice:    a.Market.NoPrice,
		Signals:    a.Signals,
		Degraded:   a.Degraded,
		AnalyzedAt: a.AnalyzedAt,
	}
	return s.producer.Publish(ctx, s.topic, []byte(a.Market.ID), event)
}

func (s *KafkaPredictionSink) Close() error {
	return s.producer.Close()
}

var _ domrepo.PredictionSink = (*KafkaPredictionSink)(nil)
