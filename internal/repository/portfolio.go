package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"OddsLens/internal/domain/models"
	domrepo "OddsLens/internal/domain/repository"
	"OddsLens/pkg/cache"
)

// KVPortfolioStore keeps one positions document per wallet address in the
// key-value store.
type KVPortfolioStore struct {
	kv cache.Service
}

func NewKVPortfolioStore(kv cache.Service) *KVPortfolioStore {
	return &KVPortfolioStore{kv: kv}
}

func portfolioKey(address string) string {
	return "portfolio:" + strings.ToLower(strings.TrimSpace(address))
}

func (s *KVPortfolioStore) Load(ctx context.Context, address string) ([]models.Position, error) {
	var positions []models.Position
	err := s.kv.Get(ctx, portfolioKey(address), &positions)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return []models.Position{}, nil
		}
		return nil, fmt.Errorf("load portfolio: %w", err)
	}
	return positions, nil
}

func (s *KVPortfolioStore) Save(ctx context.Context, address string, positions []models.Position) error {
	if err := s.kv.Set(ctx, portfolioKey(address), positions, 0); err != nil {
		return fmt.Errorf("save portfolio: %w", err)
	}
	return nil
}

var _ domrepo.PortfolioStore = (*KVPortfolioStore)(nil)
