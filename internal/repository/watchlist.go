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

// KVWatchlistStore keeps one watchlist document per wallet address in the
// key-value store. Addresses are case-insensitive keys.
type KVWatchlistStore struct {
	kv cache.Service
}

func NewKVWatchlistStore(kv cache.Service) *KVWatchlistStore {
	return &KVWatchlistStore{kv: kv}
}

func watchlistKey(address string) string {
	return "watchlist:" + strings.ToLower(strings.TrimSpace(address))
}

func (s *KVWatchlistStore) Load(ctx context.Context, address string) ([]models.WatchlistEntry, error) {
	var entries []models.WatchlistEntry
	err := s.kv.Get(ctx, watchlistKey(address), &entries)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return []models.WatchlistEntry{}, nil
		}
		return nil, fmt.Errorf("load watchlist: %w", err)
	}
	return entries, nil
}

func (s *KVWatchlistStore) Save(ctx context.Context, address string, entries []models.WatchlistEntry) error {
	if err := s.kv.Set(ctx, watchlistKey(address), entries, 0); err != nil {
		return fmt.Errorf("save watchlist: %w", err)
	}
	return nil
}

var _ domrepo.WatchlistStore = (*KVWatchlistStore)(nil)
