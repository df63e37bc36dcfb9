package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"OddsLens/internal/domain/models"
	domrepo "OddsLens/internal/domain/repository"
	domsvc "OddsLens/internal/domain/service"
	xhttp "OddsLens/pkg/http"
	xlogger "OddsLens/pkg/logger"
)

// WatchlistUseCase tracks the markets a wallet address follows.
type WatchlistUseCase struct {
	store    domrepo.WatchlistStore
	provider domsvc.MarketDataProvider
	log      *xlogger.Logger
}

func NewWatchlistUseCase(store domrepo.WatchlistStore, provider domsvc.MarketDataProvider, log *xlogger.Logger) *WatchlistUseCase {
	if log == nil {
		log = xlogger.Nop()
	}
	return &WatchlistUseCase{store: store, provider: provider, log: log}
}

func (uc *WatchlistUseCase) Get(ctx context.Context, address string) ([]models.WatchlistEntry, error) {
	if err := validAddress(address); err != nil {
		return nil, err
	}

	entries, err := uc.store.Load(ctx, address)
	if err != nil {
		return nil, xhttp.InternalError("watchlist read failed").WithError(err)
	}
	return entries, nil
}

// Add appends a market to the address's watchlist. Re-adding an existing
// entry is a no-op, not an error. The market title is resolved once at add
// time so list rendering needs no venue round trip.
func (uc *WatchlistUseCase) Add(ctx context.Context, address, marketID string) ([]models.WatchlistEntry, error) {
	if err := validAddress(address); err != nil {
		return nil, err
	}
	if marketID == "" {
		return nil, xhttp.BadRequestError("market id required")
	}

	entries, err := uc.Get(ctx, address)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.MarketID == marketID {
			return entries, nil
		}
	}

	m, err := uc.provider.GetMarket(ctx, marketID)
	if err != nil {
		if errors.Is(err, xhttp.ErrNotFound) {
			return nil, xhttp.NotFoundErrorf("market %s not found", marketID)
		}
		return nil, xhttp.UpstreamError("market lookup failed").WithError(err)
	}

	entries = append(entries, models.WatchlistEntry{
		MarketID: marketID,
		Title:    m.Title,
		AddedAt:  time.Now().UTC(),
	})
	if err := uc.store.Save(ctx, address, entries); err != nil {
		return nil, xhttp.InternalError("watchlist write failed").WithError(err)
	}
	return entries, nil
}

// Remove deletes a market from the address's watchlist. Removing an absent
// entry is a no-op.
func (uc *WatchlistUseCase) Remove(ctx context.Context, address, marketID string) ([]models.WatchlistEntry, error) {
	if err := validAddress(address); err != nil {
		return nil, err
	}
	if marketID == "" {
		return nil, xhttp.BadRequestError("market id required")
	}

	entries, err := uc.Get(ctx, address)
	if err != nil {
		return nil, err
	}

	kept := entries[:0]
	for _, e := range entries {
		if e.MarketID != marketID {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entries) {
		return entries, nil
	}

	if err := uc.store.Save(ctx, address, kept); err != nil {
		return nil, xhttp.InternalError("watchlist write failed").WithError(err)
	}
	return kept, nil
}

func validAddress(address string) error {
	a := strings.TrimSpace(address)
	if a == "" {
		return xhttp.BadRequestError("address required")
	}
	if len(a) > 128 {
		return xhttp.BadRequestError("address too long")
	}
	return nil
}
