package usecase

import (
	"context"
	"time"

	"OddsLens/internal/domain/models"
	domrepo "OddsLens/internal/domain/repository"
	xhttp "OddsLens/pkg/http"
	xlogger "OddsLens/pkg/logger"
)

// PortfolioUseCase tracks manually entered positions per wallet address.
// Positions are keyed by market and outcome, so an address can hold both
// sides of a market.
type PortfolioUseCase struct {
	store domrepo.PortfolioStore
	log   *xlogger.Logger
}

func NewPortfolioUseCase(store domrepo.PortfolioStore, log *xlogger.Logger) *PortfolioUseCase {
	if log == nil {
		log = xlogger.Nop()
	}
	return &PortfolioUseCase{store: store, log: log}
}

func (uc *PortfolioUseCase) Get(ctx context.Context, address string) ([]models.Position, error) {
	if err := validAddress(address); err != nil {
		return nil, err
	}

	positions, err := uc.store.Load(ctx, address)
	if err != nil {
		return nil, xhttp.InternalError("portfolio read failed").WithError(err)
	}
	return positions, nil
}

// Upsert inserts or replaces the position for the given market and outcome.
func (uc *PortfolioUseCase) Upsert(ctx context.Context, address string, p models.Position) ([]models.Position, error) {
	if err := validAddress(address); err != nil {
		return nil, err
	}
	if p.MarketID == "" {
		return nil, xhttp.BadRequestError("market id required")
	}
	if p.Outcome != models.DirectionYes && p.Outcome != models.DirectionNo {
		return nil, xhttp.BadRequestError("outcome must be yes or no")
	}
	if p.Shares <= 0 {
		return nil, xhttp.BadRequestError("shares must be positive")
	}
	if p.AvgPrice < 0 || p.AvgPrice > 100 {
		return nil, xhttp.BadRequestError("avg price out of range")
	}
	p.UpdatedAt = time.Now().UTC()

	positions, err := uc.Get(ctx, address)
	if err != nil {
		return nil, err
	}

	replaced := false
	for i, existing := range positions {
		if existing.MarketID == p.MarketID && existing.Outcome == p.Outcome {
			positions[i] = p
			replaced = true
			break
		}
	}
	if !replaced {
		positions = append(positions, p)
	}

	if err := uc.store.Save(ctx, address, positions); err != nil {
		return nil, xhttp.InternalError("portfolio write failed").WithError(err)
	}
	return positions, nil
}

// Remove deletes the position for a market and outcome. An empty outcome
// removes both sides.
func (uc *PortfolioUseCase) Remove(ctx context.Context, address, marketID string, outcome models.Direction) ([]models.Position, error) {
	if err := validAddress(address); err != nil {
		return nil, err
	}
	if marketID == "" {
		return nil, xhttp.BadRequestError("market id required")
	}

	positions, err := uc.Get(ctx, address)
	if err != nil {
		return nil, err
	}

	kept := positions[:0]
	for _, p := range positions {
		if p.MarketID == marketID && (outcome == "" || p.Outcome == outcome) {
			continue
		}
		kept = append(kept, p)
	}
	if len(kept) == len(positions) {
		return positions, nil
	}

	if err := uc.store.Save(ctx, address, kept); err != nil {
		return nil, xhttp.InternalError("portfolio write failed").WithError(err)
	}
	return kept, nil
}
