package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/application/dto"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/model"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/port"
)

// GetDashboardUseCase summarises a customer's portfolio. Every figure is
// recomputed from current obligation state on each call.
type GetDashboardUseCase struct {
	scoreRepo      port.CreditScoreRepository
	obligationRepo port.ObligationRepository
}

// NewGetDashboardUseCase wires dependencies.
func NewGetDashboardUseCase(scoreRepo port.CreditScoreRepository, obligationRepo port.ObligationRepository) *GetDashboardUseCase {
	return &GetDashboardUseCase{scoreRepo: scoreRepo, obligationRepo: obligationRepo}
}

// Execute builds the dashboard. A customer without a score has no latest
// score and zero available credit.
func (uc *GetDashboardUseCase) Execute(ctx context.Context, req dto.DashboardRequest) (dto.DashboardResponse, error) {
	var latest *model.CreditScoreRecord
	rec, err := uc.scoreRepo.FindLatest(ctx, req.CustomerID)
	switch {
	case err == nil:
		latest = &rec
	case errors.Is(err, model.ErrMissingCreditScore):
	default:
		return dto.DashboardResponse{}, fmt.Errorf("find latest score: %w", err)
	}

	obs, err := uc.obligationRepo.FindByCustomerID(ctx, req.CustomerID)
	if err != nil {
		return dto.DashboardResponse{}, fmt.Errorf("find obligations: %w", err)
	}

	borrowed, outstanding := decimal.Zero, decimal.Zero
	for _, ob := range obs {
		borrowed = borrowed.Add(ob.AmountExtended())
		outstanding = outstanding.Add(ob.Outstanding())
	}

	resp := dto.DashboardResponse{
		CustomerID:       req.CustomerID,
		Obligations:      toObligationResponses(obs),
		TotalBorrowed:    borrowed,
		TotalOutstanding: outstanding,
		AvailableCredit:  decimal.Zero,
	}
	if latest != nil {
		score := toScoreResponse(*latest)
		resp.LatestScore = &score
		resp.AvailableCredit = decimal.Max(decimal.Zero, latest.RiskTier().MaxCreditLimit().Sub(outstanding))
	}
	return resp, nil
}
