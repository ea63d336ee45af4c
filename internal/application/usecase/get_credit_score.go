package usecase

import (
	"context"
	"fmt"

	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/application/dto"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/port"
)

// GetLatestScoreUseCase returns the authoritative score for a customer.
type GetLatestScoreUseCase struct {
	scoreRepo port.CreditScoreRepository
}

// NewGetLatestScoreUseCase wires dependencies.
func NewGetLatestScoreUseCase(scoreRepo port.CreditScoreRepository) *GetLatestScoreUseCase {
	return &GetLatestScoreUseCase{scoreRepo: scoreRepo}
}

// Execute returns model.ErrMissingCreditScore (wrapped) when the customer
// has never been scored.
func (uc *GetLatestScoreUseCase) Execute(ctx context.Context, req dto.GetScoreRequest) (dto.CreditScoreResponse, error) {
	rec, err := uc.scoreRepo.FindLatest(ctx, req.CustomerID)
	if err != nil {
		return dto.CreditScoreResponse{}, fmt.Errorf("find latest score: %w", err)
	}
	return toScoreResponse(rec), nil
}

// ListScoreHistoryUseCase returns superseded and current score records.
type ListScoreHistoryUseCase struct {
	scoreRepo port.CreditScoreRepository
}

// NewListScoreHistoryUseCase wires dependencies.
func NewListScoreHistoryUseCase(scoreRepo port.CreditScoreRepository) *ListScoreHistoryUseCase {
	return &ListScoreHistoryUseCase{scoreRepo: scoreRepo}
}

// Execute lists records newest first.
func (uc *ListScoreHistoryUseCase) Execute(ctx context.Context, req dto.ListScoreHistoryRequest) (dto.ScoreHistoryResponse, error) {
	records, err := uc.scoreRepo.FindHistory(ctx, req.CustomerID, req.Limit)
	if err != nil {
		return dto.ScoreHistoryResponse{}, fmt.Errorf("find score history: %w", err)
	}
	resp := dto.ScoreHistoryResponse{
		CustomerID: req.CustomerID,
		Records:    make([]dto.CreditScoreResponse, len(records)),
	}
	for i, r := range records {
		resp.Records[i] = toScoreResponse(r)
	}
	return resp, nil
}
