package usecase

import (
	"context"
	"fmt"

	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/application/dto"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/port"
)

// GetObligationUseCase retrieves a single obligation for billing.
type GetObligationUseCase struct {
	obligationRepo port.ObligationRepository
}

// NewGetObligationUseCase wires dependencies.
func NewGetObligationUseCase(obligationRepo port.ObligationRepository) *GetObligationUseCase {
	return &GetObligationUseCase{obligationRepo: obligationRepo}
}

// Execute returns the obligation with its payment ledger.
func (uc *GetObligationUseCase) Execute(ctx context.Context, req dto.GetObligationRequest) (dto.ObligationResponse, error) {
	ob, err := uc.obligationRepo.FindByID(ctx, req.ObligationID)
	if err != nil {
		return dto.ObligationResponse{}, fmt.Errorf("find obligation: %w", err)
	}
	return toObligationResponse(ob), nil
}

// ListObligationsUseCase lists every obligation of a customer.
type ListObligationsUseCase struct {
	obligationRepo port.ObligationRepository
}

// NewListObligationsUseCase wires dependencies.
func NewListObligationsUseCase(obligationRepo port.ObligationRepository) *ListObligationsUseCase {
	return &ListObligationsUseCase{obligationRepo: obligationRepo}
}

// Execute returns obligations newest first, terminal ones included.
func (uc *ListObligationsUseCase) Execute(ctx context.Context, req dto.ListObligationsRequest) (dto.ObligationListResponse, error) {
	obs, err := uc.obligationRepo.FindByCustomerID(ctx, req.CustomerID)
	if err != nil {
		return dto.ObligationListResponse{}, fmt.Errorf("find obligations: %w", err)
	}
	return dto.ObligationListResponse{
		CustomerID:  req.CustomerID,
		Obligations: toObligationResponses(obs),
	}, nil
}
