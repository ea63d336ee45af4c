package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/application/dto"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/model"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/port"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/service"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/valueobject"
)

// OriginationDeps are shared by the three origination use cases.
type OriginationDeps struct {
	ScoreRepo      port.CreditScoreRepository
	ObligationRepo port.ObligationRepository
	Originator     *service.ProductOriginator
	Publisher      port.EventPublisher
	IDs            port.IDGenerator
	Clock          port.Clock
	Logger         *slog.Logger
}

type origination struct {
	OriginationDeps
}

func newOrigination(deps OriginationDeps) origination {
	deps.Logger = loggerOrDefault(deps.Logger)
	return origination{OriginationDeps: deps}
}

// latestScore returns nil when the customer has never been scored so the
// originator can reject with ErrMissingCreditScore.
func (o origination) latestScore(ctx context.Context, customerID string) (*model.CreditScoreRecord, error) {
	rec, err := o.ScoreRepo.FindLatest(ctx, customerID)
	if errors.Is(err, model.ErrMissingCreditScore) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find latest score: %w", err)
	}
	return &rec, nil
}

func (o origination) persist(ctx context.Context, ob model.Obligation) (dto.ObligationResponse, error) {
	if err := o.ObligationRepo.Save(ctx, ob); err != nil {
		return dto.ObligationResponse{}, fmt.Errorf("save obligation: %w", err)
	}
	publishBestEffort(ctx, o.Logger, o.Publisher, ob.DomainEvents()...)

	o.Logger.InfoContext(ctx, "obligation originated",
		"obligation_id", ob.ID(),
		"customer_id", ob.CustomerID(),
		"product_type", ob.ProductType().String(),
		"amount", ob.AmountExtended().String(),
	)
	return toObligationResponse(ob.ClearEvents()), nil
}

func (o origination) rejected(ctx context.Context, customerID, product string, err error) {
	o.Logger.InfoContext(ctx, "origination rejected",
		"customer_id", customerID,
		"product_type", product,
		"reason", err.Error(),
	)
}

// ---------------------------------------------------------------------------
// Net Terms
// ---------------------------------------------------------------------------

// OriginateNetTermsUseCase finances a supplier invoice.
type OriginateNetTermsUseCase struct {
	origination
}

// NewOriginateNetTermsUseCase wires dependencies.
func NewOriginateNetTermsUseCase(deps OriginationDeps) *OriginateNetTermsUseCase {
	return &OriginateNetTermsUseCase{origination: newOrigination(deps)}
}

// Execute gates on the latest score and creates the obligation.
func (uc *OriginateNetTermsUseCase) Execute(ctx context.Context, req dto.OriginateNetTermsRequest) (dto.ObligationResponse, error) {
	// 1. Load gating score.
	latest, err := uc.latestScore(ctx, req.CustomerID)
	if err != nil {
		return dto.ObligationResponse{}, err
	}

	// 2. Gate and price.
	ob, err := uc.Originator.OriginateNetTerms(uc.IDs.NewID(), latest, req.InvoiceAmount, req.SupplierID, uc.Clock().UTC())
	if err != nil {
		uc.rejected(ctx, req.CustomerID, valueobject.ProductTypeNetTerms.String(), err)
		return dto.ObligationResponse{}, fmt.Errorf("originate net terms: %w", err)
	}

	// 3. Persist and notify.
	return uc.persist(ctx, ob)
}

// ---------------------------------------------------------------------------
// Working capital
// ---------------------------------------------------------------------------

// OriginateWorkingCapitalUseCase creates a working capital loan.
type OriginateWorkingCapitalUseCase struct {
	origination
}

// NewOriginateWorkingCapitalUseCase wires dependencies.
func NewOriginateWorkingCapitalUseCase(deps OriginationDeps) *OriginateWorkingCapitalUseCase {
	return &OriginateWorkingCapitalUseCase{origination: newOrigination(deps)}
}

// Execute gates on the latest score and tier limit, then creates the loan.
func (uc *OriginateWorkingCapitalUseCase) Execute(ctx context.Context, req dto.OriginateWorkingCapitalRequest) (dto.ObligationResponse, error) {
	latest, err := uc.latestScore(ctx, req.CustomerID)
	if err != nil {
		return dto.ObligationResponse{}, err
	}

	ob, err := uc.Originator.OriginateWorkingCapitalLoan(uc.IDs.NewID(), latest, req.Amount, req.TermMonths, uc.Clock().UTC())
	if err != nil {
		uc.rejected(ctx, req.CustomerID, valueobject.ProductTypeWorkingCapital.String(), err)
		return dto.ObligationResponse{}, fmt.Errorf("originate working capital loan: %w", err)
	}

	return uc.persist(ctx, ob)
}

// ---------------------------------------------------------------------------
// Revenue-based financing
// ---------------------------------------------------------------------------

// OriginateRevenueBasedUseCase creates a revenue-based financing advance.
type OriginateRevenueBasedUseCase struct {
	origination
}

// NewOriginateRevenueBasedUseCase wires dependencies.
func NewOriginateRevenueBasedUseCase(deps OriginationDeps) *OriginateRevenueBasedUseCase {
	return &OriginateRevenueBasedUseCase{origination: newOrigination(deps)}
}

// Execute gates on the latest score and creates the advance.
func (uc *OriginateRevenueBasedUseCase) Execute(ctx context.Context, req dto.OriginateRevenueBasedRequest) (dto.ObligationResponse, error) {
	latest, err := uc.latestScore(ctx, req.CustomerID)
	if err != nil {
		return dto.ObligationResponse{}, err
	}

	ob, err := uc.Originator.OriginateRevenueBasedFinancing(uc.IDs.NewID(), latest, req.AdvanceAmount, req.RepaymentMultiple, uc.Clock().UTC())
	if err != nil {
		uc.rejected(ctx, req.CustomerID, valueobject.ProductTypeRevenueBased.String(), err)
		return dto.ObligationResponse{}, fmt.Errorf("originate revenue based financing: %w", err)
	}

	return uc.persist(ctx, ob)
}
