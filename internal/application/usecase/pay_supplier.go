package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/application/dto"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/port"
)

// PaySupplierUseCase records that the platform settled a Net Terms invoice
// with the supplier.
type PaySupplierUseCase struct {
	obligationRepo port.ObligationRepository
	locker         port.ObligationLocker
	publisher      port.EventPublisher
	clock          port.Clock
	logger         *slog.Logger
}

// NewPaySupplierUseCase wires dependencies.
func NewPaySupplierUseCase(
	obligationRepo port.ObligationRepository,
	locker port.ObligationLocker,
	publisher port.EventPublisher,
	clock port.Clock,
	logger *slog.Logger,
) *PaySupplierUseCase {
	return &PaySupplierUseCase{
		obligationRepo: obligationRepo,
		locker:         locker,
		publisher:      publisher,
		clock:          clock,
		logger:         loggerOrDefault(logger),
	}
}

// Execute marks the supplier paid exactly once.
func (uc *PaySupplierUseCase) Execute(ctx context.Context, req dto.PaySupplierRequest) (dto.ObligationResponse, error) {
	unlock, err := uc.locker.Lock(ctx, req.ObligationID)
	if err != nil {
		return dto.ObligationResponse{}, fmt.Errorf("lock obligation: %w", err)
	}
	defer unlock()

	ob, err := uc.obligationRepo.FindByID(ctx, req.ObligationID)
	if err != nil {
		return dto.ObligationResponse{}, fmt.Errorf("find obligation: %w", err)
	}

	ob, err = ob.PaySupplier(uc.clock().UTC())
	if err != nil {
		return dto.ObligationResponse{}, fmt.Errorf("pay supplier: %w", err)
	}

	if err := uc.obligationRepo.Save(ctx, ob); err != nil {
		return dto.ObligationResponse{}, fmt.Errorf("save obligation: %w", err)
	}

	publishBestEffort(ctx, uc.logger, uc.publisher, ob.DomainEvents()...)

	return toObligationResponse(ob.ClearEvents()), nil
}
