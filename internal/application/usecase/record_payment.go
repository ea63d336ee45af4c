package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/application/dto"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/model"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/port"
)

// maxSaveAttempts bounds re-reads after an optimistic concurrency conflict.
const maxSaveAttempts = 3

// RecordPaymentUseCase appends a payment to an obligation's ledger.
type RecordPaymentUseCase struct {
	obligationRepo port.ObligationRepository
	locker         port.ObligationLocker
	publisher      port.EventPublisher
	ids            port.IDGenerator
	clock          port.Clock
	logger         *slog.Logger
}

// NewRecordPaymentUseCase wires dependencies.
func NewRecordPaymentUseCase(
	obligationRepo port.ObligationRepository,
	locker port.ObligationLocker,
	publisher port.EventPublisher,
	ids port.IDGenerator,
	clock port.Clock,
	logger *slog.Logger,
) *RecordPaymentUseCase {
	return &RecordPaymentUseCase{
		obligationRepo: obligationRepo,
		locker:         locker,
		publisher:      publisher,
		ids:            ids,
		clock:          clock,
		logger:         loggerOrDefault(logger),
	}
}

// Execute validates the amount, then loads, applies and saves under the
// obligation's lock. A version conflict re-reads and re-applies.
func (uc *RecordPaymentUseCase) Execute(
	ctx context.Context,
	req dto.RecordPaymentRequest,
) (dto.RecordPaymentResponse, error) {
	// 1. Validate before touching storage.
	if !req.Amount.IsPositive() {
		return dto.RecordPaymentResponse{}, fmt.Errorf("%w: payment amount must be positive", model.ErrInvalidAmount)
	}
	if !model.IsWholeCents(req.Amount) {
		return dto.RecordPaymentResponse{}, fmt.Errorf("%w: payment amount has sub-cent precision", model.ErrInvalidAmount)
	}
	if req.RevenueForPeriod != nil && (req.RevenueForPeriod.IsNegative() || !model.IsWholeCents(*req.RevenueForPeriod)) {
		return dto.RecordPaymentResponse{}, fmt.Errorf("%w: revenue for period must be a non-negative whole-cent amount", model.ErrInvalidAmount)
	}

	// 2. Serialise writers on this obligation.
	unlock, err := uc.locker.Lock(ctx, req.ObligationID)
	if err != nil {
		return dto.RecordPaymentResponse{}, fmt.Errorf("lock obligation: %w", err)
	}
	defer unlock()

	paymentID := uc.ids.NewID()

	var (
		ob      model.Obligation
		payment model.Payment
	)
	for attempt := 1; ; attempt++ {
		// 3. Load the current state.
		current, err := uc.obligationRepo.FindByID(ctx, req.ObligationID)
		if err != nil {
			return dto.RecordPaymentResponse{}, fmt.Errorf("find obligation: %w", err)
		}

		// 4. Apply.
		ob, payment, err = current.RecordPayment(paymentID, req.Amount, req.RevenueForPeriod, uc.clock().UTC())
		if err != nil {
			return dto.RecordPaymentResponse{}, fmt.Errorf("record payment: %w", err)
		}

		// 5. Persist with compare-and-swap on version.
		err = uc.obligationRepo.Save(ctx, ob)
		if err == nil {
			break
		}
		if !errors.Is(err, model.ErrVersionConflict) || attempt >= maxSaveAttempts {
			return dto.RecordPaymentResponse{}, fmt.Errorf("save obligation: %w", err)
		}
		uc.logger.DebugContext(ctx, "retrying payment after version conflict",
			"obligation_id", req.ObligationID, "attempt", attempt)
	}

	// 6. Notify.
	publishBestEffort(ctx, uc.logger, uc.publisher, ob.DomainEvents()...)

	return dto.RecordPaymentResponse{
		Payment:          toPaymentResponse(payment),
		ObligationStatus: ob.Status().String(),
		Outstanding:      ob.Outstanding(),
	}, nil
}
