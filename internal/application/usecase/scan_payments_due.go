package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/application/dto"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/event"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/port"
)

// DefaultDueWindow is used when a scan request carries no window.
const DefaultDueWindow = 72 * time.Hour

// ScanPaymentsDueUseCase emits payment_due notifications for active
// obligations whose next scheduled collection falls inside the window.
// Overdue collections are included on every scan until settled.
type ScanPaymentsDueUseCase struct {
	obligationRepo port.ObligationRepository
	publisher      port.EventPublisher
	clock          port.Clock
	logger         *slog.Logger
}

// NewScanPaymentsDueUseCase wires dependencies.
func NewScanPaymentsDueUseCase(
	obligationRepo port.ObligationRepository,
	publisher port.EventPublisher,
	clock port.Clock,
	logger *slog.Logger,
) *ScanPaymentsDueUseCase {
	return &ScanPaymentsDueUseCase{
		obligationRepo: obligationRepo,
		publisher:      publisher,
		clock:          clock,
		logger:         loggerOrDefault(logger),
	}
}

// Execute scans all active obligations once.
func (uc *ScanPaymentsDueUseCase) Execute(ctx context.Context, req dto.ScanPaymentsDueRequest) (dto.ScanPaymentsDueResponse, error) {
	window := req.Window
	if window <= 0 {
		window = DefaultDueWindow
	}
	now := uc.clock().UTC()
	horizon := now.Add(window)

	active, err := uc.obligationRepo.FindActive(ctx)
	if err != nil {
		return dto.ScanPaymentsDueResponse{}, fmt.Errorf("find active obligations: %w", err)
	}

	var due []event.DomainEvent
	for _, ob := range active {
		dueAt, amount, ok := ob.NextPaymentDue()
		if !ok || dueAt.After(horizon) {
			continue
		}
		due = append(due, event.NewPaymentDue(
			ob.ID(), ob.CustomerID(), ob.ProductType().String(), amount, dueAt, now,
		))
	}

	publishBestEffort(ctx, uc.logger, uc.publisher, due...)

	uc.logger.InfoContext(ctx, "payment due scan finished",
		"scanned", len(active),
		"due", len(due),
		"window", window.String(),
	)
	return dto.ScanPaymentsDueResponse{Scanned: len(active), Due: len(due)}, nil
}
