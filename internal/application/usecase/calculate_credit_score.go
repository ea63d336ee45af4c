package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/application/dto"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/event"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/model"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/port"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/service"
)

// CalculateCreditScoreUseCase pulls behavioural data for a customer, scores
// it and appends the result to the score history.
type CalculateCreditScoreUseCase struct {
	scoreRepo  port.CreditScoreRepository
	provider   port.BehavioralDataProvider
	calculator *service.ScoreCalculator
	publisher  port.EventPublisher
	ids        port.IDGenerator
	clock      port.Clock
	logger     *slog.Logger
}

// NewCalculateCreditScoreUseCase wires dependencies.
func NewCalculateCreditScoreUseCase(
	scoreRepo port.CreditScoreRepository,
	provider port.BehavioralDataProvider,
	calculator *service.ScoreCalculator,
	publisher port.EventPublisher,
	ids port.IDGenerator,
	clock port.Clock,
	logger *slog.Logger,
) *CalculateCreditScoreUseCase {
	return &CalculateCreditScoreUseCase{
		scoreRepo:  scoreRepo,
		provider:   provider,
		calculator: calculator,
		publisher:  publisher,
		ids:        ids,
		clock:      clock,
		logger:     loggerOrDefault(logger),
	}
}

// Execute computes and stores a new score record.
func (uc *CalculateCreditScoreUseCase) Execute(
	ctx context.Context,
	req dto.CalculateScoreRequest,
) (dto.CreditScoreResponse, error) {
	if req.CustomerID == "" {
		return dto.CreditScoreResponse{}, errors.New("customer ID is required")
	}
	now := uc.clock().UTC()

	// 1. Fetch behavioural input from the CDP.
	input, err := uc.provider.FetchBehavioralInput(ctx, req.CustomerID)
	if err != nil {
		return dto.CreditScoreResponse{}, fmt.Errorf("fetch behavioral input: %w", err)
	}

	// 2. Look up the previous record for tier-change detection.
	var previous *model.CreditScoreRecord
	prev, err := uc.scoreRepo.FindLatest(ctx, req.CustomerID)
	switch {
	case err == nil:
		previous = &prev
	case errors.Is(err, model.ErrMissingCreditScore):
	default:
		return dto.CreditScoreResponse{}, fmt.Errorf("find previous score: %w", err)
	}

	// 3. Score.
	record, err := uc.calculator.Calculate(uc.ids.NewID(), req.CustomerID, input, now)
	if err != nil {
		return dto.CreditScoreResponse{}, fmt.Errorf("calculate score: %w", err)
	}

	// 4. Persist.
	if err := uc.scoreRepo.Save(ctx, record); err != nil {
		return dto.CreditScoreResponse{}, fmt.Errorf("save score: %w", err)
	}

	// 5. Notify.
	events := []event.DomainEvent{event.NewScoreCalculated(
		record.ID(), record.CustomerID(), record.Score(),
		record.Rating().String(), record.RiskTier().Name(),
		record.MaxCreditLimit(), now,
	)}
	if previous != nil && !previous.RiskTier().Equal(record.RiskTier()) {
		events = append(events, event.NewRiskTierChanged(
			record.ID(), record.CustomerID(),
			previous.RiskTier().Name(), record.RiskTier().Name(),
			previous.Score(), record.Score(), now,
		))
	}
	publishBestEffort(ctx, uc.logger, uc.publisher, events...)

	uc.logger.InfoContext(ctx, "credit score calculated",
		"customer_id", record.CustomerID(),
		"score", record.Score(),
		"risk_tier", record.RiskTier().Name(),
	)

	return toScoreResponse(record), nil
}
