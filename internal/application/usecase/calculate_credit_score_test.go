package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/application/dto"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/application/usecase"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/event"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/model"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/service"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/valueobject"
)

func strongInput() valueobject.BehavioralInput {
	created := fixedNow.AddDate(-2, 0, 0)
	retention, ltv, cac := d("0.75"), d("500"), d("100")
	in := valueobject.BehavioralInput{
		AccountCreatedAt: &created,
		RetentionRate:    &retention,
		LifetimeValue:    &ltv,
		AcquisitionCost:  &cac,
	}
	for i, amount := range []string{"100000", "110000", "121000"} {
		in.RevenueHistory = append(in.RevenueHistory, valueobject.RevenuePeriod{
			Period: fixedNow.AddDate(0, i-3, 0), Amount: d(amount),
		})
	}
	for i := 0; i < 10; i++ {
		in.Transactions = append(in.Transactions, valueobject.TransactionRecord{Amount: d("100"), PaidOnTime: true})
	}
	return in
}

func newCalculateUseCase(scores *mockScoreRepository, provider *mockBehavioralProvider, pub *mockEventPublisher) *usecase.CalculateCreditScoreUseCase {
	return usecase.NewCalculateCreditScoreUseCase(
		scores, provider,
		service.NewScoreCalculator(service.NewRiskTierResolver()),
		pub, &sequentialIDs{prefix: "cs"}, fixedClock, nil,
	)
}

func TestCalculateCreditScore_Execute(t *testing.T) {
	provider := &mockBehavioralProvider{
		fetchFunc: func(context.Context, string) (valueobject.BehavioralInput, error) { return strongInput(), nil },
	}

	t.Run("scores and stores a first record", func(t *testing.T) {
		scores := &mockScoreRepository{}
		pub := &mockEventPublisher{}

		resp, err := newCalculateUseCase(scores, provider, pub).Execute(context.Background(), dto.CalculateScoreRequest{CustomerID: "cust-1"})

		require.NoError(t, err)
		assert.Equal(t, 792, resp.Score)
		assert.Equal(t, "Excellent", resp.Rating)
		assert.Equal(t, "excellent", resp.RiskTier)
		assert.Len(t, resp.Factors, 5)
		assert.Equal(t, fixedNow, resp.CalculatedAt)
		require.Len(t, scores.saved, 1)
		assert.Equal(t, "cs-1", scores.saved[0].ID())
		assert.Equal(t, []string{event.TypeScoreCalculated}, pub.types())
	})

	t.Run("emits tier change when tier moves", func(t *testing.T) {
		scores := &mockScoreRepository{findLatestFunc: latestScore(scoreRecord("cust-1", 690))}
		pub := &mockEventPublisher{}

		_, err := newCalculateUseCase(scores, provider, pub).Execute(context.Background(), dto.CalculateScoreRequest{CustomerID: "cust-1"})

		require.NoError(t, err)
		assert.Equal(t, []string{event.TypeScoreCalculated, event.TypeRiskTierChanged}, pub.types())
		changed := pub.publishedEvents[1].(event.RiskTierChanged)
		assert.Equal(t, "good", changed.PreviousTier)
		assert.Equal(t, "excellent", changed.NewTier)
		assert.Equal(t, 690, changed.PreviousScore)
	})

	t.Run("no tier change within the same tier", func(t *testing.T) {
		scores := &mockScoreRepository{findLatestFunc: latestScore(scoreRecord("cust-1", 800))}
		pub := &mockEventPublisher{}

		_, err := newCalculateUseCase(scores, provider, pub).Execute(context.Background(), dto.CalculateScoreRequest{CustomerID: "cust-1"})

		require.NoError(t, err)
		assert.Equal(t, []string{event.TypeScoreCalculated}, pub.types())
	})

	t.Run("fails when CDP is unavailable", func(t *testing.T) {
		scores := &mockScoreRepository{}
		failing := &mockBehavioralProvider{
			fetchFunc: func(context.Context, string) (valueobject.BehavioralInput, error) {
				return valueobject.BehavioralInput{}, errors.New("connection refused")
			},
		}

		_, err := newCalculateUseCase(scores, failing, &mockEventPublisher{}).Execute(context.Background(), dto.CalculateScoreRequest{CustomerID: "cust-1"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "fetch behavioral input")
		assert.Empty(t, scores.saved)
	})

	t.Run("fails when save fails", func(t *testing.T) {
		scores := &mockScoreRepository{
			saveFunc: func(context.Context, model.CreditScoreRecord) error { return errors.New("database unavailable") },
		}
		pub := &mockEventPublisher{}

		_, err := newCalculateUseCase(scores, provider, pub).Execute(context.Background(), dto.CalculateScoreRequest{CustomerID: "cust-1"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "save score")
		assert.Empty(t, pub.publishedEvents)
	})

	t.Run("succeeds when event publishing fails", func(t *testing.T) {
		scores := &mockScoreRepository{}
		pub := &mockEventPublisher{
			publishFunc: func(context.Context, ...event.DomainEvent) error { return errors.New("kafka unavailable") },
		}

		resp, err := newCalculateUseCase(scores, provider, pub).Execute(context.Background(), dto.CalculateScoreRequest{CustomerID: "cust-1"})

		require.NoError(t, err)
		assert.Equal(t, 792, resp.Score)
		assert.Len(t, scores.saved, 1)
	})

	t.Run("requires customer", func(t *testing.T) {
		_, err := newCalculateUseCase(&mockScoreRepository{}, provider, &mockEventPublisher{}).Execute(context.Background(), dto.CalculateScoreRequest{})
		require.Error(t, err)
	})
}

func TestGetLatestScore_Execute(t *testing.T) {
	t.Run("returns latest record", func(t *testing.T) {
		uc := usecase.NewGetLatestScoreUseCase(&mockScoreRepository{findLatestFunc: latestScore(scoreRecord("cust-1", 700))})

		resp, err := uc.Execute(context.Background(), dto.GetScoreRequest{CustomerID: "cust-1"})

		require.NoError(t, err)
		assert.Equal(t, 700, resp.Score)
		assert.Equal(t, "good", resp.RiskTier)
	})

	t.Run("missing score is matchable", func(t *testing.T) {
		uc := usecase.NewGetLatestScoreUseCase(&mockScoreRepository{})

		_, err := uc.Execute(context.Background(), dto.GetScoreRequest{CustomerID: "cust-1"})

		assert.ErrorIs(t, err, model.ErrMissingCreditScore)
	})
}

func TestListScoreHistory_Execute(t *testing.T) {
	var gotLimit int
	repo := &mockScoreRepository{
		findHistoryFunc: func(_ context.Context, _ string, limit int) ([]model.CreditScoreRecord, error) {
			gotLimit = limit
			return []model.CreditScoreRecord{scoreRecord("cust-1", 720), scoreRecord("cust-1", 640)}, nil
		},
	}

	resp, err := usecase.NewListScoreHistoryUseCase(repo).Execute(context.Background(), dto.ListScoreHistoryRequest{CustomerID: "cust-1", Limit: 5})

	require.NoError(t, err)
	assert.Equal(t, 5, gotLimit)
	require.Len(t, resp.Records, 2)
	assert.Equal(t, 720, resp.Records[0].Score)
	assert.Equal(t, "fair", resp.Records[1].RiskTier)
}
