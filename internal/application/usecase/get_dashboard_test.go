package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/application/dto"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/application/usecase"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/event"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/model"
)

func TestGetDashboard_Execute(t *testing.T) {
	t.Run("available credit is tier limit minus outstanding", func(t *testing.T) {
		loan := workingCapitalLoan("ob-1", "cust-1", "200000")
		scores := &mockScoreRepository{findLatestFunc: latestScore(scoreRecord("cust-1", 720))}
		uc := usecase.NewGetDashboardUseCase(scores, newObligationRepo(loan))

		resp, err := uc.Execute(context.Background(), dto.DashboardRequest{CustomerID: "cust-1"})

		require.NoError(t, err)
		require.NotNil(t, resp.LatestScore)
		assert.Equal(t, 720, resp.LatestScore.Score)
		assert.True(t, d("200000").Equal(resp.TotalOutstanding))
		assert.True(t, d("300000").Equal(resp.AvailableCredit))
		assert.Len(t, resp.Obligations, 1)
	})

	t.Run("completed obligations count as borrowed only", func(t *testing.T) {
		paid, _, err := workingCapitalLoan("ob-1", "cust-1", "5000").RecordPayment("p1", d("5000"), nil, fixedNow)
		require.NoError(t, err)
		active := netTermsObligation("ob-2", "cust-1", fixedNow.AddDate(0, 0, 30))
		scores := &mockScoreRepository{findLatestFunc: latestScore(scoreRecord("cust-1", 700))}
		uc := usecase.NewGetDashboardUseCase(scores, newObligationRepo(paid, active))

		resp, err := uc.Execute(context.Background(), dto.DashboardRequest{CustomerID: "cust-1"})

		require.NoError(t, err)
		assert.True(t, d("15000").Equal(resp.TotalBorrowed), resp.TotalBorrowed.String())
		assert.True(t, d("10250").Equal(resp.TotalOutstanding), resp.TotalOutstanding.String())
		assert.True(t, d("489750").Equal(resp.AvailableCredit))
	})

	t.Run("never negative", func(t *testing.T) {
		loan := workingCapitalLoan("ob-1", "cust-1", "80000")
		scores := &mockScoreRepository{findLatestFunc: latestScore(scoreRecord("cust-1", 500))}
		uc := usecase.NewGetDashboardUseCase(scores, newObligationRepo(loan))

		resp, err := uc.Execute(context.Background(), dto.DashboardRequest{CustomerID: "cust-1"})

		require.NoError(t, err)
		assert.True(t, resp.AvailableCredit.IsZero())
	})

	t.Run("unscored customer has no credit", func(t *testing.T) {
		uc := usecase.NewGetDashboardUseCase(&mockScoreRepository{}, newObligationRepo())

		resp, err := uc.Execute(context.Background(), dto.DashboardRequest{CustomerID: "cust-1"})

		require.NoError(t, err)
		assert.Nil(t, resp.LatestScore)
		assert.True(t, resp.AvailableCredit.IsZero())
		assert.Empty(t, resp.Obligations)
	})

	t.Run("propagates store errors", func(t *testing.T) {
		obs := &mockObligationRepository{
			findByCustomerFunc: func(context.Context, string) ([]model.Obligation, error) {
				return nil, errors.New("connection reset")
			},
		}
		uc := usecase.NewGetDashboardUseCase(&mockScoreRepository{}, obs)

		_, err := uc.Execute(context.Background(), dto.DashboardRequest{CustomerID: "cust-1"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "find obligations")
	})
}

func TestGetObligation_Execute(t *testing.T) {
	obs := newObligationRepo(revenueBasedObligation("ob-rbf", "cust-1"))

	resp, err := usecase.NewGetObligationUseCase(obs).Execute(context.Background(), dto.GetObligationRequest{ObligationID: "ob-rbf"})
	require.NoError(t, err)
	assert.Equal(t, "REVENUE_BASED_FINANCING", resp.ProductType)
	assert.NotNil(t, resp.RevenueBased)
	assert.Nil(t, resp.NetTerms)

	_, err = usecase.NewGetObligationUseCase(obs).Execute(context.Background(), dto.GetObligationRequest{ObligationID: "nope"})
	assert.ErrorIs(t, err, model.ErrObligationNotFound)
}

func TestListObligations_Execute(t *testing.T) {
	obs := newObligationRepo(
		revenueBasedObligation("ob-1", "cust-1"),
		workingCapitalLoan("ob-2", "cust-1", "1000"),
		workingCapitalLoan("ob-3", "cust-2", "1000"),
	)

	resp, err := usecase.NewListObligationsUseCase(obs).Execute(context.Background(), dto.ListObligationsRequest{CustomerID: "cust-1"})

	require.NoError(t, err)
	assert.Equal(t, "cust-1", resp.CustomerID)
	assert.Len(t, resp.Obligations, 2)
}

func TestScanPaymentsDue_Execute(t *testing.T) {
	t.Run("emits for collections inside the window", func(t *testing.T) {
		obs := newObligationRepo(
			netTermsObligation("ob-soon", "cust-1", fixedNow.Add(24*time.Hour)),
			netTermsObligation("ob-later", "cust-1", fixedNow.AddDate(0, 0, 20)),
			netTermsObligation("ob-overdue", "cust-2", fixedNow.Add(-48*time.Hour)),
			workingCapitalLoan("ob-wc", "cust-3", "12000"),
			revenueBasedObligation("ob-rbf", "cust-4"),
		)
		pub := &mockEventPublisher{}
		uc := usecase.NewScanPaymentsDueUseCase(obs, pub, fixedClock, nil)

		resp, err := uc.Execute(context.Background(), dto.ScanPaymentsDueRequest{Window: 72 * time.Hour})

		require.NoError(t, err)
		assert.Equal(t, 5, resp.Scanned)
		assert.Equal(t, 3, resp.Due)

		due := map[string]event.PaymentDue{}
		for _, e := range pub.publishedEvents {
			pd := e.(event.PaymentDue)
			due[pd.AggregateID()] = pd
		}
		assert.Contains(t, due, "ob-soon")
		assert.Contains(t, due, "ob-overdue")
		assert.Contains(t, due, "ob-wc")
		assert.True(t, d("1000").Equal(due["ob-wc"].AmountDue))
		assert.True(t, d("10250").Equal(due["ob-soon"].AmountDue))
	})

	t.Run("defaults the window", func(t *testing.T) {
		obs := newObligationRepo(netTermsObligation("ob-1", "cust-1", fixedNow.Add(71*time.Hour)))
		pub := &mockEventPublisher{}

		resp, err := usecase.NewScanPaymentsDueUseCase(obs, pub, fixedClock, nil).Execute(context.Background(), dto.ScanPaymentsDueRequest{})

		require.NoError(t, err)
		assert.Equal(t, 1, resp.Due)
	})
}
