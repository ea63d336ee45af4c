package model_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/event"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/model"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/valueobject"
)

var originatedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func workingCapital(total string) model.Obligation {
	return model.ReconstructObligation(
		"ob-wc", "cust-1",
		model.WorkingCapitalLoan{
			Principal:      d("9000"),
			InterestRate:   d("0.10"),
			TotalInterest:  d("900"),
			OriginationFee: d("100"),
			TotalRepayment: d(total),
			MonthlyPayment: d("833.33"),
			Remaining:      d(total),
			AmountRepaid:   decimal.Zero,
			TermMonths:     12,
		},
		valueobject.ObligationStatusActive, 700, originatedAt, nil, nil, 1,
	)
}

func netTerms() model.Obligation {
	ob, err := model.NewObligation("ob-nt", "cust-1", model.NetTerms{
		SupplierID:           "sup-1",
		InvoiceAmount:        d("10000"),
		FeeRate:              d("0.025"),
		FeeAmount:            d("250"),
		SupplierPaymentDueAt: originatedAt.AddDate(0, 0, 7),
		CustomerPaymentDueAt: originatedAt.AddDate(0, 0, 30),
	}, 710, originatedAt)
	if err != nil {
		panic(err)
	}
	return ob.ClearEvents()
}

func revenueBased() model.Obligation {
	return model.ReconstructObligation(
		"ob-rbf", "cust-1",
		model.RevenueBasedFinancing{
			AdvanceAmount:            d("50000"),
			RepaymentMultiple:        d("1.4"),
			TotalRepayment:           d("70000"),
			Remaining:                d("70000"),
			AmountRepaid:             decimal.Zero,
			RevenueSharePercent:      d("0.08"),
			ExpectedCompletionMonths: 18,
		},
		valueobject.ObligationStatusActive, 720, originatedAt, nil, nil, 1,
	)
}

func TestNewObligation(t *testing.T) {
	t.Run("starts active and records origination event", func(t *testing.T) {
		ob, err := model.NewObligation("ob-1", "cust-1", model.RevenueBasedFinancing{
			AdvanceAmount:  d("1000"),
			TotalRepayment: d("1400"),
			Remaining:      d("1400"),
		}, 700, originatedAt)

		require.NoError(t, err)
		assert.True(t, ob.Status().Equal(valueobject.ObligationStatusActive))
		assert.Equal(t, 1, ob.Version())
		assert.Equal(t, 700, ob.CreditScoreAtOrigination())
		require.Len(t, ob.DomainEvents(), 1)
		assert.Equal(t, event.TypeObligationOriginated, ob.DomainEvents()[0].EventType())
	})

	t.Run("new until reconstructed from a store", func(t *testing.T) {
		fresh := netTerms()
		assert.True(t, fresh.IsNew())

		paid, _, err := fresh.RecordPayment("p1", d("10250"), nil, originatedAt.AddDate(0, 0, 20))
		require.NoError(t, err)
		assert.True(t, paid.IsNew())

		loaded := workingCapital("10000")
		assert.False(t, loaded.IsNew())
		next, _, err := loaded.RecordPayment("p1", d("100"), nil, originatedAt.AddDate(0, 1, 0))
		require.NoError(t, err)
		assert.False(t, next.IsNew())
	})

	t.Run("rejects missing terms", func(t *testing.T) {
		_, err := model.NewObligation("ob-1", "cust-1", nil, 700, originatedAt)
		assert.ErrorIs(t, err, model.ErrInvalidTerms)
	})

	t.Run("rejects out of range score", func(t *testing.T) {
		_, err := model.NewObligation("ob-1", "cust-1", model.NetTerms{}, 900, originatedAt)
		require.Error(t, err)
	})
}

func TestObligation_RecordPayment_WorkingCapital(t *testing.T) {
	ob := workingCapital("10000")
	now := originatedAt.AddDate(0, 1, 0)

	ob, _, err := ob.RecordPayment("p1", d("4000"), nil, now)
	require.NoError(t, err)
	assert.True(t, d("6000").Equal(ob.Outstanding()))

	ob, _, err = ob.RecordPayment("p2", d("4000"), nil, now)
	require.NoError(t, err)
	assert.True(t, ob.Status().Equal(valueobject.ObligationStatusActive))

	ob, payment, err := ob.RecordPayment("p3", d("2000"), nil, now)
	require.NoError(t, err)
	assert.Equal(t, "p3", payment.ID)
	assert.Equal(t, "ob-wc", payment.ObligationID)

	terms := ob.Terms().(model.WorkingCapitalLoan)
	assert.True(t, decimal.Zero.Equal(terms.Remaining))
	assert.True(t, d("10000").Equal(terms.AmountRepaid))
	assert.True(t, ob.Status().Equal(valueobject.ObligationStatusPaidOff))
	require.NotNil(t, ob.CompletedAt())
	assert.Equal(t, now, *ob.CompletedAt())
	assert.Len(t, ob.Payments(), 3)

	_, _, err = ob.RecordPayment("p4", d("1"), nil, now)
	assert.ErrorIs(t, err, model.ErrAlreadyCompleted)
}

func TestObligation_RecordPayment_EmitsEvents(t *testing.T) {
	ob, _, err := workingCapital("500").RecordPayment("p1", d("500"), nil, originatedAt)
	require.NoError(t, err)

	var types []string
	for _, e := range ob.DomainEvents() {
		types = append(types, e.EventType())
	}
	assert.Equal(t, []string{event.TypePaymentRecorded, event.TypeObligationCompleted}, types)
}

func TestObligation_RecordPayment_OverpaymentClampsRemaining(t *testing.T) {
	ob, _, err := revenueBased().RecordPayment("p1", d("75000"), nil, originatedAt)
	require.NoError(t, err)

	terms := ob.Terms().(model.RevenueBasedFinancing)
	assert.True(t, decimal.Zero.Equal(terms.Remaining))
	assert.True(t, d("75000").Equal(terms.AmountRepaid))
	assert.True(t, ob.Status().Equal(valueobject.ObligationStatusPaidOff))
}

func TestObligation_RecordPayment_RevenueBasedKeepsRevenueContext(t *testing.T) {
	revenue := d("125000")
	ob, payment, err := revenueBased().RecordPayment("p1", d("10000"), &revenue, originatedAt)
	require.NoError(t, err)

	require.NotNil(t, payment.RevenueForPeriod)
	assert.True(t, revenue.Equal(*payment.RevenueForPeriod))
	assert.True(t, d("60000").Equal(ob.Outstanding()))
}

func TestObligation_RecordPayment_NetTerms(t *testing.T) {
	ob := netTerms()
	paidAt := originatedAt.AddDate(0, 0, 20)

	settled, _, err := ob.RecordPayment("p1", d("10250"), nil, paidAt)
	require.NoError(t, err)

	terms := settled.Terms().(model.NetTerms)
	require.NotNil(t, terms.CustomerPaidAt)
	assert.Equal(t, paidAt, *terms.CustomerPaidAt)
	assert.True(t, settled.Status().Equal(valueobject.ObligationStatusCompleted))
	assert.True(t, decimal.Zero.Equal(settled.Outstanding()))

	_, _, err = settled.RecordPayment("p2", d("10250"), nil, paidAt)
	assert.ErrorIs(t, err, model.ErrAlreadyCompleted)
}

func TestObligation_RecordPayment_InvalidAmount(t *testing.T) {
	for _, amount := range []string{"0", "-10"} {
		_, _, err := workingCapital("1000").RecordPayment("p1", d(amount), nil, originatedAt)
		assert.ErrorIs(t, err, model.ErrInvalidAmount, "amount %s", amount)
	}
}

func TestObligation_RecordPayment_RejectsSubCentAmounts(t *testing.T) {
	ob := workingCapital("100.01")

	for _, amount := range []string{"100.005", "0.004", "12.3456"} {
		next, _, err := ob.RecordPayment("p1", d(amount), nil, originatedAt)
		assert.ErrorIs(t, err, model.ErrInvalidAmount, "amount %s", amount)
		assert.Empty(t, next.Payments())
		assert.True(t, d("100.01").Equal(next.Outstanding()))
	}

	revenue := d("5000.001")
	_, _, err := ob.RecordPayment("p1", d("10"), &revenue, originatedAt)
	assert.ErrorIs(t, err, model.ErrInvalidAmount)

	settled, _, err := ob.RecordPayment("p1", d("100.01"), nil, originatedAt)
	require.NoError(t, err)
	assert.True(t, settled.Status().Equal(valueobject.ObligationStatusPaidOff))
	assert.True(t, decimal.Zero.Equal(settled.Outstanding()))
}

func TestIsWholeCents(t *testing.T) {
	assert.True(t, model.IsWholeCents(d("10")))
	assert.True(t, model.IsWholeCents(d("10.50")))
	assert.True(t, model.IsWholeCents(d("10.500")))
	assert.False(t, model.IsWholeCents(d("10.505")))
	assert.False(t, model.IsWholeCents(d("0.001")))
}

func TestObligation_RecordPayment_DoesNotMutateReceiver(t *testing.T) {
	ob := workingCapital("1000")
	_, _, err := ob.RecordPayment("p1", d("400"), nil, originatedAt)
	require.NoError(t, err)

	assert.Empty(t, ob.Payments())
	assert.True(t, d("1000").Equal(ob.Outstanding()))
	assert.True(t, ob.Status().Equal(valueobject.ObligationStatusActive))
}

func TestObligation_PaySupplier(t *testing.T) {
	ob := netTerms()
	now := originatedAt.AddDate(0, 0, 2)

	paid, err := ob.PaySupplier(now)
	require.NoError(t, err)
	terms := paid.Terms().(model.NetTerms)
	require.NotNil(t, terms.SupplierPaidAt)
	assert.True(t, paid.Status().Equal(valueobject.ObligationStatusActive))

	_, err = paid.PaySupplier(now)
	assert.ErrorIs(t, err, model.ErrSupplierAlreadyPaid)

	_, err = workingCapital("1000").PaySupplier(now)
	assert.ErrorIs(t, err, model.ErrUnsupportedProduct)
}

func TestObligation_NextPaymentDue(t *testing.T) {
	t.Run("net terms uses customer due date", func(t *testing.T) {
		due, amount, ok := netTerms().NextPaymentDue()
		require.True(t, ok)
		assert.Equal(t, originatedAt.AddDate(0, 0, 30), due)
		assert.True(t, d("10250").Equal(amount))
	})

	t.Run("working capital advances per payment", func(t *testing.T) {
		ob, _, err := workingCapital("10000").RecordPayment("p1", d("833.33"), nil, originatedAt.AddDate(0, 1, 0))
		require.NoError(t, err)

		due, amount, ok := ob.NextPaymentDue()
		require.True(t, ok)
		assert.Equal(t, originatedAt.AddDate(0, 2, 0), due)
		assert.True(t, d("833.33").Equal(amount))
	})

	t.Run("revenue based has no schedule", func(t *testing.T) {
		_, _, ok := revenueBased().NextPaymentDue()
		assert.False(t, ok)
	})
}

func TestErrors_MatchSentinels(t *testing.T) {
	var err error = &model.InsufficientCreditScoreError{Product: "NET_TERMS", Required: 620, Actual: 600}
	assert.True(t, errors.Is(err, model.ErrInsufficientCreditScore))
	assert.Contains(t, err.Error(), "required 620")

	err = &model.ExceedsRiskTierLimitError{Tier: "good", Requested: d("600000"), Max: d("500000")}
	assert.True(t, errors.Is(err, model.ErrExceedsRiskTierLimit))

	var limitErr *model.ExceedsRiskTierLimitError
	require.True(t, errors.As(err, &limitErr))
	assert.True(t, d("500000").Equal(limitErr.Max))
}
