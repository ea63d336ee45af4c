package postgres

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/model"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/valueobject"
)

func TestTermsCodec_NetTermsKeepsSettlementTimestamps(t *testing.T) {
	paid := time.Date(2026, 3, 8, 10, 0, 0, 0, time.UTC)
	in := model.NetTerms{
		SupplierID:           "sup-1",
		InvoiceAmount:        decimal.RequireFromString("10000"),
		FeeRate:              decimal.RequireFromString("0.025"),
		FeeAmount:            decimal.RequireFromString("250"),
		SupplierPaymentDueAt: paid,
		CustomerPaymentDueAt: paid.AddDate(0, 0, 23),
		SupplierPaidAt:       &paid,
	}

	raw, err := encodeTerms(in)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"supplier_id":"sup-1"`)
	assert.NotContains(t, string(raw), "customer_paid_at")

	out, err := decodeTerms(valueobject.ProductTypeNetTerms, raw)
	require.NoError(t, err)
	nt, ok := out.(model.NetTerms)
	require.True(t, ok)
	assert.True(t, in.FeeAmount.Equal(nt.FeeAmount))
	require.NotNil(t, nt.SupplierPaidAt)
	assert.True(t, paid.Equal(*nt.SupplierPaidAt))
	assert.Nil(t, nt.CustomerPaidAt)
}

func TestTermsCodec_DecodesByProductType(t *testing.T) {
	raw, err := encodeTerms(model.RevenueBasedFinancing{
		AdvanceAmount:            decimal.NewFromInt(50000),
		RepaymentMultiple:        decimal.RequireFromString("1.4"),
		TotalRepayment:           decimal.NewFromInt(70000),
		Remaining:                decimal.NewFromInt(70000),
		RevenueSharePercent:      decimal.RequireFromString("0.08"),
		ExpectedCompletionMonths: 18,
	})
	require.NoError(t, err)

	out, err := decodeTerms(valueobject.ProductTypeRevenueBased, raw)
	require.NoError(t, err)
	rbf := out.(model.RevenueBasedFinancing)
	assert.Equal(t, 18, rbf.ExpectedCompletionMonths)
	assert.True(t, decimal.NewFromInt(70000).Equal(rbf.Remaining))

	_, err = decodeTerms(valueobject.ProductType{}, raw)
	assert.Error(t, err)
}

func TestTermsCodec_RejectsNilTerms(t *testing.T) {
	_, err := encodeTerms(nil)
	assert.Error(t, err)
}

func TestNewRepos(t *testing.T) {
	assert.NotNil(t, NewCreditScoreRepo(nil))
	assert.NotNil(t, NewObligationRepo(nil))
}
