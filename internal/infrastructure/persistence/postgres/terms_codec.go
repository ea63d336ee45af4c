package postgres

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/model"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/valueobject"
)

// Product terms are stored as JSONB next to a product_type column that
// selects the decoder.

type netTermsRow struct {
	SupplierID           string          `json:"supplier_id"`
	InvoiceAmount        decimal.Decimal `json:"invoice_amount"`
	FeeRate              decimal.Decimal `json:"fee_rate"`
	FeeAmount            decimal.Decimal `json:"fee_amount"`
	SupplierPaymentDueAt time.Time       `json:"supplier_payment_due_at"`
	CustomerPaymentDueAt time.Time       `json:"customer_payment_due_at"`
	SupplierPaidAt       *time.Time      `json:"supplier_paid_at,omitempty"`
	CustomerPaidAt       *time.Time      `json:"customer_paid_at,omitempty"`
}

type workingCapitalRow struct {
	Principal      decimal.Decimal `json:"principal"`
	InterestRate   decimal.Decimal `json:"interest_rate"`
	TermMonths     int             `json:"term_months"`
	TotalInterest  decimal.Decimal `json:"total_interest"`
	OriginationFee decimal.Decimal `json:"origination_fee"`
	TotalRepayment decimal.Decimal `json:"total_repayment"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	AmountRepaid   decimal.Decimal `json:"amount_repaid"`
	Remaining      decimal.Decimal `json:"remaining"`
}

type revenueBasedRow struct {
	AdvanceAmount            decimal.Decimal `json:"advance_amount"`
	RepaymentMultiple        decimal.Decimal `json:"repayment_multiple"`
	TotalRepayment           decimal.Decimal `json:"total_repayment"`
	AmountRepaid             decimal.Decimal `json:"amount_repaid"`
	Remaining                decimal.Decimal `json:"remaining"`
	RevenueSharePercent      decimal.Decimal `json:"revenue_share_percent"`
	ExpectedCompletionMonths int             `json:"expected_completion_months"`
}

func encodeTerms(terms model.Terms) ([]byte, error) {
	var row any
	switch t := terms.(type) {
	case model.NetTerms:
		row = netTermsRow{
			SupplierID:           t.SupplierID,
			InvoiceAmount:        t.InvoiceAmount,
			FeeRate:              t.FeeRate,
			FeeAmount:            t.FeeAmount,
			SupplierPaymentDueAt: t.SupplierPaymentDueAt,
			CustomerPaymentDueAt: t.CustomerPaymentDueAt,
			SupplierPaidAt:       t.SupplierPaidAt,
			CustomerPaidAt:       t.CustomerPaidAt,
		}
	case model.WorkingCapitalLoan:
		row = workingCapitalRow{
			Principal:      t.Principal,
			InterestRate:   t.InterestRate,
			TermMonths:     t.TermMonths,
			TotalInterest:  t.TotalInterest,
			OriginationFee: t.OriginationFee,
			TotalRepayment: t.TotalRepayment,
			MonthlyPayment: t.MonthlyPayment,
			AmountRepaid:   t.AmountRepaid,
			Remaining:      t.Remaining,
		}
	case model.RevenueBasedFinancing:
		row = revenueBasedRow{
			AdvanceAmount:            t.AdvanceAmount,
			RepaymentMultiple:        t.RepaymentMultiple,
			TotalRepayment:           t.TotalRepayment,
			AmountRepaid:             t.AmountRepaid,
			Remaining:                t.Remaining,
			RevenueSharePercent:      t.RevenueSharePercent,
			ExpectedCompletionMonths: t.ExpectedCompletionMonths,
		}
	default:
		return nil, fmt.Errorf("encode terms: unsupported type %T", terms)
	}
	return json.Marshal(row)
}

func decodeTerms(product valueobject.ProductType, raw []byte) (model.Terms, error) {
	switch product {
	case valueobject.ProductTypeNetTerms:
		var r netTermsRow
		if err := json.Unmarshal(raw, &r); err != nil {
			return nil, fmt.Errorf("decode net terms: %w", err)
		}
		return model.NetTerms{
			SupplierID:           r.SupplierID,
			InvoiceAmount:        r.InvoiceAmount,
			FeeRate:              r.FeeRate,
			FeeAmount:            r.FeeAmount,
			SupplierPaymentDueAt: r.SupplierPaymentDueAt,
			CustomerPaymentDueAt: r.CustomerPaymentDueAt,
			SupplierPaidAt:       r.SupplierPaidAt,
			CustomerPaidAt:       r.CustomerPaidAt,
		}, nil
	case valueobject.ProductTypeWorkingCapital:
		var r workingCapitalRow
		if err := json.Unmarshal(raw, &r); err != nil {
			return nil, fmt.Errorf("decode working capital terms: %w", err)
		}
		return model.WorkingCapitalLoan{
			Principal:      r.Principal,
			InterestRate:   r.InterestRate,
			TermMonths:     r.TermMonths,
			TotalInterest:  r.TotalInterest,
			OriginationFee: r.OriginationFee,
			TotalRepayment: r.TotalRepayment,
			MonthlyPayment: r.MonthlyPayment,
			AmountRepaid:   r.AmountRepaid,
			Remaining:      r.Remaining,
		}, nil
	case valueobject.ProductTypeRevenueBased:
		var r revenueBasedRow
		if err := json.Unmarshal(raw, &r); err != nil {
			return nil, fmt.Errorf("decode revenue based terms: %w", err)
		}
		return model.RevenueBasedFinancing{
			AdvanceAmount:            r.AdvanceAmount,
			RepaymentMultiple:        r.RepaymentMultiple,
			TotalRepayment:           r.TotalRepayment,
			AmountRepaid:             r.AmountRepaid,
			Remaining:                r.Remaining,
			RevenueSharePercent:      r.RevenueSharePercent,
			ExpectedCompletionMonths: r.ExpectedCompletionMonths,
		}, nil
	default:
		return nil, fmt.Errorf("decode terms: unknown product %q", product)
	}
}
