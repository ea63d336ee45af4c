package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/valueobject"
)

// Terms is the product-specific part of an Obligation. The set of
// implementations is closed to this package; callers dispatch with a type
// switch over NetTerms, WorkingCapitalLoan and RevenueBasedFinancing.
type Terms interface {
	ProductType() valueobject.ProductType
	isTerms()
}

// NetTerms is short-term trade credit: the platform pays the supplier early
// and collects invoice plus fee from the customer later.
type NetTerms struct {
	SupplierPaymentDueAt time.Time
	CustomerPaymentDueAt time.Time
	SupplierPaidAt       *time.Time
	CustomerPaidAt       *time.Time
	InvoiceAmount        decimal.Decimal
	FeeRate              decimal.Decimal
	FeeAmount            decimal.Decimal
	SupplierID           string
}

func (NetTerms) ProductType() valueobject.ProductType { return valueobject.ProductTypeNetTerms }
func (NetTerms) isTerms()                             {}

// AmountDue is what the customer owes at settlement.
func (t NetTerms) AmountDue() decimal.Decimal { return t.InvoiceAmount.Add(t.FeeAmount) }

// WorkingCapitalLoan carries simple (non-amortised) interest: the full
// interest is added once to the principal.
type WorkingCapitalLoan struct {
	Principal      decimal.Decimal
	InterestRate   decimal.Decimal
	TotalInterest  decimal.Decimal
	OriginationFee decimal.Decimal
	TotalRepayment decimal.Decimal
	MonthlyPayment decimal.Decimal
	AmountRepaid   decimal.Decimal
	Remaining      decimal.Decimal
	TermMonths     int
}

func (WorkingCapitalLoan) ProductType() valueobject.ProductType {
	return valueobject.ProductTypeWorkingCapital
}
func (WorkingCapitalLoan) isTerms() {}

// RevenueBasedFinancing is an advance repaid as a share of ongoing revenue
// until a fixed multiple has been returned.
type RevenueBasedFinancing struct {
	AdvanceAmount            decimal.Decimal
	RepaymentMultiple        decimal.Decimal
	TotalRepayment           decimal.Decimal
	AmountRepaid             decimal.Decimal
	Remaining                decimal.Decimal
	RevenueSharePercent      decimal.Decimal
	ExpectedCompletionMonths int
}

func (RevenueBasedFinancing) ProductType() valueobject.ProductType {
	return valueobject.ProductTypeRevenueBased
}
func (RevenueBasedFinancing) isTerms() {}
