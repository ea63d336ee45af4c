package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/model"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/valueobject"
)

// Minimum Aura Score per product.
const (
	MinScoreNetTerms       = 620
	MinScoreWorkingCapital = 650
	MinScoreRevenueBased   = 680
)

const (
	supplierPaymentDays = 7
	customerPaymentDays = 30
	moneyPlaces         = model.MoneyPlaces
)

var (
	netTermsPreferredFeeRate = decimal.RequireFromString("0.025")
	netTermsStandardFeeRate  = decimal.RequireFromString("0.03")
	originationFeeRate       = decimal.RequireFromString("0.02")

	rbfShareExcellent = decimal.RequireFromString("0.06")
	rbfShareGood      = decimal.RequireFromString("0.08")
	rbfShareStandard  = decimal.RequireFromString("0.10")

	// DefaultRepaymentMultiple applies when a revenue-based deal is requested
	// without an explicit multiple.
	DefaultRepaymentMultiple = decimal.RequireFromString("1.4")
)

// ---------------------------------------------------------------------------
// ProductOriginator – domain service
// ---------------------------------------------------------------------------

// ProductOriginator gates products on the customer's latest score and prices
// new obligations. It performs no I/O; callers load the score record and
// persist the result.
type ProductOriginator struct {
	resolver *RiskTierResolver
}

// NewProductOriginator creates an originator using resolver for tier limits.
func NewProductOriginator(resolver *RiskTierResolver) *ProductOriginator {
	return &ProductOriginator{resolver: resolver}
}

// OriginateNetTerms prices trade credit for an invoice. Fee is 2.5% at a
// score of 700 or more, 3% otherwise. No credit-limit check applies.
func (p *ProductOriginator) OriginateNetTerms(
	id string,
	latest *model.CreditScoreRecord,
	invoiceAmount decimal.Decimal,
	supplierID string,
	now time.Time,
) (model.Obligation, error) {
	if !invoiceAmount.IsPositive() {
		return model.Obligation{}, fmt.Errorf("%w: invoice amount must be positive", model.ErrInvalidAmount)
	}
	if !model.IsWholeCents(invoiceAmount) {
		return model.Obligation{}, fmt.Errorf("%w: invoice amount has sub-cent precision", model.ErrInvalidAmount)
	}
	if supplierID == "" {
		return model.Obligation{}, fmt.Errorf("%w: supplier ID is required", model.ErrInvalidTerms)
	}
	score, err := gate(latest, valueobject.ProductTypeNetTerms, MinScoreNetTerms)
	if err != nil {
		return model.Obligation{}, err
	}

	feeRate := netTermsStandardFeeRate
	if score >= 700 {
		feeRate = netTermsPreferredFeeRate
	}

	terms := model.NetTerms{
		SupplierID:           supplierID,
		InvoiceAmount:        invoiceAmount,
		FeeRate:              feeRate,
		FeeAmount:            invoiceAmount.Mul(feeRate).Round(moneyPlaces),
		SupplierPaymentDueAt: now.AddDate(0, 0, supplierPaymentDays),
		CustomerPaymentDueAt: now.AddDate(0, 0, customerPaymentDays),
	}
	return model.NewObligation(id, latest.CustomerID(), terms, score, now)
}

// OriginateWorkingCapitalLoan prices a simple-interest loan at the tier's
// rate ceiling. The principal may not exceed the tier's credit limit.
func (p *ProductOriginator) OriginateWorkingCapitalLoan(
	id string,
	latest *model.CreditScoreRecord,
	amount decimal.Decimal,
	termMonths int,
	now time.Time,
) (model.Obligation, error) {
	if !amount.IsPositive() {
		return model.Obligation{}, fmt.Errorf("%w: loan amount must be positive", model.ErrInvalidAmount)
	}
	if !model.IsWholeCents(amount) {
		return model.Obligation{}, fmt.Errorf("%w: loan amount has sub-cent precision", model.ErrInvalidAmount)
	}
	if termMonths <= 0 {
		return model.Obligation{}, fmt.Errorf("%w: term months must be positive", model.ErrInvalidTerms)
	}
	score, err := gate(latest, valueobject.ProductTypeWorkingCapital, MinScoreWorkingCapital)
	if err != nil {
		return model.Obligation{}, err
	}

	tier := p.resolver.Resolve(score)
	if amount.GreaterThan(tier.MaxCreditLimit()) {
		return model.Obligation{}, &model.ExceedsRiskTierLimitError{
			Tier:      tier.Name(),
			Requested: amount,
			Max:       tier.MaxCreditLimit(),
		}
	}

	rate := tier.InterestRateCeiling()
	interest := amount.Mul(rate).Round(moneyPlaces)
	fee := amount.Mul(originationFeeRate).Round(moneyPlaces)
	total := amount.Add(interest).Add(fee)

	terms := model.WorkingCapitalLoan{
		Principal:      amount,
		InterestRate:   rate,
		TotalInterest:  interest,
		OriginationFee: fee,
		TotalRepayment: total,
		MonthlyPayment: total.Div(decimal.NewFromInt(int64(termMonths))).Round(moneyPlaces),
		TermMonths:     termMonths,
		AmountRepaid:   decimal.Zero,
		Remaining:      total,
	}
	return model.NewObligation(id, latest.CustomerID(), terms, score, now)
}

// OriginateRevenueBasedFinancing prices an advance repaid as a share of
// revenue. A zero multiple selects DefaultRepaymentMultiple.
func (p *ProductOriginator) OriginateRevenueBasedFinancing(
	id string,
	latest *model.CreditScoreRecord,
	advanceAmount decimal.Decimal,
	repaymentMultiple decimal.Decimal,
	now time.Time,
) (model.Obligation, error) {
	if !advanceAmount.IsPositive() {
		return model.Obligation{}, fmt.Errorf("%w: advance amount must be positive", model.ErrInvalidAmount)
	}
	if !model.IsWholeCents(advanceAmount) {
		return model.Obligation{}, fmt.Errorf("%w: advance amount has sub-cent precision", model.ErrInvalidAmount)
	}
	if repaymentMultiple.IsZero() {
		repaymentMultiple = DefaultRepaymentMultiple
	}
	if repaymentMultiple.LessThanOrEqual(decimal.NewFromInt(1)) {
		return model.Obligation{}, fmt.Errorf("%w: repayment multiple must exceed 1", model.ErrInvalidTerms)
	}
	score, err := gate(latest, valueobject.ProductTypeRevenueBased, MinScoreRevenueBased)
	if err != nil {
		return model.Obligation{}, err
	}

	share := RevenueSharePercent(score)
	total := advanceAmount.Mul(repaymentMultiple).Round(moneyPlaces)

	terms := model.RevenueBasedFinancing{
		AdvanceAmount:            advanceAmount,
		RepaymentMultiple:        repaymentMultiple,
		TotalRepayment:           total,
		AmountRepaid:             decimal.Zero,
		Remaining:                total,
		RevenueSharePercent:      share,
		ExpectedCompletionMonths: int(repaymentMultiple.Div(share).Ceil().IntPart()),
	}
	return model.NewObligation(id, latest.CustomerID(), terms, score, now)
}

// RevenueSharePercent returns the share of monthly revenue collected for a
// revenue-based deal at the given score.
func RevenueSharePercent(score int) decimal.Decimal {
	switch {
	case score >= 750:
		return rbfShareExcellent
	case score >= 700:
		return rbfShareGood
	default:
		return rbfShareStandard
	}
}

func gate(latest *model.CreditScoreRecord, product valueobject.ProductType, minimum int) (int, error) {
	if latest == nil {
		return 0, model.ErrMissingCreditScore
	}
	if latest.Score() < minimum {
		return 0, &model.InsufficientCreditScoreError{
			Product:  product.String(),
			Required: minimum,
			Actual:   latest.Score(),
		}
	}
	return latest.Score(), nil
}
