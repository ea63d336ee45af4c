package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// CalculateScoreRequest asks for a fresh score from current CDP data.
type CalculateScoreRequest struct {
	CustomerID string `json:"customer_id"`
}

// GetScoreRequest identifies the customer whose latest score is wanted.
type GetScoreRequest struct {
	CustomerID string `json:"customer_id"`
}

// ListScoreHistoryRequest pages back through a customer's score records.
type ListScoreHistoryRequest struct {
	CustomerID string `json:"customer_id"`
	Limit      int    `json:"limit,omitempty"`
}

// OriginateNetTermsRequest carries an invoice the platform will finance.
type OriginateNetTermsRequest struct {
	CustomerID    string          `json:"customer_id"`
	SupplierID    string          `json:"supplier_id"`
	InvoiceAmount decimal.Decimal `json:"invoice_amount"`
}

// OriginateWorkingCapitalRequest carries a loan request.
type OriginateWorkingCapitalRequest struct {
	CustomerID string          `json:"customer_id"`
	Amount     decimal.Decimal `json:"amount"`
	TermMonths int             `json:"term_months"`
}

// OriginateRevenueBasedRequest carries an advance request. A zero multiple
// selects the default.
type OriginateRevenueBasedRequest struct {
	CustomerID        string          `json:"customer_id"`
	AdvanceAmount     decimal.Decimal `json:"advance_amount"`
	RepaymentMultiple decimal.Decimal `json:"repayment_multiple"`
}

// RecordPaymentRequest carries a customer payment against an obligation.
type RecordPaymentRequest struct {
	ObligationID     string           `json:"obligation_id"`
	Amount           decimal.Decimal  `json:"amount"`
	RevenueForPeriod *decimal.Decimal `json:"revenue_for_period,omitempty"`
}

// PaySupplierRequest marks the supplier side of a Net Terms deal as paid.
type PaySupplierRequest struct {
	ObligationID string `json:"obligation_id"`
}

// GetObligationRequest identifies an obligation to retrieve.
type GetObligationRequest struct {
	ObligationID string `json:"obligation_id"`
}

// ListObligationsRequest lists every obligation held by a customer.
type ListObligationsRequest struct {
	CustomerID string `json:"customer_id"`
}

// DashboardRequest identifies the customer whose portfolio is summarised.
type DashboardRequest struct {
	CustomerID string `json:"customer_id"`
}

// ScanPaymentsDueRequest sets how far ahead the scan looks.
type ScanPaymentsDueRequest struct {
	Window time.Duration `json:"window"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// ScoreFactorResponse is one weighted factor of a score.
type ScoreFactorResponse struct {
	Name        string          `json:"name"`
	Score       int             `json:"score"`
	Weight      decimal.Decimal `json:"weight"`
	Grade       string          `json:"grade"`
	Description string          `json:"description"`
}

// CreditScoreResponse is the external representation of a score record.
type CreditScoreResponse struct {
	ID             string                `json:"id"`
	CustomerID     string                `json:"customer_id"`
	Score          int                   `json:"score"`
	Rating         string                `json:"rating"`
	RiskTier       string                `json:"risk_tier"`
	MaxCreditLimit decimal.Decimal       `json:"max_credit_limit"`
	Factors        []ScoreFactorResponse `json:"factors"`
	CalculatedAt   time.Time             `json:"calculated_at"`
}

// ScoreHistoryResponse lists score records newest first.
type ScoreHistoryResponse struct {
	CustomerID string                `json:"customer_id"`
	Records    []CreditScoreResponse `json:"records"`
}

// NetTermsResponse holds the Net Terms specific fields of an obligation.
type NetTermsResponse struct {
	SupplierID           string          `json:"supplier_id"`
	InvoiceAmount        decimal.Decimal `json:"invoice_amount"`
	FeeRate              decimal.Decimal `json:"fee_rate"`
	FeeAmount            decimal.Decimal `json:"fee_amount"`
	SupplierPaymentDueAt time.Time       `json:"supplier_payment_due_at"`
	CustomerPaymentDueAt time.Time       `json:"customer_payment_due_at"`
	SupplierPaidAt       *time.Time      `json:"supplier_paid_at,omitempty"`
	CustomerPaidAt       *time.Time      `json:"customer_paid_at,omitempty"`
}

// WorkingCapitalResponse holds the loan specific fields of an obligation.
type WorkingCapitalResponse struct {
	Principal      decimal.Decimal `json:"principal"`
	InterestRate   decimal.Decimal `json:"interest_rate"`
	TotalInterest  decimal.Decimal `json:"total_interest"`
	OriginationFee decimal.Decimal `json:"origination_fee"`
	TotalRepayment decimal.Decimal `json:"total_repayment"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	TermMonths     int             `json:"term_months"`
	AmountRepaid   decimal.Decimal `json:"amount_repaid"`
	Remaining      decimal.Decimal `json:"remaining"`
}

// RevenueBasedResponse holds the revenue-based financing specific fields.
type RevenueBasedResponse struct {
	AdvanceAmount            decimal.Decimal `json:"advance_amount"`
	RepaymentMultiple        decimal.Decimal `json:"repayment_multiple"`
	TotalRepayment           decimal.Decimal `json:"total_repayment"`
	AmountRepaid             decimal.Decimal `json:"amount_repaid"`
	Remaining                decimal.Decimal `json:"remaining"`
	RevenueSharePercent      decimal.Decimal `json:"revenue_share_percent"`
	ExpectedCompletionMonths int             `json:"expected_completion_months"`
}

// PaymentResponse is the external representation of a ledger entry.
type PaymentResponse struct {
	ID               string           `json:"id"`
	ObligationID     string           `json:"obligation_id"`
	Amount           decimal.Decimal  `json:"amount"`
	RevenueForPeriod *decimal.Decimal `json:"revenue_for_period,omitempty"`
	PaidAt           time.Time        `json:"paid_at"`
}

// ObligationResponse is the external representation of an obligation.
// Exactly one of the product sections is set.
type ObligationResponse struct {
	ID                       string                  `json:"id"`
	CustomerID               string                  `json:"customer_id"`
	ProductType              string                  `json:"product_type"`
	Status                   string                  `json:"status"`
	CreditScoreAtOrigination int                     `json:"credit_score_at_origination"`
	AmountExtended           decimal.Decimal         `json:"amount_extended"`
	TotalRepayment           decimal.Decimal         `json:"total_repayment"`
	Outstanding              decimal.Decimal         `json:"outstanding"`
	NextPaymentDueAt         *time.Time              `json:"next_payment_due_at,omitempty"`
	NextPaymentAmount        *decimal.Decimal        `json:"next_payment_amount,omitempty"`
	OriginatedAt             time.Time               `json:"originated_at"`
	CompletedAt              *time.Time              `json:"completed_at,omitempty"`
	Version                  int                     `json:"version"`
	NetTerms                 *NetTermsResponse       `json:"net_terms,omitempty"`
	WorkingCapital           *WorkingCapitalResponse `json:"working_capital,omitempty"`
	RevenueBased             *RevenueBasedResponse   `json:"revenue_based,omitempty"`
	Payments                 []PaymentResponse       `json:"payments"`
}

// ObligationListResponse lists a customer's obligations.
type ObligationListResponse struct {
	CustomerID  string               `json:"customer_id"`
	Obligations []ObligationResponse `json:"obligations"`
}

// RecordPaymentResponse reports the appended payment and the resulting
// obligation state.
type RecordPaymentResponse struct {
	Payment          PaymentResponse `json:"payment"`
	ObligationStatus string          `json:"obligation_status"`
	Outstanding      decimal.Decimal `json:"outstanding"`
}

// DashboardResponse summarises a customer's credit position.
type DashboardResponse struct {
	CustomerID       string               `json:"customer_id"`
	LatestScore      *CreditScoreResponse `json:"latest_score,omitempty"`
	Obligations      []ObligationResponse `json:"obligations"`
	TotalBorrowed    decimal.Decimal      `json:"total_borrowed"`
	TotalOutstanding decimal.Decimal      `json:"total_outstanding"`
	AvailableCredit  decimal.Decimal      `json:"available_credit"`
}

// ScanPaymentsDueResponse reports how many active obligations were examined
// and how many payment_due events were emitted.
type ScanPaymentsDueResponse struct {
	Scanned int `json:"scanned"`
	Due     int `json:"due"`
}
