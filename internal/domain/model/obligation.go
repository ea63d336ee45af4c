package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/event"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Obligation aggregate root
// ---------------------------------------------------------------------------

// Obligation is an immutable aggregate covering every financing product.
// Product specifics live in terms; mutations return a new copy.
type Obligation struct {
	originatedAt             time.Time
	completedAt              *time.Time
	terms                    Terms
	status                   valueobject.ObligationStatus
	id                       string
	customerID               string
	payments                 []Payment
	domainEvents             []event.DomainEvent
	creditScoreAtOrigination int
	version                  int
	isNew                    bool
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// NewObligation creates an ACTIVE obligation and records ObligationOriginated.
func NewObligation(id, customerID string, terms Terms, creditScore int, now time.Time) (Obligation, error) {
	if id == "" {
		return Obligation{}, errors.New("obligation ID is required")
	}
	if customerID == "" {
		return Obligation{}, errors.New("customer ID is required")
	}
	if terms == nil {
		return Obligation{}, fmt.Errorf("%w: terms are required", ErrInvalidTerms)
	}
	if creditScore < MinScore || creditScore > MaxScore {
		return Obligation{}, fmt.Errorf("credit score %d outside %d-%d", creditScore, MinScore, MaxScore)
	}

	ob := Obligation{
		id:                       id,
		customerID:               customerID,
		terms:                    terms,
		status:                   valueobject.ObligationStatusActive,
		creditScoreAtOrigination: creditScore,
		originatedAt:             now,
		version:                  1,
		isNew:                    true,
	}

	ob.domainEvents = append(ob.domainEvents, event.NewObligationOriginated(
		id, customerID, terms.ProductType().String(),
		ob.AmountExtended(), ob.TotalRepayment(), creditScore, now,
	))

	return ob, nil
}

// ReconstructObligation rebuilds an Obligation from persistence.
func ReconstructObligation(
	id, customerID string,
	terms Terms,
	status valueobject.ObligationStatus,
	creditScore int,
	originatedAt time.Time,
	completedAt *time.Time,
	payments []Payment,
	version int,
) Obligation {
	return Obligation{
		id:                       id,
		customerID:               customerID,
		terms:                    terms,
		status:                   status,
		creditScoreAtOrigination: creditScore,
		originatedAt:             originatedAt,
		completedAt:              completedAt,
		payments:                 payments,
		version:                  version,
	}
}

// ---------------------------------------------------------------------------
// State transitions
// ---------------------------------------------------------------------------

// RecordPayment applies a customer payment. Net Terms settle in a single
// payment; loan and revenue-based balances are recomputed from the full
// payment history and the obligation is PAID_OFF once nothing remains.
// Overpayment is accepted and the remaining balance is clamped at zero.
func (o Obligation) RecordPayment(
	paymentID string,
	amount decimal.Decimal,
	revenueForPeriod *decimal.Decimal,
	now time.Time,
) (Obligation, Payment, error) {
	if !amount.IsPositive() {
		return o, Payment{}, fmt.Errorf("%w: payment amount must be positive", ErrInvalidAmount)
	}
	if !IsWholeCents(amount) {
		return o, Payment{}, fmt.Errorf("%w: payment amount has sub-cent precision", ErrInvalidAmount)
	}
	if o.status.IsTerminal() {
		return o, Payment{}, ErrAlreadyCompleted
	}

	payment, err := NewPayment(paymentID, o.id, amount, revenueForPeriod, now)
	if err != nil {
		return o, Payment{}, err
	}

	next := o
	next.payments = append(copyPayments(o.payments), payment)
	next.domainEvents = copyEvents(o.domainEvents)

	var terminal valueobject.ObligationStatus
	switch t := o.terms.(type) {
	case NetTerms:
		paidAt := now
		t.CustomerPaidAt = &paidAt
		next.terms = t
		terminal = valueobject.ObligationStatusCompleted
	case WorkingCapitalLoan:
		t.AmountRepaid = sumPayments(next.payments)
		t.Remaining = clampZero(t.TotalRepayment.Sub(t.AmountRepaid))
		next.terms = t
		if !t.Remaining.IsPositive() {
			terminal = valueobject.ObligationStatusPaidOff
		}
	case RevenueBasedFinancing:
		t.AmountRepaid = sumPayments(next.payments)
		t.Remaining = clampZero(t.TotalRepayment.Sub(t.AmountRepaid))
		next.terms = t
		if !t.Remaining.IsPositive() {
			terminal = valueobject.ObligationStatusPaidOff
		}
	default:
		return o, Payment{}, fmt.Errorf("%w: %T", ErrUnsupportedProduct, o.terms)
	}

	product := o.terms.ProductType().String()
	next.domainEvents = append(next.domainEvents, event.NewPaymentRecorded(
		o.id, o.customerID, payment.ID, product, amount, next.Outstanding(), now,
	))

	if !terminal.IsZero() {
		completedAt := now
		next.status = terminal
		next.completedAt = &completedAt
		next.domainEvents = append(next.domainEvents, event.NewObligationCompleted(
			o.id, o.customerID, product, terminal.String(), now,
		))
	}

	return next, payment, nil
}

// PaySupplier marks the supplier side of a Net Terms deal as settled. It is
// independent of whether the customer has already paid.
func (o Obligation) PaySupplier(now time.Time) (Obligation, error) {
	t, ok := o.terms.(NetTerms)
	if !ok {
		return o, fmt.Errorf("%w: supplier payment on %s", ErrUnsupportedProduct, o.terms.ProductType())
	}
	if t.SupplierPaidAt != nil {
		return o, ErrSupplierAlreadyPaid
	}

	paidAt := now
	t.SupplierPaidAt = &paidAt

	next := o
	next.terms = t
	next.domainEvents = copyEvents(o.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewSupplierPaid(
		o.id, o.customerID, t.SupplierID, t.InvoiceAmount, now,
	))
	return next, nil
}

// ---------------------------------------------------------------------------
// Derived values
// ---------------------------------------------------------------------------

// AmountExtended is the original invoice, principal or advance.
func (o Obligation) AmountExtended() decimal.Decimal {
	switch t := o.terms.(type) {
	case NetTerms:
		return t.InvoiceAmount
	case WorkingCapitalLoan:
		return t.Principal
	case RevenueBasedFinancing:
		return t.AdvanceAmount
	default:
		return decimal.Zero
	}
}

// TotalRepayment is everything the customer owes over the obligation's life.
func (o Obligation) TotalRepayment() decimal.Decimal {
	switch t := o.terms.(type) {
	case NetTerms:
		return t.AmountDue()
	case WorkingCapitalLoan:
		return t.TotalRepayment
	case RevenueBasedFinancing:
		return t.TotalRepayment
	default:
		return decimal.Zero
	}
}

// Outstanding is the remaining-equivalent balance; zero once terminal.
func (o Obligation) Outstanding() decimal.Decimal {
	if o.status.IsTerminal() {
		return decimal.Zero
	}
	switch t := o.terms.(type) {
	case NetTerms:
		return t.AmountDue()
	case WorkingCapitalLoan:
		return t.Remaining
	case RevenueBasedFinancing:
		return t.Remaining
	default:
		return decimal.Zero
	}
}

// NextPaymentDue returns the next scheduled collection for an ACTIVE
// obligation. Revenue-based financing has no fixed schedule and always
// reports false.
func (o Obligation) NextPaymentDue() (time.Time, decimal.Decimal, bool) {
	if o.status.IsTerminal() {
		return time.Time{}, decimal.Zero, false
	}
	switch t := o.terms.(type) {
	case NetTerms:
		return t.CustomerPaymentDueAt, t.AmountDue(), true
	case WorkingCapitalLoan:
		due := o.originatedAt.AddDate(0, len(o.payments)+1, 0)
		return due, decimal.Min(t.MonthlyPayment, t.Remaining), true
	case RevenueBasedFinancing:
		return time.Time{}, decimal.Zero, false
	default:
		return time.Time{}, decimal.Zero, false
	}
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (o Obligation) ID() string                           { return o.id }
func (o Obligation) CustomerID() string                   { return o.customerID }
func (o Obligation) Terms() Terms                         { return o.terms }
func (o Obligation) ProductType() valueobject.ProductType { return o.terms.ProductType() }
func (o Obligation) Status() valueobject.ObligationStatus { return o.status }
func (o Obligation) CreditScoreAtOrigination() int        { return o.creditScoreAtOrigination }
func (o Obligation) OriginatedAt() time.Time              { return o.originatedAt }
func (o Obligation) CompletedAt() *time.Time              { return o.completedAt }
func (o Obligation) Version() int                         { return o.version }
func (o Obligation) DomainEvents() []event.DomainEvent    { return o.domainEvents }

// IsNew reports whether the obligation was created by NewObligation and has
// never been loaded from a store. Stores insert new obligations without
// overwriting an existing id.
func (o Obligation) IsNew() bool { return o.isNew }

// Payments returns a defensive copy of the payment history.
func (o Obligation) Payments() []Payment { return copyPayments(o.payments) }

// ClearEvents returns a copy with an empty event list.
func (o Obligation) ClearEvents() Obligation {
	next := o
	next.domainEvents = nil
	return next
}

func copyEvents(src []event.DomainEvent) []event.DomainEvent {
	if src == nil {
		return nil
	}
	out := make([]event.DomainEvent, len(src))
	copy(out, src)
	return out
}

func clampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
