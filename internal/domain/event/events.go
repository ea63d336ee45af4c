package event

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DomainEvent is implemented by every event the credit engine emits.
type DomainEvent interface {
	EventID() string
	EventType() string
	AggregateID() string
	AggregateType() string
	CustomerID() string
	OccurredAt() time.Time
}

const (
	TypeScoreCalculated      = "credit.score.calculated"
	TypeRiskTierChanged      = "credit.score.tier_changed"
	TypeObligationOriginated = "credit.obligation.originated"
	TypePaymentRecorded      = "credit.obligation.payment_recorded"
	TypeObligationCompleted  = "credit.obligation.completed"
	TypeSupplierPaid         = "credit.obligation.supplier_paid"
	TypePaymentDue           = "credit.obligation.payment_due"
)

// BaseEvent carries the envelope shared by all events. Fields are exported
// so the payload serialises flat alongside the concrete event fields.
type BaseEvent struct {
	ID        string    `json:"event_id"`
	Type      string    `json:"event_type"`
	Aggregate string    `json:"aggregate_id"`
	Kind      string    `json:"aggregate_type"`
	Customer  string    `json:"customer_id"`
	Timestamp time.Time `json:"occurred_at"`
}

// NewBaseEvent creates an envelope with a fresh event id.
func NewBaseEvent(eventType, aggregateID, aggregateType, customerID string, occurredAt time.Time) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Aggregate: aggregateID,
		Kind:      aggregateType,
		Customer:  customerID,
		Timestamp: occurredAt.UTC(),
	}
}

func (e BaseEvent) EventID() string       { return e.ID }
func (e BaseEvent) EventType() string     { return e.Type }
func (e BaseEvent) AggregateID() string   { return e.Aggregate }
func (e BaseEvent) AggregateType() string { return e.Kind }
func (e BaseEvent) CustomerID() string    { return e.Customer }
func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }

// ---------------------------------------------------------------------------
// Credit score events
// ---------------------------------------------------------------------------

// ScoreCalculated is raised whenever a new CreditScoreRecord is stored.
type ScoreCalculated struct {
	BaseEvent
	Score          int             `json:"score"`
	Rating         string          `json:"rating"`
	RiskTier       string          `json:"risk_tier"`
	MaxCreditLimit decimal.Decimal `json:"max_credit_limit"`
}

func NewScoreCalculated(
	recordID, customerID string, score int, rating, tier string,
	maxCreditLimit decimal.Decimal, at time.Time,
) ScoreCalculated {
	return ScoreCalculated{
		BaseEvent:      NewBaseEvent(TypeScoreCalculated, recordID, "CreditScore", customerID, at),
		Score:          score,
		Rating:         rating,
		RiskTier:       tier,
		MaxCreditLimit: maxCreditLimit,
	}
}

// RiskTierChanged is raised when a recalculated score lands in a different
// tier than the customer's previous record.
type RiskTierChanged struct {
	BaseEvent
	PreviousTier  string `json:"previous_tier"`
	NewTier       string `json:"new_tier"`
	PreviousScore int    `json:"previous_score"`
	NewScore      int    `json:"new_score"`
}

func NewRiskTierChanged(
	recordID, customerID, previousTier, newTier string,
	previousScore, newScore int, at time.Time,
) RiskTierChanged {
	return RiskTierChanged{
		BaseEvent:     NewBaseEvent(TypeRiskTierChanged, recordID, "CreditScore", customerID, at),
		PreviousTier:  previousTier,
		NewTier:       newTier,
		PreviousScore: previousScore,
		NewScore:      newScore,
	}
}

// ---------------------------------------------------------------------------
// Obligation events
// ---------------------------------------------------------------------------

// ObligationOriginated is raised when a financing product is created.
type ObligationOriginated struct {
	BaseEvent
	ProductType    string          `json:"product_type"`
	Amount         decimal.Decimal `json:"amount"`
	TotalRepayment decimal.Decimal `json:"total_repayment"`
	CreditScore    int             `json:"credit_score"`
}

func NewObligationOriginated(
	obligationID, customerID, productType string,
	amount, totalRepayment decimal.Decimal, creditScore int, at time.Time,
) ObligationOriginated {
	return ObligationOriginated{
		BaseEvent:      NewBaseEvent(TypeObligationOriginated, obligationID, "Obligation", customerID, at),
		ProductType:    productType,
		Amount:         amount,
		TotalRepayment: totalRepayment,
		CreditScore:    creditScore,
	}
}

// PaymentRecorded is raised for every payment appended to the ledger.
type PaymentRecorded struct {
	BaseEvent
	PaymentID   string          `json:"payment_id"`
	ProductType string          `json:"product_type"`
	Amount      decimal.Decimal `json:"amount"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

func NewPaymentRecorded(
	obligationID, customerID, paymentID, productType string,
	amount, outstanding decimal.Decimal, at time.Time,
) PaymentRecorded {
	return PaymentRecorded{
		BaseEvent:   NewBaseEvent(TypePaymentRecorded, obligationID, "Obligation", customerID, at),
		PaymentID:   paymentID,
		ProductType: productType,
		Amount:      amount,
		Outstanding: outstanding,
	}
}

// ObligationCompleted is raised when an obligation reaches a terminal status.
type ObligationCompleted struct {
	BaseEvent
	ProductType string `json:"product_type"`
	Status      string `json:"status"`
}

func NewObligationCompleted(obligationID, customerID, productType, status string, at time.Time) ObligationCompleted {
	return ObligationCompleted{
		BaseEvent:   NewBaseEvent(TypeObligationCompleted, obligationID, "Obligation", customerID, at),
		ProductType: productType,
		Status:      status,
	}
}

// SupplierPaid is raised when the platform settles a Net Terms invoice with
// the supplier.
type SupplierPaid struct {
	BaseEvent
	SupplierID string          `json:"supplier_id"`
	Amount     decimal.Decimal `json:"amount"`
}

func NewSupplierPaid(obligationID, customerID, supplierID string, amount decimal.Decimal, at time.Time) SupplierPaid {
	return SupplierPaid{
		BaseEvent:  NewBaseEvent(TypeSupplierPaid, obligationID, "Obligation", customerID, at),
		SupplierID: supplierID,
		Amount:     amount,
	}
}

// PaymentDue is raised by the due-date scan for the notification service.
type PaymentDue struct {
	BaseEvent
	ProductType string          `json:"product_type"`
	AmountDue   decimal.Decimal `json:"amount_due"`
	DueAt       time.Time       `json:"due_at"`
}

func NewPaymentDue(
	obligationID, customerID, productType string,
	amountDue decimal.Decimal, dueAt, at time.Time,
) PaymentDue {
	return PaymentDue{
		BaseEvent:   NewBaseEvent(TypePaymentDue, obligationID, "Obligation", customerID, at),
		ProductType: productType,
		AmountDue:   amountDue,
		DueAt:       dueAt,
	}
}
