package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the precision every stored amount carries.
const MoneyPlaces = 2

// IsWholeCents reports whether d has no digits beyond MoneyPlaces.
func IsWholeCents(d decimal.Decimal) bool {
	return d.Equal(d.Round(MoneyPlaces))
}

// Payment is an append-only ledger entry against an obligation.
type Payment struct {
	PaidAt           time.Time
	RevenueForPeriod *decimal.Decimal
	Amount           decimal.Decimal
	ID               string
	ObligationID     string
}

// NewPayment validates a payment before it is appended to a ledger.
func NewPayment(id, obligationID string, amount decimal.Decimal, revenueForPeriod *decimal.Decimal, paidAt time.Time) (Payment, error) {
	if id == "" {
		return Payment{}, errors.New("payment ID is required")
	}
	if obligationID == "" {
		return Payment{}, errors.New("obligation ID is required")
	}
	if !amount.IsPositive() || !IsWholeCents(amount) {
		return Payment{}, ErrInvalidAmount
	}
	if revenueForPeriod != nil && (revenueForPeriod.IsNegative() || !IsWholeCents(*revenueForPeriod)) {
		return Payment{}, ErrInvalidAmount
	}
	return Payment{
		ID:               id,
		ObligationID:     obligationID,
		Amount:           amount,
		RevenueForPeriod: revenueForPeriod,
		PaidAt:           paidAt,
	}, nil
}

func copyPayments(src []Payment) []Payment {
	if src == nil {
		return nil
	}
	out := make([]Payment, len(src))
	copy(out, src)
	return out
}

func sumPayments(payments []Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}
