package valueobject

import (
	"time"

	"github.com/shopspring/decimal"
)

// RevenuePeriod is one month of observed merchant revenue.
type RevenuePeriod struct {
	Period time.Time       `json:"period" yaml:"period"`
	Amount decimal.Decimal `json:"amount" yaml:"amount"`
}

// TransactionRecord is a single historical obligation the merchant had to
// settle on the platform, with its punctuality.
type TransactionRecord struct {
	Amount     decimal.Decimal `json:"amount" yaml:"amount"`
	PaidOnTime bool            `json:"paid_on_time" yaml:"paid_on_time"`
}

// BehavioralInput carries the pre-computed signals supplied by the CDP
// analytics provider. Nil pointers and empty slices mean the signal is
// absent, which degrades the matching factor to its neutral default.
type BehavioralInput struct {
	AccountCreatedAt *time.Time          `json:"account_created_at,omitempty" yaml:"account_created_at,omitempty"`
	RetentionRate    *decimal.Decimal    `json:"retention_rate,omitempty" yaml:"retention_rate,omitempty"`
	LifetimeValue    *decimal.Decimal    `json:"ltv,omitempty" yaml:"ltv,omitempty"`
	AcquisitionCost  *decimal.Decimal    `json:"cac,omitempty" yaml:"cac,omitempty"`
	RevenueHistory   []RevenuePeriod     `json:"revenue_history" yaml:"revenue_history"`
	Transactions     []TransactionRecord `json:"transactions" yaml:"transactions"`
}

// OnTimeFraction returns the share of transactions paid on time and false
// when there is no history.
func (b BehavioralInput) OnTimeFraction() (decimal.Decimal, bool) {
	if len(b.Transactions) == 0 {
		return decimal.Zero, false
	}
	onTime := 0
	for _, t := range b.Transactions {
		if t.PaidOnTime {
			onTime++
		}
	}
	return decimal.NewFromInt(int64(onTime)).Div(decimal.NewFromInt(int64(len(b.Transactions)))), true
}

// LTVToCAC returns the efficiency ratio and false when either side is
// missing or CAC is zero.
func (b BehavioralInput) LTVToCAC() (decimal.Decimal, bool) {
	if b.LifetimeValue == nil || b.AcquisitionCost == nil || b.AcquisitionCost.IsZero() {
		return decimal.Zero, false
	}
	return b.LifetimeValue.Div(*b.AcquisitionCost), true
}

// TenureMonths returns the number of whole months between account creation
// and asOf, and false when the creation date is unknown.
func (b BehavioralInput) TenureMonths(asOf time.Time) (int, bool) {
	if b.AccountCreatedAt == nil {
		return 0, false
	}
	created := b.AccountCreatedAt.UTC()
	asOf = asOf.UTC()
	if asOf.Before(created) {
		return 0, true
	}
	months := (asOf.Year()-created.Year())*12 + int(asOf.Month()-created.Month())
	if asOf.Day() < created.Day() {
		months--
	}
	if months < 0 {
		months = 0
	}
	return months, true
}
