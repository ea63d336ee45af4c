package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/valueobject"
)

const (
	MinScore = 300
	MaxScore = 850
)

// ScoreFactor is one weighted component of an Aura Score.
type ScoreFactor struct {
	Name        string
	Description string
	Grade       valueobject.FactorGrade
	Weight      decimal.Decimal
	Score       int
}

// ---------------------------------------------------------------------------
// CreditScoreRecord
// ---------------------------------------------------------------------------

// CreditScoreRecord is an immutable snapshot of a customer's score. A new
// calculation supersedes, never mutates, an earlier record.
type CreditScoreRecord struct {
	calculatedAt   time.Time
	riskTier       valueobject.RiskTier
	rating         valueobject.Rating
	maxCreditLimit decimal.Decimal
	id             string
	customerID     string
	factors        []ScoreFactor
	score          int
}

// NewCreditScoreRecord validates and builds a score record. Rating and
// credit limit are derived from the score and tier.
func NewCreditScoreRecord(
	id, customerID string,
	score int,
	factors []ScoreFactor,
	tier valueobject.RiskTier,
	calculatedAt time.Time,
) (CreditScoreRecord, error) {
	if id == "" {
		return CreditScoreRecord{}, errors.New("score record ID is required")
	}
	if customerID == "" {
		return CreditScoreRecord{}, errors.New("customer ID is required")
	}
	if score < MinScore || score > MaxScore {
		return CreditScoreRecord{}, fmt.Errorf("score %d outside %d-%d", score, MinScore, MaxScore)
	}
	if tier.IsZero() {
		return CreditScoreRecord{}, errors.New("risk tier is required")
	}

	return CreditScoreRecord{
		id:             id,
		customerID:     customerID,
		score:          score,
		rating:         valueobject.RatingForScore(score),
		riskTier:       tier,
		factors:        copyFactors(factors),
		maxCreditLimit: tier.MaxCreditLimit(),
		calculatedAt:   calculatedAt,
	}, nil
}

// ReconstructCreditScoreRecord rebuilds a record from persistence.
func ReconstructCreditScoreRecord(
	id, customerID string,
	score int,
	rating valueobject.Rating,
	tier valueobject.RiskTier,
	factors []ScoreFactor,
	maxCreditLimit decimal.Decimal,
	calculatedAt time.Time,
) CreditScoreRecord {
	return CreditScoreRecord{
		id:             id,
		customerID:     customerID,
		score:          score,
		rating:         rating,
		riskTier:       tier,
		factors:        factors,
		maxCreditLimit: maxCreditLimit,
		calculatedAt:   calculatedAt,
	}
}

func (r CreditScoreRecord) ID() string                      { return r.id }
func (r CreditScoreRecord) CustomerID() string              { return r.customerID }
func (r CreditScoreRecord) Score() int                      { return r.score }
func (r CreditScoreRecord) Rating() valueobject.Rating      { return r.rating }
func (r CreditScoreRecord) RiskTier() valueobject.RiskTier  { return r.riskTier }
func (r CreditScoreRecord) MaxCreditLimit() decimal.Decimal { return r.maxCreditLimit }
func (r CreditScoreRecord) CalculatedAt() time.Time         { return r.calculatedAt }

// Factors returns a copy of the ordered factor breakdown.
func (r CreditScoreRecord) Factors() []ScoreFactor { return copyFactors(r.factors) }

func copyFactors(src []ScoreFactor) []ScoreFactor {
	if src == nil {
		return nil
	}
	out := make([]ScoreFactor, len(src))
	copy(out, src)
	return out
}
