package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RiskTier is a score-range bucket that fixes the interest-rate ceiling and
// the maximum credit the platform will extend.
type RiskTier struct {
	name                string
	minScore            int
	maxScore            int
	interestRateCeiling decimal.Decimal
	maxCreditLimit      decimal.Decimal
}

var (
	RiskTierExcellent = RiskTier{
		name: "excellent", minScore: 750, maxScore: 850,
		interestRateCeiling: decimal.RequireFromString("0.08"),
		maxCreditLimit:      decimal.NewFromInt(1_000_000),
	}
	RiskTierGood = RiskTier{
		name: "good", minScore: 680, maxScore: 749,
		interestRateCeiling: decimal.RequireFromString("0.10"),
		maxCreditLimit:      decimal.NewFromInt(500_000),
	}
	RiskTierFair = RiskTier{
		name: "fair", minScore: 620, maxScore: 679,
		interestRateCeiling: decimal.RequireFromString("0.12"),
		maxCreditLimit:      decimal.NewFromInt(250_000),
	}
	RiskTierPoor = RiskTier{
		name: "poor", minScore: 550, maxScore: 619,
		interestRateCeiling: decimal.RequireFromString("0.15"),
		maxCreditLimit:      decimal.NewFromInt(100_000),
	}
	RiskTierBad = RiskTier{
		name: "bad", minScore: 300, maxScore: 549,
		interestRateCeiling: decimal.RequireFromString("0.18"),
		maxCreditLimit:      decimal.NewFromInt(50_000),
	}
)

// RiskTiers returns the tier table ordered from best to worst.
func RiskTiers() []RiskTier {
	return []RiskTier{RiskTierExcellent, RiskTierGood, RiskTierFair, RiskTierPoor, RiskTierBad}
}

// NewRiskTier looks a tier up by its stored name.
func NewRiskTier(name string) (RiskTier, error) {
	for _, t := range RiskTiers() {
		if t.name == name {
			return t, nil
		}
	}
	return RiskTier{}, fmt.Errorf("invalid risk tier: %q", name)
}

// Contains reports whether score falls inside the tier's inclusive range.
func (t RiskTier) Contains(score int) bool {
	return score >= t.minScore && score <= t.maxScore
}

func (t RiskTier) Name() string                         { return t.name }
func (t RiskTier) MinScore() int                        { return t.minScore }
func (t RiskTier) MaxScore() int                        { return t.maxScore }
func (t RiskTier) InterestRateCeiling() decimal.Decimal { return t.interestRateCeiling }
func (t RiskTier) MaxCreditLimit() decimal.Decimal      { return t.maxCreditLimit }
func (t RiskTier) String() string                       { return t.name }
func (t RiskTier) IsZero() bool                         { return t.name == "" }
func (t RiskTier) Equal(other RiskTier) bool            { return t.name == other.name }
