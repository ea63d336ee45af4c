package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/model"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/valueobject"
)

// Factor names as they appear in score breakdowns.
const (
	FactorRevenueTrend     = "revenue_trend"
	FactorRetention        = "customer_retention"
	FactorLTVCACEfficiency = "ltv_cac_efficiency"
	FactorPaymentHistory   = "payment_history"
	FactorBusinessTenure   = "business_tenure"
)

const (
	revenueTrendWindow      = 3
	neutralSubScore         = 50
	emptyPaymentHistoryBase = 70
)

var (
	weightRevenueTrend   = decimal.RequireFromString("0.30")
	weightRetention      = decimal.RequireFromString("0.25")
	weightLTVCAC         = decimal.RequireFromString("0.20")
	weightPaymentHistory = decimal.RequireFromString("0.15")
	weightTenure         = decimal.RequireFromString("0.10")

	scoreFloor = decimal.NewFromInt(model.MinScore)
	scoreSpan  = decimal.NewFromInt(model.MaxScore - model.MinScore)
	hundred    = decimal.NewFromInt(100)
)

// band awards score to any value at or above min. Bands are ordered from
// the highest threshold down; values below every band get the floor.
type band struct {
	min   decimal.Decimal
	score int
}

func atLeast(min string, score int) band {
	return band{min: decimal.RequireFromString(min), score: score}
}

var (
	revenueTrendBands   = []band{atLeast("0.30", 100), atLeast("0.20", 90), atLeast("0.10", 80), atLeast("0.05", 70), atLeast("0", 60), atLeast("-0.10", 40)}
	retentionBands      = []band{atLeast("0.80", 100), atLeast("0.70", 90), atLeast("0.60", 80), atLeast("0.50", 70), atLeast("0.40", 55), atLeast("0.30", 40)}
	ltvCACBands         = []band{atLeast("5.0", 100), atLeast("4.0", 90), atLeast("3.0", 80), atLeast("2.5", 70), atLeast("2.0", 60), atLeast("1.5", 40)}
	paymentHistoryBands = []band{atLeast("0.98", 100), atLeast("0.95", 90), atLeast("0.90", 80), atLeast("0.85", 70), atLeast("0.75", 60)}
	tenureBands         = []band{atLeast("60", 100), atLeast("36", 90), atLeast("24", 80), atLeast("12", 70), atLeast("6", 55), atLeast("3", 40)}
)

const (
	revenueTrendFloor   = 20
	retentionFloor      = 20
	ltvCACFloor         = 20
	paymentHistoryFloor = 40
	tenureFloor         = 20
)

func scoreInBands(v decimal.Decimal, table []band, floor int) int {
	for _, b := range table {
		if v.GreaterThanOrEqual(b.min) {
			return b.score
		}
	}
	return floor
}

// ScoreBreakdown is the pure result of scoring behavioural input.
type ScoreBreakdown struct {
	WeightedSum decimal.Decimal
	Factors     []model.ScoreFactor
	Score       int
}

// ---------------------------------------------------------------------------
// ScoreCalculator – domain service
// ---------------------------------------------------------------------------

// ScoreCalculator turns behavioural signals into an Aura Score.
//
// Weights:
//   - Revenue trend: 30%
//   - Customer retention: 25%
//   - LTV/CAC efficiency: 20%
//   - Payment history: 15%
//   - Business tenure: 10%
//
// Missing signals score neutral rather than failing.
type ScoreCalculator struct {
	resolver *RiskTierResolver
}

// NewScoreCalculator wires the calculator to a tier resolver.
func NewScoreCalculator(resolver *RiskTierResolver) *ScoreCalculator {
	return &ScoreCalculator{resolver: resolver}
}

// Compute scores input as of asOf. It never fails.
func (c *ScoreCalculator) Compute(input valueobject.BehavioralInput, asOf time.Time) ScoreBreakdown {
	factors := []model.ScoreFactor{
		revenueTrendFactor(input),
		retentionFactor(input),
		ltvCACFactor(input),
		paymentHistoryFactor(input),
		tenureFactor(input, asOf),
	}

	weighted := decimal.Zero
	for _, f := range factors {
		weighted = weighted.Add(f.Weight.Mul(decimal.NewFromInt(int64(f.Score))))
	}

	score := int(scoreFloor.Add(weighted.Div(hundred).Mul(scoreSpan)).Round(0).IntPart())
	if score < model.MinScore {
		score = model.MinScore
	}
	if score > model.MaxScore {
		score = model.MaxScore
	}

	return ScoreBreakdown{Score: score, WeightedSum: weighted, Factors: factors}
}

// Calculate produces a CreditScoreRecord stamped with calculatedAt.
func (c *ScoreCalculator) Calculate(
	recordID, customerID string,
	input valueobject.BehavioralInput,
	calculatedAt time.Time,
) (model.CreditScoreRecord, error) {
	b := c.Compute(input, calculatedAt)
	return model.NewCreditScoreRecord(recordID, customerID, b.Score, b.Factors, c.resolver.Resolve(b.Score), calculatedAt)
}

// ---------------------------------------------------------------------------
// Factors
// ---------------------------------------------------------------------------

func newFactor(name string, weight decimal.Decimal, score int, description string) model.ScoreFactor {
	return model.ScoreFactor{
		Name:        name,
		Weight:      weight,
		Score:       score,
		Grade:       valueobject.GradeForSubScore(score),
		Description: description,
	}
}

// revenueTrendFactor averages month-over-month growth across the most recent
// three periods. Pairs with a non-positive base period are skipped.
func revenueTrendFactor(input valueobject.BehavioralInput) model.ScoreFactor {
	if len(input.RevenueHistory) < revenueTrendWindow {
		return newFactor(FactorRevenueTrend, weightRevenueTrend, neutralSubScore,
			fmt.Sprintf("only %d revenue periods available, need %d", len(input.RevenueHistory), revenueTrendWindow))
	}

	history := make([]valueobject.RevenuePeriod, len(input.RevenueHistory))
	copy(history, input.RevenueHistory)
	sort.SliceStable(history, func(i, j int) bool { return history[i].Period.Before(history[j].Period) })
	recent := history[len(history)-revenueTrendWindow:]

	total := decimal.Zero
	rates := 0
	for i := 1; i < len(recent); i++ {
		prev := recent[i-1].Amount
		if !prev.IsPositive() {
			continue
		}
		total = total.Add(recent[i].Amount.Sub(prev).Div(prev))
		rates++
	}
	if rates == 0 {
		return newFactor(FactorRevenueTrend, weightRevenueTrend, neutralSubScore,
			"no positive base period to measure growth from")
	}

	avg := total.Div(decimal.NewFromInt(int64(rates)))
	return newFactor(FactorRevenueTrend, weightRevenueTrend,
		scoreInBands(avg, revenueTrendBands, revenueTrendFloor),
		fmt.Sprintf("average month-over-month growth %s%%", avg.Mul(hundred).StringFixed(1)))
}

func retentionFactor(input valueobject.BehavioralInput) model.ScoreFactor {
	if input.RetentionRate == nil {
		return newFactor(FactorRetention, weightRetention, neutralSubScore, "no cohort retention data")
	}
	r := *input.RetentionRate
	return newFactor(FactorRetention, weightRetention,
		scoreInBands(r, retentionBands, retentionFloor),
		fmt.Sprintf("annual customer retention %s%%", r.Mul(hundred).StringFixed(1)))
}

func ltvCACFactor(input valueobject.BehavioralInput) model.ScoreFactor {
	ratio, ok := input.LTVToCAC()
	if !ok {
		return newFactor(FactorLTVCACEfficiency, weightLTVCAC, neutralSubScore, "LTV or CAC unavailable")
	}
	return newFactor(FactorLTVCACEfficiency, weightLTVCAC,
		scoreInBands(ratio, ltvCACBands, ltvCACFloor),
		fmt.Sprintf("LTV/CAC ratio %s", ratio.StringFixed(2)))
}

func paymentHistoryFactor(input valueobject.BehavioralInput) model.ScoreFactor {
	frac, ok := input.OnTimeFraction()
	if !ok {
		return newFactor(FactorPaymentHistory, weightPaymentHistory, emptyPaymentHistoryBase,
			"no payment history yet")
	}
	return newFactor(FactorPaymentHistory, weightPaymentHistory,
		scoreInBands(frac, paymentHistoryBands, paymentHistoryFloor),
		fmt.Sprintf("%s%% of %d payments on time", frac.Mul(hundred).StringFixed(1), len(input.Transactions)))
}

func tenureFactor(input valueobject.BehavioralInput, asOf time.Time) model.ScoreFactor {
	months, ok := input.TenureMonths(asOf)
	if !ok {
		return newFactor(FactorBusinessTenure, weightTenure, neutralSubScore, "account creation date unknown")
	}
	return newFactor(FactorBusinessTenure, weightTenure,
		scoreInBands(decimal.NewFromInt(int64(months)), tenureBands, tenureFloor),
		fmt.Sprintf("%d months on platform", months))
}
