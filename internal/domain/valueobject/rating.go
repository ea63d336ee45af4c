package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// Rating – score-level label
// ---------------------------------------------------------------------------

// Rating is the human-facing label attached to an Aura Score.
type Rating struct {
	value string
}

const (
	ratingExcellent = "Excellent"
	ratingGood      = "Good"
	ratingFair      = "Fair"
	ratingPoor      = "Poor"
	ratingBad       = "Bad"
)

var (
	RatingExcellent = Rating{value: ratingExcellent}
	RatingGood      = Rating{value: ratingGood}
	RatingFair      = Rating{value: ratingFair}
	RatingPoor      = Rating{value: ratingPoor}
	RatingBad       = Rating{value: ratingBad}
)

var validRatings = map[string]Rating{
	ratingExcellent: RatingExcellent,
	ratingGood:      RatingGood,
	ratingFair:      RatingFair,
	ratingPoor:      RatingPoor,
	ratingBad:       RatingBad,
}

// NewRating parses a stored rating label.
func NewRating(s string) (Rating, error) {
	v, ok := validRatings[s]
	if !ok {
		return Rating{}, fmt.Errorf("invalid rating: %q", s)
	}
	return v, nil
}

// RatingForScore maps a 300-850 score to its rating.
func RatingForScore(score int) Rating {
	switch {
	case score >= 750:
		return RatingExcellent
	case score >= 680:
		return RatingGood
	case score >= 620:
		return RatingFair
	case score >= 550:
		return RatingPoor
	default:
		return RatingBad
	}
}

func (r Rating) String() string          { return r.value }
func (r Rating) IsZero() bool            { return r.value == "" }
func (r Rating) Equal(other Rating) bool { return r.value == other.value }

// ---------------------------------------------------------------------------
// FactorGrade – sub-score label
// ---------------------------------------------------------------------------

// FactorGrade labels a single 0-100 factor sub-score.
type FactorGrade struct {
	value string
}

const (
	gradeExcellent = "Excellent"
	gradeGood      = "Good"
	gradeFair      = "Fair"
	gradePoor      = "Poor"
	gradeVeryPoor  = "VeryPoor"
)

var (
	FactorGradeExcellent = FactorGrade{value: gradeExcellent}
	FactorGradeGood      = FactorGrade{value: gradeGood}
	FactorGradeFair      = FactorGrade{value: gradeFair}
	FactorGradePoor      = FactorGrade{value: gradePoor}
	FactorGradeVeryPoor  = FactorGrade{value: gradeVeryPoor}
)

var validFactorGrades = map[string]FactorGrade{
	gradeExcellent: FactorGradeExcellent,
	gradeGood:      FactorGradeGood,
	gradeFair:      FactorGradeFair,
	gradePoor:      FactorGradePoor,
	gradeVeryPoor:  FactorGradeVeryPoor,
}

// NewFactorGrade parses a stored grade label.
func NewFactorGrade(s string) (FactorGrade, error) {
	v, ok := validFactorGrades[s]
	if !ok {
		return FactorGrade{}, fmt.Errorf("invalid factor grade: %q", s)
	}
	return v, nil
}

// GradeForSubScore maps a 0-100 sub-score to its grade.
func GradeForSubScore(score int) FactorGrade {
	switch {
	case score >= 90:
		return FactorGradeExcellent
	case score >= 75:
		return FactorGradeGood
	case score >= 60:
		return FactorGradeFair
	case score >= 50:
		return FactorGradePoor
	default:
		return FactorGradeVeryPoor
	}
}

func (g FactorGrade) String() string               { return g.value }
func (g FactorGrade) IsZero() bool                 { return g.value == "" }
func (g FactorGrade) Equal(other FactorGrade) bool { return g.value == other.value }
