package finance

import "math"

// Score component weights. These are fixed design constants; the maxima of
// the three components sum to 100.
const (
	progressWeight       = 40
	stabilityWeight      = 40
	resilienceLowWeight  = 15
	resilienceFullWeight = 25

	// Below this runway the resilience component stays on the low-weight
	// sub-linear curve.
	minSafeRunwayMonths = 3

	// Concave exponent for the progress curve: early buffer-building counts
	// disproportionately more than the last stretch.
	progressExponent = 0.6
)

// Score computes the financial health score in [0, 100] for a structure.
// The input is normalized first, so any finite input yields a valid score.
func Score(s Structure) int {
	n := Normalize(s)

	requiredFund := RequiredFund(n.FixedExpenses, n.TargetMonths)
	progressRatio := ProgressRatio(n.EmergencyFund, requiredFund)
	expenseRatio := ExpenseRatio(n.FixedExpenses, n.LowestIncome)
	runwayMonths := RunwayMonths(n.EmergencyFund, n.FixedExpenses)
	runwayRatio := RunwayRatio(runwayMonths, n.TargetMonths)

	progressComponent := math.Pow(clamp(progressRatio, 0, 1), progressExponent) * progressWeight
	stabilityComponent := clamp(1-expenseRatio, 0, 1) * stabilityWeight

	var resilienceComponent float64
	if runwayMonths < minSafeRunwayMonths {
		resilienceComponent = clamp(runwayMonths/minSafeRunwayMonths, 0, 1) * resilienceLowWeight
	} else {
		resilienceComponent = clamp(runwayRatio, 0, 1) * resilienceFullWeight
	}

	raw := progressComponent + stabilityComponent + resilienceComponent
	return int(math.Round(clamp(raw, 0, 100)))
}

// Grade is the score bucket used by the advisory surfaces.
type Grade string

const (
	GradePreparation Grade = "preparation"
	GradeForming     Grade = "forming"
	GradeStable      Grade = "stable"
	GradeStrategic   Grade = "strategic"
	GradeAutonomy    Grade = "autonomy"
)

// GradeForScore maps a score to its grade: 0-39 preparation, 40-59 forming,
// 60-74 stable, 75-89 strategic, 90-100 autonomy.
func GradeForScore(score int) Grade {
	switch {
	case score >= 90:
		return GradeAutonomy
	case score >= 75:
		return GradeStrategic
	case score >= 60:
		return GradeStable
	case score >= 40:
		return GradeForming
	}
	return GradePreparation
}

// Level is the legacy score bucket. It uses different breakpoints than Grade
// and both are user-facing copy keys, so neither can replace the other.
type Level string

const (
	LevelPreparation Level = "Preparation"
	LevelBuilding    Level = "Building"
	LevelStable      Level = "Stable"
	LevelStrategic   Level = "Strategic"
)

// LevelForScore maps a score to its level: 0-39 Preparation, 40-69 Building,
// 70-84 Stable, 85-100 Strategic.
func LevelForScore(score int) Level {
	switch {
	case score >= 85:
		return LevelStrategic
	case score >= 70:
		return LevelStable
	case score >= 40:
		return LevelBuilding
	}
	return LevelPreparation
}

var levelMessages = map[Level]string{
	LevelPreparation: "Your structure needs reinforcement.",
	LevelBuilding:    "You are strengthening your structure.",
	LevelStable:      "Your structure allows choice.",
	LevelStrategic:   "You have operational freedom.",
}

// LevelMessage returns the user-facing message for a level.
func LevelMessage(level Level) string {
	return levelMessages[level]
}

// Insights bundles everything the presentation layer needs for one
// structure.
type Insights struct {
	Score           int     `json:"score"`
	Grade           Grade   `json:"grade"`
	Level           Level   `json:"level"`
	Message         string  `json:"message"`
	RunwayMonths    float64 `json:"runwayMonths"`
	RequiredFund    float64 `json:"requiredFund"`
	ProgressPercent float64 `json:"progressPercent"`
	TotalExpenses   float64 `json:"totalExpenses"` // fixed + variable, for display
}

// ComputeAll evaluates a structure in one pass. No field of the result is
// ever NaN or infinite.
func ComputeAll(s Structure) Insights {
	n := Normalize(s)

	totalExpenses := n.FixedExpenses + n.VariableExpenses
	requiredFund := RequiredFund(n.FixedExpenses, n.TargetMonths)
	progressRatio := ProgressRatio(n.EmergencyFund, requiredFund)
	runwayMonths := RunwayMonths(n.EmergencyFund, n.FixedExpenses)

	score := Score(n)
	level := LevelForScore(score)

	return Insights{
		Score:           score,
		Grade:           GradeForScore(score),
		Level:           level,
		Message:         LevelMessage(level),
		RunwayMonths:    safeNum(runwayMonths, 0),
		RequiredFund:    safeNum(requiredFund, 0),
		ProgressPercent: safeNum(progressRatio*100, 0),
		TotalExpenses:   safeNum(totalExpenses, 0),
	}
}

// ScoreDelta implements score-delta tracking: the very first computation for
// a structure reports a delta of 0, every later one reports the rounded
// difference to the previous score.
func ScoreDelta(newScore, lastScore int, firstCompute bool) int {
	if firstCompute {
		return 0
	}
	return newScore - lastScore
}
