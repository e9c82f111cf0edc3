package finance

import "math"

// StrategyID identifies one of the three canned structural strategies.
type StrategyID string

const (
	StrategyExpenseAdjustment StrategyID = "A"
	StrategySavingsFocus      StrategyID = "B"
	StrategyHybrid            StrategyID = "C"
)

// Strategy deltas. A cuts fixed expenses by 10%, B adds 500,000 KRW to the
// emergency fund, C combines a 5% cut with a 300,000 KRW addition.
const (
	expenseCutFactorA = 0.9
	expenseCutFactorC = 0.95
	fundBoostKRWB     = 500_000
	fundBoostKRWC     = 300_000
)

// StrategyOption compares the current structure against one projected
// structure. Months-to-target values are nil when the target is already
// reached or no surplus can close the gap.
type StrategyOption struct {
	ID                     StrategyID `json:"id"`
	Title                  string     `json:"title"`
	Subtitle               string     `json:"subtitle"`
	NextStructure          Structure  `json:"nextStructure"`
	ScoreBefore            int        `json:"scoreBefore"`
	ScoreAfter             int        `json:"scoreAfter"`
	Delta                  int        `json:"delta"`
	RunwayBefore           float64    `json:"runwayBefore"`
	RunwayAfter            float64    `json:"runwayAfter"`
	ProgressBefore         float64    `json:"progressBefore"`
	ProgressAfter          float64    `json:"progressAfter"`
	ExpenseReductionManwon int64      `json:"expenseReductionManwon"`
	RunwayDelta            float64    `json:"runwayDelta"` // months, one decimal
	MonthsToTargetBefore   *float64   `json:"monthsToTargetBefore"`
	MonthsToTargetAfter    *float64   `json:"monthsToTargetAfter"`
}

// roundTenth rounds to one decimal place.
func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

// monthsToTargetRounded adapts MonthsToTarget to the nullable, one-decimal
// representation the comparison reports.
func monthsToTargetRounded(emergencyFund, requiredFund, surplus float64) *float64 {
	months, ok := MonthsToTarget(emergencyFund, requiredFund, surplus)
	if !ok {
		return nil
	}
	rounded := roundTenth(months)
	return &rounded
}

// ProjectStrategies builds the three strategy projections from the current
// structure and scores each against it. The result always has exactly three
// options in A, B, C order; nothing is persisted, callers regenerate on
// demand.
func ProjectStrategies(structure Structure) []StrategyOption {
	s := Normalize(structure)
	before := ComputeAll(s)

	totalExpensesBefore := s.FixedExpenses + s.VariableExpenses
	surplusBefore := math.Max(0, s.LowestIncome-totalExpensesBefore)

	structureA := s
	structureA.FixedExpenses = RoundToManwon(s.FixedExpenses * expenseCutFactorA)

	structureB := s
	structureB.EmergencyFund = s.EmergencyFund + fundBoostKRWB

	structureC := s
	structureC.FixedExpenses = RoundToManwon(s.FixedExpenses * expenseCutFactorC)
	structureC.EmergencyFund = s.EmergencyFund + fundBoostKRWC

	projections := []struct {
		id        StrategyID
		title     string
		subtitle  string
		structure Structure
	}{
		{StrategyExpenseAdjustment, "Expense Adjustment", "고정지출 10% 절감 (만원 단위 반올림)", structureA},
		{StrategySavingsFocus, "Savings Focus", "비상자금 50만원 추가 가정", structureB},
		{StrategyHybrid, "Hybrid", "지출 5% 절감 + 비상자금 30만원 추가", structureC},
	}

	options := make([]StrategyOption, 0, len(projections))
	for _, p := range projections {
		after := ComputeAll(p.structure)

		totalExpensesAfter := p.structure.FixedExpenses + p.structure.VariableExpenses
		surplusAfter := math.Max(0, p.structure.LowestIncome-totalExpensesAfter)

		// KRWToManwon floors negative input at 0, so a strategy that raises
		// expenses reports no reduction.
		expenseReduction := KRWToManwon(totalExpensesBefore - totalExpensesAfter)

		options = append(options, StrategyOption{
			ID:                     p.id,
			Title:                  p.title,
			Subtitle:               p.subtitle,
			NextStructure:          p.structure,
			ScoreBefore:            before.Score,
			ScoreAfter:             after.Score,
			Delta:                  after.Score - before.Score,
			RunwayBefore:           before.RunwayMonths,
			RunwayAfter:            after.RunwayMonths,
			ProgressBefore:         before.ProgressPercent,
			ProgressAfter:          after.ProgressPercent,
			ExpenseReductionManwon: expenseReduction,
			RunwayDelta:            roundTenth(after.RunwayMonths - before.RunwayMonths),
			MonthsToTargetBefore:   monthsToTargetRounded(s.EmergencyFund, before.RequiredFund, surplusBefore),
			MonthsToTargetAfter:    monthsToTargetRounded(p.structure.EmergencyFund, after.RequiredFund, surplusAfter),
		})
	}

	return options
}
