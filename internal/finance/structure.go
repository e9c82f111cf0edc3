// Package finance implements the decision core: structure normalization,
// health scoring, impact ranking, expense decisions, alternative generation
// and strategy projection.
//
// Every function in this package is pure and total. Malformed input is
// corrected, never rejected, so that callers can feed persisted or
// user-edited data without a validation round first.
package finance

import "math"

// TargetMonthsDefault is used when the target horizon is not one of the
// allowed values.
const TargetMonthsDefault = 6

// IncomeDayDefault is used when the income day is missing or out of range.
const IncomeDayDefault = 25

// Structure is the user's monthly financial structure. All amounts are KRW.
type Structure struct {
	LowestIncome     float64 `json:"lowestIncome"`     // Minimum expected monthly income
	FixedExpenses    float64 `json:"fixedExpenses"`    // Recurring unavoidable monthly cost
	VariableExpenses float64 `json:"variableExpenses"` // Discretionary monthly cost
	EmergencyFund    float64 `json:"emergencyFund"`    // Current liquid buffer
	TargetMonths     int     `json:"targetMonths"`     // Buffer target horizon, one of 3, 6, 9, 12
	IncomeDay        int     `json:"incomeDay"`        // Day of month income arrives, 1-31
}

// DefaultStructure returns the structure a new user starts with.
func DefaultStructure() Structure {
	return Structure{
		TargetMonths: TargetMonthsDefault,
		IncomeDay:    IncomeDayDefault,
	}
}

// ValidTargetMonths reports whether m is an allowed target horizon.
func ValidTargetMonths(m int) bool {
	switch m {
	case 3, 6, 9, 12:
		return true
	}
	return false
}

// safeNum replaces NaN and infinities with fallback.
func safeNum(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

// clampNonNegative clamps v to >= 0 and defends against NaN/Inf.
func clampNonNegative(v float64) float64 {
	return math.Max(0, safeNum(v, 0))
}

func clamp(v, min, max float64) float64 {
	return math.Min(math.Max(v, min), max)
}

// Normalize sanitizes a possibly malformed structure. Amounts become finite
// and non-negative, TargetMonths falls back to 6, IncomeDay is rounded and
// clamped to [1, 31] with a fallback of 25. Normalize never fails; it is the
// single point where all downstream formulas may assume well-formed input.
func Normalize(s Structure) Structure {
	targetMonths := s.TargetMonths
	if !ValidTargetMonths(targetMonths) {
		targetMonths = TargetMonthsDefault
	}

	// 0 means the field was never set
	incomeDay := s.IncomeDay
	if incomeDay == 0 {
		incomeDay = IncomeDayDefault
	} else {
		incomeDay = int(clamp(float64(incomeDay), 1, 31))
	}

	return Structure{
		LowestIncome:     clampNonNegative(s.LowestIncome),
		FixedExpenses:    clampNonNegative(s.FixedExpenses),
		VariableExpenses: clampNonNegative(s.VariableExpenses),
		EmergencyFund:    clampNonNegative(s.EmergencyFund),
		TargetMonths:     targetMonths,
		IncomeDay:        incomeDay,
	}
}

// RequiredFund is the emergency fund target: fixed expenses times the target
// horizon.
func RequiredFund(fixedExpenses float64, targetMonths int) float64 {
	return fixedExpenses * float64(targetMonths)
}

// ProgressRatio is the share of the required fund already saved. Returns 0
// when there is no required fund.
func ProgressRatio(emergencyFund, requiredFund float64) float64 {
	if requiredFund <= 0 {
		return 0
	}
	return emergencyFund / requiredFund
}

// ExpenseRatio is fixed expenses relative to the lowest income. An undefined
// ratio (no income) must not look safe, so it returns the worst case 1.
func ExpenseRatio(fixedExpenses, lowestIncome float64) float64 {
	if lowestIncome <= 0 {
		return 1
	}
	return fixedExpenses / lowestIncome
}

// RunwayMonths is how many months the emergency fund covers fixed expenses
// at zero income. Returns 0 when there are no fixed expenses.
func RunwayMonths(emergencyFund, fixedExpenses float64) float64 {
	if fixedExpenses <= 0 {
		return 0
	}
	return emergencyFund / fixedExpenses
}

// RunwayRatio relates the runway to the target horizon.
func RunwayRatio(runwayMonths float64, targetMonths int) float64 {
	if targetMonths <= 0 {
		return 0
	}
	return runwayMonths / float64(targetMonths)
}

// MonthsToTarget estimates how many months of the given surplus it takes to
// close the gap to the required fund. The second return value is false when
// the target is already reached or the surplus cannot close the gap.
func MonthsToTarget(emergencyFund, requiredFund, monthlySurplus float64) (float64, bool) {
	gap := requiredFund - emergencyFund
	if gap <= 0 {
		return 0, false
	}
	if monthlySurplus <= 0 || math.IsNaN(monthlySurplus) || math.IsInf(monthlySurplus, 0) {
		return 0, false
	}

	months := gap / monthlySurplus
	if math.IsNaN(months) || math.IsInf(months, 0) {
		return 0, false
	}
	return months, true
}
