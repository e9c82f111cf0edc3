package finance

import (
	"context"
	"math"
)

// DecisionStatus is the admit/warn/block verdict for one expense.
type DecisionStatus string

const (
	StatusAllow DecisionStatus = "ALLOW"
	StatusWarn  DecisionStatus = "WARN"
	StatusBlock DecisionStatus = "BLOCK"
)

// DecisionResult is the score and verdict for one expense.
type DecisionResult struct {
	Score  int            `json:"score"`
	Status DecisionStatus `json:"status"`
}

// DecisionOutput optionally extends the decision with alternatives when the
// expense did not pass cleanly.
type DecisionOutput struct {
	Decision     DecisionResult `json:"decision"`
	Alternatives []Alternative  `json:"alternatives,omitempty"`
}

// Expense decision weights. Independently tuned from the health score in
// score.go; both tables are fixed design constants.
const (
	decisionBaseScore = 50

	amountPenaltyPerManwon = 0.5
	maxAmountPenalty       = 35

	// Status thresholds: score >= allow → ALLOW, >= warn → WARN, else BLOCK.
	allowThreshold = 70
	warnThreshold  = 50
)

var adjustabilityBonus = map[AdjustableLevel]int{
	AdjustEasy:       25,
	AdjustPossible:   10,
	AdjustImpossible: -15,
}

var categoryBonus = map[Category]int{
	CategorySubscription: 10,
	CategoryUtility:      5,
	CategoryOther:        0,
	CategoryInsurance:    -5,
	CategoryLoan:         -10,
	CategoryHousing:      -5,
}

// EvaluateExpense scores a single expense and maps it to ALLOW, WARN or
// BLOCK. The partition is exhaustive and exclusive.
func EvaluateExpense(expense ExpenseItem) DecisionResult {
	amount := expense.amount()
	manwon := amount / ManwonKRW

	amountPenalty := math.Min(maxAmountPenalty, manwon*amountPenaltyPerManwon)

	raw := decisionBaseScore + float64(adjustabilityBonus[expense.AdjustableLevel]) + float64(categoryBonus[expense.Category]) - amountPenalty
	score := int(math.Round(clamp(raw, 0, 100)))

	var status DecisionStatus
	switch {
	case score >= allowThreshold:
		status = StatusAllow
	case score >= warnThreshold:
		status = StatusWarn
	default:
		status = StatusBlock
	}

	return DecisionResult{Score: score, Status: status}
}

// AlternativeGenerator produces substitute spending options for an expense.
// Implementations may call out to external services and must degrade to an
// empty list on failure, never an error the decision path has to handle.
type AlternativeGenerator interface {
	GenerateAlternatives(ctx context.Context, expense ExpenseItem) []Alternative
}

// EvaluateExpenseDetailed evaluates an expense and, when the score is below
// the allow threshold, attaches alternatives from the generator. An
// expense that passes cleanly never carries alternatives.
func EvaluateExpenseDetailed(ctx context.Context, expense ExpenseItem, generator AlternativeGenerator) DecisionOutput {
	decision := EvaluateExpense(expense)
	if decision.Score >= allowThreshold || generator == nil {
		return DecisionOutput{Decision: decision}
	}

	return DecisionOutput{
		Decision:     decision,
		Alternatives: generator.GenerateAlternatives(ctx, expense),
	}
}
