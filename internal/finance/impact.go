package finance

import "math"

// Difficulty classifies how hard a category is to reduce.
type Difficulty string

const (
	DifficultyLow    Difficulty = "low"
	DifficultyMedium Difficulty = "medium"
	DifficultyHigh   Difficulty = "high"
)

// ReductionRange is an estimated monthly reduction in KRW.
type ReductionRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ImpactResult describes the estimated effect of reducing one expense item.
type ImpactResult struct {
	ImpactScore                    float64        `json:"impactScore"`
	EstimatedMonthlyReductionRange ReductionRange `json:"estimatedMonthlyReductionRange"`
	Difficulty                     Difficulty     `json:"difficulty"`
}

// categoryConfig is the per-category reduction model. Ratio-based categories
// estimate the reduction as a share of the amount, fixed-based categories as
// an absolute KRW range capped by the amount.
type categoryConfig struct {
	ratio      bool
	minRatio   float64
	maxRatio   float64
	minKRW     float64
	maxKRW     float64
	difficulty Difficulty
}

var categoryConfigs = map[Category]categoryConfig{
	CategoryLoan:         {ratio: true, minRatio: 0.01, maxRatio: 0.03, difficulty: DifficultyHigh},
	CategoryInsurance:    {ratio: true, minRatio: 0.05, maxRatio: 0.15, difficulty: DifficultyMedium},
	CategoryUtility:      {minKRW: 10_000, maxKRW: 60_000, difficulty: DifficultyLow},
	CategorySubscription: {ratio: true, minRatio: 0, maxRatio: 1, difficulty: DifficultyLow},
	CategoryHousing:      {ratio: true, minRatio: 0.05, maxRatio: 0.1, difficulty: DifficultyHigh},
	CategoryOther:        {ratio: true, minRatio: 0.05, maxRatio: 0.15, difficulty: DifficultyMedium},
}

var adjustableLevelWeights = map[AdjustableLevel]float64{
	AdjustEasy:       1.0,
	AdjustPossible:   0.6,
	AdjustImpossible: 0.2,
}

var difficultyWeights = map[Difficulty]float64{
	DifficultyLow:    1.0,
	DifficultyMedium: 0.7,
	DifficultyHigh:   0.4,
}

// CalculateImpact scores one expense item against the structure. Items that
// are both high-leverage (large potential reduction) and low-friction (easy
// to adjust, low difficulty category) rank highest: a large loan payment
// scores lower than a similarly sized subscription.
//
// The structure is part of the contract for future extension; the current
// formula does not use it.
func CalculateImpact(item ExpenseItem, _ Structure) ImpactResult {
	amount := item.amount()

	config, ok := categoryConfigs[item.Category]
	if !ok {
		config = categoryConfigs[CategoryOther]
	}

	var reductionRange ReductionRange
	var reductionRatio float64

	if config.ratio {
		reductionRange = ReductionRange{Min: amount * config.minRatio, Max: amount * config.maxRatio}
		if amount > 0 {
			reductionRatio = (config.minRatio + config.maxRatio) / 2
		}
	} else {
		reductionRange = ReductionRange{
			Min: math.Min(config.minKRW, amount),
			Max: math.Min(config.maxKRW, amount),
		}
		if amount > 0 {
			reductionRatio = math.Min(1, (config.minKRW+config.maxKRW)/2/amount)
		}
	}

	// An unknown adjustable level gets the zero weight, not the default
	// level, so the impact score collapses to 0 for unrecognized input.
	score := reductionRatio * adjustableLevelWeights[item.AdjustableLevel] * difficultyWeights[config.difficulty]

	return ImpactResult{
		ImpactScore:                    safeNum(score, 0),
		EstimatedMonthlyReductionRange: reductionRange,
		Difficulty:                     config.difficulty,
	}
}
