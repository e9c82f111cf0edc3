package models

import (
	"errors"

	"github.com/pace-coach/backend/internal/finance"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Structure is the financial structure of this instance. There is exactly
// one row; LoadStructure creates it with defaults on first access.
//
// The Base* amounts are the copy used for strategy simulation. They are
// refreshed whenever the structure is saved from the structure page, but
// not by incidental edits, so that projections compare against the last
// deliberately confirmed state.
type Structure struct {
	DefaultModel
	LowestIncome     decimal.Decimal `json:"lowestIncome" gorm:"type:DECIMAL(20,0)" example:"2800000"`     // Lowest expected monthly income in KRW
	FixedExpenses    decimal.Decimal `json:"fixedExpenses" gorm:"type:DECIMAL(20,0)" example:"300000"`     // Monthly fixed expenses in KRW
	VariableExpenses decimal.Decimal `json:"variableExpenses" gorm:"type:DECIMAL(20,0)" example:"500000"`  // Monthly variable expenses in KRW
	EmergencyFund    decimal.Decimal `json:"emergencyFund" gorm:"type:DECIMAL(20,0)" example:"1000000"`    // Current emergency fund in KRW
	TargetMonths     int             `json:"targetMonths" example:"6"`                                     // Emergency fund target, in months of fixed expenses
	IncomeDay        int             `json:"incomeDay" example:"25"`                                       // Day of month income arrives, 1-31

	BaseLowestIncome     decimal.Decimal `json:"-" gorm:"type:DECIMAL(20,0)"`
	BaseFixedExpenses    decimal.Decimal `json:"-" gorm:"type:DECIMAL(20,0)"`
	BaseVariableExpenses decimal.Decimal `json:"-" gorm:"type:DECIMAL(20,0)"`
	BaseEmergencyFund    decimal.Decimal `json:"-" gorm:"type:DECIMAL(20,0)"`

	LastScore      int  `json:"lastScore" example:"47"`     // Most recently computed score
	LastScoreDelta int  `json:"lastScoreDelta" example:"3"` // Change against the score before it, 0 on first computation
	ScoreComputed  bool `json:"scoreComputed"`              // Whether a score has ever been computed
}

// Input converts the stored amounts into the decision core's input.
func (s Structure) Input() finance.Structure {
	return finance.Normalize(finance.Structure{
		LowestIncome:     s.LowestIncome.InexactFloat64(),
		FixedExpenses:    s.FixedExpenses.InexactFloat64(),
		VariableExpenses: s.VariableExpenses.InexactFloat64(),
		EmergencyFund:    s.EmergencyFund.InexactFloat64(),
		TargetMonths:     s.TargetMonths,
		IncomeDay:        s.IncomeDay,
	})
}

// BaseInput converts the strategy-simulation base into the decision core's
// input. Target months and income day are shared with the current state.
func (s Structure) BaseInput() finance.Structure {
	return finance.Normalize(finance.Structure{
		LowestIncome:     s.BaseLowestIncome.InexactFloat64(),
		FixedExpenses:    s.BaseFixedExpenses.InexactFloat64(),
		VariableExpenses: s.BaseVariableExpenses.InexactFloat64(),
		EmergencyFund:    s.BaseEmergencyFund.InexactFloat64(),
		TargetMonths:     s.TargetMonths,
		IncomeDay:        s.IncomeDay,
	})
}

// StrategyInput returns the input strategy projections run against: the
// simulation base, or the current amounts while no base has been synced
// yet.
func (s Structure) StrategyInput() finance.Structure {
	baseEmpty := s.BaseLowestIncome.IsZero() && s.BaseFixedExpenses.IsZero() &&
		s.BaseVariableExpenses.IsZero() && s.BaseEmergencyFund.IsZero()
	if baseEmpty {
		return s.Input()
	}
	return s.BaseInput()
}

// SyncBase copies the current amounts into the strategy-simulation base.
func (s *Structure) SyncBase() {
	s.BaseLowestIncome = s.LowestIncome
	s.BaseFixedExpenses = s.FixedExpenses
	s.BaseVariableExpenses = s.VariableExpenses
	s.BaseEmergencyFund = s.EmergencyFund
}

// normalize clamps stored values into their valid ranges. Storage is never
// trusted: the same clamping runs on save and on load, so hand-edited or
// pre-migration rows cannot reach the engines.
func (s *Structure) normalize() {
	s.LowestIncome = clampDecimal(s.LowestIncome)
	s.FixedExpenses = clampDecimal(s.FixedExpenses)
	s.VariableExpenses = clampDecimal(s.VariableExpenses)
	s.EmergencyFund = clampDecimal(s.EmergencyFund)
	s.BaseLowestIncome = clampDecimal(s.BaseLowestIncome)
	s.BaseFixedExpenses = clampDecimal(s.BaseFixedExpenses)
	s.BaseVariableExpenses = clampDecimal(s.BaseVariableExpenses)
	s.BaseEmergencyFund = clampDecimal(s.BaseEmergencyFund)

	normalized := finance.Normalize(finance.Structure{
		TargetMonths: s.TargetMonths,
		IncomeDay:    s.IncomeDay,
	})
	s.TargetMonths = normalized.TargetMonths
	s.IncomeDay = normalized.IncomeDay
}

func clampDecimal(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func (s *Structure) BeforeSave(_ *gorm.DB) error {
	s.normalize()
	return nil
}

func (s *Structure) AfterFind(tx *gorm.DB) error {
	err := s.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	s.normalize()
	return nil
}

// defaultStructure is the state of a fresh instance.
func defaultStructure() Structure {
	return Structure{
		TargetMonths: finance.DefaultStructure().TargetMonths,
		IncomeDay:    finance.DefaultStructure().IncomeDay,
	}
}

// LoadStructure returns the structure row, creating it with defaults on
// first access. A fresh instance also gets three blank expense items per
// kind so that the expense pages are never empty.
func LoadStructure() (Structure, error) {
	var structure Structure

	err := DB.First(&structure).Error
	if err == nil {
		return structure, nil
	}

	if !errors.Is(err, ErrResourceNotFound) {
		return Structure{}, err
	}

	structure = defaultStructure()
	err = DB.Create(&structure).Error
	if err != nil {
		return Structure{}, err
	}

	err = seedBlankItems()
	if err != nil {
		return Structure{}, err
	}

	return structure, nil
}

// RecordScore persists a newly computed score. The delta follows the
// one-shot rule: it compares against the previous computation and is zero
// for the first one.
func (s *Structure) RecordScore(score int) error {
	s.LastScoreDelta = finance.ScoreDelta(score, s.LastScore, !s.ScoreComputed)
	s.LastScore = score
	s.ScoreComputed = true

	return DB.Save(s).Error
}
