package models

import (
	"errors"
	"time"

	"github.com/pace-coach/backend/internal/finance"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CycleStatus tracks what happened to a cycle's recommendation.
type CycleStatus string

const (
	CyclePending  CycleStatus = "pending"
	CycleAccepted CycleStatus = "accepted"
	CycleDeferred CycleStatus = "deferred"
)

// ParseCycleStatus maps arbitrary input to a status, defaulting to pending.
func ParseCycleStatus(s string) CycleStatus {
	switch CycleStatus(s) {
	case CycleAccepted:
		return CycleAccepted
	case CycleDeferred:
		return CycleDeferred
	default:
		return CyclePending
	}
}

// Cycle is one monthly coaching cycle. Cycles are append-only: one per
// income period, and only the most recent one's status and recommendation
// may change. The structure amounts are snapshotted at start so closed
// cycles keep the context they were decided in.
type Cycle struct {
	DefaultModel
	WindowStart      time.Time       `json:"windowStart" gorm:"uniqueIndex" example:"2026-03-25T00:00:00Z"` // Start of the income period this cycle belongs to
	StartedAt        time.Time       `json:"startedAt" example:"2026-03-28T09:12:00Z"`
	Status           CycleStatus     `json:"status" example:"pending"`
	RecommendationID string          `json:"recommendationId" example:"variable-trim"` // Action ID of the attached recommendation
	ScoreAtStart     int             `json:"scoreAtStart" example:"47"`
	LowestIncome     decimal.Decimal `json:"lowestIncome" gorm:"type:DECIMAL(20,0)" example:"2800000"`
	FixedExpenses    decimal.Decimal `json:"fixedExpenses" gorm:"type:DECIMAL(20,0)" example:"300000"`
	VariableExpenses decimal.Decimal `json:"variableExpenses" gorm:"type:DECIMAL(20,0)" example:"500000"`
	EmergencyFund    decimal.Decimal `json:"emergencyFund" gorm:"type:DECIMAL(20,0)" example:"1000000"`
}

func (c *Cycle) normalize() {
	c.Status = ParseCycleStatus(string(c.Status))
	c.LowestIncome = clampDecimal(c.LowestIncome)
	c.FixedExpenses = clampDecimal(c.FixedExpenses)
	c.VariableExpenses = clampDecimal(c.VariableExpenses)
	c.EmergencyFund = clampDecimal(c.EmergencyFund)
}

func (c *Cycle) BeforeSave(_ *gorm.DB) error {
	c.normalize()
	return nil
}

func (c *Cycle) AfterFind(tx *gorm.DB) error {
	err := c.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	c.normalize()

	c.WindowStart = c.WindowStart.In(time.UTC)
	c.StartedAt = c.StartedAt.In(time.UTC)
	return nil
}

// Cycles returns all cycles, newest first.
func Cycles() ([]Cycle, error) {
	var cycles []Cycle

	err := DB.Order("window_start DESC").Find(&cycles).Error
	if err != nil {
		return nil, err
	}

	return cycles, nil
}

// CurrentCycle returns the most recent cycle or ErrNoCurrentCycle.
func CurrentCycle() (Cycle, error) {
	var cycle Cycle

	err := DB.Order("window_start DESC").First(&cycle).Error
	if errors.Is(err, ErrResourceNotFound) {
		return Cycle{}, ErrNoCurrentCycle
	}
	if err != nil {
		return Cycle{}, err
	}

	return cycle, nil
}

// StartCycle starts a cycle for the income period containing now. The
// income day must have been reached and no cycle may exist for the period
// yet; otherwise ErrCycleAlreadyStarted is returned.
func StartCycle(structure Structure, score int, recommendationID string, now time.Time) (Cycle, error) {
	var lastStarted time.Time

	current, err := CurrentCycle()
	if err != nil && !errors.Is(err, ErrNoCurrentCycle) {
		return Cycle{}, err
	}
	if err == nil {
		lastStarted = current.StartedAt
	}

	input := structure.Input()
	if !finance.CanStartCycle(now, input.IncomeDay, lastStarted) {
		return Cycle{}, ErrCycleAlreadyStarted
	}

	cycle := Cycle{
		WindowStart:      finance.CycleWindowStart(now, input.IncomeDay),
		StartedAt:        now.In(time.UTC),
		Status:           CyclePending,
		RecommendationID: recommendationID,
		ScoreAtStart:     score,
		LowestIncome:     structure.LowestIncome,
		FixedExpenses:    structure.FixedExpenses,
		VariableExpenses: structure.VariableExpenses,
		EmergencyFund:    structure.EmergencyFund,
	}

	// The unique index on window_start backs up the time gate.
	err = DB.Create(&cycle).Error
	if err != nil {
		return Cycle{}, err
	}

	return cycle, nil
}

// UpdateStatus sets the cycle's status.
func (c *Cycle) UpdateStatus(status CycleStatus) error {
	c.Status = status
	return DB.Save(c).Error
}

// SwitchRecommendation replaces the attached recommendation and resets the
// status to pending, since nothing has been decided about the new one.
func (c *Cycle) SwitchRecommendation(recommendationID string) error {
	c.RecommendationID = recommendationID
	c.Status = CyclePending
	return DB.Save(c).Error
}
