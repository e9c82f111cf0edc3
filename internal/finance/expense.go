package finance

import "math"

// Category is the closed set of expense categories the engines understand.
type Category string

const (
	CategoryHousing      Category = "housing"
	CategoryInsurance    Category = "insurance"
	CategoryLoan         Category = "loan"
	CategorySubscription Category = "subscription"
	CategoryUtility      Category = "utility"
	CategoryOther        Category = "other"
)

// ParseCategory maps a persisted or user-supplied string to a Category.
// Unknown values fall back to CategoryOther, never an error.
func ParseCategory(s string) Category {
	switch Category(s) {
	case CategoryHousing, CategoryInsurance, CategoryLoan, CategorySubscription, CategoryUtility, CategoryOther:
		return Category(s)
	}
	return CategoryOther
}

// AdjustableLevel describes how easily an expense can be changed.
type AdjustableLevel string

const (
	AdjustImpossible AdjustableLevel = "impossible"
	AdjustPossible   AdjustableLevel = "possible"
	AdjustEasy       AdjustableLevel = "easy"
)

// ParseAdjustableLevel maps a string to an AdjustableLevel, falling back to
// AdjustPossible for unknown values.
func ParseAdjustableLevel(s string) AdjustableLevel {
	switch AdjustableLevel(s) {
	case AdjustImpossible, AdjustPossible, AdjustEasy:
		return AdjustableLevel(s)
	}
	return AdjustPossible
}

// ExpenseItem is one line item of the fixed or variable expense breakdown.
type ExpenseItem struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	AmountKRW       float64         `json:"amountKRW"`
	Category        Category        `json:"category"`
	AdjustableLevel AdjustableLevel `json:"adjustableLevel"`
	RawText         string          `json:"rawText,omitempty"`
	Confidence      float64         `json:"confidence,omitempty"` // 0-1, from the classifier
	ManuallyEdited  bool            `json:"manuallyEdited,omitempty"`
}

// amount returns the item's amount clamped to a finite non-negative value.
func (item ExpenseItem) amount() float64 {
	return math.Max(0, safeNum(item.AmountKRW, 0))
}
