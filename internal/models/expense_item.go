package models

import (
	"strings"

	"github.com/pace-coach/backend/internal/finance"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ItemKind separates the two expense pages.
type ItemKind string

const (
	KindFixed    ItemKind = "fixed"
	KindVariable ItemKind = "variable"
)

// ParseItemKind maps arbitrary input to a kind, defaulting to fixed.
func ParseItemKind(s string) ItemKind {
	if ItemKind(s) == KindVariable {
		return KindVariable
	}
	return KindFixed
}

// ExpenseItem is one recurring expense.
type ExpenseItem struct {
	DefaultModel
	Name            string          `json:"name" example:"실비보험"`
	AmountKRW       decimal.Decimal `json:"amountKRW" gorm:"type:DECIMAL(20,0)" example:"120000"` // Monthly amount in KRW
	Kind            ItemKind        `json:"kind" example:"fixed"`
	Category        string          `json:"category" example:"insurance"`
	AdjustableLevel string          `json:"adjustableLevel" example:"possible"`
	RawText         string          `json:"rawText" example:"실비보험 12만원"` // Original free-text input, if any
	Confidence      float64         `json:"confidence" example:"0.9"`        // Classifier confidence, 0-1
	ManuallyEdited  bool            `json:"manuallyEdited"`                  // Manual category edits stop reclassification
}

// normalize coerces stored values into their valid ranges. Unknown enum
// values load as their defaults and never error.
func (e *ExpenseItem) normalize() {
	e.Name = strings.TrimSpace(e.Name)
	e.AmountKRW = clampDecimal(e.AmountKRW)
	e.Kind = ParseItemKind(string(e.Kind))
	e.Category = string(finance.ParseCategory(e.Category))
	e.AdjustableLevel = string(finance.ParseAdjustableLevel(e.AdjustableLevel))

	if e.Confidence < 0 || e.Confidence > 1 {
		e.Confidence = 0
	}
}

// BeforeSave normalizes the item and classifies it from its raw text.
// Manual category edits win over the classifier.
func (e *ExpenseItem) BeforeSave(_ *gorm.DB) error {
	if !e.ManuallyEdited && e.RawText != "" {
		classification := finance.Classify(e.RawText)
		e.Category = string(classification.Category)
		e.Confidence = classification.Confidence
	}

	e.normalize()
	return nil
}

func (e *ExpenseItem) AfterFind(tx *gorm.DB) error {
	err := e.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	e.normalize()
	return nil
}

// Evaluation converts the item into the decision core's input.
func (e ExpenseItem) Evaluation() finance.ExpenseItem {
	return finance.ExpenseItem{
		ID:              e.ID.String(),
		Name:            e.Name,
		AmountKRW:       e.AmountKRW.InexactFloat64(),
		Category:        finance.ParseCategory(e.Category),
		AdjustableLevel: finance.ParseAdjustableLevel(e.AdjustableLevel),
		RawText:         e.RawText,
		Confidence:      e.Confidence,
		ManuallyEdited:  e.ManuallyEdited,
	}
}

// ExpenseItems returns all items of a kind ordered by creation, oldest
// first. An empty kind returns everything.
func ExpenseItems(kind string) ([]ExpenseItem, error) {
	var items []ExpenseItem

	query := DB.Order("created_at ASC")
	if kind != "" {
		query = query.Where(&ExpenseItem{Kind: ParseItemKind(kind)})
	}

	err := query.Find(&items).Error
	if err != nil {
		return nil, err
	}

	return items, nil
}

// blankItemsPerKind is the number of empty rows a fresh instance starts
// with for each kind.
const blankItemsPerKind = 3

// seedBlankItems inserts the initial blank rows for both kinds.
func seedBlankItems() error {
	for _, kind := range []ItemKind{KindFixed, KindVariable} {
		for i := 0; i < blankItemsPerKind; i++ {
			item := ExpenseItem{Kind: kind}
			err := DB.Create(&item).Error
			if err != nil {
				return err
			}
		}
	}

	return nil
}

// EnsureBlankItem reinserts a blank row when the last item of a kind was
// deleted, so a kind's page is never empty.
func EnsureBlankItem(kind ItemKind) error {
	var count int64

	err := DB.Model(&ExpenseItem{}).Where(&ExpenseItem{Kind: kind}).Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	item := ExpenseItem{Kind: kind}
	return DB.Create(&item).Error
}
