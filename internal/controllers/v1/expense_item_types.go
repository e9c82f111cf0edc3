package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/pace-coach/backend/internal/finance"
	"github.com/pace-coach/backend/internal/httputil"
	"github.com/pace-coach/backend/internal/models"
	"github.com/shopspring/decimal"
)

type ExpenseItemEditable struct {
	Name            string          `json:"name" example:"실비보험" default:""`                                    // Name of the expense
	AmountKRW       decimal.Decimal `json:"amountKRW" example:"120000" minimum:"0" default:"0"`                      // Monthly amount in KRW
	Kind            string          `json:"kind" example:"fixed" enums:"fixed,variable" default:"fixed"`             // Which expense page the item belongs to
	Category        string          `json:"category" example:"insurance" default:"other"`                            // Expense category
	AdjustableLevel string          `json:"adjustableLevel" example:"possible" enums:"easy,possible,impossible" default:"possible"` // How adjustable the expense is
	RawText         string          `json:"rawText" example:"실비보험 12만원" default:""`                            // Free-text input the item was created from
	ManuallyEdited  bool            `json:"manuallyEdited" default:"false"`                                          // Manual category edits stop reclassification
}

// model returns the database resource for the API representation of the editable fields
func (editable ExpenseItemEditable) model() models.ExpenseItem {
	return models.ExpenseItem{
		Name:            editable.Name,
		AmountKRW:       editable.AmountKRW,
		Kind:            models.ParseItemKind(editable.Kind),
		Category:        editable.Category,
		AdjustableLevel: editable.AdjustableLevel,
		RawText:         editable.RawText,
		ManuallyEdited:  editable.ManuallyEdited,
	}
}

type ExpenseItemLinks struct {
	Self       string `json:"self" example:"https://example.com/api/v1/expense-items/d1b9eb70-4b12-4e3c-9a28-4f9a1bf2a33e"`                  // The item itself
	Evaluation string `json:"evaluation" example:"https://example.com/api/v1/expense-items/d1b9eb70-4b12-4e3c-9a28-4f9a1bf2a33e/evaluation"` // Spending decision for this item
}

type ExpenseItem struct {
	models.DefaultModel
	ExpenseItemEditable
	Confidence float64          `json:"confidence" example:"0.9"` // Classifier confidence, 0-1
	Links      ExpenseItemLinks `json:"links"`
}

// newExpenseItem returns the API v1 representation of the resource
func newExpenseItem(c *gin.Context, model models.ExpenseItem) ExpenseItem {
	url := httputil.RequestPathV1(c)

	return ExpenseItem{
		DefaultModel: model.DefaultModel,
		ExpenseItemEditable: ExpenseItemEditable{
			Name:            model.Name,
			AmountKRW:       model.AmountKRW,
			Kind:            string(model.Kind),
			Category:        model.Category,
			AdjustableLevel: model.AdjustableLevel,
			RawText:         model.RawText,
			ManuallyEdited:  model.ManuallyEdited,
		},
		Confidence: model.Confidence,
		Links: ExpenseItemLinks{
			Self:       fmt.Sprintf("%s/expense-items/%s", url, model.ID),
			Evaluation: fmt.Sprintf("%s/expense-items/%s/evaluation", url, model.ID),
		},
	}
}

type ExpenseItemListResponse struct {
	Data  []ExpenseItem `json:"data"`                                                          // List of resources
	Error *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type ExpenseItemCreateResponse struct {
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []ExpenseItemResponse `json:"data"`                                                          // List of created resources
}

func (t *ExpenseItemCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, ExpenseItemResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ExpenseItemResponse struct {
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *ExpenseItem `json:"data"`                                                          // The resource
}

type ExpenseItemQueryFilter struct {
	Kind string `form:"kind"` // Filter by kind, fixed or variable
}

type EvaluationResponse struct {
	Error *string                 `json:"error" example:"there is no expense item matching your query"` // The error, if any occurred
	Data  *finance.DecisionOutput `json:"data"`                                                         // The decision with alternatives, if any
}
