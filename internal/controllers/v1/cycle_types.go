package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pace-coach/backend/internal/httputil"
	"github.com/pace-coach/backend/internal/models"
	"github.com/shopspring/decimal"
)

// CyclePatch is the mutable part of the current cycle: the decision about
// its recommendation, or a switch to another recommendation.
type CyclePatch struct {
	Status           string `json:"status" example:"accepted" enums:"pending,accepted,deferred"` // Decision about the attached recommendation
	RecommendationID string `json:"recommendationId" example:"buffer-build"`                     // Switch to this recommendation and reset the status
}

type CycleLinks struct {
	Self           string `json:"self" example:"https://example.com/api/v1/cycles/3f1283a8-3a1e-4b8c-9d11-7f60a94ed26a"` // The cycle itself
	Recommendation string `json:"recommendation" example:"https://example.com/api/v1/insights/recommendation/buffer-build"` // The attached recommendation
	Alternative    string `json:"alternative" example:"https://example.com/api/v1/insights/recommendation/buffer-build/alternative"` // The switch option
}

type Cycle struct {
	models.DefaultModel
	WindowStart      time.Time       `json:"windowStart" example:"2026-03-25T00:00:00Z"` // Start of the income period this cycle belongs to
	StartedAt        time.Time       `json:"startedAt" example:"2026-03-28T09:12:00Z"`
	Status           string          `json:"status" example:"pending" enums:"pending,accepted,deferred"`
	RecommendationID string          `json:"recommendationId" example:"variable-trim"` // Action ID of the attached recommendation
	ScoreAtStart     int             `json:"scoreAtStart" example:"47"`
	LowestIncome     decimal.Decimal `json:"lowestIncome" example:"2800000"`  // Income snapshot at cycle start
	FixedExpenses    decimal.Decimal `json:"fixedExpenses" example:"300000"`  // Fixed expense snapshot at cycle start
	VariableExpenses decimal.Decimal `json:"variableExpenses" example:"500000"` // Variable expense snapshot at cycle start
	EmergencyFund    decimal.Decimal `json:"emergencyFund" example:"1000000"` // Emergency fund snapshot at cycle start
	Links            CycleLinks      `json:"links"`
}

// newCycle returns the API v1 representation of the resource
func newCycle(c *gin.Context, model models.Cycle) Cycle {
	url := httputil.RequestPathV1(c)

	return Cycle{
		DefaultModel:     model.DefaultModel,
		WindowStart:      model.WindowStart,
		StartedAt:        model.StartedAt,
		Status:           string(model.Status),
		RecommendationID: model.RecommendationID,
		ScoreAtStart:     model.ScoreAtStart,
		LowestIncome:     model.LowestIncome,
		FixedExpenses:    model.FixedExpenses,
		VariableExpenses: model.VariableExpenses,
		EmergencyFund:    model.EmergencyFund,
		Links: CycleLinks{
			Self:           fmt.Sprintf("%s/cycles/%s", url, model.ID),
			Recommendation: fmt.Sprintf("%s/insights/recommendation/%s", url, model.RecommendationID),
			Alternative:    fmt.Sprintf("%s/insights/recommendation/%s/alternative", url, model.RecommendationID),
		},
	}
}

type CycleListResponse struct {
	Data  []Cycle `json:"data"`                                                                // List of resources
	Error *string `json:"error" example:"an error occurred on the server during your request"` // The error, if any occurred
}

type CycleResponse struct {
	Error *string `json:"error" example:"no coaching cycle has been started yet"` // The error, if any occurred
	Data  *Cycle  `json:"data"`                                                   // The resource
}
