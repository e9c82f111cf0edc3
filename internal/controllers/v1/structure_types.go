package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/pace-coach/backend/internal/httputil"
	"github.com/pace-coach/backend/internal/models"
	"github.com/shopspring/decimal"
)

type StructureEditable struct {
	LowestIncome     decimal.Decimal `json:"lowestIncome" example:"2800000" minimum:"0" default:"0"`    // Lowest expected monthly income in KRW
	FixedExpenses    decimal.Decimal `json:"fixedExpenses" example:"300000" minimum:"0" default:"0"`    // Monthly fixed expenses in KRW
	VariableExpenses decimal.Decimal `json:"variableExpenses" example:"500000" minimum:"0" default:"0"` // Monthly variable expenses in KRW
	EmergencyFund    decimal.Decimal `json:"emergencyFund" example:"1000000" minimum:"0" default:"0"`   // Current emergency fund in KRW
	TargetMonths     int             `json:"targetMonths" example:"6" default:"6"`                      // Emergency fund target in months of fixed expenses: 3, 6 or 12
	IncomeDay        int             `json:"incomeDay" example:"25" default:"25"`                       // Day of month income arrives, 1-31
}

// model returns the database resource for the API representation of the editable fields
func (editable StructureEditable) model() models.Structure {
	return models.Structure{
		LowestIncome:     editable.LowestIncome,
		FixedExpenses:    editable.FixedExpenses,
		VariableExpenses: editable.VariableExpenses,
		EmergencyFund:    editable.EmergencyFund,
		TargetMonths:     editable.TargetMonths,
		IncomeDay:        editable.IncomeDay,
	}
}

type StructureLinks struct {
	Self       string `json:"self" example:"https://example.com/api/v1/structure"`                // The structure itself
	Score      string `json:"score" example:"https://example.com/api/v1/structure/score"`        // Score recomputation
	Insights   string `json:"insights" example:"https://example.com/api/v1/insights/score"`      // Score insights
	Strategies string `json:"strategies" example:"https://example.com/api/v1/insights/strategies"` // Strategy projections
}

type Structure struct {
	models.DefaultModel
	StructureEditable
	LastScore      int            `json:"lastScore" example:"47"`     // Most recently computed score
	LastScoreDelta int            `json:"lastScoreDelta" example:"3"` // Change against the computation before it
	ScoreComputed  bool           `json:"scoreComputed"`              // Whether a score has ever been computed
	Links          StructureLinks `json:"links"`
}

// newStructure returns the API v1 representation of the resource
func newStructure(c *gin.Context, model models.Structure) Structure {
	url := httputil.RequestPathV1(c)

	return Structure{
		DefaultModel: model.DefaultModel,
		StructureEditable: StructureEditable{
			LowestIncome:     model.LowestIncome,
			FixedExpenses:    model.FixedExpenses,
			VariableExpenses: model.VariableExpenses,
			EmergencyFund:    model.EmergencyFund,
			TargetMonths:     model.TargetMonths,
			IncomeDay:        model.IncomeDay,
		},
		LastScore:      model.LastScore,
		LastScoreDelta: model.LastScoreDelta,
		ScoreComputed:  model.ScoreComputed,
		Links: StructureLinks{
			Self:       fmt.Sprintf("%s/structure", url),
			Score:      fmt.Sprintf("%s/structure/score", url),
			Insights:   fmt.Sprintf("%s/insights/score", url),
			Strategies: fmt.Sprintf("%s/insights/strategies", url),
		},
	}
}

type StructureResponse struct {
	Error *string    `json:"error" example:"the body of your request contains invalid or un-parseable data. Please check and try again"` // The error, if any occurred
	Data  *Structure `json:"data"`                                                                                                       // The resource
}
