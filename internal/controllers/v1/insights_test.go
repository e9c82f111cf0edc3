package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/pace-coach/backend/internal/controllers/v1"
	"github.com/pace-coach/backend/internal/finance"
	"github.com/pace-coach/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestInsightsScore verifies that the insight endpoint computes without
// persisting anything.
func (suite *TestSuiteStandard) TestInsightsScore() {
	_ = patchTestStructure(suite.T(), map[string]any{
		"lowestIncome":  2800000,
		"fixedExpenses": 300000,
		"emergencyFund": 1000000,
	})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/insights/score", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ScoreResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data)

	assert.Greater(suite.T(), response.Data.Score, 0)
	assert.Equal(suite.T(), 0, response.Data.Delta)
	assert.InDelta(suite.T(), 1800000, response.Data.RequiredFund, 0.001)

	// Reading insights never records a computation
	structure := getTestStructure(suite.T())
	assert.False(suite.T(), structure.Data.ScoreComputed)
}

// TestInsightsRecommendationFallback verifies the structural fallback rules
// when no expense item carries an amount.
func (suite *TestSuiteStandard) TestInsightsRecommendationFallback() {
	tests := []struct {
		name string
		body map[string]any
		want string
	}{
		{
			"High fixed expense ratio asks for an audit",
			map[string]any{"lowestIncome": 1000000, "fixedExpenses": 700000, "emergencyFund": 5000000},
			"expense-audit",
		},
		{
			"Short runway asks for buffer building",
			map[string]any{"lowestIncome": 2800000, "fixedExpenses": 300000, "emergencyFund": 0},
			"buffer-build",
		},
		{
			"Solid base trims variable spending",
			map[string]any{"lowestIncome": 2800000, "fixedExpenses": 300000, "emergencyFund": 2000000},
			"variable-trim",
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			_ = patchTestStructure(t, tt.body)

			r := test.Request(t, http.MethodGet, "http://example.com/v1/insights/recommendation", "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.RecommendationResponse
			test.DecodeResponse(t, &r, &response)
			require.NotNil(t, response.Data)
			assert.Equal(t, tt.want, response.Data.ID)
			assert.NotEmpty(t, response.Data.Checklist)
		})
	}
}

// TestInsightsRecommendationTopItem verifies that the highest-impact expense
// item drives the recommendation.
func (suite *TestSuiteStandard) TestInsightsRecommendationTopItem() {
	_ = patchTestStructure(suite.T(), map[string]any{
		"lowestIncome":  2800000,
		"fixedExpenses": 300000,
	})

	item := createTestExpenseItem(suite.T(), v1.ExpenseItemEditable{
		Name:            "식비",
		AmountKRW:       decimal.NewFromInt(400000),
		Kind:            "variable",
		AdjustableLevel: "easy",
	})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/insights/recommendation", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.RecommendationResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data)

	assert.Equal(suite.T(), finance.ItemActionID(item.Data.ID.String()), response.Data.ID)
	assert.Contains(suite.T(), response.Data.Title, "식비")
}

// TestInsightsRecommendationByID verifies id resolution, including the
// fallback for unknown ids.
func (suite *TestSuiteStandard) TestInsightsRecommendationByID() {
	tests := []struct {
		id    string
		want  string
		title string
	}{
		{"buffer-build", "buffer-build", "비상금 확보"},
		{"expense-audit", "expense-audit", "고정비 점검"},
		{"something-unknown", "variable-trim", "변동비 다듬기"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.id, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/insights/recommendation/%s", tt.id), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.RecommendationResponse
			test.DecodeResponse(t, &r, &response)
			require.NotNil(t, response.Data)
			assert.Equal(t, tt.want, response.Data.ID)
			assert.Equal(t, tt.title, response.Data.Title)
		})
	}
}

// TestInsightsAlternative verifies the switch flow: the alternative is
// always a single, distinct recommendation.
func (suite *TestSuiteStandard) TestInsightsAlternative() {
	// Without any ranked items the alternative is the variable trim
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/insights/recommendation/expense-audit/alternative", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.AlternativeActionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data)
	assert.Equal(suite.T(), "variable-trim", response.Data.ID)

	// With a ranked item, a canned recommendation switches to the top item
	item := createTestExpenseItem(suite.T(), v1.ExpenseItemEditable{
		Name:            "외식",
		AmountKRW:       decimal.NewFromInt(300000),
		Kind:            "variable",
		AdjustableLevel: "easy",
	})

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/insights/recommendation/variable-trim/alternative", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data)
	assert.Equal(suite.T(), finance.ItemActionID(item.Data.ID.String()), response.Data.ID)
	assert.Equal(suite.T(), response.Data.ID, response.Data.Recommendation.ID)
}

// TestInsightsStrategies verifies the all-strategies comparison endpoint.
func (suite *TestSuiteStandard) TestInsightsStrategies() {
	_ = patchTestStructure(suite.T(), map[string]any{
		"lowestIncome":     2800000,
		"fixedExpenses":    300000,
		"variableExpenses": 500000,
		"emergencyFund":    1000000,
	})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/insights/strategies", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.StrategiesResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data, 3)

	assert.Equal(suite.T(), finance.StrategyExpenseAdjustment, response.Data[0].ID)
	assert.Equal(suite.T(), finance.StrategySavingsFocus, response.Data[1].ID)
	assert.Equal(suite.T(), finance.StrategyHybrid, response.Data[2].ID)

	for _, option := range response.Data {
		assert.Equal(suite.T(), option.ScoreAfter-option.ScoreBefore, option.Delta)
		assert.GreaterOrEqual(suite.T(), option.ScoreAfter, option.ScoreBefore)
	}

	// Strategy A cuts fixed expenses by 10%
	assert.InDelta(suite.T(), 270000, response.Data[0].NextStructure.FixedExpenses, 0.001)
}

// TestInsightsDBClosed verifies that errors are processed correctly when
// the database is closed.
func (suite *TestSuiteStandard) TestInsightsDBClosed() {
	paths := []string{
		"http://example.com/v1/insights/score",
		"http://example.com/v1/insights/recommendation",
		"http://example.com/v1/insights/recommendation/buffer-build",
		"http://example.com/v1/insights/recommendation/buffer-build/alternative",
		"http://example.com/v1/insights/strategies",
	}

	for _, path := range paths {
		suite.T().Run(path, func(t *testing.T) {
			suite.CloseDB()

			r := test.Request(t, http.MethodGet, path, "")
			test.AssertHTTPStatus(t, &r, http.StatusInternalServerError)
		})
	}
}
