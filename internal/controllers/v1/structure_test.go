package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/pace-coach/backend/internal/controllers/v1"
	"github.com/pace-coach/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStructureGet verifies that the structure is created with defaults on
// first access.
func (suite *TestSuiteStandard) TestStructureGet() {
	response := getTestStructure(suite.T())

	require.NotNil(suite.T(), response.Data)
	assert.Equal(suite.T(), 6, response.Data.TargetMonths)
	assert.Equal(suite.T(), 25, response.Data.IncomeDay)
	assert.True(suite.T(), response.Data.LowestIncome.IsZero())
	assert.False(suite.T(), response.Data.ScoreComputed)
	assert.Equal(suite.T(), "http://example.com/v1/structure", response.Data.Links.Self)
	assert.Equal(suite.T(), "http://example.com/v1/insights/strategies", response.Data.Links.Strategies)

	// First access seeds blank items for both expense pages
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/expense-items", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var items v1.ExpenseItemListResponse
	test.DecodeResponse(suite.T(), &r, &items)
	assert.Len(suite.T(), items.Data, 6)
}

// TestStructurePatch verifies that only fields present in the request body
// are updated.
func (suite *TestSuiteStandard) TestStructurePatch() {
	_ = getTestStructure(suite.T())

	response := patchTestStructure(suite.T(), map[string]any{
		"lowestIncome":  2800000,
		"fixedExpenses": 300000,
	})

	require.NotNil(suite.T(), response.Data)
	assert.True(suite.T(), response.Data.LowestIncome.Equal(decimal.NewFromInt(2800000)))
	assert.True(suite.T(), response.Data.FixedExpenses.Equal(decimal.NewFromInt(300000)))

	// Fields not in the body are untouched
	assert.Equal(suite.T(), 6, response.Data.TargetMonths)
	assert.Equal(suite.T(), 25, response.Data.IncomeDay)
}

// TestStructurePatchNormalizes verifies that out-of-range values are
// normalized on save.
func (suite *TestSuiteStandard) TestStructurePatchNormalizes() {
	tests := []struct {
		name string
		body map[string]any
		test func(t *testing.T, s v1.Structure)
	}{
		{
			"Negative amount is clamped",
			map[string]any{"emergencyFund": -100},
			func(t *testing.T, s v1.Structure) {
				assert.True(t, s.EmergencyFund.IsZero())
			},
		},
		{
			"Target months snaps to an allowed value",
			map[string]any{"targetMonths": 7},
			func(t *testing.T, s v1.Structure) {
				assert.Equal(t, 6, s.TargetMonths)
			},
		},
		{
			"Income day is clamped to a calendar day",
			map[string]any{"incomeDay": 99},
			func(t *testing.T, s v1.Structure) {
				assert.Equal(t, 31, s.IncomeDay)
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			response := patchTestStructure(t, tt.body)
			require.NotNil(t, response.Data)
			tt.test(t, *response.Data)
		})
	}
}

// TestStructurePatchInvalidBody verifies the error handling for unparseable
// request bodies.
func (suite *TestSuiteStandard) TestStructurePatchInvalidBody() {
	tests := []struct {
		name string
		body string
	}{
		{"Garbage", "not json"},
		{"Empty", ""},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPatch, "http://example.com/v1/structure", tt.body)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

// TestStructurePatchBase verifies that base=true refreshes the baseline the
// strategy projections start from.
func (suite *TestSuiteStandard) TestStructurePatchBase() {
	_ = getTestStructure(suite.T())

	r := test.Request(suite.T(), http.MethodPatch, "http://example.com/v1/structure?base=true", map[string]any{
		"lowestIncome":  2800000,
		"fixedExpenses": 300000,
		"emergencyFund": 900000,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	// A later patch without base keeps the projections anchored
	_ = patchTestStructure(suite.T(), map[string]any{"emergencyFund": 0})

	strategies := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/insights/strategies", "")
	test.AssertHTTPStatus(suite.T(), &strategies, http.StatusOK)

	var response v1.StrategiesResponse
	test.DecodeResponse(suite.T(), &strategies, &response)
	require.Len(suite.T(), response.Data, 3)

	// Progress comes from the baseline fund of 900000 against the
	// 1800000 target, not from the zeroed current fund
	assert.InDelta(suite.T(), 50, response.Data[0].ProgressBefore, 0.1)
}

// TestStructureScore verifies the score recomputation and its delta.
func (suite *TestSuiteStandard) TestStructureScore() {
	_ = patchTestStructure(suite.T(), map[string]any{
		"lowestIncome":     2800000,
		"fixedExpenses":    300000,
		"variableExpenses": 500000,
		"emergencyFund":    1000000,
	})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/structure/score", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var first v1.ScoreResponse
	test.DecodeResponse(suite.T(), &r, &first)
	require.NotNil(suite.T(), first.Data)

	// The first computation never has a delta
	assert.Equal(suite.T(), 0, first.Data.Delta)
	assert.NotEmpty(suite.T(), first.Data.Grade)
	assert.NotEmpty(suite.T(), first.Data.Message)

	// Improving the fund moves the score, the delta is the difference
	_ = patchTestStructure(suite.T(), map[string]any{"emergencyFund": 3000000})

	r = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/structure/score", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var second v1.ScoreResponse
	test.DecodeResponse(suite.T(), &r, &second)
	require.NotNil(suite.T(), second.Data)

	assert.Greater(suite.T(), second.Data.Score, first.Data.Score)
	assert.Equal(suite.T(), second.Data.Score-first.Data.Score, second.Data.Delta)

	// The persisted score is reflected on the structure
	structure := getTestStructure(suite.T())
	assert.Equal(suite.T(), second.Data.Score, structure.Data.LastScore)
	assert.Equal(suite.T(), second.Data.Delta, structure.Data.LastScoreDelta)
	assert.True(suite.T(), structure.Data.ScoreComputed)
}

// TestStructureDBClosed verifies that errors are processed correctly when
// the database is closed.
func (suite *TestSuiteStandard) TestStructureDBClosed() {
	tests := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{"GET fails", http.MethodGet, "http://example.com/v1/structure", ""},
		{"PATCH fails", http.MethodPatch, "http://example.com/v1/structure", map[string]any{"incomeDay": 10}},
		{"Score fails", http.MethodPost, "http://example.com/v1/structure/score", ""},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.CloseDB()

			r := test.Request(t, tt.method, tt.path, tt.body)
			test.AssertHTTPStatus(t, &r, http.StatusInternalServerError)
		})
	}
}
