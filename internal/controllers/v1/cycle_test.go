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

func createTestCycle(t *testing.T, expectedStatus ...int) v1.CycleResponse {
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/cycles", "")
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.CycleResponse
	test.DecodeResponse(t, &r, &response)

	return response
}

// TestCyclesStart verifies that starting a cycle snapshots the structure and
// attaches the current recommendation.
func (suite *TestSuiteStandard) TestCyclesStart() {
	_ = patchTestStructure(suite.T(), map[string]any{
		"lowestIncome":  2800000,
		"fixedExpenses": 300000,
		"emergencyFund": 0,
	})

	cycle := createTestCycle(suite.T())
	require.NotNil(suite.T(), cycle.Data)

	assert.Equal(suite.T(), "pending", cycle.Data.Status)
	assert.True(suite.T(), cycle.Data.LowestIncome.Equal(decimal.NewFromInt(2800000)))
	assert.True(suite.T(), cycle.Data.FixedExpenses.Equal(decimal.NewFromInt(300000)))

	// Zero fund means a short runway, so buffer building is attached
	assert.Equal(suite.T(), "buffer-build", cycle.Data.RecommendationID)
	assert.Equal(suite.T(), "http://example.com/v1/insights/recommendation/buffer-build", cycle.Data.Links.Recommendation)
	assert.Equal(suite.T(), "http://example.com/v1/insights/recommendation/buffer-build/alternative", cycle.Data.Links.Alternative)
}

// TestCyclesStartOncePerPeriod verifies that only one cycle can be started
// per income period.
func (suite *TestSuiteStandard) TestCyclesStartOncePerPeriod() {
	_ = createTestCycle(suite.T())

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/cycles", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusConflict)
}

// TestCyclesGet verifies the list and current endpoints.
func (suite *TestSuiteStandard) TestCyclesGet() {
	// Nothing started yet
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/cycles", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var list v1.CycleListResponse
	test.DecodeResponse(suite.T(), &r, &list)
	assert.Empty(suite.T(), list.Data)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/cycles/current", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	cycle := createTestCycle(suite.T())

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/cycles", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &list)
	require.Len(suite.T(), list.Data, 1)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/cycles/current", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var current v1.CycleResponse
	test.DecodeResponse(suite.T(), &r, &current)
	require.NotNil(suite.T(), current.Data)
	assert.Equal(suite.T(), cycle.Data.ID, current.Data.ID)
}

// TestCyclesPatch verifies the accept, defer and switch flows on the
// current cycle.
func (suite *TestSuiteStandard) TestCyclesPatch() {
	_ = createTestCycle(suite.T())

	// Accept the recommendation
	r := test.Request(suite.T(), http.MethodPatch, "http://example.com/v1/cycles/current", map[string]any{
		"status": "accepted",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.CycleResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "accepted", response.Data.Status)

	// Switching the recommendation resets the status to pending
	r = test.Request(suite.T(), http.MethodPatch, "http://example.com/v1/cycles/current", map[string]any{
		"recommendationId": "expense-audit",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "expense-audit", response.Data.RecommendationID)
	assert.Equal(suite.T(), "pending", response.Data.Status)
}

// TestCyclesPatchInvalid verifies the error handling for invalid patches.
func (suite *TestSuiteStandard) TestCyclesPatchInvalid() {
	_ = createTestCycle(suite.T())

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Neither field set", map[string]any{}, http.StatusBadRequest},
		{"Invalid status", map[string]any{"status": "whatever"}, http.StatusBadRequest},
		{"Garbage body", "not json", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPatch, "http://example.com/v1/cycles/current", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

// TestCyclesPatchWithoutCycle verifies that patching without a current
// cycle returns a 404.
func (suite *TestSuiteStandard) TestCyclesPatchWithoutCycle() {
	r := test.Request(suite.T(), http.MethodPatch, "http://example.com/v1/cycles/current", map[string]any{
		"status": "accepted",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

// TestCyclesDBClosed verifies that errors are processed correctly when the
// database is closed.
func (suite *TestSuiteStandard) TestCyclesDBClosed() {
	tests := []struct {
		name   string
		method string
		path   string
	}{
		{"Start fails", http.MethodPost, "http://example.com/v1/cycles"},
		{"List fails", http.MethodGet, "http://example.com/v1/cycles"},
		{"Current fails", http.MethodGet, "http://example.com/v1/cycles/current"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.CloseDB()

			r := test.Request(t, tt.method, tt.path, "")
			test.AssertHTTPStatus(t, &r, http.StatusInternalServerError)
		})
	}
}
