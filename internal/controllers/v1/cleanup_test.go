package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/pace-coach/backend/internal/controllers/v1"
	"github.com/pace-coach/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCleanup() {
	_ = patchTestStructure(suite.T(), map[string]any{"lowestIncome": 2800000})
	_ = createTestExpenseItem(suite.T(), v1.ExpenseItemEditable{Name: "월세", AmountKRW: decimal.NewFromInt(550000), Kind: "fixed"})
	_ = createTestCycle(suite.T())

	// Delete
	recorder := test.Request(suite.T(), http.MethodDelete, "http://example.com/v1?confirm=yes-please-delete-everything", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	// Verify
	tests := []string{
		"http://example.com/v1/expense-items",
		"http://example.com/v1/cycles",
	}

	for _, tt := range tests {
		suite.T().Run(tt, func(t *testing.T) {
			recorder := test.Request(suite.T(), http.MethodGet, tt, "")
			test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

			var response struct {
				Data []any `json:"data"`
			}

			test.DecodeResponse(t, &recorder, &response)
			assert.Len(t, response.Data, 0, "There are resources left for type %s", tt)
		})
	}

	// The structure is recreated with defaults on the next access
	structure := getTestStructure(suite.T())
	assert.True(suite.T(), structure.Data.LowestIncome.IsZero())
}

func (suite *TestSuiteStandard) TestCleanupFails() {
	tests := []struct {
		name string
		path string
	}{
		{"No confirmation", ""},
		{"Confirmation wrong", "confirm=invalid-confirmation"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodDelete, fmt.Sprintf("http://example.com/v1?%s", tt.path), "")
			test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestCleanupDBError() {
	suite.CloseDB()

	recorder := test.Request(suite.T(), http.MethodDelete, "http://example.com/v1?confirm=yes-please-delete-everything", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusInternalServerError)
}
