package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/pace-coach/backend/internal/controllers/v1"
	"github.com/pace-coach/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExpenseItemsCreate verifies creation and the automatic classification
// from the raw text.
func (suite *TestSuiteStandard) TestExpenseItemsCreate() {
	item := createTestExpenseItem(suite.T(), v1.ExpenseItemEditable{
		Name:      "넷플릭스",
		AmountKRW: decimal.NewFromInt(17000),
		Kind:      "fixed",
		RawText:   "넷플릭스 구독 17000원",
	})

	require.NotNil(suite.T(), item.Data)
	assert.Equal(suite.T(), "subscription", item.Data.Category)
	assert.InDelta(suite.T(), 0.9, item.Data.Confidence, 0.001)
	assert.Equal(suite.T(), fmt.Sprintf("http://example.com/v1/expense-items/%s", item.Data.ID), item.Data.Links.Self)
	assert.Equal(suite.T(), fmt.Sprintf("http://example.com/v1/expense-items/%s/evaluation", item.Data.ID), item.Data.Links.Evaluation)
}

// TestExpenseItemsCreateMultiple verifies that multiple items can be created
// with one request.
func (suite *TestSuiteStandard) TestExpenseItemsCreateMultiple() {
	body := []v1.ExpenseItemEditable{
		{Name: "월세", AmountKRW: decimal.NewFromInt(550000), Kind: "fixed"},
		{Name: "식비", AmountKRW: decimal.NewFromInt(400000), Kind: "variable"},
	}

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/expense-items", body)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.ExpenseItemCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data, 2)
	assert.Equal(suite.T(), "월세", response.Data[0].Data.Name)
	assert.Equal(suite.T(), "variable", response.Data[1].Data.Kind)
}

// TestExpenseItemsCreateInvalidBody verifies the error handling for
// unparseable request bodies.
func (suite *TestSuiteStandard) TestExpenseItemsCreateInvalidBody() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/expense-items", "not json")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

// TestExpenseItemsGetFilter verifies the kind filter on the list endpoint.
func (suite *TestSuiteStandard) TestExpenseItemsGetFilter() {
	_ = createTestExpenseItem(suite.T(), v1.ExpenseItemEditable{Name: "월세", Kind: "fixed"})
	_ = createTestExpenseItem(suite.T(), v1.ExpenseItemEditable{Name: "보험", Kind: "fixed"})
	_ = createTestExpenseItem(suite.T(), v1.ExpenseItemEditable{Name: "식비", Kind: "variable"})

	tests := []struct {
		query string
		count int
	}{
		{"", 3},
		{"?kind=fixed", 2},
		{"?kind=variable", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.query, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/expense-items%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.ExpenseItemListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.count)
		})
	}
}

// TestExpenseItemsGetSingle verifies that requests for the resource
// endpoints are handled correctly.
func (suite *TestSuiteStandard) TestExpenseItemsGetSingle() {
	item := createTestExpenseItem(suite.T(), v1.ExpenseItemEditable{Name: "실비보험", Kind: "fixed"})

	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"Existing item", item.Data.ID.String(), http.StatusOK},
		{"No item with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/expense-items/%s", tt.id), "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

// TestExpenseItemsUpdate verifies the PATCH semantics, in particular that a
// manual category edit disables reclassification.
func (suite *TestSuiteStandard) TestExpenseItemsUpdate() {
	item := createTestExpenseItem(suite.T(), v1.ExpenseItemEditable{
		Name:    "인터넷",
		Kind:    "fixed",
		RawText: "KT 인터넷 요금",
	})
	require.NotNil(suite.T(), item.Data)
	assert.Equal(suite.T(), "utility", item.Data.Category)

	// A manual category edit wins over the classifier
	r := test.Request(suite.T(), http.MethodPatch, item.Data.Links.Self, map[string]any{
		"category": "housing",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ExpenseItemResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "housing", response.Data.Category)
	assert.True(suite.T(), response.Data.ManuallyEdited)

	// Raw text changes no longer trigger reclassification
	r = test.Request(suite.T(), http.MethodPatch, item.Data.Links.Self, map[string]any{
		"rawText": "넷플릭스 구독",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "housing", response.Data.Category)
}

// TestExpenseItemsDelete verifies deletion and that the last item of a kind
// is replaced with a blank one.
func (suite *TestSuiteStandard) TestExpenseItemsDelete() {
	item := createTestExpenseItem(suite.T(), v1.ExpenseItemEditable{Name: "월세", Kind: "fixed"})

	r := test.Request(suite.T(), http.MethodDelete, item.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, item.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	// The page never goes empty: deleting the last item reinserts a blank one
	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/expense-items?kind=fixed", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var list v1.ExpenseItemListResponse
	test.DecodeResponse(suite.T(), &r, &list)
	require.Len(suite.T(), list.Data, 1)
	assert.Empty(suite.T(), list.Data[0].Name)
}

// TestExpenseItemsEvaluation verifies the spending decision endpoint
// end-to-end for a typical coffee expense.
func (suite *TestSuiteStandard) TestExpenseItemsEvaluation() {
	item := createTestExpenseItem(suite.T(), v1.ExpenseItemEditable{
		Name:            "스타벅스 아메리카노",
		AmountKRW:       decimal.NewFromInt(6000),
		Kind:            "variable",
		Category:        "other",
		AdjustableLevel: "possible",
	})

	r := test.Request(suite.T(), http.MethodGet, item.Data.Links.Evaluation, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.EvaluationResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data)

	assert.Equal(suite.T(), 60, response.Data.Decision.Score)
	assert.Equal(suite.T(), "WARN", string(response.Data.Decision.Status))

	// The coffee rule fires first
	require.NotEmpty(suite.T(), response.Data.Alternatives)
	home := response.Data.Alternatives[0]
	assert.Equal(suite.T(), "집에서 커피 만들기", home.Title)
	assert.InDelta(suite.T(), 1500, home.ExpectedCost, 0.001)
	assert.Equal(suite.T(), 75, home.SavingPercent)
}

// TestExpenseItemsEvaluationAllow verifies that a cleanly passing expense
// carries no alternatives.
func (suite *TestSuiteStandard) TestExpenseItemsEvaluationAllow() {
	item := createTestExpenseItem(suite.T(), v1.ExpenseItemEditable{
		Name:            "버스비",
		AmountKRW:       decimal.NewFromInt(1500),
		Kind:            "variable",
		Category:        "utility",
		AdjustableLevel: "easy",
	})

	r := test.Request(suite.T(), http.MethodGet, item.Data.Links.Evaluation, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.EvaluationResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data)

	assert.Equal(suite.T(), "ALLOW", string(response.Data.Decision.Status))
	assert.Empty(suite.T(), response.Data.Alternatives)
}

// TestExpenseItemsDBClosed verifies that errors are processed correctly
// when the database is closed.
func (suite *TestSuiteStandard) TestExpenseItemsDBClosed() {
	tests := []struct {
		name string
		test func(t *testing.T)
	}{
		{
			"Creation fails",
			func(t *testing.T) {
				createTestExpenseItem(t, v1.ExpenseItemEditable{Name: "실패"}, http.StatusInternalServerError)
			},
		},
		{
			"GET fails",
			func(t *testing.T) {
				r := test.Request(t, http.MethodGet, "http://example.com/v1/expense-items", "")
				test.AssertHTTPStatus(t, &r, http.StatusInternalServerError)
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.CloseDB()

			tt.test(t)
		})
	}
}
