package models_test

import (
	"github.com/pace-coach/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestExpenseItemClassifiedOnSave() {
	item := suite.createTestItem(models.ExpenseItem{
		Kind:      models.KindFixed,
		RawText:   "넷플릭스 구독",
		Name:      "넷플릭스",
		AmountKRW: decimal.NewFromInt(17_000),
	})

	assert.Equal(suite.T(), "subscription", item.Category)
	assert.InDelta(suite.T(), 0.9, item.Confidence, 0.001)
}

func (suite *TestSuiteStandard) TestExpenseItemManualEditWins() {
	item := suite.createTestItem(models.ExpenseItem{
		Kind:           models.KindFixed,
		RawText:        "넷플릭스 구독",
		Category:       "utility",
		ManuallyEdited: true,
	})

	assert.Equal(suite.T(), "utility", item.Category, "the classifier must not override manual edits")
}

func (suite *TestSuiteStandard) TestExpenseItemNormalization() {
	item := suite.createTestItem(models.ExpenseItem{
		Name:            "  실비보험 \t",
		Kind:            "whatever",
		Category:        "no-such-category",
		AdjustableLevel: "no-such-level",
		AmountKRW:       decimal.NewFromInt(-500),
		Confidence:      4.2,
	})

	assert.Equal(suite.T(), "실비보험", item.Name)
	assert.Equal(suite.T(), models.KindFixed, item.Kind)
	assert.Equal(suite.T(), "other", item.Category)
	assert.Equal(suite.T(), "possible", item.AdjustableLevel)
	assert.True(suite.T(), item.AmountKRW.IsZero())
	assert.Zero(suite.T(), item.Confidence)
}

func (suite *TestSuiteStandard) TestExpenseItemsFilter() {
	_ = suite.loadTestStructure() // seeds three blank items per kind

	suite.createTestItem(models.ExpenseItem{Kind: models.KindFixed, Name: "월세"})
	suite.createTestItem(models.ExpenseItem{Kind: models.KindVariable, Name: "외식"})

	fixed, err := models.ExpenseItems("fixed")
	require.Nil(suite.T(), err)
	assert.Len(suite.T(), fixed, 4)

	variable, err := models.ExpenseItems("variable")
	require.Nil(suite.T(), err)
	assert.Len(suite.T(), variable, 4)

	all, err := models.ExpenseItems("")
	require.Nil(suite.T(), err)
	assert.Len(suite.T(), all, 8)
}

func (suite *TestSuiteStandard) TestExpenseItemEvaluation() {
	item := suite.createTestItem(models.ExpenseItem{
		Kind:            models.KindFixed,
		Name:            "실비보험",
		AmountKRW:       decimal.NewFromInt(120_000),
		Category:        "insurance",
		AdjustableLevel: "possible",
		ManuallyEdited:  true,
	})

	evaluation := item.Evaluation()
	assert.Equal(suite.T(), item.ID.String(), evaluation.ID)
	assert.InDelta(suite.T(), 120_000, evaluation.AmountKRW, 0.001)
	assert.Equal(suite.T(), "insurance", string(evaluation.Category))
}

func (suite *TestSuiteStandard) TestEnsureBlankItem() {
	item := suite.createTestItem(models.ExpenseItem{Kind: models.KindVariable, Name: "외식"})

	err := models.EnsureBlankItem(models.KindVariable)
	require.Nil(suite.T(), err)

	items, err := models.ExpenseItems("variable")
	require.Nil(suite.T(), err)
	assert.Len(suite.T(), items, 1, "no blank item is added while items exist")

	err = models.DB.Delete(&item).Error
	require.Nil(suite.T(), err)

	err = models.EnsureBlankItem(models.KindVariable)
	require.Nil(suite.T(), err)

	items, err = models.ExpenseItems("variable")
	require.Nil(suite.T(), err)
	require.Len(suite.T(), items, 1, "deleting the last item reinserts a blank one")
	assert.Empty(suite.T(), items[0].Name)
}
