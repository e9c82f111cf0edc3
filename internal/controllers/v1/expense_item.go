package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pace-coach/backend/internal/finance"
	"github.com/pace-coach/backend/internal/httputil"
	"github.com/pace-coach/backend/internal/models"
	"golang.org/x/exp/slices"
)

func RegisterExpenseItemRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsExpenseItems)
		r.GET("", GetExpenseItems)
		r.POST("", CreateExpenseItems)
	}
	{
		r.OPTIONS("/:id", OptionsExpenseItemDetail)
		r.GET("/:id", GetExpenseItem)
		r.PATCH("/:id", UpdateExpenseItem)
		r.DELETE("/:id", DeleteExpenseItem)
	}
	{
		r.OPTIONS("/:id/evaluation", OptionsExpenseItemEvaluation)
		r.GET("/:id/evaluation", GetExpenseItemEvaluation)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			ExpenseItems
// @Success		204
// @Router			/v1/expense-items [options]
func OptionsExpenseItems(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			ExpenseItems
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/expense-items/{id} [options]
func OptionsExpenseItemDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.ExpenseItem{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			ExpenseItems
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/expense-items/{id}/evaluation [options]
func OptionsExpenseItemEvaluation(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.ExpenseItem{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGet(c)
}

// @Summary		Create expense items
// @Description	Creates new expense items. Items with raw text and no manual edit are categorized automatically.
// @Tags			ExpenseItems
// @Produce		json
// @Success		201		{object}	ExpenseItemCreateResponse
// @Failure		400		{object}	ExpenseItemCreateResponse
// @Failure		500		{object}	ExpenseItemCreateResponse
// @Param			items	body		[]ExpenseItemEditable	true	"Expense items"
// @Router			/v1/expense-items [post]
func CreateExpenseItems(c *gin.Context) {
	var editables []ExpenseItemEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseItemCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := ExpenseItemCreateResponse{}

	for _, editable := range editables {
		item := editable.model()
		err = models.DB.Create(&item).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		// Transform for the API and append
		apiResource := newExpenseItem(c, item)
		r.Data = append(r.Data, ExpenseItemResponse{Data: &apiResource})
	}

	c.JSON(status, r)
}

// @Summary		Get expense items
// @Description	Returns a list of expense items
// @Tags			ExpenseItems
// @Produce		json
// @Success		200		{object}	ExpenseItemListResponse
// @Failure		400		{object}	ExpenseItemListResponse
// @Failure		500		{object}	ExpenseItemListResponse
// @Param			kind	query		string	false	"Filter by kind, fixed or variable"
// @Router			/v1/expense-items [get]
func GetExpenseItems(c *gin.Context) {
	var filter ExpenseItemQueryFilter

	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ExpenseItemListResponse{
			Error: &s,
		})
		return
	}

	items, err := models.ExpenseItems(filter.Kind)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseItemListResponse{
			Error: &s,
		})
		return
	}

	// Transform resources to their API representation
	data := make([]ExpenseItem, 0, len(items))
	for _, item := range items {
		data = append(data, newExpenseItem(c, item))
	}

	c.JSON(http.StatusOK, ExpenseItemListResponse{
		Data: data,
	})
}

// @Summary		Get expense item
// @Description	Returns a specific expense item
// @Tags			ExpenseItems
// @Produce		json
// @Success		200	{object}	ExpenseItemResponse
// @Failure		400	{object}	ExpenseItemResponse
// @Failure		404	{object}	ExpenseItemResponse
// @Failure		500	{object}	ExpenseItemResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/expense-items/{id} [get]
func GetExpenseItem(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseItemResponse{
			Error: &e,
		})
		return
	}

	var item models.ExpenseItem
	err = models.DB.First(&item, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseItemResponse{
			Error: &e,
		})
		return
	}

	apiResource := newExpenseItem(c, item)
	c.JSON(http.StatusOK, ExpenseItemResponse{Data: &apiResource})
}

// @Summary		Update expense item
// @Description	Updates an existing expense item. Only values to be updated need to be specified. Changing the category or adjustable level marks the item as manually edited.
// @Tags			ExpenseItems
// @Accept			json
// @Produce		json
// @Success		200		{object}	ExpenseItemResponse
// @Failure		400		{object}	ExpenseItemResponse
// @Failure		404		{object}	ExpenseItemResponse
// @Failure		500		{object}	ExpenseItemResponse
// @Param			id		path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			item	body		ExpenseItemEditable	true	"Expense item"
// @Router			/v1/expense-items/{id} [patch]
func UpdateExpenseItem(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseItemResponse{
			Error: &e,
		})
		return
	}

	var item models.ExpenseItem
	err = models.DB.First(&item, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseItemResponse{
			Error: &e,
		})
		return
	}

	// Get the fields that are set to be updated
	updateFields, err := httputil.GetBodyFields(c, ExpenseItemEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseItemResponse{
			Error: &e,
		})
		return
	}

	// Bind the data for the patch
	var data ExpenseItemEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseItemResponse{
			Error: &e,
		})
		return
	}

	// Editing the category or adjustable level by hand stops the
	// classifier from overriding it later
	if slices.Contains(updateFields, any("Category")) || slices.Contains(updateFields, any("AdjustableLevel")) {
		data.ManuallyEdited = true
		if !slices.Contains(updateFields, any("ManuallyEdited")) {
			updateFields = append(updateFields, "ManuallyEdited")
		}
	}

	err = models.DB.Model(&item).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseItemResponse{
			Error: &e,
		})
		return
	}

	apiResource := newExpenseItem(c, item)
	c.JSON(http.StatusOK, ExpenseItemResponse{Data: &apiResource})
}

// @Summary		Delete expense item
// @Description	Deletes an expense item. When the last item of a kind is deleted, a blank item is inserted so the page is never empty.
// @Tags			ExpenseItems
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/expense-items/{id} [delete]
func DeleteExpenseItem(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var item models.ExpenseItem
	err = models.DB.First(&item, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&item).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.EnsureBlankItem(item.Kind)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Evaluate expense item
// @Description	Scores the expense item as a spending decision. When the item does not pass cleanly, substitute options are attached.
// @Tags			ExpenseItems
// @Produce		json
// @Success		200	{object}	EvaluationResponse
// @Failure		400	{object}	EvaluationResponse
// @Failure		404	{object}	EvaluationResponse
// @Failure		500	{object}	EvaluationResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/expense-items/{id}/evaluation [get]
func GetExpenseItemEvaluation(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EvaluationResponse{
			Error: &e,
		})
		return
	}

	var item models.ExpenseItem
	err = models.DB.First(&item, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EvaluationResponse{
			Error: &e,
		})
		return
	}

	output := finance.EvaluateExpenseDetailed(c.Request.Context(), item.Evaluation(), finance.RuleBasedGenerator{})
	c.JSON(http.StatusOK, EvaluationResponse{Data: &output})
}
