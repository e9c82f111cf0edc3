package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pace-coach/backend/internal/finance"
	"github.com/pace-coach/backend/internal/httputil"
	"github.com/pace-coach/backend/internal/models"
)

func RegisterInsightRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("/score", OptionsInsightScore)
		r.GET("/score", GetInsightScore)
	}
	{
		r.OPTIONS("/recommendation", OptionsRecommendation)
		r.GET("/recommendation", GetRecommendation)
	}
	{
		r.OPTIONS("/recommendation/:id", OptionsRecommendationDetail)
		r.GET("/recommendation/:id", GetRecommendationByID)
	}
	{
		r.OPTIONS("/recommendation/:id/alternative", OptionsRecommendationAlternative)
		r.GET("/recommendation/:id/alternative", GetRecommendationAlternative)
	}
	{
		r.OPTIONS("/strategies", OptionsStrategies)
		r.GET("/strategies", GetStrategies)
	}
}

// recommendationContext loads everything the recommendation engine needs.
func recommendationContext() (models.Structure, *finance.RecommendationContext, error) {
	structure, err := models.LoadStructure()
	if err != nil {
		return models.Structure{}, nil, err
	}

	fixed, err := models.ExpenseItems(string(models.KindFixed))
	if err != nil {
		return models.Structure{}, nil, err
	}

	variable, err := models.ExpenseItems(string(models.KindVariable))
	if err != nil {
		return models.Structure{}, nil, err
	}

	context := &finance.RecommendationContext{
		Structure:     structure.Input(),
		FixedItems:    make([]finance.ExpenseItem, 0, len(fixed)),
		VariableItems: make([]finance.ExpenseItem, 0, len(variable)),
	}

	for _, item := range fixed {
		context.FixedItems = append(context.FixedItems, item.Evaluation())
	}
	for _, item := range variable {
		context.VariableItems = append(context.VariableItems, item.Evaluation())
	}

	return structure, context, nil
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Insights
// @Success		204
// @Router			/v1/insights/score [options]
func OptionsInsightScore(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Insights
// @Success		204
// @Router			/v1/insights/recommendation [options]
func OptionsRecommendation(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Insights
// @Success		204
// @Param			id	path	string	true	"Recommendation action ID"
// @Router			/v1/insights/recommendation/{id} [options]
func OptionsRecommendationDetail(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Insights
// @Success		204
// @Param			id	path	string	true	"Recommendation action ID"
// @Router			/v1/insights/recommendation/{id}/alternative [options]
func OptionsRecommendationAlternative(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Insights
// @Success		204
// @Router			/v1/insights/strategies [options]
func OptionsStrategies(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get score insights
// @Description	Computes the score and everything derived from it for the current structure. Nothing is persisted; use POST /v1/structure/score to record a computation.
// @Tags			Insights
// @Produce		json
// @Success		200	{object}	ScoreResponse
// @Failure		500	{object}	ScoreResponse
// @Router			/v1/insights/score [get]
func GetInsightScore(c *gin.Context) {
	structure, err := models.LoadStructure()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ScoreResponse{
			Error: &e,
		})
		return
	}

	insights := finance.ComputeAll(structure.Input())

	c.JSON(http.StatusOK, ScoreResponse{Data: &ScoreSnapshot{
		Insights: insights,
		Delta:    structure.LastScoreDelta,
	}})
}

// @Summary		Get monthly recommendation
// @Description	Returns the single highest-impact recommendation for the current structure and expense items.
// @Tags			Insights
// @Produce		json
// @Success		200	{object}	RecommendationResponse
// @Failure		500	{object}	RecommendationResponse
// @Router			/v1/insights/recommendation [get]
func GetRecommendation(c *gin.Context) {
	_, context, err := recommendationContext()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecommendationResponse{
			Error: &e,
		})
		return
	}

	recommendation := finance.MonthlyRecommendation(context.Structure, context.FixedItems, context.VariableItems)
	c.JSON(http.StatusOK, RecommendationResponse{Data: &recommendation})
}

// @Summary		Get recommendation
// @Description	Resolves a recommendation by its action ID. Unknown IDs resolve to the variable-trim recommendation.
// @Tags			Insights
// @Produce		json
// @Success		200	{object}	RecommendationResponse
// @Failure		400	{object}	RecommendationResponse
// @Failure		500	{object}	RecommendationResponse
// @Param			id	path		string	true	"Recommendation action ID"
// @Router			/v1/insights/recommendation/{id} [get]
func GetRecommendationByID(c *gin.Context) {
	var uri RecommendationURI
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, RecommendationResponse{
			Error: &e,
		})
		return
	}

	_, context, err := recommendationContext()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecommendationResponse{
			Error: &e,
		})
		return
	}

	recommendation := finance.RecommendationByID(uri.ID, context)
	c.JSON(http.StatusOK, RecommendationResponse{Data: &recommendation})
}

// @Summary		Get alternative recommendation
// @Description	Returns the next-best distinct recommendation for the switch flow. There is always exactly one active recommendation; alternatives replace, they do not stack.
// @Tags			Insights
// @Produce		json
// @Success		200	{object}	AlternativeActionResponse
// @Failure		400	{object}	AlternativeActionResponse
// @Failure		500	{object}	AlternativeActionResponse
// @Param			id	path		string	true	"Recommendation action ID"
// @Router			/v1/insights/recommendation/{id}/alternative [get]
func GetRecommendationAlternative(c *gin.Context) {
	var uri RecommendationURI
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, AlternativeActionResponse{
			Error: &e,
		})
		return
	}

	_, context, err := recommendationContext()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AlternativeActionResponse{
			Error: &e,
		})
		return
	}

	id := finance.AlternativeActionID(uri.ID, context)
	recommendation := finance.RecommendationByID(id, context)

	c.JSON(http.StatusOK, AlternativeActionResponse{Data: &AlternativeAction{
		ID:             id,
		Recommendation: recommendation,
	}})
}

// @Summary		Get strategy projections
// @Description	Projects the three structural strategies against the strategy-simulation base. Projections are recomputed on every call and never persisted.
// @Tags			Insights
// @Produce		json
// @Success		200	{object}	StrategiesResponse
// @Failure		500	{object}	StrategiesResponse
// @Router			/v1/insights/strategies [get]
func GetStrategies(c *gin.Context) {
	structure, err := models.LoadStructure()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), StrategiesResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, StrategiesResponse{
		Data: finance.ProjectStrategies(structure.StrategyInput()),
	})
}
