package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pace-coach/backend/internal/finance"
	"github.com/pace-coach/backend/internal/httputil"
	"github.com/pace-coach/backend/internal/models"
)

func RegisterCycleRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsCycles)
		r.GET("", GetCycles)
		r.POST("", CreateCycle)
	}
	{
		r.OPTIONS("/current", OptionsCurrentCycle)
		r.GET("/current", GetCurrentCycle)
		r.PATCH("/current", UpdateCurrentCycle)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Cycles
// @Success		204
// @Router			/v1/cycles [options]
func OptionsCycles(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Cycles
// @Success		204
// @Router			/v1/cycles/current [options]
func OptionsCurrentCycle(c *gin.Context) {
	httputil.OptionsGetPatch(c)
}

// @Summary		Start cycle
// @Description	Starts the coaching cycle for the current income period. The period's income day must have been reached and no cycle may exist for it yet. The structure is snapshotted and the current monthly recommendation attached.
// @Tags			Cycles
// @Produce		json
// @Success		201	{object}	CycleResponse
// @Failure		409	{object}	CycleResponse
// @Failure		500	{object}	CycleResponse
// @Router			/v1/cycles [post]
func CreateCycle(c *gin.Context) {
	structure, context, err := recommendationContext()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CycleResponse{
			Error: &e,
		})
		return
	}

	recommendation := finance.MonthlyRecommendation(context.Structure, context.FixedItems, context.VariableItems)
	score := finance.Score(context.Structure)

	cycle, err := models.StartCycle(structure, score, recommendation.ID, time.Now().In(time.UTC))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CycleResponse{
			Error: &e,
		})
		return
	}

	apiResource := newCycle(c, cycle)
	c.JSON(http.StatusCreated, CycleResponse{Data: &apiResource})
}

// @Summary		Get cycles
// @Description	Returns all coaching cycles, newest first
// @Tags			Cycles
// @Produce		json
// @Success		200	{object}	CycleListResponse
// @Failure		500	{object}	CycleListResponse
// @Router			/v1/cycles [get]
func GetCycles(c *gin.Context) {
	cycles, err := models.Cycles()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CycleListResponse{
			Error: &e,
		})
		return
	}

	// Transform resources to their API representation
	data := make([]Cycle, 0, len(cycles))
	for _, cycle := range cycles {
		data = append(data, newCycle(c, cycle))
	}

	c.JSON(http.StatusOK, CycleListResponse{
		Data: data,
	})
}

// @Summary		Get current cycle
// @Description	Returns the most recent coaching cycle
// @Tags			Cycles
// @Produce		json
// @Success		200	{object}	CycleResponse
// @Failure		404	{object}	CycleResponse
// @Failure		500	{object}	CycleResponse
// @Router			/v1/cycles/current [get]
func GetCurrentCycle(c *gin.Context) {
	cycle, err := models.CurrentCycle()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CycleResponse{
			Error: &e,
		})
		return
	}

	apiResource := newCycle(c, cycle)
	c.JSON(http.StatusOK, CycleResponse{Data: &apiResource})
}

// @Summary		Update current cycle
// @Description	Accepts or defers the current cycle's recommendation, or switches to another recommendation. A switch resets the status to pending. Older cycles are immutable.
// @Tags			Cycles
// @Accept			json
// @Produce		json
// @Success		200		{object}	CycleResponse
// @Failure		400		{object}	CycleResponse
// @Failure		404		{object}	CycleResponse
// @Failure		500		{object}	CycleResponse
// @Param			cycle	body		CyclePatch	true	"Cycle"
// @Router			/v1/cycles/current [patch]
func UpdateCurrentCycle(c *gin.Context) {
	cycle, err := models.CurrentCycle()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CycleResponse{
			Error: &e,
		})
		return
	}

	var data CyclePatch
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CycleResponse{
			Error: &e,
		})
		return
	}

	if data.Status == "" && data.RecommendationID == "" {
		e := errCyclePatchEmpty.Error()
		c.JSON(http.StatusBadRequest, CycleResponse{
			Error: &e,
		})
		return
	}

	// Switching to another recommendation resets the status, so it wins
	// over a status sent in the same request
	if data.RecommendationID != "" {
		err = cycle.SwitchRecommendation(data.RecommendationID)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), CycleResponse{
				Error: &e,
			})
			return
		}

		apiResource := newCycle(c, cycle)
		c.JSON(http.StatusOK, CycleResponse{Data: &apiResource})
		return
	}

	if models.ParseCycleStatus(data.Status) != models.CycleStatus(data.Status) {
		e := errCycleStatusInvalid.Error()
		c.JSON(http.StatusBadRequest, CycleResponse{
			Error: &e,
		})
		return
	}

	err = cycle.UpdateStatus(models.CycleStatus(data.Status))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CycleResponse{
			Error: &e,
		})
		return
	}

	apiResource := newCycle(c, cycle)
	c.JSON(http.StatusOK, CycleResponse{Data: &apiResource})
}
