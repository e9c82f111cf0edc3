package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pace-coach/backend/internal/finance"
	"github.com/pace-coach/backend/internal/httputil"
	"github.com/pace-coach/backend/internal/models"
)

func RegisterStructureRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsStructure)
		r.GET("", GetStructure)
		r.PATCH("", UpdateStructure)
	}
	{
		r.OPTIONS("/score", OptionsStructureScore)
		r.POST("/score", RecomputeScore)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Structure
// @Success		204
// @Router			/v1/structure [options]
func OptionsStructure(c *gin.Context) {
	httputil.OptionsGetPatch(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Structure
// @Success		204
// @Router			/v1/structure/score [options]
func OptionsStructureScore(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Get structure
// @Description	Returns the financial structure. It is created with defaults on first access.
// @Tags			Structure
// @Produce		json
// @Success		200	{object}	StructureResponse
// @Failure		500	{object}	StructureResponse
// @Router			/v1/structure [get]
func GetStructure(c *gin.Context) {
	structure, err := models.LoadStructure()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), StructureResponse{
			Error: &e,
		})
		return
	}

	apiResource := newStructure(c, structure)
	c.JSON(http.StatusOK, StructureResponse{Data: &apiResource})
}

// @Summary		Update structure
// @Description	Updates the financial structure. Only values to be updated need to be specified. With base=true, the strategy-simulation base is refreshed to the updated amounts.
// @Tags			Structure
// @Accept			json
// @Produce		json
// @Success		200			{object}	StructureResponse
// @Failure		400			{object}	StructureResponse
// @Failure		500			{object}	StructureResponse
// @Param			base		query		bool				false	"Also refresh the strategy-simulation base"
// @Param			structure	body		StructureEditable	true	"Structure"
// @Router			/v1/structure [patch]
func UpdateStructure(c *gin.Context) {
	var params struct {
		Base bool `form:"base"`
	}

	err := c.ShouldBindQuery(&params)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, StructureResponse{
			Error: &e,
		})
		return
	}

	structure, err := models.LoadStructure()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), StructureResponse{
			Error: &e,
		})
		return
	}

	// Get the fields that are set to be updated
	updateFields, err := httputil.GetBodyFields(c, StructureEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), StructureResponse{
			Error: &e,
		})
		return
	}

	// Bind the data for the patch
	var data StructureEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), StructureResponse{
			Error: &e,
		})
		return
	}

	err = models.DB.Model(&structure).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), StructureResponse{
			Error: &e,
		})
		return
	}

	if params.Base {
		structure.SyncBase()
		err = models.DB.Save(&structure).Error
		if err != nil {
			e := err.Error()
			c.JSON(status(err), StructureResponse{
				Error: &e,
			})
			return
		}
	}

	apiResource := newStructure(c, structure)
	c.JSON(http.StatusOK, StructureResponse{Data: &apiResource})
}

// @Summary		Recompute score
// @Description	Recomputes the structure score and persists it. The delta compares against the previous computation and is 0 for the first one.
// @Tags			Structure
// @Produce		json
// @Success		200	{object}	ScoreResponse
// @Failure		500	{object}	ScoreResponse
// @Router			/v1/structure/score [post]
func RecomputeScore(c *gin.Context) {
	structure, err := models.LoadStructure()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ScoreResponse{
			Error: &e,
		})
		return
	}

	insights := finance.ComputeAll(structure.Input())

	err = structure.RecordScore(insights.Score)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ScoreResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, ScoreResponse{Data: &ScoreSnapshot{
		Insights: insights,
		Delta:    structure.LastScoreDelta,
	}})
}
