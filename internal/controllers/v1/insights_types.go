package v1

import (
	"github.com/pace-coach/backend/internal/finance"
)

// ScoreSnapshot is the score with everything derived from it, plus the
// persisted delta against the previous computation.
type ScoreSnapshot struct {
	finance.Insights
	Delta int `json:"delta" example:"3"` // Change against the previous computation, 0 for the first one
}

type ScoreResponse struct {
	Error *string        `json:"error" example:"an error occurred on the server during your request"` // The error, if any occurred
	Data  *ScoreSnapshot `json:"data"`                                                                // The score snapshot
}

type RecommendationResponse struct {
	Error *string                 `json:"error" example:"an error occurred on the server during your request"` // The error, if any occurred
	Data  *finance.Recommendation `json:"data"`                                                                // The recommendation
}

// AlternativeAction is the next-best recommendation for the switch flow.
type AlternativeAction struct {
	ID             string                 `json:"id" example:"buffer-build"` // ID of the alternative recommendation
	Recommendation finance.Recommendation `json:"recommendation"`            // The resolved alternative
}

type AlternativeActionResponse struct {
	Error *string            `json:"error" example:"an error occurred on the server during your request"` // The error, if any occurred
	Data  *AlternativeAction `json:"data"`                                                                // The alternative recommendation
}

type StrategiesResponse struct {
	Error *string                  `json:"error" example:"an error occurred on the server during your request"` // The error, if any occurred
	Data  []finance.StrategyOption `json:"data"`                                                                // The three strategy projections in A, B, C order
}

// RecommendationURI binds recommendation ids, which are action ids like
// "variable-trim" or "expense-item-<uuid>", not resource UUIDs.
type RecommendationURI struct {
	ID string `uri:"id" binding:"required"` // Recommendation action ID
}
