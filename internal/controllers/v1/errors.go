package v1

import (
	"errors"
	"net/http"

	"github.com/pace-coach/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"An ID specified in the query string was not a valid UUID"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) || errors.Is(err, models.ErrNoCurrentCycle) {
		return http.StatusNotFound
	}

	if errors.Is(err, models.ErrCycleAlreadyStarted) {
		return http.StatusConflict
	}

	return http.StatusBadRequest
}

// Cleanup errors
var (
	errCleanupConfirmation = errors.New("the confirmation for the cleanup API call was incorrect")
)

// Cycle errors
var (
	errCycleStatusInvalid = errors.New("the specified cycle status is invalid")
	errCyclePatchEmpty    = errors.New("either status or recommendationId must be set")
)
