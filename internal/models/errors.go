package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	// ErrCycleAlreadyStarted is returned when a coaching cycle already
	// exists for the current income period.
	ErrCycleAlreadyStarted = errors.New("a coaching cycle has already been started for this income period")

	// ErrNoCurrentCycle is returned when a request mutates the current
	// cycle but no cycle exists yet.
	ErrNoCurrentCycle = errors.New("no coaching cycle has been started yet")
)
