package v1

import (
	pace_uuid "github.com/pace-coach/backend/internal/uuid"
)

type URIID struct {
	ID pace_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}
