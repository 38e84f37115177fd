package request

import (
	"time"

	"github.com/google/uuid"
)

type AddSlotRequest struct {
	Datetime time.Time `json:"datetime" binding:"required"`
	Notes    string    `json:"notes" binding:"required,slot_notes"`
}

type BookSlotRequest struct {
	ID         uuid.UUID `json:"id" binding:"required"`
	ClientName string    `json:"client_name" binding:"required,booker_name"`
}

type RemoveSlotRequest struct {
	ID uuid.UUID `json:"id" binding:"required"`
}
