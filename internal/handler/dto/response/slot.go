package response

import (
	"time"

	"slot-booking-manager/internal/domain/slot"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type SlotResponse struct {
	ID         uuid.UUID `json:"id"`
	When       time.Time `json:"datetime"`
	Available  bool      `json:"available"`
	BookerName string    `json:"booker_name"`
	Notes      string    `json:"notes"`
}

type MessageResponse struct {
	Message string        `json:"message"`
	Slot    *SlotResponse `json:"slot,omitempty"`
}

func FromSlot(s slot.Slot) *SlotResponse {
	res := &SlotResponse{}
	if err := copier.Copy(res, &s); err != nil {
		panic(err)
	}
	return res
}

// FromSlots always returns a non-nil slice so an empty table encodes as [].
func FromSlots(slots []slot.Slot) []*SlotResponse {
	res := make([]*SlotResponse, len(slots))
	for i, s := range slots {
		res[i] = FromSlot(s)
	}
	return res
}
