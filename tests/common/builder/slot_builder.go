//go:build unit || e2e

package builder

import (
	"time"

	domslot "slot-booking-manager/internal/domain/slot"
	reqdto "slot-booking-manager/internal/handler/dto/request"

	"github.com/google/uuid"
)

type SlotBuilder struct {
	ID         uuid.UUID
	When       time.Time
	Available  bool
	BookerName string
	Notes      string
}

func NewSlotBuilder() *SlotBuilder {
	return &SlotBuilder{
		ID:        uuid.New(),
		When:      time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second),
		Available: true,
		Notes:     "Intro to Python",
	}
}

func (b *SlotBuilder) With(mutate func(*SlotBuilder)) *SlotBuilder {
	mutate(b)
	return b
}

func (b *SlotBuilder) WithWhen(when time.Time) *SlotBuilder {
	b.When = when.UTC()
	return b
}

func (b *SlotBuilder) WithNotes(notes string) *SlotBuilder {
	b.Notes = notes
	return b
}

func (b *SlotBuilder) AsBookedBy(name string) *SlotBuilder {
	b.Available = false
	b.BookerName = name
	return b
}

// Build methods
func (b *SlotBuilder) BuildDomain() domslot.Slot {
	return domslot.Slot{
		ID:         b.ID,
		When:       b.When,
		Available:  b.Available,
		BookerName: b.BookerName,
		Notes:      b.Notes,
	}
}

func (b *SlotBuilder) BuildAddRequestDTO() reqdto.AddSlotRequest {
	return reqdto.AddSlotRequest{
		Datetime: b.When,
		Notes:    b.Notes,
	}
}

func (b *SlotBuilder) BuildBookRequestDTO(clientName string) reqdto.BookSlotRequest {
	return reqdto.BookSlotRequest{
		ID:         b.ID,
		ClientName: clientName,
	}
}

func (b *SlotBuilder) BuildRemoveRequestDTO() reqdto.RemoveSlotRequest {
	return reqdto.RemoveSlotRequest{ID: b.ID}
}
