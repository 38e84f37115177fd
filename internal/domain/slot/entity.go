package slot

import (
	"bytes"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Slot is a value copy of one bookable instant. The table that owns the
// authoritative record only ever hands out copies.
type Slot struct {
	ID         uuid.UUID
	When       time.Time
	Available  bool
	BookerName string
	Notes      string
}

func NewSlot(when time.Time, notes Notes) (Slot, error) {
	if when.IsZero() {
		return Slot{}, ErrMissingSlotInstant
	}
	return Slot{
		ID:        uuid.New(),
		When:      when.UTC(),
		Available: true,
		Notes:     notes.String(),
	}, nil
}

// Booked returns the booked form of s. Callers must have checked Available.
func (s Slot) Booked(name BookerName) Slot {
	s.Available = false
	s.BookerName = name.String()
	return s
}

// Expired reports whether the slot's instant lies more than retention before now.
func (s Slot) Expired(now time.Time, retention time.Duration) bool {
	return now.Sub(s.When) > retention
}

func (s Slot) HasPassed(now time.Time) bool {
	return s.When.Before(now)
}

// Snapshot is a consistent point-in-time view of every slot. Version grows
// with every committed mutation of the table it was taken from.
type Snapshot struct {
	Version uint64
	Slots   []Slot
}

// SortByTime orders slots by instant, then by id for a stable order between
// slots sharing an instant.
func SortByTime(slots []Slot) {
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].When.Equal(slots[j].When) {
			return bytes.Compare(slots[i].ID[:], slots[j].ID[:]) < 0
		}
		return slots[i].When.Before(slots[j].When)
	})
}
