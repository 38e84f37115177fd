package memstore

import (
	"sync"
	"time"

	"slot-booking-manager/internal/domain/slot"
	"slot-booking-manager/internal/pkg/errs"

	"github.com/google/uuid"
)

type BookOutcome int

const (
	BookOutcomeBooked BookOutcome = iota
	BookOutcomeAlreadyBooked
	BookOutcomeNotFound
	BookOutcomePassed
)

func (o BookOutcome) String() string {
	switch o {
	case BookOutcomeBooked:
		return "booked"
	case BookOutcomeAlreadyBooked:
		return "already_booked"
	case BookOutcomeNotFound:
		return "not_found"
	case BookOutcomePassed:
		return "passed"
	default:
		return "unknown"
	}
}

// SlotTable is the authoritative in-memory store of slots. Writers take the
// exclusive lock, snapshots take the shared one; no I/O happens under either.
type SlotTable struct {
	mu      sync.RWMutex
	slots   map[uuid.UUID]slot.Slot
	version uint64
}

func NewSlotTable() *SlotTable {
	return &SlotTable{
		slots: make(map[uuid.UUID]slot.Slot),
	}
}

// Snapshot returns a copy of all slots ordered by time together with the
// version of the last committed mutation.
func (t *SlotTable) Snapshot() slot.Snapshot {
	t.mu.RLock()
	slots := make([]slot.Slot, 0, len(t.slots))
	for _, s := range t.slots {
		slots = append(slots, s)
	}
	version := t.version
	t.mu.RUnlock()

	slot.SortByTime(slots)
	return slot.Snapshot{Version: version, Slots: slots}
}

func (t *SlotTable) Get(id uuid.UUID) (slot.Slot, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	s, ok := t.slots[id]
	return s, ok
}

func (t *SlotTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.slots)
}

func (t *SlotTable) Insert(s slot.Slot) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.slots[s.ID]; exists {
		return errs.Mark(errs.Newf("slot %s already present", s.ID), errs.ErrConflict)
	}
	t.slots[s.ID] = s
	t.version++
	return nil
}

// TryBook flips an available slot to booked in one step. The returned slot is
// the booked copy on success and the current state otherwise.
func (t *SlotTable) TryBook(id uuid.UUID, name slot.BookerName, now time.Time) (slot.Slot, BookOutcome) {
	t.mu.Lock()
	defer t.mu.Unlock()

	current, ok := t.slots[id]
	if !ok {
		return slot.Slot{}, BookOutcomeNotFound
	}
	if !current.Available {
		return current, BookOutcomeAlreadyBooked
	}
	if current.HasPassed(now) {
		return current, BookOutcomePassed
	}

	booked := current.Booked(name)
	t.slots[id] = booked
	t.version++
	return booked, BookOutcomeBooked
}

func (t *SlotTable) Remove(id uuid.UUID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.slots[id]; !ok {
		return false
	}
	delete(t.slots, id)
	t.version++
	return true
}

func (t *SlotTable) RemoveAll() {
	t.mu.Lock()
	defer t.mu.Unlock()

	clear(t.slots)
	t.version++
}

// Load replaces the table content with slots read back from storage.
// A booked slot without a booker name is not representable and is rejected.
func (t *SlotTable) Load(slots []slot.Slot) error {
	loaded := make(map[uuid.UUID]slot.Slot, len(slots))
	for _, s := range slots {
		if _, dup := loaded[s.ID]; dup {
			return errs.Mark(errs.Newf("duplicate slot %s in stored data", s.ID), errs.ErrConflict)
		}
		if !s.Available && s.BookerName == "" {
			return errs.Mark(errs.Newf("stored slot %s is booked without a booker name", s.ID), errs.ErrConflict)
		}
		loaded[s.ID] = s
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.slots = loaded
	t.version++
	return nil
}
