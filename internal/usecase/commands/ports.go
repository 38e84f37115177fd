package commands

import (
	"context"

	"slot-booking-manager/internal/domain/slot"

	"github.com/google/uuid"
)

// SlotMirror receives committed mutations for durable storage, in table
// commit order. Calls are made under the coordinator's commit lock and must
// not block; failures are the mirror's to log.
type SlotMirror interface {
	SlotAdded(s slot.Slot)
	SlotBooked(s slot.Slot)
	SlotRemoved(id uuid.UUID)
	AllSlotsRemoved()
}

// SnapshotPublisher pushes table snapshots to live viewers.
type SnapshotPublisher interface {
	Publish(snap slot.Snapshot) bool
}

// SlotLoader reads back the stored mirror at startup.
type SlotLoader interface {
	LoadAll(ctx context.Context) ([]slot.Slot, error)
}
