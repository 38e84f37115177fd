package queries

import (
	"context"

	"slot-booking-manager/internal/domain/slot"
	"slot-booking-manager/internal/infra/memstore"
	"slot-booking-manager/internal/realtime"
)

//go:generate mockgen -source=slot.go -destination=../../../tests/mock/queries/slot_mock.go -package=queriesmock

type SlotQueries interface {
	ListSlots(ctx context.Context) []slot.Slot
	Subscribe(ctx context.Context) *realtime.Subscription
}

type slotQueriesImpl struct {
	table       *memstore.SlotTable
	broadcaster *realtime.Broadcaster
}

func NewSlotQueries(table *memstore.SlotTable, broadcaster *realtime.Broadcaster) SlotQueries {
	return &slotQueriesImpl{
		table:       table,
		broadcaster: broadcaster,
	}
}

func (q *slotQueriesImpl) ListSlots(_ context.Context) []slot.Slot {
	return q.table.Snapshot().Slots
}

func (q *slotQueriesImpl) Subscribe(_ context.Context) *realtime.Subscription {
	return q.broadcaster.Subscribe()
}
