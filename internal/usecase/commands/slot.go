package commands

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"slot-booking-manager/internal/domain/slot"
	"slot-booking-manager/internal/infra/memstore"
	"slot-booking-manager/internal/pkg/clock"
	"slot-booking-manager/internal/pkg/errs"

	"github.com/google/uuid"
)

//go:generate mockgen -source=slot.go -destination=../../../tests/mock/commands/slot_mock.go -package=commandsmock

const exampleSlotNotes = "Example Slot"

type SlotCommands interface {
	AddSlot(ctx context.Context, when time.Time, notes string) (slot.Slot, error)
	BookSlot(ctx context.Context, id uuid.UUID, bookerName string) (slot.Slot, error)
	RemoveSlot(ctx context.Context, id uuid.UUID) error
	RemoveAllSlots(ctx context.Context) error
}

// SlotCoordinator is the only writer of the slot table. Each operation
// commits to the table and enqueues its mirror op under commitMu, so the
// mirror sees mutations in table order. Publishing happens after commitMu is
// released; the broadcaster orders snapshots by version.
type SlotCoordinator struct {
	commitMu  sync.Mutex
	table     *memstore.SlotTable
	mirror    SlotMirror
	publisher SnapshotPublisher
	clock     clock.Clock
	logger    *slog.Logger
}

func NewSlotCoordinator(
	table *memstore.SlotTable,
	mirror SlotMirror,
	publisher SnapshotPublisher,
	clock clock.Clock,
	logger *slog.Logger,
) *SlotCoordinator {
	return &SlotCoordinator{
		table:     table,
		mirror:    mirror,
		publisher: publisher,
		clock:     clock,
		logger:    logger,
	}
}

func (c *SlotCoordinator) AddSlot(ctx context.Context, when time.Time, notes string) (slot.Slot, error) {
	validNotes, err := slot.NewNotes(notes)
	if err != nil {
		return slot.Slot{}, errs.Mark(err, errs.ErrValidation)
	}
	newSlot, err := slot.NewSlot(when, validNotes)
	if err != nil {
		return slot.Slot{}, errs.Mark(err, errs.ErrValidation)
	}

	c.commitMu.Lock()
	if err := c.table.Insert(newSlot); err != nil {
		c.commitMu.Unlock()
		c.logger.ErrorContext(ctx, "slot insert rejected", "slot_id", newSlot.ID, "error", err)
		return slot.Slot{}, err
	}
	c.mirror.SlotAdded(newSlot)
	c.commitMu.Unlock()

	c.publish()
	c.logger.InfoContext(ctx, "slot added", "slot_id", newSlot.ID, "datetime", newSlot.When)
	return newSlot, nil
}

func (c *SlotCoordinator) BookSlot(ctx context.Context, id uuid.UUID, bookerName string) (slot.Slot, error) {
	name, err := slot.NewBookerName(bookerName)
	if err != nil {
		return slot.Slot{}, errs.Mark(err, errs.ErrValidation)
	}

	c.commitMu.Lock()
	booked, outcome := c.table.TryBook(id, name, c.clock.Now())
	if outcome == memstore.BookOutcomeBooked {
		c.mirror.SlotBooked(booked)
	}
	c.commitMu.Unlock()

	switch outcome {
	case memstore.BookOutcomeBooked:
	case memstore.BookOutcomeAlreadyBooked:
		c.logger.InfoContext(ctx, "booking rejected", "slot_id", id, "reason", outcome.String())
		return slot.Slot{}, errs.ErrAlreadyBooked
	case memstore.BookOutcomePassed:
		c.logger.InfoContext(ctx, "booking rejected", "slot_id", id, "reason", outcome.String())
		return slot.Slot{}, errs.ErrSlotPassed
	default:
		return slot.Slot{}, errs.ErrSlotNotFound
	}

	c.publish()
	c.logger.InfoContext(ctx, "slot booked", "slot_id", id)
	return booked, nil
}

func (c *SlotCoordinator) RemoveSlot(ctx context.Context, id uuid.UUID) error {
	c.commitMu.Lock()
	if !c.table.Remove(id) {
		c.commitMu.Unlock()
		return errs.ErrSlotNotFound
	}
	c.mirror.SlotRemoved(id)
	c.commitMu.Unlock()

	c.publish()
	c.logger.InfoContext(ctx, "slot removed", "slot_id", id)
	return nil
}

func (c *SlotCoordinator) RemoveAllSlots(ctx context.Context) error {
	c.commitMu.Lock()
	c.table.RemoveAll()
	c.mirror.AllSlotsRemoved()
	c.commitMu.Unlock()

	c.publish()
	c.logger.InfoContext(ctx, "all slots removed")
	return nil
}

// Restore replaces the table with the stored mirror. It does not write back.
func (c *SlotCoordinator) Restore(ctx context.Context, loader SlotLoader) (int, error) {
	stored, err := loader.LoadAll(ctx)
	if err != nil {
		return 0, errs.Mark(errs.Wrap(err, "load stored slots"), errs.ErrPersistence)
	}
	c.commitMu.Lock()
	err = c.table.Load(stored)
	c.commitMu.Unlock()
	if err != nil {
		return 0, err
	}

	c.publish()
	c.logger.InfoContext(ctx, "slots restored from storage", "count", len(stored))
	return len(stored), nil
}

// SeedExampleSlots adds count example slots, one per day starting tomorrow.
func (c *SlotCoordinator) SeedExampleSlots(ctx context.Context, count int) error {
	now := c.clock.Now()
	for i := 1; i <= count; i++ {
		if _, err := c.AddSlot(ctx, now.AddDate(0, 0, i), exampleSlotNotes); err != nil {
			return errs.Wrapf(err, "seed example slot %d", i)
		}
	}
	return nil
}

func (c *SlotCoordinator) publish() {
	c.publisher.Publish(c.table.Snapshot())
}
