package writebehind

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"slot-booking-manager/internal/domain/slot"
	"slot-booking-manager/internal/pkg/errs"

	"github.com/google/uuid"
)

// Store is the durable side of the mirror.
type Store interface {
	Insert(ctx context.Context, s slot.Slot) error
	MarkBooked(ctx context.Context, id uuid.UUID, bookerName string) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context) error
}

type opKind string

const (
	opInsert    opKind = "insert"
	opBook      opKind = "book"
	opDelete    opKind = "delete"
	opDeleteAll opKind = "delete_all"
)

type op struct {
	kind opKind
	slot slot.Slot
	id   uuid.UUID
}

// Mirror queues mutations and applies them to the Store in enqueue order
// from a single worker. Enqueueing never blocks; when the queue is full the
// mutation is dropped and logged.
type Mirror struct {
	store   Store
	queue   chan op
	timeout time.Duration
	logger  *slog.Logger

	mu      sync.RWMutex
	stopped bool
	done    chan struct{}
	dropped uint64
}

func NewMirror(store Store, queueSize int, timeout time.Duration, logger *slog.Logger) *Mirror {
	return &Mirror{
		store:   store,
		queue:   make(chan op, max(queueSize, 1)),
		timeout: timeout,
		logger:  logger,
		done:    make(chan struct{}),
	}
}

func (m *Mirror) SlotAdded(s slot.Slot) {
	m.enqueue(op{kind: opInsert, slot: s, id: s.ID})
}

func (m *Mirror) SlotBooked(s slot.Slot) {
	m.enqueue(op{kind: opBook, slot: s, id: s.ID})
}

func (m *Mirror) SlotRemoved(id uuid.UUID) {
	m.enqueue(op{kind: opDelete, id: id})
}

func (m *Mirror) AllSlotsRemoved() {
	m.enqueue(op{kind: opDeleteAll})
}

// Dropped reports how many mutations never reached the worker.
func (m *Mirror) Dropped() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.dropped
}

func (m *Mirror) enqueue(o op) {
	m.mu.RLock()
	if m.stopped {
		m.mu.RUnlock()
		m.drop(o, "mirror stopped")
		return
	}
	select {
	case m.queue <- o:
		m.mu.RUnlock()
	default:
		m.mu.RUnlock()
		m.drop(o, "mirror queue full")
	}
}

func (m *Mirror) drop(o op, reason string) {
	m.mu.Lock()
	m.dropped++
	m.mu.Unlock()

	err := errs.Mark(errs.New(reason), errs.ErrPersistence)
	m.logger.Error("slot mutation not persisted",
		"op", string(o.kind),
		"slot_id", o.id,
		"error", err.Error())
}

// Run drains the queue until Stop is called. Remaining queued mutations are
// applied before Run returns.
func (m *Mirror) Run() {
	defer close(m.done)
	for o := range m.queue {
		m.apply(o)
	}
}

// Stop closes the queue and waits for the worker to flush it or for ctx.
func (m *Mirror) Stop(ctx context.Context) error {
	m.mu.Lock()
	if !m.stopped {
		m.stopped = true
		close(m.queue)
	}
	m.mu.Unlock()

	select {
	case <-m.done:
		return nil
	case <-ctx.Done():
		return errs.Wrap(ctx.Err(), "mirror flush interrupted")
	}
}

func (m *Mirror) apply(o op) {
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	var err error
	switch o.kind {
	case opInsert:
		err = m.store.Insert(ctx, o.slot)
	case opBook:
		err = m.store.MarkBooked(ctx, o.id, o.slot.BookerName)
	case opDelete:
		err = m.store.Delete(ctx, o.id)
	case opDeleteAll:
		err = m.store.DeleteAll(ctx)
	}
	if err != nil {
		err = errs.Mark(errs.Wrapf(err, "mirror %s", o.kind), errs.ErrPersistence)
		m.logger.Error("slot mutation not persisted",
			"op", string(o.kind),
			"slot_id", o.id,
			"error", err.Error())
	}
}

// Discard is the mirror used when persistence is disabled.
type Discard struct{}

func (Discard) SlotAdded(slot.Slot)   {}
func (Discard) SlotBooked(slot.Slot)  {}
func (Discard) SlotRemoved(uuid.UUID) {}
func (Discard) AllSlotsRemoved()      {}
