package realtime

import (
	"context"
	"errors"
	"sync"

	"slot-booking-manager/internal/domain/slot"
)

var ErrSubscriptionClosed = errors.New("subscription closed")

// Broadcaster fans slot snapshots out to live viewers.
//
// Each subscriber owns a mailbox holding at most one snapshot. Publishing
// replaces an unread snapshot with the newer one, so a slow viewer skips
// intermediate states but never blocks the publisher or other viewers.
// Snapshots that are not newer than the last published one are dropped,
// which keeps delivery in commit order when publishers race.
type Broadcaster struct {
	mu     sync.Mutex
	subs   map[*Subscription]struct{}
	latest slot.Snapshot
	closed bool
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subs:   make(map[*Subscription]struct{}),
		latest: slot.Snapshot{Slots: []slot.Slot{}},
	}
}

// Subscribe registers a viewer. The current snapshot is queued immediately.
func (b *Broadcaster) Subscribe() *Subscription {
	sub := &Subscription{
		ch:          make(chan slot.Snapshot, 1),
		broadcaster: b,
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		close(sub.ch)
		sub.done = true
		return sub
	}
	sub.ch <- b.latest
	b.subs[sub] = struct{}{}
	return sub
}

// Publish delivers snap to every subscriber and reports whether it was newer
// than the last published snapshot.
func (b *Broadcaster) Publish(snap slot.Snapshot) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed || snap.Version <= b.latest.Version {
		return false
	}
	b.latest = snap
	for sub := range b.subs {
		sub.offer(snap)
	}
	return true
}

// Latest returns the most recently published snapshot.
func (b *Broadcaster) Latest() slot.Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.latest
}

func (b *Broadcaster) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Close ends every subscription; later subscriptions are closed on creation.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for sub := range b.subs {
		sub.done = true
		close(sub.ch)
		delete(b.subs, sub)
	}
}

func (b *Broadcaster) unsubscribe(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if sub.done {
		return
	}
	sub.done = true
	delete(b.subs, sub)
	close(sub.ch)
}

// Subscription is one viewer's handle. All fields except ch are guarded by
// the broadcaster mutex.
type Subscription struct {
	ch          chan slot.Snapshot
	broadcaster *Broadcaster
	done        bool
}

// Updates yields snapshots until the subscription is closed.
func (s *Subscription) Updates() <-chan slot.Snapshot {
	return s.ch
}

// Next blocks until a snapshot is available, ctx is done or the subscription
// is closed.
func (s *Subscription) Next(ctx context.Context) (slot.Snapshot, error) {
	select {
	case <-ctx.Done():
		return slot.Snapshot{}, ctx.Err()
	case snap, ok := <-s.ch:
		if !ok {
			return slot.Snapshot{}, ErrSubscriptionClosed
		}
		return snap, nil
	}
}

func (s *Subscription) Close() {
	s.broadcaster.unsubscribe(s)
}

// offer must be called with the broadcaster mutex held, which makes it the
// only sender on ch.
func (s *Subscription) offer(snap slot.Snapshot) {
	select {
	case s.ch <- snap:
		return
	default:
	}
	// Mailbox full: drop the stale snapshot. The reader may have drained it
	// in the meantime, in which case the receive falls through.
	select {
	case <-s.ch:
	default:
	}
	s.ch <- snap
}
