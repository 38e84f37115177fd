package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"slot-booking-manager/internal/domain/slot"
	"slot-booking-manager/internal/pkg/clock"
	"slot-booking-manager/internal/pkg/errs"
	"slot-booking-manager/internal/usecase/commands"
)

type SlotSource interface {
	Snapshot() slot.Snapshot
}

type SweeperConfig struct {
	Retention time.Duration
	Interval  time.Duration
}

// ExpirySweeper removes slots whose instant lies more than Retention in the
// past. Removal goes through the coordinator so it is mirrored and broadcast
// like an admin delete.
type ExpirySweeper struct {
	source   SlotSource
	commands commands.SlotCommands
	clock    clock.Clock
	cfg      SweeperConfig
	logger   *slog.Logger

	stopOnce sync.Once
	stopChan chan struct{}
	done     chan struct{}
}

func NewExpirySweeper(
	source SlotSource,
	cmds commands.SlotCommands,
	clk clock.Clock,
	cfg SweeperConfig,
	logger *slog.Logger,
) *ExpirySweeper {
	return &ExpirySweeper{
		source:   source,
		commands: cmds,
		clock:    clk,
		cfg:      cfg,
		logger:   logger,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (s *ExpirySweeper) Start(ctx context.Context) {
	s.logger.Info("starting expiry sweeper", "interval", s.cfg.Interval, "retention", s.cfg.Retention)
	go s.run(ctx)
}

// Stop ends the loop and waits for an in-flight pass to finish.
func (s *ExpirySweeper) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("stopping expiry sweeper")
		close(s.stopChan)
	})
	<-s.done
}

func (s *ExpirySweeper) run(ctx context.Context) {
	defer close(s.done)

	s.Sweep(ctx)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep(ctx)
		case <-s.stopChan:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Sweep runs a single pass and returns how many slots it removed.
func (s *ExpirySweeper) Sweep(ctx context.Context) int {
	now := s.clock.Now()
	removed := 0
	for _, candidate := range s.source.Snapshot().Slots {
		if !candidate.Expired(now, s.cfg.Retention) {
			continue
		}
		err := s.commands.RemoveSlot(ctx, candidate.ID)
		switch {
		case err == nil:
			removed++
		case errors.Is(err, errs.ErrSlotNotFound):
			// removed concurrently
		default:
			s.logger.ErrorContext(ctx, "failed to remove expired slot", "slot_id", candidate.ID, "error", err)
		}
	}
	if removed > 0 {
		s.logger.InfoContext(ctx, "expired slots removed", "count", removed)
	}
	return removed
}
