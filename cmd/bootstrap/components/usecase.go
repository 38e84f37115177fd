package components

import (
	"context"
	"log/slog"

	"slot-booking-manager/internal/infra/memstore"
	"slot-booking-manager/internal/infra/repository"
	"slot-booking-manager/internal/pkg/clock"
	"slot-booking-manager/internal/pkg/config"
	"slot-booking-manager/internal/realtime"
	"slot-booking-manager/internal/usecase/commands"
	"slot-booking-manager/internal/usecase/jobs"
	"slot-booking-manager/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
	usecaseJobsModule,
	fx.Invoke(startEngine),
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	memstore.NewSlotTable,
	realtime.NewBroadcaster,
	func(b *realtime.Broadcaster) commands.SnapshotPublisher { return b },
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewSlotCoordinator,
		func(c *commands.SlotCoordinator) commands.SlotCommands { return c },
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewSlotQueries,
	),
)

var usecaseJobsModule = fx.Module("usecase/jobs",
	fx.Provide(
		NewExpirySweeper,
	),
)

func NewExpirySweeper(table *memstore.SlotTable, cmds commands.SlotCommands, clk clock.Clock, cfg config.Config, logger *slog.Logger) *jobs.ExpirySweeper {
	return jobs.NewExpirySweeper(table, cmds, clk, jobs.SweeperConfig{
		Retention: cfg.Booking.Retention,
		Interval:  cfg.Booking.SweepInterval,
	}, logger)
}

type engineParams struct {
	fx.In

	Lifecycle   fx.Lifecycle
	Config      config.Config
	Logger      *slog.Logger
	Table       *memstore.SlotTable
	Coordinator *commands.SlotCoordinator
	Broadcaster *realtime.Broadcaster
	Sweeper     *jobs.ExpirySweeper
	Repository  *repository.SlotRepository
}

// startEngine rehydrates the table before the sweeper and server start and
// shuts the broadcaster down last so open streams end cleanly.
func startEngine(p engineParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if p.Repository != nil {
				if _, err := p.Coordinator.Restore(ctx, p.Repository); err != nil {
					return err
				}
			}
			if n := p.Config.Booking.SeedExampleSlots; n > 0 && p.Table.Len() == 0 {
				if err := p.Coordinator.SeedExampleSlots(ctx, n); err != nil {
					return err
				}
				p.Logger.Info("example slots seeded", "count", n)
			}
			p.Sweeper.Start(context.Background())
			return nil
		},
		OnStop: func(_ context.Context) error {
			p.Sweeper.Stop()
			p.Broadcaster.Close()
			return nil
		},
	})
}
