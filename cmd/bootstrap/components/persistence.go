package components

import (
	"context"
	"log/slog"

	"slot-booking-manager/internal/infra/repository"
	"slot-booking-manager/internal/infra/writebehind"
	"slot-booking-manager/internal/pkg/config"
	"slot-booking-manager/internal/usecase/commands"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewSlotRepository,
		NewSlotMirror,
	),
)

// NewSlotRepository is nil when no database is configured.
func NewSlotRepository(pool *pgxpool.Pool, logger *slog.Logger) *repository.SlotRepository {
	if pool == nil {
		return nil
	}
	return repository.NewSlotRepository(pool, logger)
}

func NewSlotMirror(lc fx.Lifecycle, repo *repository.SlotRepository, cfg config.Config, logger *slog.Logger) commands.SlotMirror {
	if repo == nil {
		return writebehind.Discard{}
	}

	mirror := writebehind.NewMirror(repo, cfg.DB.MirrorQueueSize, cfg.DB.MirrorTimeout, logger)
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go mirror.Run()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := mirror.Stop(ctx); err != nil {
				logger.Error("slot mirror did not flush", "error", err.Error(), "dropped", mirror.Dropped())
			}
			return nil
		},
	})
	return mirror
}
