package bootstrap

import (
	"context"
	"log/slog"

	"slot-booking-manager/internal/infra/db"
	"slot-booking-manager/internal/infra/migrate"
	"slot-booking-manager/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewDB,
	),
)

// NewDB returns a nil pool when persistence is disabled. Otherwise it waits
// for the database and applies migrations before anything else starts.
func NewDB(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	if !cfg.DB.Enabled {
		logger.Info("persistence disabled, slots live in memory only")
		return nil, nil
	}

	pool, cleanup, err := db.Connect(context.Background(), cfg.DB, logger)
	if err != nil {
		return nil, err
	}

	migrator, err := migrate.NewMigrator(pool, logger)
	if err != nil {
		cleanup()
		return nil, err
	}
	defer migrator.Close()

	if err := migrator.Up(context.Background()); err != nil {
		cleanup()
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return pool, nil
}
