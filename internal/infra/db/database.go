package db

import (
	"context"
	"log/slog"
	"time"

	"slot-booking-manager/internal/pkg/config"
	"slot-booking-manager/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect opens a pool and pings it, retrying every cfg.RetryInterval until
// cfg.ConnectRetries attempts have failed or ctx is done.
func Connect(ctx context.Context, cfg config.DBConfig, logger *slog.Logger) (*pgxpool.Pool, func(), error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, nil, errs.Wrap(err, "failed to parse database url")
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	poolCfg.MaxConnLifetime = time.Hour

	attempts := max(cfg.ConnectRetries, 1)
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		pool, err := open(ctx, poolCfg)
		if err == nil {
			logger.Info("connected to database", "attempt", attempt)
			return pool, pool.Close, nil
		}
		lastErr = err
		logger.Warn("database not reachable, retrying",
			"attempt", attempt,
			"max_attempts", attempts,
			"retry_in", cfg.RetryInterval,
			"error", err.Error())

		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, nil, errs.Wrap(ctx.Err(), "database connect cancelled")
		case <-time.After(cfg.RetryInterval):
		}
	}
	return nil, nil, errs.Wrapf(lastErr, "failed to connect to database after %d attempts", attempts)
}

func open(ctx context.Context, poolCfg *pgxpool.Config) (*pgxpool.Pool, error) {
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, errs.Wrap(err, "failed to open database")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errs.Wrap(err, "failed to ping database")
	}
	return pool, nil
}
