//go:build unit || e2e

package dbtest

import (
	"context"
	"errors"
	"testing"
	"time"

	"slot-booking-manager/internal/domain/slot"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// Querier is satisfied by *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// InsertSlot writes s straight into the timeslots table, bypassing the engine.
func InsertSlot(t *testing.T, db Querier, s slot.Slot) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		"INSERT INTO timeslots (id, datetime, available, booker_name, notes) VALUES ($1, $2, $3, $4, $5)",
		s.ID, s.When, s.Available, s.BookerName, s.Notes)
	require.NoError(t, err)
}

// FindSlot returns the stored row for id and whether it exists.
func FindSlot(t *testing.T, db Querier, id uuid.UUID) (slot.Slot, bool) {
	t.Helper()

	var s slot.Slot
	err := db.QueryRow(context.Background(),
		"SELECT id, datetime, available, booker_name, notes FROM timeslots WHERE id = $1", id).
		Scan(&s.ID, &s.When, &s.Available, &s.BookerName, &s.Notes)
	if errors.Is(err, pgx.ErrNoRows) {
		return slot.Slot{}, false
	}
	require.NoError(t, err)
	s.When = s.When.UTC()
	return s, true
}

func CountSlots(t *testing.T, db Querier) int {
	t.Helper()

	var n int
	require.NoError(t, db.QueryRow(context.Background(), "SELECT count(*) FROM timeslots").Scan(&n))
	return n
}

// ResetDB empties the timeslots table.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := pool.Exec(ctx, "TRUNCATE timeslots")
	return err
}
