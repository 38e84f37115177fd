package repository

import (
	"context"
	"log/slog"
	"time"

	"slot-booking-manager/internal/domain/slot"
	"slot-booking-manager/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

const (
	insertSlotSQL = `
INSERT INTO timeslots (id, datetime, available, booker_name, notes)
VALUES ($1, $2, $3, $4, $5)`

	markSlotBookedSQL = `
UPDATE timeslots
SET available = FALSE, booker_name = $2
WHERE id = $1 AND available`

	deleteSlotSQL = `DELETE FROM timeslots WHERE id = $1`

	deleteAllSlotsSQL = `DELETE FROM timeslots`

	selectAllSlotsSQL = `
SELECT id, datetime, available, booker_name, notes
FROM timeslots
ORDER BY datetime, id`
)

type SlotRepository struct {
	db     DBTX
	logger *slog.Logger
}

func NewSlotRepository(db DBTX, logger *slog.Logger) *SlotRepository {
	return &SlotRepository{
		db:     db,
		logger: logger,
	}
}

func (r *SlotRepository) Insert(ctx context.Context, s slot.Slot) error {
	_, err := r.db.Exec(ctx, insertSlotSQL, s.ID, s.When, s.Available, s.BookerName, s.Notes)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.ClassifyPgErr(err), "failed to insert timeslot", err)
	}
	return nil
}

// MarkBooked only flips rows that are still available.
func (r *SlotRepository) MarkBooked(ctx context.Context, id uuid.UUID, bookerName string) error {
	tag, err := r.db.Exec(ctx, markSlotBookedSQL, id, bookerName)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.ClassifyPgErr(err), "failed to mark timeslot booked", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "no available timeslot to book", nil)
	}
	return nil
}

func (r *SlotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.Exec(ctx, deleteSlotSQL, id); err != nil {
		return infra.WrapRepoErr(r.logger, infra.ClassifyPgErr(err), "failed to delete timeslot", err)
	}
	return nil
}

func (r *SlotRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, deleteAllSlotsSQL); err != nil {
		return infra.WrapRepoErr(r.logger, infra.ClassifyPgErr(err), "failed to delete all timeslots", err)
	}
	return nil
}

func (r *SlotRepository) LoadAll(ctx context.Context) ([]slot.Slot, error) {
	rows, err := r.db.Query(ctx, selectAllSlotsSQL)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.ClassifyPgErr(err), "failed to query timeslots", err)
	}

	slots, err := pgx.CollectRows(rows, scanSlot)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.ClassifyPgErr(err), "failed to scan timeslots", err)
	}
	return slots, nil
}

func scanSlot(row pgx.CollectableRow) (slot.Slot, error) {
	var (
		s    slot.Slot
		when time.Time
	)
	if err := row.Scan(&s.ID, &when, &s.Available, &s.BookerName, &s.Notes); err != nil {
		return slot.Slot{}, err
	}
	s.When = when.UTC()
	return s, nil
}
