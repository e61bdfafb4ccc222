package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ticketboss/ticketboss/internal/domain"
)

// InventoryRepository owns the per-event capacity row. All mutations go
// through ConditionalDebit and Credit, each a single guarded UPDATE.
type InventoryRepository struct {
	pool *pgxpool.Pool
}

func NewInventoryRepository(pool *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{pool: pool}
}

func (r *InventoryRepository) Read(ctx context.Context, eventID string) (domain.InventorySnapshot, error) {
	const query = `SELECT available_seats, version FROM events WHERE id = $1`

	var snap domain.InventorySnapshot
	err := r.queryRow(ctx, query, eventID).Scan(&snap.AvailableSeats, &snap.Version)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.InventorySnapshot{}, domain.ErrEventNotFound
		}
		return domain.InventorySnapshot{}, fmt.Errorf("read inventory: %w", err)
	}
	return snap, nil
}

func (r *InventoryRepository) Get(ctx context.Context, eventID string) (domain.EventInventory, error) {
	const query = `SELECT id, name, total_seats, available_seats, version FROM events WHERE id = $1`

	var ev domain.EventInventory
	err := r.queryRow(ctx, query, eventID).
		Scan(&ev.ID, &ev.Name, &ev.TotalSeats, &ev.AvailableSeats, &ev.Version)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.EventInventory{}, domain.ErrEventNotFound
		}
		return domain.EventInventory{}, fmt.Errorf("get event: %w", err)
	}
	return ev, nil
}

// ConditionalDebit removes seats and bumps the version only if the stored
// version still equals expectedVersion and enough seats remain. Both
// preconditions and the write are one UPDATE, so no other mutation can
// interleave between the check and the apply. When the guard rejects the
// write, the row is re-read in the same transaction to tell a version
// conflict apart from real insufficiency.
func (r *InventoryRepository) ConditionalDebit(ctx context.Context, eventID string, seats int, expectedVersion int64) error {
	const stmt = `
UPDATE events
SET available_seats = available_seats - $2,
    version = version + 1
WHERE id = $1
  AND version = $3
  AND available_seats >= $2`

	tag, err := r.exec(ctx, stmt, eventID, seats, expectedVersion)
	if err != nil {
		return fmt.Errorf("debit inventory: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	snap, err := r.Read(ctx, eventID)
	if err != nil {
		return err
	}
	if snap.Version != expectedVersion {
		return domain.ErrVersionConflict
	}
	return domain.ErrInsufficientCapacity
}

// Credit returns seats to the pool. Credits are commutative, so unlike the
// debit path no version precondition is needed: concurrent credits reach the
// same final count in any order, and the single UPDATE keeps each one atomic.
// The version still bumps so every successful mutation advances it by one.
func (r *InventoryRepository) Credit(ctx context.Context, eventID string, seats int) error {
	const stmt = `
UPDATE events
SET available_seats = available_seats + $2,
    version = version + 1
WHERE id = $1
  AND available_seats + $2 <= total_seats`

	tag, err := r.exec(ctx, stmt, eventID, seats)
	if err != nil {
		return fmt.Errorf("credit inventory: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	if _, err := r.Read(ctx, eventID); err != nil {
		return err
	}
	return fmt.Errorf("credit inventory: returning %d seats would exceed total capacity of event %s", seats, eventID)
}

func (r *InventoryRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *InventoryRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
