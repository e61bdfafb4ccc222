package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ticketboss/ticketboss/internal/domain"
)

// SeedEvent inserts the event if it does not exist yet and reports whether a
// row was created. Seeding never touches an existing event's counters.
func SeedEvent(ctx context.Context, pool *pgxpool.Pool, ev domain.EventInventory) (bool, error) {
	const stmt = `
INSERT INTO events (id, name, total_seats, available_seats, version)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO NOTHING`

	tag, err := pool.Exec(ctx, stmt, ev.ID, ev.Name, ev.TotalSeats, ev.AvailableSeats, ev.Version)
	if err != nil {
		return false, fmt.Errorf("seed event: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
