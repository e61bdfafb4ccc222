package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ticketboss/ticketboss/internal/domain"
)

// ReservationRepository is the ledger of reservation records. Records are
// never deleted; a confirmed record transitions at most once to cancelled.
type ReservationRepository struct {
	pool *pgxpool.Pool
}

func NewReservationRepository(pool *pgxpool.Pool) *ReservationRepository {
	return &ReservationRepository{pool: pool}
}

func (r *ReservationRepository) Insert(ctx context.Context, res domain.Reservation) error {
	const stmt = `
INSERT INTO reservations (id, event_id, partner_id, seat_count, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.exec(ctx, stmt,
		res.ID,
		res.EventID,
		res.PartnerID,
		res.SeatCount,
		res.Status,
		res.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateReservation
		}
		if isForeignKeyViolation(err) {
			return domain.ErrEventNotFound
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("insert reservation: %w", err)
	}
	return nil
}

// GetConfirmed returns the record only while it is still confirmed, locking
// it so concurrent cancels of the same reservation serialize.
func (r *ReservationRepository) GetConfirmed(ctx context.Context, id string) (domain.Reservation, error) {
	const query = `
SELECT id, event_id, partner_id, seat_count, status, created_at
FROM reservations
WHERE id = $1 AND status = 'confirmed'
FOR UPDATE`

	var res domain.Reservation
	var status string
	err := r.queryRow(ctx, query, id).
		Scan(&res.ID, &res.EventID, &res.PartnerID, &res.SeatCount, &status, &res.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Reservation{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Reservation{}, domain.ErrReservationNotFound
		}
		return domain.Reservation{}, fmt.Errorf("get reservation: %w", err)
	}
	res.Status = domain.ReservationStatus(status)
	return res, nil
}

func (r *ReservationRepository) MarkCancelled(ctx context.Context, id string) error {
	const stmt = `UPDATE reservations SET status = 'cancelled' WHERE id = $1 AND status = 'confirmed'`

	tag, err := r.exec(ctx, stmt, id)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("mark reservation cancelled: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReservationNotFound
	}
	return nil
}

func (r *ReservationRepository) CountConfirmed(ctx context.Context, eventID string) (int, error) {
	const query = `SELECT COUNT(*) FROM reservations WHERE event_id = $1 AND status = 'confirmed'`

	var count int
	if err := r.queryRow(ctx, query, eventID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count confirmed reservations: %w", err)
	}
	return count, nil
}

func (r *ReservationRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *ReservationRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
