package app

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/ticketboss/ticketboss/internal/clock"
	"github.com/ticketboss/ticketboss/internal/domain"
)

// Transactor runs fn inside one atomic transactional scope. Every store call
// made with the scoped context joins the same transaction, and any error
// rolls the whole scope back.
type Transactor interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// InventoryStore holds the capacity snapshot for the event and mutates it
// through conditional updates only.
type InventoryStore interface {
	Read(ctx context.Context, eventID string) (domain.InventorySnapshot, error)
	Get(ctx context.Context, eventID string) (domain.EventInventory, error)
	ConditionalDebit(ctx context.Context, eventID string, seats int, expectedVersion int64) error
	Credit(ctx context.Context, eventID string, seats int) error
}

// ReservationLedger is the durable record of reservations, kept consistent
// with the inventory counter inside the service's transactional scopes.
type ReservationLedger interface {
	Insert(ctx context.Context, res domain.Reservation) error
	GetConfirmed(ctx context.Context, id string) (domain.Reservation, error)
	MarkCancelled(ctx context.Context, id string) error
	CountConfirmed(ctx context.Context, eventID string) (int, error)
}

// Publisher emits reservation lifecycle events after the transaction commits.
// Implementations are best-effort observers: they must not fail the calling
// operation.
type Publisher interface {
	ReservationConfirmed(ctx context.Context, res domain.Reservation)
	ReservationCancelled(ctx context.Context, res domain.Reservation)
}

const defaultMaxReserveAttempts = 5

type ReservationService struct {
	inventory   InventoryStore
	ledger      ReservationLedger
	tx          Transactor
	clock       clock.Clock
	eventID     string
	maxAttempts int
	publisher   Publisher
}

func NewReservationService(inventory InventoryStore, ledger ReservationLedger, tx Transactor, clk clock.Clock, eventID string, opts ...ReservationServiceOption) *ReservationService {
	svc := &ReservationService{
		inventory:   inventory,
		ledger:      ledger,
		tx:          tx,
		clock:       clk,
		eventID:     eventID,
		maxAttempts: defaultMaxReserveAttempts,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type ReservationServiceOption func(*ReservationService)

// WithMaxAttempts overrides the retry budget for conflicting reservations.
func WithMaxAttempts(n int) ReservationServiceOption {
	return func(s *ReservationService) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithPublisher attaches a lifecycle event publisher.
func WithPublisher(p Publisher) ReservationServiceOption {
	return func(s *ReservationService) {
		s.publisher = p
	}
}

type ReserveInput struct {
	PartnerID string
	SeatCount int
}

// Reserve claims a block of seats under optimistic concurrency control.
// Version conflicts consume one attempt each and are retried immediately;
// business failures (event missing, not enough seats) are terminal and never
// retried. When every attempt ends in a conflict the caller gets
// ErrTransientUnavailable, which unlike the terminal failures may be retried
// later.
func (s *ReservationService) Reserve(ctx context.Context, in ReserveInput) (domain.Reservation, error) {
	if strings.TrimSpace(in.PartnerID) == "" {
		return domain.Reservation{}, domain.ErrPartnerRequired
	}
	if in.SeatCount < domain.MinSeatsPerReservation || in.SeatCount > domain.MaxSeatsPerReservation {
		return domain.Reservation{}, domain.ErrInvalidSeatCount
	}

	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		res, err := s.reserveOnce(ctx, in)
		if errors.Is(err, domain.ErrVersionConflict) {
			continue
		}
		if err != nil {
			return domain.Reservation{}, err
		}
		if s.publisher != nil {
			s.publisher.ReservationConfirmed(ctx, res)
		}
		return res, nil
	}
	return domain.Reservation{}, domain.ErrTransientUnavailable
}

// reserveOnce is a single attempt of the protocol: snapshot read, capacity
// check, conditional debit, ledger insert, all in one transaction. A returned
// ErrVersionConflict means another writer moved the version since the
// snapshot; every other error is terminal for the whole call.
func (s *ReservationService) reserveOnce(ctx context.Context, in ReserveInput) (domain.Reservation, error) {
	var result domain.Reservation

	err := s.tx.WithTx(ctx, func(txCtx context.Context) error {
		snap, err := s.inventory.Read(txCtx, s.eventID)
		if err != nil {
			return err
		}
		if snap.AvailableSeats < in.SeatCount {
			return domain.ErrInsufficientCapacity
		}

		if err := s.inventory.ConditionalDebit(txCtx, s.eventID, in.SeatCount, snap.Version); err != nil {
			return err
		}

		res := domain.Reservation{
			ID:        uuid.NewString(),
			EventID:   s.eventID,
			PartnerID: in.PartnerID,
			SeatCount: in.SeatCount,
			Status:    domain.ReservationStatusConfirmed,
			CreatedAt: s.clock.Now(),
		}
		if err := s.ledger.Insert(txCtx, res); err != nil {
			return err
		}

		result = res
		return nil
	})
	if err != nil {
		return domain.Reservation{}, err
	}
	return result, nil
}

// Cancel releases a confirmed reservation: the status flip and the seat
// credit are one atomic unit. Cancelling an unknown or already cancelled
// reservation fails with ErrReservationNotFound; cancellation is not
// idempotent at the API level.
func (s *ReservationService) Cancel(ctx context.Context, reservationID string) error {
	var cancelled domain.Reservation

	err := s.tx.WithTx(ctx, func(txCtx context.Context) error {
		res, err := s.ledger.GetConfirmed(txCtx, reservationID)
		if err != nil {
			return err
		}
		if err := s.ledger.MarkCancelled(txCtx, res.ID); err != nil {
			return err
		}
		if err := s.inventory.Credit(txCtx, res.EventID, res.SeatCount); err != nil {
			return err
		}
		cancelled = res
		cancelled.Status = domain.ReservationStatusCancelled
		return nil
	})
	if err != nil {
		return err
	}

	if s.publisher != nil {
		s.publisher.ReservationCancelled(ctx, cancelled)
	}
	return nil
}

type Summary struct {
	Event            domain.EventInventory
	ReservationCount int
}

// Summary is a reporting view: the two reads are individually consistent but
// not taken in one transaction, so slight staleness between them is possible.
func (s *ReservationService) Summary(ctx context.Context) (Summary, error) {
	ev, err := s.inventory.Get(ctx, s.eventID)
	if err != nil {
		return Summary{}, err
	}
	count, err := s.ledger.CountConfirmed(ctx, s.eventID)
	if err != nil {
		return Summary{}, err
	}
	return Summary{Event: ev, ReservationCount: count}, nil
}
