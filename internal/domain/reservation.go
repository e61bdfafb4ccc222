package domain

import "time"

type ReservationStatus string

const (
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

const (
	MinSeatsPerReservation = 1
	MaxSeatsPerReservation = 10
)

// Reservation is one partner's claim on a block of seats. It is created
// confirmed and transitions at most once, irreversibly, to cancelled.
type Reservation struct {
	ID        string
	EventID   string
	PartnerID string
	SeatCount int
	Status    ReservationStatus
	CreatedAt time.Time
}
