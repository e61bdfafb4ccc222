// Package queue carries reservation lifecycle events over the message broker.
package queue

// QueueName is the durable queue reservation events are published to.
const QueueName = "reservation.events"

const (
	TypeReservationConfirmed = "reservation.confirmed"
	TypeReservationCancelled = "reservation.cancelled"
)

// ReservationEvent is published on every reservation lifecycle transition.
// It carries enough for downstream consumers to audit or notify without
// querying the primary database.
type ReservationEvent struct {
	Type          string `json:"type"`
	ReservationID string `json:"reservationId"`
	EventID       string `json:"eventId"`
	PartnerID     string `json:"partnerId"`
	Seats         int    `json:"seats"`
	OccurredAt    string `json:"occurredAt"`
}
