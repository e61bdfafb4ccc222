package http

import (
	"context"
	"net/http"

	"github.com/ticketboss/ticketboss/internal/app"
	"github.com/ticketboss/ticketboss/internal/domain"
)

// ReservationAPI is the minimal service surface the /reservations routes need.
type ReservationAPI interface {
	Reserve(ctx context.Context, in app.ReserveInput) (domain.Reservation, error)
	Cancel(ctx context.Context, reservationID string) error
	Summary(ctx context.Context) (app.Summary, error)
}

// HandleReservations routes the /reservations collection: POST reserves
// seats, GET returns the event summary.
func HandleReservations(svc ReservationAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			handleReserve(svc, w, r)
		case http.MethodGet:
			handleSummary(svc, w, r)
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}
