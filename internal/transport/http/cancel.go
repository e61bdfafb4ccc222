package http

import (
	"net/http"
	"strings"

	"github.com/ticketboss/ticketboss/internal/domain"
)

// HandleCancelReservation handles DELETE /reservations/{id}.
func HandleCancelReservation(svc ReservationAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		reservationID, ok := parseCancelPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		if err := svc.Cancel(r.Context(), reservationID); err != nil {
			switch err {
			// An id that cannot exist maps to the same outcome as one that
			// does not: the caller has nothing to cancel.
			case domain.ErrReservationNotFound, domain.ErrInvalidID:
				writeError(w, http.StatusNotFound, codeReservationNotFound, domain.ErrReservationNotFound.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func parseCancelPath(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 2 {
		return "", false
	}
	if parts[0] != "reservations" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
