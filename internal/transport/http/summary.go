package http

import (
	"encoding/json"
	"net/http"

	"github.com/ticketboss/ticketboss/internal/domain"
)

func handleSummary(svc ReservationAPI, w http.ResponseWriter, r *http.Request) {
	sum, err := svc.Summary(r.Context())
	if err != nil {
		switch err {
		case domain.ErrEventNotFound:
			writeError(w, http.StatusNotFound, codeEventNotFound, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
		}
		return
	}

	resp := summaryResponse{
		EventID:          sum.Event.ID,
		Name:             sum.Event.Name,
		TotalSeats:       sum.Event.TotalSeats,
		AvailableSeats:   sum.Event.AvailableSeats,
		Version:          sum.Event.Version,
		ReservationCount: sum.ReservationCount,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}

type summaryResponse struct {
	EventID          string `json:"eventId"`
	Name             string `json:"name"`
	TotalSeats       int    `json:"totalSeats"`
	AvailableSeats   int    `json:"availableSeats"`
	Version          int64  `json:"version"`
	ReservationCount int    `json:"reservationCount"`
}
