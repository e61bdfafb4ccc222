package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ticketboss/ticketboss/internal/app"
	"github.com/ticketboss/ticketboss/internal/domain"
)

func handleReserve(svc ReservationAPI, w http.ResponseWriter, r *http.Request) {
	var req reserveRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		writeValidationError(w, err)
		return
	}

	res, err := svc.Reserve(r.Context(), app.ReserveInput{
		PartnerID: req.PartnerID,
		SeatCount: req.Seats,
	})
	if err != nil {
		switch err {
		case domain.ErrPartnerRequired:
			writeError(w, http.StatusBadRequest, codePartnerRequired, err.Error())
		case domain.ErrInvalidSeatCount:
			writeError(w, http.StatusBadRequest, codeInvalidSeatCount, err.Error())
		case domain.ErrEventNotFound:
			writeError(w, http.StatusNotFound, codeEventNotFound, err.Error())
		case domain.ErrInsufficientCapacity:
			writeError(w, http.StatusConflict, codeInsufficientCapacity, err.Error())
		case domain.ErrTransientUnavailable:
			writeError(w, http.StatusServiceUnavailable, codeTransientUnavailable, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
		}
		return
	}

	resp := reserveResponse{
		ReservationID: res.ID,
		Seats:         res.SeatCount,
		Status:        string(res.Status),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(resp)
}

func writeValidationError(w http.ResponseWriter, err error) {
	switch err {
	case domain.ErrPartnerRequired:
		writeError(w, http.StatusBadRequest, codePartnerRequired, err.Error())
	default:
		writeError(w, http.StatusBadRequest, codeInvalidSeatCount, err.Error())
	}
}

type reserveRequest struct {
	PartnerID string `json:"partnerId"`
	Seats     int    `json:"seats"`
}

func (r reserveRequest) validate() error {
	if strings.TrimSpace(r.PartnerID) == "" {
		return domain.ErrPartnerRequired
	}
	if r.Seats < domain.MinSeatsPerReservation || r.Seats > domain.MaxSeatsPerReservation {
		return domain.ErrInvalidSeatCount
	}
	return nil
}

type reserveResponse struct {
	ReservationID string `json:"reservationId"`
	Seats         int    `json:"seats"`
	Status        string `json:"status"`
}
