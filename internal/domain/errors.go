package domain

import "errors"

var (
	ErrEventNotFound        = errors.New("event not found")
	ErrInsufficientCapacity = errors.New("not enough seats left")
	ErrVersionConflict      = errors.New("version conflict")
	ErrReservationNotFound  = errors.New("reservation not found or already cancelled")
	ErrTransientUnavailable = errors.New("service temporarily unavailable, please retry")
	ErrInvalidSeatCount     = errors.New("seats must be between 1 and 10")
	ErrPartnerRequired      = errors.New("partnerId is required")
	ErrInvalidID            = errors.New("invalid id")
	ErrDuplicateReservation = errors.New("reservation already exists")
)
