package errs

import "errors"

// Sentinel errors shared by the booking engine and the transport layer.
var (
	// Caller input
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")

	// Slot state
	ErrSlotNotFound  = errors.New("timeslot not found")
	ErrAlreadyBooked = errors.New("timeslot already booked")
	ErrSlotPassed    = errors.New("timeslot already passed")

	// Internal
	ErrConflict    = errors.New("timeslot conflict")
	ErrPersistence = errors.New("persistence error")
)
