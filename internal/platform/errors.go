package platform

import "errors"

// Transition errors. Raising any of these aborts the enclosing transaction
// with zero state change; a failed operation is indistinguishable from one
// that was never submitted.
var (
	ErrInvalidAccommodation = errors.New("invalid accommodation id")
	ErrInvalidBooking       = errors.New("invalid booking id")
	ErrInvalidReview        = errors.New("invalid review id")
	ErrInvalidOffer         = errors.New("invalid offer id")
	ErrNotOwner             = errors.New("caller is not the owner")
	ErrNotAvailable         = errors.New("accommodation is not available")
	ErrInsufficientPayment  = errors.New("payment below listing price")
	ErrAlreadyCancelled     = errors.New("booking already cancelled")
	ErrAlreadySettled       = errors.New("booking already checked in")
)
