package models

import "github.com/google/uuid"

// Booking status values. A booking starts active and moves to exactly one of
// checked_in or cancelled; no transition leaves either terminal state.
const (
	BookingStatusActive    = "active"
	BookingStatusCheckedIn = "checked_in"
	BookingStatusCancelled = "cancelled"
)

// Booking records a paid stay. CheckIn/CheckOut are day-epoch integers; no
// ordering between them is enforced. Paid is the exact listing price at
// booking time and is never mutated afterwards — refund and settlement math
// is recomputed from it.
type Booking struct {
	ID              int       `json:"id"`
	AccommodationID int       `json:"accommodation_id"`
	Traveler        uuid.UUID `json:"traveler"`
	CheckIn         int64     `json:"check_in"`
	CheckOut        int64     `json:"check_out"`
	Paid            int64     `json:"paid"`
	Status          string    `json:"status"`
}
