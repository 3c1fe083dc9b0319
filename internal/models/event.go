package models

import "github.com/google/uuid"

// Event kind discriminators as they appear in the event log.
const (
	EventAccommodationListed = "accommodation_listed"
	EventAccommodationBooked = "accommodation_booked"
	EventReviewLeft          = "review_left"
	EventBookingCanceled     = "booking_canceled"
)

// Event is a fixed-shape record emitted exactly once per successful
// transition. Update, check-in and offer creation deliberately emit nothing.
type Event interface {
	Kind() string
}

type AccommodationListed struct {
	AccommodationID int       `json:"accommodation_id"`
	Owner           uuid.UUID `json:"owner"`
	Details         string    `json:"details"`
	Price           int64     `json:"price"`
}

func (AccommodationListed) Kind() string { return EventAccommodationListed }

type AccommodationBooked struct {
	BookingID       int       `json:"booking_id"`
	AccommodationID int       `json:"accommodation_id"`
	Traveler        uuid.UUID `json:"traveler"`
	CheckIn         int64     `json:"check_in"`
	CheckOut        int64     `json:"check_out"`
	Paid            int64     `json:"paid"`
}

func (AccommodationBooked) Kind() string { return EventAccommodationBooked }

type ReviewLeft struct {
	ReviewID        int       `json:"review_id"`
	AccommodationID int       `json:"accommodation_id"`
	Reviewer        uuid.UUID `json:"reviewer"`
	Rating          int       `json:"rating"`
}

func (ReviewLeft) Kind() string { return EventReviewLeft }

type BookingCanceled struct {
	BookingID int   `json:"booking_id"`
	Refund    int64 `json:"refund"`
}

func (BookingCanceled) Kind() string { return EventBookingCanceled }
