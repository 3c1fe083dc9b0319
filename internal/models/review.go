package models

import "github.com/google/uuid"

// Review is append-only. Rating is stored as given (the 0-5 bound is not
// enforced) and nothing requires the reviewer to have actually booked.
type Review struct {
	ID              int       `json:"id"`
	AccommodationID int       `json:"accommodation_id"`
	Reviewer        uuid.UUID `json:"reviewer"`
	Text            string    `json:"text"`
	Rating          int       `json:"rating"`
}
