package platform

import (
	"github.com/google/uuid"

	"github.com/stayledger/backend/internal/models"
)

// Queries never mutate state and return copies, never references into the
// collections. Lookups by foreign key are linear scans — no secondary
// indexes are maintained.

// Search returns all accommodations whose details match the given text
// exactly (case-sensitive), in insertion order.
func (p *Platform) Search(details string) []models.Accommodation {
	var out []models.Accommodation
	for _, acc := range p.accommodations {
		if acc.Details == details {
			out = append(out, acc)
		}
	}
	return out
}

// BookingHistory returns every booking made by the traveler, in insertion
// order, cancelled and settled ones included.
func (p *Platform) BookingHistory(traveler uuid.UUID) []models.Booking {
	var out []models.Booking
	for _, b := range p.bookings {
		if b.Traveler == traveler {
			out = append(out, b)
		}
	}
	return out
}

func (p *Platform) GetAccommodation(id int) (models.Accommodation, error) {
	if id < 0 || id >= len(p.accommodations) {
		return models.Accommodation{}, ErrInvalidAccommodation
	}
	return p.accommodations[id], nil
}

func (p *Platform) GetBooking(id int) (models.Booking, error) {
	if id < 0 || id >= len(p.bookings) {
		return models.Booking{}, ErrInvalidBooking
	}
	return p.bookings[id], nil
}

func (p *Platform) GetReview(id int) (models.Review, error) {
	if id < 0 || id >= len(p.reviews) {
		return models.Review{}, ErrInvalidReview
	}
	return p.reviews[id], nil
}

func (p *Platform) GetOffer(id int) (models.SpecialOffer, error) {
	if id < 0 || id >= len(p.offers) {
		return models.SpecialOffer{}, ErrInvalidOffer
	}
	return p.offers[id], nil
}

// Balance is the value currently held in custody.
func (p *Platform) Balance() int64 {
	return p.balance
}

// Counts returns the sizes of the four collections.
func (p *Platform) Counts() (accommodations, bookings, reviews, offers int) {
	return len(p.accommodations), len(p.bookings), len(p.reviews), len(p.offers)
}

// ReportAccommodation validates the id; moderation itself happens off-chain.
func (p *Platform) ReportAccommodation(id int) error {
	if id < 0 || id >= len(p.accommodations) {
		return ErrInvalidAccommodation
	}
	return nil
}

// ContactHost validates the id; message delivery happens off-chain.
func (p *Platform) ContactHost(id int, message string) error {
	if id < 0 || id >= len(p.accommodations) {
		return ErrInvalidAccommodation
	}
	_ = message
	return nil
}

// ApplyCancellationPolicy validates the id; tiered policies are deferred to
// an external collaborator.
func (p *Platform) ApplyCancellationPolicy(id int, policyID int) error {
	if id < 0 || id >= len(p.bookings) {
		return ErrInvalidBooking
	}
	_ = policyID
	return nil
}
