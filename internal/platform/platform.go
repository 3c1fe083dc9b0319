package platform

import (
	"github.com/google/uuid"

	"github.com/stayledger/backend/internal/models"
)

// Platform is the booking ledger: four append-only collections plus the
// custody balance. Identifiers are dense and zero-based — an entity's id is
// its insertion index, so entries are never removed, only mutated in place.
//
// The executor owns the single instance and serializes every call; Platform
// itself holds no lock and never blocks. Each transition validates all of
// its preconditions before the first mutation, so an error always means
// nothing changed.
type Platform struct {
	balance        int64
	accommodations []models.Accommodation
	bookings       []models.Booking
	reviews        []models.Review
	offers         []models.SpecialOffer

	pendingEvents    []models.Event
	pendingTransfers []models.Transfer
}

func New() *Platform {
	return &Platform{}
}

// Drain returns the events and transfers recorded by the last committed
// transition and clears both queues. Only successful transitions record
// anything, so there is nothing to roll back on error.
func (p *Platform) Drain() ([]models.Event, []models.Transfer) {
	events, transfers := p.pendingEvents, p.pendingTransfers
	p.pendingEvents, p.pendingTransfers = nil, nil
	return events, transfers
}

func (p *Platform) emit(ev models.Event) {
	p.pendingEvents = append(p.pendingEvents, ev)
}

func (p *Platform) transfer(to uuid.UUID, amount int64, kind string) {
	if amount <= 0 {
		return
	}
	p.pendingTransfers = append(p.pendingTransfers, models.Transfer{To: to, Amount: amount, Kind: kind})
}

// List appends a new accommodation and returns its id. Zero price is
// allowed; there are no error paths.
func (p *Platform) List(owner uuid.UUID, details string, price int64) int {
	id := len(p.accommodations)
	p.accommodations = append(p.accommodations, models.Accommodation{
		ID:        id,
		Owner:     owner,
		Details:   details,
		Price:     price,
		Available: true,
	})
	p.emit(models.AccommodationListed{
		AccommodationID: id,
		Owner:           owner,
		Details:         details,
		Price:           price,
	})
	return id
}

// Book reserves an accommodation. The exact listing price moves into ledger
// custody; any surplus in the payment is returned to the traveler as change
// and never enters the balance. The price stays in custody until CheckIn
// releases it to the owner or Cancel splits it.
func (p *Platform) Book(accommodationID int, traveler uuid.UUID, checkIn, checkOut, payment int64) (int, error) {
	if accommodationID < 0 || accommodationID >= len(p.accommodations) {
		return 0, ErrInvalidAccommodation
	}
	acc := &p.accommodations[accommodationID]
	if !acc.Available {
		return 0, ErrNotAvailable
	}
	if payment < acc.Price {
		return 0, ErrInsufficientPayment
	}

	bookingID := len(p.bookings)
	p.bookings = append(p.bookings, models.Booking{
		ID:              bookingID,
		AccommodationID: accommodationID,
		Traveler:        traveler,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Paid:            acc.Price,
		Status:          models.BookingStatusActive,
	})
	acc.Available = false
	p.balance += acc.Price
	p.transfer(traveler, payment-acc.Price, models.TransferChange)
	p.emit(models.AccommodationBooked{
		BookingID:       bookingID,
		AccommodationID: accommodationID,
		Traveler:        traveler,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Paid:            acc.Price,
	})
	return bookingID, nil
}

// AddReview appends a review. The reviewer is not required to have booked.
func (p *Platform) AddReview(accommodationID int, reviewer uuid.UUID, text string, rating int) (int, error) {
	if accommodationID < 0 || accommodationID >= len(p.accommodations) {
		return 0, ErrInvalidAccommodation
	}
	id := len(p.reviews)
	p.reviews = append(p.reviews, models.Review{
		ID:              id,
		AccommodationID: accommodationID,
		Reviewer:        reviewer,
		Text:            text,
		Rating:          rating,
	})
	p.emit(models.ReviewLeft{
		ReviewID:        id,
		AccommodationID: accommodationID,
		Reviewer:        reviewer,
		Rating:          rating,
	})
	return id, nil
}

// Cancel refunds half of the booking's paid amount (integer division) to the
// traveler. The retained remainder stays in the platform balance. Only an
// active booking can be cancelled, so the refund is issued at most once; the
// record keeps its original Paid value.
func (p *Platform) Cancel(bookingID int, traveler uuid.UUID) (int64, error) {
	if bookingID < 0 || bookingID >= len(p.bookings) {
		return 0, ErrInvalidBooking
	}
	b := &p.bookings[bookingID]
	if b.Traveler != traveler {
		return 0, ErrNotOwner
	}
	switch b.Status {
	case models.BookingStatusCancelled:
		return 0, ErrAlreadyCancelled
	case models.BookingStatusCheckedIn:
		return 0, ErrAlreadySettled
	}

	refund := b.Paid / 2
	b.Status = models.BookingStatusCancelled
	p.balance -= refund
	p.transfer(traveler, refund, models.TransferRefund)
	p.emit(models.BookingCanceled{BookingID: bookingID, Refund: refund})
	return refund, nil
}

// Update mutates an accommodation's details and price in place. Only the
// listing owner may update. No event is emitted.
func (p *Platform) Update(accommodationID int, owner uuid.UUID, details string, price int64) error {
	if accommodationID < 0 || accommodationID >= len(p.accommodations) {
		return ErrInvalidAccommodation
	}
	acc := &p.accommodations[accommodationID]
	if acc.Owner != owner {
		return ErrNotOwner
	}
	acc.Details = details
	acc.Price = price
	return nil
}

// CheckIn settles an active booking: the full paid amount leaves custody for
// the accommodation owner. A settled or cancelled booking cannot be checked
// in again, so the owner is paid at most once. No event is emitted.
func (p *Platform) CheckIn(bookingID int, traveler uuid.UUID) error {
	if bookingID < 0 || bookingID >= len(p.bookings) {
		return ErrInvalidBooking
	}
	b := &p.bookings[bookingID]
	if b.Traveler != traveler {
		return ErrNotOwner
	}
	switch b.Status {
	case models.BookingStatusCancelled:
		return ErrAlreadyCancelled
	case models.BookingStatusCheckedIn:
		return ErrAlreadySettled
	}

	owner := p.accommodations[b.AccommodationID].Owner
	b.Status = models.BookingStatusCheckedIn
	p.balance -= b.Paid
	p.transfer(owner, b.Paid, models.TransferOwnerPayout)
	return nil
}

// AddOffer appends a special offer. The validity window is stored as given
// and never enforced; anyone may attach an offer. No event is emitted.
func (p *Platform) AddOffer(accommodationID int, discountPct int, start, end int64) (int, error) {
	if accommodationID < 0 || accommodationID >= len(p.accommodations) {
		return 0, ErrInvalidAccommodation
	}
	id := len(p.offers)
	p.offers = append(p.offers, models.SpecialOffer{
		ID:              id,
		AccommodationID: accommodationID,
		DiscountPct:     discountPct,
		Start:           start,
		End:             end,
	})
	return id, nil
}
