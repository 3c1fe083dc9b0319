package platform

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

// ---------------------------------------------------------------------------
// Search (spec scenario 4): exact, case-sensitive match
// ---------------------------------------------------------------------------

func TestSearchExactMatch(t *testing.T) {
	p := New()
	owner := uuid.New()
	p.List(owner, "Beach House", 100)
	p.List(owner, "Mountain Cabin", 80)
	p.List(owner, "Beach House", 150)
	p.Drain()

	got := p.Search("Beach House")
	if len(got) != 2 {
		t.Fatalf("Search: got %d results, want 2", len(got))
	}
	if got[0].ID != 0 || got[1].ID != 2 {
		t.Errorf("results out of insertion order: ids %d, %d", got[0].ID, got[1].ID)
	}

	if got := p.Search("beach house"); len(got) != 0 {
		t.Errorf("case-differing search matched %d results, want 0", len(got))
	}
	if got := p.Search("Beach"); len(got) != 0 {
		t.Errorf("substring search matched %d results, want 0", len(got))
	}
}

func TestSearchReturnsCopies(t *testing.T) {
	p := New()
	owner := uuid.New()
	p.List(owner, "Bungalow", 10)
	p.Drain()

	got := p.Search("Bungalow")
	got[0].Price = 9999
	got[0].Details = "tampered"

	acc, _ := p.GetAccommodation(0)
	if acc.Price != 10 || acc.Details != "Bungalow" {
		t.Error("Search returned a reference into ledger storage")
	}
}

// ---------------------------------------------------------------------------
// Booking history
// ---------------------------------------------------------------------------

func TestBookingHistory(t *testing.T) {
	p := New()
	owner := uuid.New()
	alice, bob := uuid.New(), uuid.New()
	for i := 0; i < 3; i++ {
		p.List(owner, "stay", 10)
	}
	p.Book(0, alice, 1, 2, 10)
	p.Book(1, bob, 1, 2, 10)
	p.Book(2, alice, 3, 4, 10)
	p.Drain()

	hist := p.BookingHistory(alice)
	if len(hist) != 2 {
		t.Fatalf("history: got %d bookings, want 2", len(hist))
	}
	if hist[0].ID != 0 || hist[1].ID != 2 {
		t.Errorf("history out of insertion order: ids %d, %d", hist[0].ID, hist[1].ID)
	}
	if got := p.BookingHistory(uuid.New()); len(got) != 0 {
		t.Errorf("unknown traveler history: got %d, want 0", len(got))
	}

	// Cancelled bookings stay queryable.
	if _, err := p.Cancel(0, alice); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	p.Drain()
	hist = p.BookingHistory(alice)
	if len(hist) != 2 || hist[0].Paid != 10 {
		t.Errorf("cancelled booking dropped from history: %+v", hist)
	}
}

// ---------------------------------------------------------------------------
// Point lookups and idempotence
// ---------------------------------------------------------------------------

func TestGettersValidateRange(t *testing.T) {
	p := New()
	if _, err := p.GetAccommodation(0); !errors.Is(err, ErrInvalidAccommodation) {
		t.Errorf("GetAccommodation: got %v", err)
	}
	if _, err := p.GetBooking(-1); !errors.Is(err, ErrInvalidBooking) {
		t.Errorf("GetBooking: got %v", err)
	}
	if _, err := p.GetReview(0); !errors.Is(err, ErrInvalidReview) {
		t.Errorf("GetReview: got %v", err)
	}
	if _, err := p.GetOffer(0); !errors.Is(err, ErrInvalidOffer) {
		t.Errorf("GetOffer: got %v", err)
	}
}

func TestQueriesAreIdempotent(t *testing.T) {
	p := New()
	owner := uuid.New()
	traveler := uuid.New()
	p.List(owner, "Beach House", 100)
	p.Book(0, traveler, 1, 2, 100)
	p.AddReview(0, traveler, "nice", 4)
	p.AddOffer(0, 15, 1, 30)
	p.Drain()

	first := p.Search("Beach House")
	second := p.Search("Beach House")
	if len(first) != 1 || len(second) != 1 || first[0] != second[0] {
		t.Error("repeated Search results differ")
	}

	h1 := p.BookingHistory(traveler)
	h2 := p.BookingHistory(traveler)
	if len(h1) != 1 || len(h2) != 1 || h1[0] != h2[0] {
		t.Error("repeated BookingHistory results differ")
	}

	if p.Balance() != 100 {
		t.Errorf("queries mutated the balance: %d", p.Balance())
	}
	if events, transfers := p.Drain(); len(events) != 0 || len(transfers) != 0 {
		t.Error("queries recorded events or transfers")
	}
}

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

func TestStubsValidateOnly(t *testing.T) {
	p := New()
	if err := p.ReportAccommodation(0); !errors.Is(err, ErrInvalidAccommodation) {
		t.Errorf("ReportAccommodation: got %v", err)
	}
	if err := p.ContactHost(0, "hi"); !errors.Is(err, ErrInvalidAccommodation) {
		t.Errorf("ContactHost: got %v", err)
	}
	if err := p.ApplyCancellationPolicy(0, 1); !errors.Is(err, ErrInvalidBooking) {
		t.Errorf("ApplyCancellationPolicy: got %v", err)
	}

	p.List(uuid.New(), "stay", 10)
	p.Book(0, uuid.New(), 1, 2, 10)
	p.Drain()
	if err := p.ReportAccommodation(0); err != nil {
		t.Errorf("ReportAccommodation: %v", err)
	}
	if err := p.ContactHost(0, "hello"); err != nil {
		t.Errorf("ContactHost: %v", err)
	}
	if err := p.ApplyCancellationPolicy(0, 2); err != nil {
		t.Errorf("ApplyCancellationPolicy: %v", err)
	}
	// None of the stubs touch state.
	if events, transfers := p.Drain(); len(events) != 0 || len(transfers) != 0 {
		t.Error("stub recorded events or transfers")
	}
}
