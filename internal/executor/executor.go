package executor

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/stayledger/backend/internal/models"
	"github.com/stayledger/backend/internal/platform"
)

// EventLog is the external append-only log committed events are written to.
type EventLog interface {
	Append(ctx context.Context, ev models.Event) error
}

// Accounts applies outbound value transfers (payouts, refunds, change) to
// the recipients' balances.
type Accounts interface {
	ApplyTransfer(ctx context.Context, t models.Transfer) error
}

// Sink receives committed events after they reach the log (webhook queue,
// websocket feed).
type Sink interface {
	EventsCommitted(ctx context.Context, events []models.Event)
}

// Executor owns the single Platform instance and serializes every
// transaction through one mutex — the stand-in for the consensus layer that
// would otherwise order submissions. A transition either fully applies and
// is committed (events logged, transfers credited) or reports an error and
// leaves no trace.
type Executor struct {
	mu       sync.Mutex
	platform *platform.Platform
	log      EventLog
	accounts Accounts
	sinks    []Sink
	logger   *slog.Logger
}

func New(p *platform.Platform, log EventLog, accounts Accounts, logger *slog.Logger, sinks ...Sink) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{platform: p, log: log, accounts: accounts, sinks: sinks, logger: logger}
}

// commit drains the transition's events and transfers and hands them to the
// collaborators. The in-memory state is already final; log and account
// failures are reported, not rolled back — durability is the collaborators'
// concern, ordering is ours.
func (e *Executor) commit(ctx context.Context) {
	events, transfers := e.platform.Drain()
	for _, ev := range events {
		if err := e.log.Append(ctx, ev); err != nil {
			e.logger.Error("append event", "kind", ev.Kind(), "error", err)
		}
	}
	for _, tr := range transfers {
		if err := e.accounts.ApplyTransfer(ctx, tr); err != nil {
			e.logger.Error("apply transfer", "kind", tr.Kind, "to", tr.To, "error", err)
		}
	}
	if len(events) > 0 {
		for _, s := range e.sinks {
			s.EventsCommitted(ctx, events)
		}
	}
}

// --- transitions -----------------------------------------------------------

func (e *Executor) List(ctx context.Context, owner uuid.UUID, details string, price int64) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := e.platform.List(owner, details, price)
	e.commit(ctx)
	return id
}

func (e *Executor) Book(ctx context.Context, traveler uuid.UUID, accommodationID int, checkIn, checkOut, payment int64) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	id, err := e.platform.Book(accommodationID, traveler, checkIn, checkOut, payment)
	if err != nil {
		return 0, err
	}
	e.commit(ctx)
	return id, nil
}

func (e *Executor) Review(ctx context.Context, reviewer uuid.UUID, accommodationID int, text string, rating int) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	id, err := e.platform.AddReview(accommodationID, reviewer, text, rating)
	if err != nil {
		return 0, err
	}
	e.commit(ctx)
	return id, nil
}

func (e *Executor) Cancel(ctx context.Context, traveler uuid.UUID, bookingID int) (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	refund, err := e.platform.Cancel(bookingID, traveler)
	if err != nil {
		return 0, err
	}
	e.commit(ctx)
	return refund, nil
}

func (e *Executor) Update(ctx context.Context, owner uuid.UUID, accommodationID int, details string, price int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.platform.Update(accommodationID, owner, details, price); err != nil {
		return err
	}
	e.commit(ctx)
	return nil
}

func (e *Executor) CheckIn(ctx context.Context, traveler uuid.UUID, bookingID int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.platform.CheckIn(bookingID, traveler); err != nil {
		return err
	}
	e.commit(ctx)
	return nil
}

func (e *Executor) AddOffer(ctx context.Context, accommodationID, discountPct int, start, end int64) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	id, err := e.platform.AddOffer(accommodationID, discountPct, start, end)
	if err != nil {
		return 0, err
	}
	e.commit(ctx)
	return id, nil
}

// --- stubs -----------------------------------------------------------------

func (e *Executor) ReportAccommodation(id int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.platform.ReportAccommodation(id)
}

func (e *Executor) ContactHost(id int, message string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.platform.ContactHost(id, message)
}

func (e *Executor) ApplyCancellationPolicy(id, policyID int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.platform.ApplyCancellationPolicy(id, policyID)
}

// --- queries ---------------------------------------------------------------
//
// Queries run under the same mutex as transitions: reads are serialized with
// writes, never concurrent with them, and never observe a half-applied
// transition.

func (e *Executor) Search(details string) []models.Accommodation {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.platform.Search(details)
}

func (e *Executor) BookingHistory(traveler uuid.UUID) []models.Booking {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.platform.BookingHistory(traveler)
}

func (e *Executor) GetAccommodation(id int) (models.Accommodation, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.platform.GetAccommodation(id)
}

func (e *Executor) GetBooking(id int) (models.Booking, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.platform.GetBooking(id)
}

func (e *Executor) GetReview(id int) (models.Review, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.platform.GetReview(id)
}

func (e *Executor) GetOffer(id int) (models.SpecialOffer, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.platform.GetOffer(id)
}

func (e *Executor) Balance() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.platform.Balance()
}

func (e *Executor) Counts() (accommodations, bookings, reviews, offers int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.platform.Counts()
}
