package notify

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	"github.com/stayledger/backend/internal/models"
	"github.com/stayledger/backend/internal/repository"
)

type stubLister struct {
	byKind map[string][]*repository.Subscriber
	err    error
}

func (s *stubLister) ListByKind(_ context.Context, kind string) ([]*repository.Subscriber, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.byKind[kind], nil
}

func TestNotifier_FansOutPerSubscriber(t *testing.T) {
	lister := &stubLister{byKind: map[string][]*repository.Subscriber{
		models.EventAccommodationBooked: {
			{ID: uuid.New(), URL: "https://a.example/hook"},
			{ID: uuid.New(), URL: "https://b.example/hook"},
		},
	}}

	var enqueued []DeliverEventJobArgs
	n := NewNotifier(lister, func(_ context.Context, args DeliverEventJobArgs) error {
		enqueued = append(enqueued, args)
		return nil
	}, slog.Default())

	n.EventsCommitted(context.Background(), []models.Event{
		models.AccommodationBooked{BookingID: 0, AccommodationID: 0, Paid: 100},
	})

	if len(enqueued) != 2 {
		t.Fatalf("expected 2 deliveries, got %d", len(enqueued))
	}
	urls := map[string]bool{}
	for _, job := range enqueued {
		if job.EventKind != models.EventAccommodationBooked {
			t.Errorf("unexpected kind %q", job.EventKind)
		}
		urls[job.URL] = true
	}
	if !urls["https://a.example/hook"] || !urls["https://b.example/hook"] {
		t.Errorf("missing delivery URLs: %v", urls)
	}
}

func TestNotifier_NoSubscribersNoJobs(t *testing.T) {
	lister := &stubLister{byKind: map[string][]*repository.Subscriber{}}

	calls := 0
	n := NewNotifier(lister, func(context.Context, DeliverEventJobArgs) error {
		calls++
		return nil
	}, slog.Default())

	n.EventsCommitted(context.Background(), []models.Event{
		models.AccommodationListed{AccommodationID: 0},
	})

	if calls != 0 {
		t.Errorf("expected no deliveries, got %d", calls)
	}
}

func TestNotifier_ListerFailureIsSwallowed(t *testing.T) {
	lister := &stubLister{err: errors.New("db down")}

	n := NewNotifier(lister, func(context.Context, DeliverEventJobArgs) error {
		t.Error("enqueue must not be called when listing fails")
		return nil
	}, slog.Default())

	// Must not panic or propagate: the transition already committed.
	n.EventsCommitted(context.Background(), []models.Event{
		models.BookingCanceled{BookingID: 1, Refund: 50},
	})
}
