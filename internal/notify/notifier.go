package notify

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/stayledger/backend/internal/models"
	"github.com/stayledger/backend/internal/repository"
)

// SubscriberLister resolves which webhooks want a given event kind.
type SubscriberLister interface {
	ListByKind(ctx context.Context, kind string) ([]*repository.Subscriber, error)
}

// EnqueueFunc inserts a delivery job. Wired to river's Insert after the
// client is created (breaks the init cycle).
type EnqueueFunc func(ctx context.Context, args DeliverEventJobArgs) error

// Notifier fans committed events out to webhook subscribers by enqueuing one
// delivery job per subscriber. Implements the executor's event sink.
type Notifier struct {
	subscribers SubscriberLister
	enqueue     EnqueueFunc
	logger      *slog.Logger
}

func NewNotifier(subscribers SubscriberLister, enqueue EnqueueFunc, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{subscribers: subscribers, enqueue: enqueue, logger: logger}
}

// EventsCommitted enqueues deliveries for every subscriber interested in
// each event. Enqueue failures are logged and skipped; the ledger state is
// already committed and must not be held up by the notification fan-out.
func (n *Notifier) EventsCommitted(ctx context.Context, events []models.Event) {
	for _, ev := range events {
		payload, err := json.Marshal(ev)
		if err != nil {
			n.logger.Error("marshal event for delivery", "kind", ev.Kind(), "error", err)
			continue
		}
		subs, err := n.subscribers.ListByKind(ctx, ev.Kind())
		if err != nil {
			n.logger.Error("list subscribers", "kind", ev.Kind(), "error", err)
			continue
		}
		for _, sub := range subs {
			args := DeliverEventJobArgs{EventKind: ev.Kind(), Payload: payload, URL: sub.URL}
			if err := n.enqueue(ctx, args); err != nil {
				n.logger.Error("enqueue delivery", "kind", ev.Kind(), "url", sub.URL, "error", err)
			}
		}
	}
}
