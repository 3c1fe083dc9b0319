package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/riverqueue/river"
)

// DeliverEventJobArgs is one webhook delivery: a committed ledger event
// pushed to a single subscriber URL. Deliveries are independent jobs so a
// slow subscriber never blocks the rest.
type DeliverEventJobArgs struct {
	EventKind string          `json:"event_kind"`
	Payload   json.RawMessage `json:"payload"`
	URL       string          `json:"url"`
}

func (DeliverEventJobArgs) Kind() string { return "deliver_event" }

type DeliverEventWorker struct {
	river.WorkerDefaults[DeliverEventJobArgs]
	httpClient *http.Client
}

func NewDeliverEventWorker() *DeliverEventWorker {
	return &DeliverEventWorker{
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type webhookBody struct {
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

// Work POSTs the event to the subscriber. A non-2xx response is returned as
// an error so River retries with backoff.
func (w *DeliverEventWorker) Work(ctx context.Context, job *river.Job[DeliverEventJobArgs]) error {
	args := job.Args

	body, err := json.Marshal(webhookBody{Kind: args.EventKind, Payload: args.Payload})
	if err != nil {
		return fmt.Errorf("marshal webhook body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, args.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("network error calling subscriber webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("subscriber returned status %d", resp.StatusCode)
	}
	return nil
}
