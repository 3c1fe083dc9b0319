package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/stayledger/backend/internal/middleware"
	"github.com/stayledger/backend/internal/models"
	"github.com/stayledger/backend/internal/repository"
)

// SubscriberStore is the subset of the subscriber repository the handler uses.
type SubscriberStore interface {
	Create(ctx context.Context, accountID uuid.UUID, url string, kinds []string) (*repository.Subscriber, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*repository.Subscriber, error)
	Delete(ctx context.Context, id, accountID uuid.UUID) error
}

// SubscriberHandler serves /v1/subscriptions — webhook registrations for
// committed ledger events.
type SubscriberHandler struct {
	Store  SubscriberStore
	Logger *slog.Logger
}

type createSubscriptionRequest struct {
	URL   string   `json:"url"`
	Kinds []string `json:"kinds"`
}

var knownEventKinds = map[string]bool{
	models.EventAccommodationListed: true,
	models.EventAccommodationBooked: true,
	models.EventReviewLeft:          true,
	models.EventBookingCanceled:     true,
}

// CreateSubscription handles POST /v1/subscriptions. An empty kinds list
// subscribes to every event kind.
func (h *SubscriberHandler) CreateSubscription(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.AddressFromCtx(r.Context())
	if accountID == uuid.Nil {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}

	var req createSubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid JSON"}`, http.StatusBadRequest)
		return
	}
	if req.URL == "" {
		http.Error(w, `{"error":"url is required"}`, http.StatusBadRequest)
		return
	}
	for _, k := range req.Kinds {
		if !knownEventKinds[k] {
			http.Error(w, `{"error":"unknown event kind"}`, http.StatusBadRequest)
			return
		}
	}
	if req.Kinds == nil {
		req.Kinds = []string{}
	}

	sub, err := h.Store.Create(r.Context(), accountID, req.URL, req.Kinds)
	if err != nil {
		h.Logger.Error("create subscription", "error", err)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, sub)
}

// ListSubscriptions handles GET /v1/subscriptions.
func (h *SubscriberHandler) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.AddressFromCtx(r.Context())
	if accountID == uuid.Nil {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}
	subs, err := h.Store.ListByAccount(r.Context(), accountID)
	if err != nil {
		h.Logger.Error("list subscriptions", "error", err)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	if subs == nil {
		subs = []*repository.Subscriber{}
	}
	writeJSON(w, http.StatusOK, subs)
}

// DeleteSubscription handles DELETE /v1/subscriptions/{id}.
func (h *SubscriberHandler) DeleteSubscription(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.AddressFromCtx(r.Context())
	if accountID == uuid.Nil {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, `{"error":"invalid subscription id"}`, http.StatusBadRequest)
		return
	}
	if err := h.Store.Delete(r.Context(), id, accountID); err != nil {
		h.Logger.Error("delete subscription", "error", err)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
