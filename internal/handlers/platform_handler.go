package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/stayledger/backend/internal/executor"
	"github.com/stayledger/backend/internal/middleware"
	"github.com/stayledger/backend/internal/models"
	"github.com/stayledger/backend/internal/platform"
	"github.com/stayledger/backend/internal/repository"
)

// AccountGetter resolves account records for /v1/account/me.
type AccountGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
}

// EventLister reads back the committed event log.
type EventLister interface {
	ListRecent(ctx context.Context, limit int) ([]*repository.EventRecord, error)
}

// PlatformHandler serves the /v1 booking ledger endpoints. Every transition
// takes the caller address from the authenticated context, never from the
// request body.
type PlatformHandler struct {
	Exec     *executor.Executor
	Accounts AccountGetter
	Events   EventLister
	Logger   *slog.Logger
}

// --- POST /v1/accommodations ---

type createAccommodationRequest struct {
	Details string `json:"details"`
	Price   int64  `json:"price"`
}

type accommodationCreatedResponse struct {
	AccommodationID int `json:"accommodation_id"`
}

// CreateAccommodation handles POST /v1/accommodations. Listing always
// succeeds; the new accommodation starts available.
func (h *PlatformHandler) CreateAccommodation(w http.ResponseWriter, r *http.Request) {
	owner := middleware.AddressFromCtx(r.Context())
	if owner == uuid.Nil {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}

	var req createAccommodationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid JSON"}`, http.StatusBadRequest)
		return
	}

	id := h.Exec.List(r.Context(), owner, req.Details, req.Price)
	writeJSON(w, http.StatusCreated, accommodationCreatedResponse{AccommodationID: id})
}

// --- PATCH /v1/accommodations/{id} ---

type updateAccommodationRequest struct {
	Details string `json:"details"`
	Price   int64  `json:"price"`
}

// UpdateAccommodation handles PATCH /v1/accommodations/{id}. Only the owner
// may update, and both fields are replaced wholesale.
func (h *PlatformHandler) UpdateAccommodation(w http.ResponseWriter, r *http.Request) {
	owner := middleware.AddressFromCtx(r.Context())
	if owner == uuid.Nil {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}
	id, ok := pathID(r)
	if !ok {
		http.Error(w, `{"error":"invalid accommodation id"}`, http.StatusBadRequest)
		return
	}

	var req updateAccommodationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid JSON"}`, http.StatusBadRequest)
		return
	}

	if err := h.Exec.Update(r.Context(), owner, id, req.Details, req.Price); err != nil {
		h.writeTransitionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"accommodation_id": id, "status": "updated"})
}

// --- GET /v1/accommodations/{id} ---

func (h *PlatformHandler) GetAccommodation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, `{"error":"invalid accommodation id"}`, http.StatusBadRequest)
		return
	}
	acc, err := h.Exec.GetAccommodation(id)
	if err != nil {
		h.writeTransitionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, acc)
}

// --- GET /v1/accommodations?details=... ---

// SearchAccommodations handles GET /v1/accommodations. Matching is exact on
// the details text, so "Beach House" and "beach house" are different stays.
func (h *PlatformHandler) SearchAccommodations(w http.ResponseWriter, r *http.Request) {
	details := r.URL.Query().Get("details")
	if details == "" {
		http.Error(w, `{"error":"details query parameter is required"}`, http.StatusBadRequest)
		return
	}
	results := h.Exec.Search(details)
	if results == nil {
		results = []models.Accommodation{}
	}
	writeJSON(w, http.StatusOK, results)
}

// --- POST /v1/bookings ---

type createBookingRequest struct {
	AccommodationID int   `json:"accommodation_id"`
	CheckIn         int64 `json:"check_in"`
	CheckOut        int64 `json:"check_out"`
	Payment         int64 `json:"payment"`
}

type bookingCreatedResponse struct {
	BookingID int    `json:"booking_id"`
	Status    string `json:"status"`
}

// CreateBooking handles POST /v1/bookings.
// Auth -> Payment (via middleware) -> Book -> 201.
// The exact price is held in custody; any surplus is returned as change.
func (h *PlatformHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	traveler := middleware.AddressFromCtx(r.Context())
	if traveler == uuid.Nil {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}

	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid JSON"}`, http.StatusBadRequest)
		return
	}

	id, err := h.Exec.Book(r.Context(), traveler, req.AccommodationID, req.CheckIn, req.CheckOut, req.Payment)
	if err != nil {
		h.writeTransitionError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, bookingCreatedResponse{BookingID: id, Status: models.BookingStatusActive})
}

// --- GET /v1/bookings ---

// ListBookings handles GET /v1/bookings — the caller's booking history,
// cancelled and settled stays included.
func (h *PlatformHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	traveler := middleware.AddressFromCtx(r.Context())
	if traveler == uuid.Nil {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}
	history := h.Exec.BookingHistory(traveler)
	if history == nil {
		history = []models.Booking{}
	}
	writeJSON(w, http.StatusOK, history)
}

// --- GET /v1/bookings/{id} ---

func (h *PlatformHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, `{"error":"invalid booking id"}`, http.StatusBadRequest)
		return
	}
	b, err := h.Exec.GetBooking(id)
	if err != nil {
		h.writeTransitionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// --- POST /v1/bookings/{id}/cancel ---

type cancelResponse struct {
	BookingID int    `json:"booking_id"`
	Refund    int64  `json:"refund"`
	Status    string `json:"status"`
}

// CancelBooking handles POST /v1/bookings/{id}/cancel. Half the paid amount
// comes back to the traveler; the rest stays with the platform.
func (h *PlatformHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	traveler := middleware.AddressFromCtx(r.Context())
	if traveler == uuid.Nil {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}
	id, ok := pathID(r)
	if !ok {
		http.Error(w, `{"error":"invalid booking id"}`, http.StatusBadRequest)
		return
	}

	refund, err := h.Exec.Cancel(r.Context(), traveler, id)
	if err != nil {
		h.writeTransitionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cancelResponse{BookingID: id, Refund: refund, Status: models.BookingStatusCancelled})
}

// --- POST /v1/bookings/{id}/check-in ---

// CheckIn handles POST /v1/bookings/{id}/check-in. Settlement: the full held
// amount is paid out to the owner.
func (h *PlatformHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	traveler := middleware.AddressFromCtx(r.Context())
	if traveler == uuid.Nil {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}
	id, ok := pathID(r)
	if !ok {
		http.Error(w, `{"error":"invalid booking id"}`, http.StatusBadRequest)
		return
	}

	if err := h.Exec.CheckIn(r.Context(), traveler, id); err != nil {
		h.writeTransitionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"booking_id": id, "status": models.BookingStatusCheckedIn})
}

// --- POST /v1/accommodations/{id}/reviews ---

type createReviewRequest struct {
	Text   string `json:"text"`
	Rating int    `json:"rating"`
}

// CreateReview handles POST /v1/accommodations/{id}/reviews. Anyone may
// review any existing accommodation; ratings are stored as given.
func (h *PlatformHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	reviewer := middleware.AddressFromCtx(r.Context())
	if reviewer == uuid.Nil {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}
	id, ok := pathID(r)
	if !ok {
		http.Error(w, `{"error":"invalid accommodation id"}`, http.StatusBadRequest)
		return
	}

	var req createReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid JSON"}`, http.StatusBadRequest)
		return
	}

	reviewID, err := h.Exec.Review(r.Context(), reviewer, id, req.Text, req.Rating)
	if err != nil {
		h.writeTransitionError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"review_id": reviewID})
}

// --- GET /v1/reviews/{id} ---

func (h *PlatformHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, `{"error":"invalid review id"}`, http.StatusBadRequest)
		return
	}
	rev, err := h.Exec.GetReview(id)
	if err != nil {
		h.writeTransitionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rev)
}

// --- POST /v1/accommodations/{id}/offers ---

type createOfferRequest struct {
	DiscountPct int   `json:"discount_pct"`
	Start       int64 `json:"start"`
	End         int64 `json:"end"`
}

// CreateOffer handles POST /v1/accommodations/{id}/offers. Offers are
// recorded but not yet applied to booking prices.
func (h *PlatformHandler) CreateOffer(w http.ResponseWriter, r *http.Request) {
	caller := middleware.AddressFromCtx(r.Context())
	if caller == uuid.Nil {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}
	id, ok := pathID(r)
	if !ok {
		http.Error(w, `{"error":"invalid accommodation id"}`, http.StatusBadRequest)
		return
	}

	var req createOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid JSON"}`, http.StatusBadRequest)
		return
	}

	offerID, err := h.Exec.AddOffer(r.Context(), id, req.DiscountPct, req.Start, req.End)
	if err != nil {
		h.writeTransitionError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"offer_id": offerID})
}

// --- GET /v1/offers/{id} ---

func (h *PlatformHandler) GetOffer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, `{"error":"invalid offer id"}`, http.StatusBadRequest)
		return
	}
	offer, err := h.Exec.GetOffer(id)
	if err != nil {
		h.writeTransitionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, offer)
}

// --- moderation / messaging / policy stubs ---

// ReportAccommodation handles POST /v1/accommodations/{id}/report.
func (h *PlatformHandler) ReportAccommodation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, `{"error":"invalid accommodation id"}`, http.StatusBadRequest)
		return
	}
	if err := h.Exec.ReportAccommodation(id); err != nil {
		h.writeTransitionError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{"accommodation_id": id, "status": "reported"})
}

type contactHostRequest struct {
	Message string `json:"message"`
}

// ContactHost handles POST /v1/accommodations/{id}/contact.
func (h *PlatformHandler) ContactHost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, `{"error":"invalid accommodation id"}`, http.StatusBadRequest)
		return
	}
	var req contactHostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid JSON"}`, http.StatusBadRequest)
		return
	}
	if err := h.Exec.ContactHost(id, req.Message); err != nil {
		h.writeTransitionError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{"accommodation_id": id, "status": "sent"})
}

type applyPolicyRequest struct {
	PolicyID int `json:"policy_id"`
}

// ApplyCancellationPolicy handles POST /v1/bookings/{id}/policy.
func (h *PlatformHandler) ApplyCancellationPolicy(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, `{"error":"invalid booking id"}`, http.StatusBadRequest)
		return
	}
	var req applyPolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid JSON"}`, http.StatusBadRequest)
		return
	}
	if err := h.Exec.ApplyCancellationPolicy(id, req.PolicyID); err != nil {
		h.writeTransitionError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{"booking_id": id, "status": "noted"})
}

// --- GET /v1/platform/stats ---

type platformStats struct {
	BalanceHeld    int64 `json:"balance_held"`
	Accommodations int   `json:"accommodations"`
	Bookings       int   `json:"bookings"`
	Reviews        int   `json:"reviews"`
	Offers         int   `json:"offers"`
}

// GetStats handles GET /v1/platform/stats (public, no auth).
func (h *PlatformHandler) GetStats(w http.ResponseWriter, _ *http.Request) {
	accs, books, revs, offers := h.Exec.Counts()
	writeJSON(w, http.StatusOK, platformStats{
		BalanceHeld:    h.Exec.Balance(),
		Accommodations: accs,
		Bookings:       books,
		Reviews:        revs,
		Offers:         offers,
	})
}

// --- GET /v1/events ---

// ListEvents handles GET /v1/events — the committed event log, newest first.
func (h *PlatformHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 500 {
			http.Error(w, `{"error":"limit must be between 1 and 500"}`, http.StatusBadRequest)
			return
		}
		limit = n
	}
	events, err := h.Events.ListRecent(r.Context(), limit)
	if err != nil {
		h.Logger.Error("list events", "error", err)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	if events == nil {
		events = []*repository.EventRecord{}
	}
	writeJSON(w, http.StatusOK, events)
}

// --- GET /v1/account/me ---

func (h *PlatformHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	addr := middleware.AddressFromCtx(r.Context())
	if addr == uuid.Nil {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}
	acc, err := h.Accounts.GetByID(r.Context(), addr)
	if err != nil {
		http.Error(w, `{"error":"account not found"}`, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, acc)
}

// --- helpers ---

// writeTransitionError maps ledger errors onto HTTP statuses: unknown ids
// are 404, ownership violations 403, state conflicts 409, short payments 402.
func (h *PlatformHandler) writeTransitionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, platform.ErrInvalidAccommodation),
		errors.Is(err, platform.ErrInvalidBooking),
		errors.Is(err, platform.ErrInvalidReview),
		errors.Is(err, platform.ErrInvalidOffer):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, platform.ErrNotOwner):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": err.Error()})
	case errors.Is(err, platform.ErrNotAvailable),
		errors.Is(err, platform.ErrAlreadyCancelled),
		errors.Is(err, platform.ErrAlreadySettled):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, platform.ErrInsufficientPayment):
		writeJSON(w, http.StatusPaymentRequired, map[string]string{"error": err.Error()})
	default:
		if h.Logger != nil {
			h.Logger.Error("transition failed", "error", err)
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

// pathID parses the {id} path segment as a ledger index.
func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
