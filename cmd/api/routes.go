package main

import (
	"net/http"

	"github.com/stayledger/backend/internal/feed"
	"github.com/stayledger/backend/internal/handlers"
	"github.com/stayledger/backend/internal/middleware"
)

// RegisterV1Routes adds the /v1 booking ledger endpoints to the given mux.
// Middleware chain: TokenAuth -> (PaymentCheck on POST /v1/bookings only) ->
// handler. Reads of public state need no token.
func RegisterV1Routes(
	mux *http.ServeMux,
	ph *handlers.PlatformHandler,
	sh *handlers.SubscriberHandler,
	hub *feed.Hub,
	validator middleware.TokenValidator,
) {
	auth := middleware.TokenAuth(validator)
	payment := middleware.PaymentCheck()

	// Accommodations.
	mux.Handle("POST /v1/accommodations", auth(http.HandlerFunc(ph.CreateAccommodation)))
	mux.Handle("GET /v1/accommodations", http.HandlerFunc(ph.SearchAccommodations))
	mux.Handle("GET /v1/accommodations/{id}", http.HandlerFunc(ph.GetAccommodation))
	mux.Handle("PATCH /v1/accommodations/{id}", auth(http.HandlerFunc(ph.UpdateAccommodation)))
	mux.Handle("POST /v1/accommodations/{id}/reviews", auth(http.HandlerFunc(ph.CreateReview)))
	mux.Handle("POST /v1/accommodations/{id}/offers", auth(http.HandlerFunc(ph.CreateOffer)))
	mux.Handle("POST /v1/accommodations/{id}/report", auth(http.HandlerFunc(ph.ReportAccommodation)))
	mux.Handle("POST /v1/accommodations/{id}/contact", auth(http.HandlerFunc(ph.ContactHost)))

	// Bookings — POST /v1/bookings additionally goes through PaymentCheck.
	mux.Handle("POST /v1/bookings", auth(payment(http.HandlerFunc(ph.CreateBooking))))
	mux.Handle("GET /v1/bookings", auth(http.HandlerFunc(ph.ListBookings)))
	mux.Handle("GET /v1/bookings/{id}", auth(http.HandlerFunc(ph.GetBooking)))
	mux.Handle("POST /v1/bookings/{id}/cancel", auth(http.HandlerFunc(ph.CancelBooking)))
	mux.Handle("POST /v1/bookings/{id}/check-in", auth(http.HandlerFunc(ph.CheckIn)))
	mux.Handle("POST /v1/bookings/{id}/policy", auth(http.HandlerFunc(ph.ApplyCancellationPolicy)))

	// Reviews and offers are publicly readable.
	mux.Handle("GET /v1/reviews/{id}", http.HandlerFunc(ph.GetReview))
	mux.Handle("GET /v1/offers/{id}", http.HandlerFunc(ph.GetOffer))

	// Platform state and the event log.
	mux.Handle("GET /v1/platform/stats", http.HandlerFunc(ph.GetStats))
	mux.Handle("GET /v1/events", http.HandlerFunc(ph.ListEvents))
	mux.Handle("GET /v1/events/live", http.HandlerFunc(hub.ServeWS))

	// Accounts and webhook subscriptions.
	mux.Handle("GET /v1/account/me", auth(http.HandlerFunc(ph.GetMe)))
	mux.Handle("POST /v1/subscriptions", auth(http.HandlerFunc(sh.CreateSubscription)))
	mux.Handle("GET /v1/subscriptions", auth(http.HandlerFunc(sh.ListSubscriptions)))
	mux.Handle("DELETE /v1/subscriptions/{id}", auth(http.HandlerFunc(sh.DeleteSubscription)))
}
