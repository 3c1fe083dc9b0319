package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
)

const ctxPaymentKey contextKey = "parsed_payment"

// parsedPayment is stored in context so the handler can read the payment
// without re-parsing the body.
type parsedPayment struct {
	Payment int64 `json:"payment"`
}

// PaymentFromCtx returns the payment parsed by PaymentCheck, or 0 if not set.
func PaymentFromCtx(ctx context.Context) int64 {
	if p, ok := ctx.Value(ctxPaymentKey).(*parsedPayment); ok {
		return p.Payment
	}
	return 0
}

// PaymentCheck rejects booking requests carrying a non-positive payment
// before they reach the ledger. Reads the body to extract "payment", then
// replaces r.Body so downstream handlers can re-read it.
func PaymentCheck() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if AddressFromCtx(r.Context()) == uuid.Nil {
				http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
				return
			}

			bodyBytes, err := io.ReadAll(r.Body)
			r.Body.Close()
			if err != nil {
				http.Error(w, `{"error":"failed to read body"}`, http.StatusBadRequest)
				return
			}
			// Restore body for the handler.
			r.Body = io.NopCloser(bytes.NewReader(bodyBytes))

			var peek parsedPayment
			if err := json.Unmarshal(bodyBytes, &peek); err != nil {
				http.Error(w, `{"error":"invalid JSON body"}`, http.StatusBadRequest)
				return
			}
			if peek.Payment <= 0 {
				http.Error(w, `{"error":"payment must be > 0"}`, http.StatusBadRequest)
				return
			}

			ctx := context.WithValue(r.Context(), ctxPaymentKey, &peek)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
