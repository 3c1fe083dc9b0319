package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

type contextKey string

const (
	ctxAddressKey contextKey = "address"
	ctxRoleKey    contextKey = "role"
)

// TokenValidator resolves a bearer token to a caller address and role.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (uuid.UUID, string, error)
}

// TokenAuth authenticates requests by validating the Bearer token and
// setting the caller address and role into request context. Every
// transition handler reads the caller from context, never from the body.
func TokenAuth(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := extractBearer(r)
			if raw == "" {
				http.Error(w, `{"error":"missing or malformed Authorization header"}`, http.StatusUnauthorized)
				return
			}

			addr, role, err := validator.ValidateToken(r.Context(), raw)
			if err != nil {
				http.Error(w, `{"error":"invalid token"}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), ctxAddressKey, addr)
			ctx = context.WithValue(ctx, ctxRoleKey, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AddressFromCtx returns the authenticated caller address, or uuid.Nil.
func AddressFromCtx(ctx context.Context) uuid.UUID {
	addr, _ := ctx.Value(ctxAddressKey).(uuid.UUID)
	return addr
}

// WithAddress returns a context carrying the given caller address.
func WithAddress(ctx context.Context, addr uuid.UUID) context.Context {
	return context.WithValue(ctx, ctxAddressKey, addr)
}

// RoleFromCtx returns the authenticated caller's role, or "".
func RoleFromCtx(ctx context.Context) string {
	role, _ := ctx.Value(ctxRoleKey).(string)
	return role
}

// WithRole returns a context carrying the given role.
func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, ctxRoleKey, role)
}

func extractBearer(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
