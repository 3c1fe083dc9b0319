package router

import (
	"net/http"

	"github.com/stayledger/backend/internal/auth"
)

// New returns an http.Handler that serves the account API under /api/v1.
// The ledger endpoints themselves live under /v1 and are registered in
// cmd/api.
func New(authHandler *auth.Handler) http.Handler {
	mux := http.NewServeMux()
	base := "/api/v1"
	mux.HandleFunc(base+"/auth/register", authHandler.Register)
	mux.HandleFunc(base+"/auth/login", authHandler.Login)
	return mux
}
