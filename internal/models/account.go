package models

import (
	"time"

	"github.com/google/uuid"
)

// Account roles.
const (
	RoleHost     = "host"
	RoleTraveler = "traveler"
)

// Account is the executor-side record for a caller address. The account ID
// doubles as the address the ledger sees; BalanceCents only tracks value the
// executor has paid out (payouts, refunds, change) — actual wallets are an
// external concern.
type Account struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name"`
	Role         string    `json:"role"`
	BalanceCents int64     `json:"balance_cents"`
	CreatedAt    time.Time `json:"created_at"`
}
