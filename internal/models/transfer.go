package models

import "github.com/google/uuid"

// Transfer kinds.
const (
	TransferOwnerPayout = "owner_payout"
	TransferRefund      = "refund"
	TransferChange      = "change"
)

// Transfer is an outbound value movement recorded by a transition and
// applied by the executor once the transition commits. Change transfers
// return booking surplus to the caller; that value never enters the ledger
// balance.
type Transfer struct {
	To     uuid.UUID `json:"to"`
	Amount int64     `json:"amount"`
	Kind   string    `json:"kind"`
}
