package models

import "github.com/google/uuid"

// Accommodation is a listed stay. Its ID is the insertion index into the
// platform's accommodation collection and never changes; records are never
// removed, only mutated in place.
type Accommodation struct {
	ID        int       `json:"id"`
	Owner     uuid.UUID `json:"owner"`
	Details   string    `json:"details"`
	Price     int64     `json:"price"`
	Available bool      `json:"available"`
}
