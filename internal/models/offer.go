package models

// SpecialOffer is descriptive data for external consumers: the validity
// window is not enforced anywhere, offers never expire automatically.
type SpecialOffer struct {
	ID              int   `json:"id"`
	AccommodationID int   `json:"accommodation_id"`
	DiscountPct     int   `json:"discount_pct"`
	Start           int64 `json:"start"`
	End             int64 `json:"end"`
}
