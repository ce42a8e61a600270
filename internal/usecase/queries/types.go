package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type BookingView struct {
	ID                      uuid.UUID  `json:"id"`
	PropertyID              uuid.UUID  `json:"property_id"`
	PropertyTitle           string     `json:"property_title"`
	HostID                  uuid.UUID  `json:"host_id"`
	GuestID                 uuid.UUID  `json:"guest_id"`
	CheckIn                 time.Time  `json:"check_in"`
	CheckOut                time.Time  `json:"check_out"`
	Nights                  int        `json:"nights"`
	GuestCount              int        `json:"guest_count"`
	Status                  string     `json:"status"`
	BasePriceCents          int64      `json:"base_price_cents"`
	CleaningFeeCents        int64      `json:"cleaning_fee_cents"`
	ServiceFeeCents         int64      `json:"service_fee_cents"`
	SecurityDepositCents    int64      `json:"security_deposit_cents"`
	TotalPriceCents         int64      `json:"total_price_cents"`
	CancellationPolicy      string     `json:"cancellation_policy"`
	CancelledAt             *time.Time `json:"cancelled_at,omitempty"`
	CancellationRefundCents int64      `json:"cancellation_refund_cents"`
	CreatedAt               time.Time  `json:"created_at"`
	UpdatedAt               time.Time  `json:"updated_at"`
}

type BookingListItem struct {
	ID              uuid.UUID `json:"id"`
	PropertyID      uuid.UUID `json:"property_id"`
	PropertyTitle   string    `json:"property_title"`
	CheckIn         time.Time `json:"check_in"`
	CheckOut        time.Time `json:"check_out"`
	GuestCount      int       `json:"guest_count"`
	Status          string    `json:"status"`
	TotalPriceCents int64     `json:"total_price_cents"`
	CreatedAt       time.Time `json:"created_at"`
}

type PropertyView struct {
	ID               uuid.UUID `json:"id"`
	HostID           uuid.UUID `json:"host_id"`
	Title            string    `json:"title"`
	NightlyRateCents int64     `json:"nightly_rate_cents"`
	CleaningFeeCents int64     `json:"cleaning_fee_cents"`
	ServiceFeeCents  int64     `json:"service_fee_cents"`
	MaxGuests        int       `json:"max_guests"`
	MinStayNights    int       `json:"min_stay_nights"`
	MaxStayNights    int       `json:"max_stay_nights"`
	Policy           string    `json:"cancellation_policy"`
	Status           string    `json:"status"`
}

// PriceQuote is a non-persisted preview of a stay's price breakdown.
type PriceQuote struct {
	Nights               int   `json:"nights"`
	BasePriceCents       int64 `json:"base_price_cents"`
	CleaningFeeCents     int64 `json:"cleaning_fee_cents"`
	ServiceFeeCents      int64 `json:"service_fee_cents"`
	SecurityDepositCents int64 `json:"security_deposit_cents"`
	TotalPriceCents      int64 `json:"total_price_cents"`
}
