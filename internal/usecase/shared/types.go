package shared

import (
	"time"

	"github.com/google/uuid"
)

// Write-side snapshots keep commands off the read-side view types.
type PropertySnapshot struct {
	ID               uuid.UUID
	HostID           uuid.UUID
	Title            string
	NightlyRateCents int64
	CleaningFeeCents int64
	ServiceFeeCents  int64
	MaxGuests        int
	MinStayNights    int
	MaxStayNights    int
	Policy           string
	Status           string
}

type BookingSnapshot struct {
	ID         uuid.UUID
	PropertyID uuid.UUID
	GuestID    uuid.UUID
	HostID     uuid.UUID
	Status     string
	CheckIn    time.Time
	CheckOut   time.Time
}
