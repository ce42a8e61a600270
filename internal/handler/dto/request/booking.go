package request

import (
	"time"

	"stayhub/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrInvalidDateFormat = errs.New("dates must be YYYY-MM-DD")

type CreateBookingRequest struct {
	PropertyID uuid.UUID `json:"property_id" binding:"required"`
	CheckIn    string    `json:"check_in" binding:"required"`
	CheckOut   string    `json:"check_out" binding:"required"`
	GuestCount int       `json:"guest_count" binding:"required,min=1"`
}

// ParseDates turns the wire dates into UTC midnights. Range validation is
// the domain's job; this only rejects malformed strings.
func (r CreateBookingRequest) ParseDates() (checkIn, checkOut time.Time, err error) {
	return parseDatePair(r.CheckIn, r.CheckOut)
}

type QuoteRequest struct {
	PropertyID uuid.UUID `json:"property_id" binding:"required"`
	CheckIn    string    `json:"check_in" binding:"required"`
	CheckOut   string    `json:"check_out" binding:"required"`
	GuestCount int       `json:"guest_count" binding:"required,min=1"`
}

func (r QuoteRequest) ParseDates() (checkIn, checkOut time.Time, err error) {
	return parseDatePair(r.CheckIn, r.CheckOut)
}

func parseDatePair(in, out string) (time.Time, time.Time, error) {
	checkIn, err := time.ParseInLocation(time.DateOnly, in, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDateFormat
	}
	checkOut, err := time.ParseInLocation(time.DateOnly, out, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDateFormat
	}
	return checkIn, checkOut, nil
}
