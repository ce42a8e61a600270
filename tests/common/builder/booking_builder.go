//go:build unit

package builder

import (
	"time"

	dombooking "stayhub/internal/domain/booking"
	reqdto "stayhub/internal/handler/dto/request"
	"stayhub/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	Terms      *TermsBuilder
	GuestID    uuid.UUID
	CheckIn    time.Time
	CheckOut   time.Time
	GuestCount int
	Now        time.Time
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		Terms:      NewTermsBuilder(),
		GuestID:    uuid.New(),
		CheckIn:    time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2025, 6, 13, 0, 0, 0, 0, time.UTC),
		GuestCount: 2,
		Now:        now,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) WithStay(checkIn, checkOut time.Time) *BookingBuilder {
	b.CheckIn = checkIn
	b.CheckOut = checkOut
	return b
}

func (b *BookingBuilder) WithNights(nights int) *BookingBuilder {
	b.CheckOut = b.CheckIn.AddDate(0, 0, nights)
	return b
}

func (b *BookingBuilder) WithGuestCount(n int) *BookingBuilder {
	b.GuestCount = n
	return b
}

func (b *BookingBuilder) BuildDomain() (*dombooking.Booking, error) {
	terms, err := b.Terms.BuildDomain()
	if err != nil {
		return nil, err
	}
	stay, err := dombooking.NewStayRange(b.CheckIn, b.CheckOut)
	if err != nil {
		return nil, err
	}
	return dombooking.NewBooking(terms, b.GuestID, stay, b.GuestCount, b.Now)
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	nights := int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
	base := b.Terms.NightlyRateCents * int64(nights)
	total := base + b.Terms.CleaningFeeCents + b.Terms.ServiceFeeCents
	return &queries.BookingView{
		ID:                   uuid.New(),
		PropertyID:           b.Terms.ID,
		PropertyTitle:        b.Terms.Title,
		HostID:               b.Terms.HostID,
		GuestID:              b.GuestID,
		CheckIn:              b.CheckIn,
		CheckOut:             b.CheckOut,
		Nights:               nights,
		GuestCount:           b.GuestCount,
		Status:               dombooking.StatusPending.String(),
		BasePriceCents:       base,
		CleaningFeeCents:     b.Terms.CleaningFeeCents,
		ServiceFeeCents:      b.Terms.ServiceFeeCents,
		SecurityDepositCents: base / 10,
		TotalPriceCents:      total,
		CancellationPolicy:   string(b.Terms.Policy),
		CreatedAt:            b.Now,
		UpdatedAt:            b.Now,
	}
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		PropertyID: b.Terms.ID,
		CheckIn:    b.CheckIn.Format(time.DateOnly),
		CheckOut:   b.CheckOut.Format(time.DateOnly),
		GuestCount: b.GuestCount,
	}
}
