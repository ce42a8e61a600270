package response

import (
	"time"

	"stayhub/internal/usecase/commands"
	"stayhub/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID                      uuid.UUID  `json:"id"`
	PropertyID              uuid.UUID  `json:"propertyId"`
	PropertyTitle           string     `json:"propertyTitle"`
	HostID                  uuid.UUID  `json:"hostId"`
	GuestID                 uuid.UUID  `json:"guestId"`
	CheckIn                 string     `json:"checkIn"`
	CheckOut                string     `json:"checkOut"`
	Nights                  int        `json:"nights"`
	GuestCount              int        `json:"guestCount"`
	Status                  string     `json:"status"`
	BasePriceCents          int64      `json:"basePriceCents"`
	CleaningFeeCents        int64      `json:"cleaningFeeCents"`
	ServiceFeeCents         int64      `json:"serviceFeeCents"`
	SecurityDepositCents    int64      `json:"securityDepositCents"`
	TotalPriceCents         int64      `json:"totalPriceCents"`
	CancellationPolicy      string     `json:"cancellationPolicy"`
	CancelledAt             *time.Time `json:"cancelledAt,omitempty"`
	CancellationRefundCents int64      `json:"cancellationRefundCents"`
	CreatedAt               time.Time  `json:"createdAt"`
	UpdatedAt               time.Time  `json:"updatedAt"`
}

type BookingListResponse struct {
	ID              uuid.UUID `json:"id"`
	PropertyID      uuid.UUID `json:"propertyId"`
	PropertyTitle   string    `json:"propertyTitle"`
	CheckIn         string    `json:"checkIn"`
	CheckOut        string    `json:"checkOut"`
	GuestCount      int       `json:"guestCount"`
	Status          string    `json:"status"`
	TotalPriceCents int64     `json:"totalPriceCents"`
	CreatedAt       time.Time `json:"createdAt"`
}

type CancelBookingResponse struct {
	Booking     *BookingResponse `json:"booking"`
	RefundCents int64            `json:"refundCents"`
}

type QuoteResponse struct {
	Nights               int   `json:"nights"`
	BasePriceCents       int64 `json:"basePriceCents"`
	CleaningFeeCents     int64 `json:"cleaningFeeCents"`
	ServiceFeeCents      int64 `json:"serviceFeeCents"`
	SecurityDepositCents int64 `json:"securityDepositCents"`
	TotalPriceCents      int64 `json:"totalPriceCents"`
}

func FromBookingView(rm *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:                      rm.ID,
		PropertyID:              rm.PropertyID,
		PropertyTitle:           rm.PropertyTitle,
		HostID:                  rm.HostID,
		GuestID:                 rm.GuestID,
		CheckIn:                 rm.CheckIn.Format(time.DateOnly),
		CheckOut:                rm.CheckOut.Format(time.DateOnly),
		Nights:                  rm.Nights,
		GuestCount:              rm.GuestCount,
		Status:                  rm.Status,
		BasePriceCents:          rm.BasePriceCents,
		CleaningFeeCents:        rm.CleaningFeeCents,
		ServiceFeeCents:         rm.ServiceFeeCents,
		SecurityDepositCents:    rm.SecurityDepositCents,
		TotalPriceCents:         rm.TotalPriceCents,
		CancellationPolicy:      rm.CancellationPolicy,
		CancelledAt:             rm.CancelledAt,
		CancellationRefundCents: rm.CancellationRefundCents,
		CreatedAt:               rm.CreatedAt,
		UpdatedAt:               rm.UpdatedAt,
	}
}

func FromBookingListItem(rm *queries.BookingListItem) *BookingListResponse {
	return &BookingListResponse{
		ID:              rm.ID,
		PropertyID:      rm.PropertyID,
		PropertyTitle:   rm.PropertyTitle,
		CheckIn:         rm.CheckIn.Format(time.DateOnly),
		CheckOut:        rm.CheckOut.Format(time.DateOnly),
		GuestCount:      rm.GuestCount,
		Status:          rm.Status,
		TotalPriceCents: rm.TotalPriceCents,
		CreatedAt:       rm.CreatedAt,
	}
}

func FromCancelResult(result *commands.CancelBookingResult) *CancelBookingResponse {
	return &CancelBookingResponse{
		Booking:     FromBookingView(result.Booking),
		RefundCents: result.RefundCents,
	}
}

func FromPriceQuote(quote *queries.PriceQuote) *QuoteResponse {
	return &QuoteResponse{
		Nights:               quote.Nights,
		BasePriceCents:       quote.BasePriceCents,
		CleaningFeeCents:     quote.CleaningFeeCents,
		ServiceFeeCents:      quote.ServiceFeeCents,
		SecurityDepositCents: quote.SecurityDepositCents,
		TotalPriceCents:      quote.TotalPriceCents,
	}
}
