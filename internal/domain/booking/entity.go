package booking

import (
	"time"

	"stayhub/internal/domain/property"

	"github.com/google/uuid"
)

type Booking struct {
	id                 uuid.UUID
	propertyID         uuid.UUID
	hostID             uuid.UUID
	guestID            uuid.UUID
	stay               StayRange
	guestCount         int
	status             Status
	price              PriceBreakdown
	cancellationPolicy property.CancellationPolicy
	cancelledAt        *time.Time
	cancellationRefund Money
	createdAt          time.Time
	updatedAt          time.Time
}

// NewBooking validates a proposal against the property's current terms,
// computes the price and captures the cancellation policy. Price and policy
// are frozen from here on; later property edits do not reach this booking.
// The date-conflict scan is the caller's job, inside the write transaction.
func NewBooking(
	terms *property.Terms,
	guestID uuid.UUID,
	stay StayRange,
	guestCount int,
	now time.Time,
) (*Booking, error) {
	if err := ValidateStay(terms, stay, guestCount); err != nil {
		return nil, err
	}

	return &Booking{
		id:                 uuid.New(),
		propertyID:         terms.ID(),
		hostID:             terms.HostID(),
		guestID:            guestID,
		stay:               stay,
		guestCount:         guestCount,
		status:             StatusPending,
		price:              CalculatePrice(terms, stay.Nights(), Money{}),
		cancellationPolicy: terms.CancellationPolicy(),
		createdAt:          now,
		updatedAt:          now,
	}, nil
}

func ReconstructBooking(
	id, propertyID, hostID, guestID uuid.UUID,
	stay StayRange,
	guestCount int,
	status Status,
	price PriceBreakdown,
	policy property.CancellationPolicy,
	cancelledAt *time.Time,
	cancellationRefund Money,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:                 id,
		propertyID:         propertyID,
		hostID:             hostID,
		guestID:            guestID,
		stay:               stay,
		guestCount:         guestCount,
		status:             status,
		price:              price,
		cancellationPolicy: policy,
		cancelledAt:        cancelledAt,
		cancellationRefund: cancellationRefund,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

// Confirm moves a pending booking to confirmed, on host action or on a
// successful payment callback.
func (b *Booking) Confirm(now time.Time) error {
	if b.status != StatusPending {
		return &RuleViolation{Rule: ErrInvalidTransition, Field: "status"}
	}
	b.status = StatusConfirmed
	b.updatedAt = now
	return nil
}

// Cancel moves the booking to cancelled and fixes cancelled_at and the
// refund in the same step; the three effects persist as one atomic write.
// Cancelling an already-cancelled booking is a no-op returning the refund
// recorded the first time. Cancelling a completed booking is an error.
func (b *Booking) Cancel(now time.Time) (Money, error) {
	if b.status == StatusCancelled {
		return b.cancellationRefund, nil
	}
	if !b.status.CanTransitionTo(StatusCancelled) {
		return Money{}, &RuleViolation{Rule: ErrInvalidTransition, Field: "status"}
	}

	b.status = StatusCancelled
	b.cancelledAt = &now
	b.cancellationRefund = RefundAmount(b.cancellationPolicy, b.price.Total, b.stay.DaysUntilCheckIn(now))
	b.updatedAt = now
	return b.cancellationRefund, nil
}

// Complete records the externally driven terminal state once checkout passed.
func (b *Booking) Complete(now time.Time) error {
	if !b.status.CanTransitionTo(StatusCompleted) {
		return &RuleViolation{Rule: ErrInvalidTransition, Field: "status"}
	}
	if !b.stay.EndedBy(now) {
		return &RuleViolation{Rule: ErrInvalidTransition, Field: "check_out"}
	}
	b.status = StatusCompleted
	b.updatedAt = now
	return nil
}

// RecalculatePrice overwrites the frozen price from the property's current
// terms. This is the single deliberate exception to freezing and only runs
// when explicitly invoked. An explicitly held deposit survives; a defaulted
// one is re-derived from the new base price.
func (b *Booking) RecalculatePrice(terms *property.Terms, now time.Time) error {
	if b.status.IsTerminal() {
		return &RuleViolation{Rule: ErrInvalidTransition, Field: "status"}
	}
	if err := ValidateStay(terms, b.stay, b.guestCount); err != nil {
		return err
	}
	deposit := b.price.SecurityDeposit
	if deposit == b.price.BasePrice.Percent(10) {
		// The 10% default, not an explicit hold; re-derive from the new base.
		deposit = Money{}
	}
	b.price = CalculatePrice(terms, b.stay.Nights(), deposit)
	b.updatedAt = now
	return nil
}

// Refund is zero unless the booking has been cancelled.
func (b *Booking) Refund() Money {
	if b.status != StatusCancelled {
		return Money{}
	}
	return b.cancellationRefund
}

func (b *Booking) ID() uuid.UUID          { return b.id }
func (b *Booking) PropertyID() uuid.UUID  { return b.propertyID }
func (b *Booking) HostID() uuid.UUID      { return b.hostID }
func (b *Booking) GuestID() uuid.UUID     { return b.guestID }
func (b *Booking) Stay() StayRange        { return b.stay }
func (b *Booking) GuestCount() int        { return b.guestCount }
func (b *Booking) Status() Status         { return b.status }
func (b *Booking) Price() PriceBreakdown  { return b.price }
func (b *Booking) CancelledAt() *time.Time {
	return b.cancelledAt
}
func (b *Booking) CancellationPolicy() property.CancellationPolicy { return b.cancellationPolicy }
func (b *Booking) CreatedAt() time.Time                            { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time                            { return b.updatedAt }
