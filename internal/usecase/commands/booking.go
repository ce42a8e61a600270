package commands

import (
	"context"
	"encoding/json"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/domain/property"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/queries"
	"stayhub/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrPropertyNotFound        = errs.New("property not found")
	ErrPropertyNotBookable     = errs.New("property is not accepting bookings")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrPermissionDenied        = errs.New("actor may not act on this booking")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type CreateBookingParams struct {
	PropertyID uuid.UUID
	GuestID    uuid.UUID
	CheckIn    time.Time
	CheckOut   time.Time
	GuestCount int
}

type CancelBookingResult struct {
	Booking     *queries.BookingView
	RefundCents int64
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, params CreateBookingParams) (*queries.BookingView, error)
	ConfirmBooking(ctx context.Context, bookingID, actorID uuid.UUID) (*queries.BookingView, error)
	CancelBooking(ctx context.Context, bookingID, actorID uuid.UUID) (*CancelBookingResult, error)
	CompleteBooking(ctx context.Context, bookingID uuid.UUID) (*queries.BookingView, error)
	RecalculatePrice(ctx context.Context, bookingID, actorID uuid.UUID) (*queries.BookingView, error)
}

type bookingUseCaseImpl struct {
	uow            shared.UnitOfWork
	bookingQueries queries.BookingQueries
	clock          clock.Clock
}

func NewBookingUseCase(
	uow shared.UnitOfWork,
	bookingQueries queries.BookingQueries,
	clk clock.Clock,
) BookingCommands {
	return &bookingUseCaseImpl{
		uow:            uow,
		bookingQueries: bookingQueries,
		clock:          clk,
	}
}

// CreateBooking validates the proposal against current property terms, then
// claims the date range inside a transaction: property row lock, conflict
// scan over pending/confirmed stays, insert. Two racing requests serialize
// on the lock, so the second observes the first's row and fails with a
// date conflict rather than double booking.
func (u *bookingUseCaseImpl) CreateBooking(ctx context.Context, params CreateBookingParams) (*queries.BookingView, error) {
	terms, err := u.loadTerms(ctx, u.uow.CommandReads(), params.PropertyID)
	if err != nil {
		return nil, err
	}
	if !terms.IsBookable() {
		return nil, ErrPropertyNotBookable
	}

	stay, err := booking.NewStayRange(params.CheckIn, params.CheckOut)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	entity, err := booking.NewBooking(terms, params.GuestID, stay, params.GuestCount, u.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	var bookingID uuid.UUID
	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := u.guardConflicts(ctx, tx, entity.PropertyID(), stay, uuid.Nil); err != nil {
			return err
		}

		id, err := tx.Bookings().Create(ctx, entity)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		bookingID = id

		return u.enqueueNotification(ctx, tx, "booking_created", id)
	})
	if err != nil {
		return nil, err
	}

	return u.bookingQueries.GetByIDSystem(ctx, bookingID)
}

// ConfirmBooking is the host action (or the payment-success callback) moving
// a pending booking to confirmed. Bounds and conflicts are re-checked on
// this save as on any other, so stale rows cannot slip through a status flip.
func (u *bookingUseCaseImpl) ConfirmBooking(ctx context.Context, bookingID, actorID uuid.UUID) (*queries.BookingView, error) {
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		entity, err := u.loadBooking(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if actorID != entity.HostID() {
			return ErrPermissionDenied
		}

		if err := u.revalidate(ctx, tx, entity); err != nil {
			return err
		}
		if err := entity.Confirm(u.clock.Now()); err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		return u.saveBooking(ctx, tx, entity)
	})
	if err != nil {
		return nil, err
	}

	return u.bookingQueries.GetByIDSystem(ctx, bookingID)
}

// CancelBooking cancels on behalf of the guest or the host. Status,
// cancelled_at and the refund persist as one UPDATE; a repeated cancel is a
// no-op that reports the originally recorded refund.
func (u *bookingUseCaseImpl) CancelBooking(ctx context.Context, bookingID, actorID uuid.UUID) (*CancelBookingResult, error) {
	var refund booking.Money
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		entity, err := u.loadBooking(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if actorID != entity.GuestID() && actorID != entity.HostID() {
			return ErrPermissionDenied
		}

		alreadyCancelled := entity.Status() == booking.StatusCancelled

		refund, err = entity.Cancel(u.clock.Now())
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}
		if alreadyCancelled {
			return nil
		}

		if err := u.saveBooking(ctx, tx, entity); err != nil {
			return err
		}
		return u.enqueueNotification(ctx, tx, "booking_cancelled", bookingID)
	})
	if err != nil {
		return nil, err
	}

	view, err := u.bookingQueries.GetByIDSystem(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return &CancelBookingResult{Booking: view, RefundCents: refund.Cents()}, nil
}

// CompleteBooking records the externally driven completion once checkout
// has passed; the sweep that triggers it lives outside this service.
func (u *bookingUseCaseImpl) CompleteBooking(ctx context.Context, bookingID uuid.UUID) (*queries.BookingView, error) {
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		entity, err := u.loadBooking(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if err := entity.Complete(u.clock.Now()); err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}
		return u.saveBooking(ctx, tx, entity)
	})
	if err != nil {
		return nil, err
	}

	return u.bookingQueries.GetByIDSystem(ctx, bookingID)
}

// RecalculatePrice reprices a live booking from the property's current
// terms. This is the explicit escape hatch from price freezing.
func (u *bookingUseCaseImpl) RecalculatePrice(ctx context.Context, bookingID, actorID uuid.UUID) (*queries.BookingView, error) {
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		entity, err := u.loadBooking(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if actorID != entity.GuestID() && actorID != entity.HostID() {
			return ErrPermissionDenied
		}

		terms, err := u.loadTerms(ctx, tx.Reads(), entity.PropertyID())
		if err != nil {
			return err
		}
		if err := entity.RecalculatePrice(terms, u.clock.Now()); err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}
		return u.saveBooking(ctx, tx, entity)
	})
	if err != nil {
		return nil, err
	}

	return u.bookingQueries.GetByIDSystem(ctx, bookingID)
}

func (u *bookingUseCaseImpl) guardConflicts(ctx context.Context, tx shared.Tx, propertyID uuid.UUID, stay booking.StayRange, exclude uuid.UUID) error {
	if err := tx.Bookings().LockProperty(ctx, propertyID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrPropertyNotFound
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	occupied, err := tx.Bookings().OccupiedStays(ctx, propertyID, exclude)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := booking.CheckConflict(stay, occupied); err != nil {
		return errs.Mark(err, ErrDomainValidation)
	}
	return nil
}

// revalidate re-runs the full invariant set for an existing booking before a
// mutating save: stay bounds and capacity against current terms, plus the
// conflict scan excluding the booking itself.
func (u *bookingUseCaseImpl) revalidate(ctx context.Context, tx shared.Tx, entity *booking.Booking) error {
	terms, err := u.loadTerms(ctx, tx.Reads(), entity.PropertyID())
	if err != nil {
		return err
	}
	if err := booking.ValidateStay(terms, entity.Stay(), entity.GuestCount()); err != nil {
		return errs.Mark(err, ErrDomainValidation)
	}
	return u.guardConflicts(ctx, tx, entity.PropertyID(), entity.Stay(), entity.ID())
}

func (u *bookingUseCaseImpl) loadBooking(ctx context.Context, tx shared.Tx, id uuid.UUID) (*booking.Booking, error) {
	entity, err := tx.Bookings().FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return entity, nil
}

func (u *bookingUseCaseImpl) saveBooking(ctx context.Context, tx shared.Tx, entity *booking.Booking) error {
	if err := tx.Bookings().Update(ctx, entity); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func (u *bookingUseCaseImpl) loadTerms(ctx context.Context, reads shared.CommandReads, propertyID uuid.UUID) (*property.Terms, error) {
	snapshot, err := reads.PropertyByID(ctx, propertyID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return termsFromSnapshot(snapshot)
}

func (u *bookingUseCaseImpl) enqueueNotification(ctx context.Context, tx shared.Tx, topic string, bookingID uuid.UUID) error {
	payload, err := json.Marshal(map[string]any{
		"booking_id": bookingID,
		"type":       topic,
	})
	if err != nil {
		return err
	}
	if err := tx.Notifications().CreateJob(ctx, "email", topic, payload, u.clock.Now()); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func termsFromSnapshot(s *shared.PropertySnapshot) (*property.Terms, error) {
	policy, err := property.NewCancellationPolicy(s.Policy)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	status, err := property.NewStatus(s.Status)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	terms, err := property.NewTerms(
		s.ID, s.HostID, s.Title,
		s.NightlyRateCents, s.CleaningFeeCents, s.ServiceFeeCents,
		s.MaxGuests, s.MinStayNights, s.MaxStayNights,
		policy, status,
	)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	return terms, nil
}
