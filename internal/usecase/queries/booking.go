package queries

import (
	"context"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/domain/property"
	"stayhub/internal/domain/user"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound  = errs.New("booking not found")
	ErrPropertyNotFound = errs.New("property not found")
	ErrAccessDenied     = errs.New("access denied")
)

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByGuestID(ctx context.Context, guestID uuid.UUID) ([]*BookingListItem, error)
	FindByHostID(ctx context.Context, hostID uuid.UUID) ([]*BookingListItem, error)
}

type PropertyReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PropertyView, error)
}

type QuoteParams struct {
	PropertyID uuid.UUID
	CheckIn    time.Time
	CheckOut   time.Time
	GuestCount int
}

type BookingQueries interface {
	GetByID(ctx context.Context, actorID uuid.UUID, role user.Role, id uuid.UUID) (*BookingView, error)
	// GetByIDSystem skips the actor check, for internal read-after-write.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListForActor(ctx context.Context, actorID uuid.UUID, role user.Role) ([]*BookingListItem, error)
	// QuotePrice previews a stay's price without persisting anything. It runs
	// the date/stay/capacity validation but no conflict scan, since no range
	// is being claimed.
	QuotePrice(ctx context.Context, params QuoteParams) (*PriceQuote, error)
}

type bookingQueriesImpl struct {
	bookings   BookingReadStore
	properties PropertyReadStore
}

func NewBookingQueries(bookings BookingReadStore, properties PropertyReadStore) BookingQueries {
	return &bookingQueriesImpl{bookings: bookings, properties: properties}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actorID uuid.UUID, role user.Role, id uuid.UUID) (*BookingView, error) {
	view, err := q.bookings.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if role != user.RoleAdmin && actorID != view.GuestID && actorID != view.HostID {
		return nil, ErrAccessDenied
	}
	return view, nil
}

func (q *bookingQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, err := q.bookings.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return view, nil
}

// Hosts see bookings taken on their properties; everyone else sees their own.
func (q *bookingQueriesImpl) ListForActor(ctx context.Context, actorID uuid.UUID, role user.Role) ([]*BookingListItem, error) {
	if role == user.RoleHost {
		return q.bookings.FindByHostID(ctx, actorID)
	}
	return q.bookings.FindByGuestID(ctx, actorID)
}

func (q *bookingQueriesImpl) QuotePrice(ctx context.Context, params QuoteParams) (*PriceQuote, error) {
	view, err := q.properties.FindByID(ctx, params.PropertyID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}

	terms, err := TermsFromView(view)
	if err != nil {
		return nil, err
	}

	stay, err := booking.NewStayRange(params.CheckIn, params.CheckOut)
	if err != nil {
		return nil, err
	}
	if err := booking.ValidateStay(terms, stay, params.GuestCount); err != nil {
		return nil, err
	}

	price := booking.CalculatePrice(terms, stay.Nights(), booking.Money{})
	return &PriceQuote{
		Nights:               stay.Nights(),
		BasePriceCents:       price.BasePrice.Cents(),
		CleaningFeeCents:     price.CleaningFee.Cents(),
		ServiceFeeCents:      price.ServiceFee.Cents(),
		SecurityDepositCents: price.SecurityDeposit.Cents(),
		TotalPriceCents:      price.Total.Cents(),
	}, nil
}

func TermsFromView(v *PropertyView) (*property.Terms, error) {
	policy, err := property.NewCancellationPolicy(v.Policy)
	if err != nil {
		return nil, err
	}
	status, err := property.NewStatus(v.Status)
	if err != nil {
		return nil, err
	}
	return property.NewTerms(
		v.ID, v.HostID, v.Title,
		v.NightlyRateCents, v.CleaningFeeCents, v.ServiceFeeCents,
		v.MaxGuests, v.MinStayNights, v.MaxStayNights,
		policy, status,
	)
}
