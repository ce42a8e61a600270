//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/domain/property"
	"stayhub/internal/domain/user"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/usecase/commands"
	"stayhub/internal/usecase/queries"
	"stayhub/internal/usecase/shared"
	"stayhub/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory UnitOfWork. Single-threaded tests, so the property lock is a
// presence check rather than a real lock.

type fakeStore struct {
	properties    map[uuid.UUID]*shared.PropertySnapshot
	bookings      map[uuid.UUID]*booking.Booking
	notifications []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		properties: make(map[uuid.UUID]*shared.PropertySnapshot),
		bookings:   make(map[uuid.UUID]*booking.Booking),
	}
}

type fakeUoW struct{ store *fakeStore }

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, &fakeTx{store: u.store})
}

func (u *fakeUoW) CommandReads() shared.CommandReads { return &fakeReads{store: u.store} }

type fakeTx struct{ store *fakeStore }

func (t *fakeTx) Bookings() shared.BookingRepository { return &fakeBookingRepo{store: t.store} }
func (t *fakeTx) Notifications() shared.NotificationRepository {
	return &fakeNotificationRepo{store: t.store}
}
func (t *fakeTx) Reads() shared.CommandReads { return &fakeReads{store: t.store} }

type fakeReads struct{ store *fakeStore }

func (r *fakeReads) PropertyByID(_ context.Context, id uuid.UUID) (*shared.PropertySnapshot, error) {
	snap, ok := r.store.properties[id]
	if !ok {
		return nil, infra.WrapRepoErr("property not found", nil, infra.KindNotFound)
	}
	return snap, nil
}

func (r *fakeReads) BookingByID(_ context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	b, ok := r.store.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return &shared.BookingSnapshot{
		ID:         b.ID(),
		PropertyID: b.PropertyID(),
		GuestID:    b.GuestID(),
		HostID:     b.HostID(),
		Status:     b.Status().String(),
		CheckIn:    b.Stay().CheckIn(),
		CheckOut:   b.Stay().CheckOut(),
	}, nil
}

type fakeBookingRepo struct{ store *fakeStore }

func (r *fakeBookingRepo) LockProperty(_ context.Context, propertyID uuid.UUID) error {
	if _, ok := r.store.properties[propertyID]; !ok {
		return infra.WrapRepoErr("property not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *fakeBookingRepo) OccupiedStays(_ context.Context, propertyID, exclude uuid.UUID) ([]booking.StayRange, error) {
	var stays []booking.StayRange
	for id, b := range r.store.bookings {
		if b.PropertyID() != propertyID || id == exclude {
			continue
		}
		if !b.Status().Occupies() {
			continue
		}
		stays = append(stays, b.Stay())
	}
	return stays, nil
}

func (r *fakeBookingRepo) Create(_ context.Context, b *booking.Booking) (uuid.UUID, error) {
	r.store.bookings[b.ID()] = b
	return b.ID(), nil
}

func (r *fakeBookingRepo) Update(_ context.Context, b *booking.Booking) error {
	if _, ok := r.store.bookings[b.ID()]; !ok {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	r.store.bookings[b.ID()] = b
	return nil
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	b, ok := r.store.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return b, nil
}

type fakeNotificationRepo struct{ store *fakeStore }

func (r *fakeNotificationRepo) CreateJob(_ context.Context, _, topic string, _ []byte, _ time.Time) error {
	r.store.notifications = append(r.store.notifications, topic)
	return nil
}

// fakeBookingQueries serves the read-after-write lookup from the same store.
type fakeBookingQueries struct{ store *fakeStore }

func (q *fakeBookingQueries) GetByIDSystem(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
	b, ok := q.store.bookings[id]
	if !ok {
		return nil, queries.ErrBookingNotFound
	}
	price := b.Price()
	return &queries.BookingView{
		ID:                      b.ID(),
		PropertyID:              b.PropertyID(),
		HostID:                  b.HostID(),
		GuestID:                 b.GuestID(),
		CheckIn:                 b.Stay().CheckIn(),
		CheckOut:                b.Stay().CheckOut(),
		Nights:                  b.Stay().Nights(),
		GuestCount:              b.GuestCount(),
		Status:                  b.Status().String(),
		BasePriceCents:          price.BasePrice.Cents(),
		CleaningFeeCents:        price.CleaningFee.Cents(),
		ServiceFeeCents:         price.ServiceFee.Cents(),
		SecurityDepositCents:    price.SecurityDeposit.Cents(),
		TotalPriceCents:         price.Total.Cents(),
		CancellationPolicy:      b.CancellationPolicy().String(),
		CancelledAt:             b.CancelledAt(),
		CancellationRefundCents: b.Refund().Cents(),
	}, nil
}

func (q *fakeBookingQueries) GetByID(ctx context.Context, _ uuid.UUID, _ user.Role, id uuid.UUID) (*queries.BookingView, error) {
	return q.GetByIDSystem(ctx, id)
}

func (q *fakeBookingQueries) ListForActor(context.Context, uuid.UUID, user.Role) ([]*queries.BookingListItem, error) {
	return nil, nil
}

func (q *fakeBookingQueries) QuotePrice(context.Context, queries.QuoteParams) (*queries.PriceQuote, error) {
	return nil, nil
}

type fixture struct {
	store *fakeStore
	clock *clock.MockClock
	uc    commands.BookingCommands
	terms *builder.TermsBuilder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := newFakeStore()
	clk := clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	terms := builder.NewTermsBuilder()
	store.properties[terms.ID] = terms.BuildSnapshot()

	uc := commands.NewBookingUseCase(&fakeUoW{store: store}, &fakeBookingQueries{store: store}, clk)
	return &fixture{store: store, clock: clk, uc: uc, terms: terms}
}

func (f *fixture) createParams(checkIn, checkOut string, guests int) commands.CreateBookingParams {
	in, _ := time.Parse(time.DateOnly, checkIn)
	out, _ := time.Parse(time.DateOnly, checkOut)
	return commands.CreateBookingParams{
		PropertyID: f.terms.ID,
		GuestID:    uuid.New(),
		CheckIn:    in,
		CheckOut:   out,
		GuestCount: guests,
	}
}

func TestCreateBooking(t *testing.T) {
	t.Run("pending booking with frozen price and policy", func(t *testing.T) {
		f := newFixture(t)

		view, err := f.uc.CreateBooking(context.Background(), f.createParams("2025-06-10", "2025-06-13", 2))
		require.NoError(t, err)

		assert.Equal(t, booking.StatusPending.String(), view.Status)
		assert.Equal(t, int64(30000), view.BasePriceCents)
		assert.Equal(t, int64(33000), view.TotalPriceCents)
		assert.Equal(t, int64(3000), view.SecurityDepositCents)
		assert.Equal(t, property.PolicyModerate.String(), view.CancellationPolicy)
		assert.Equal(t, []string{"booking_created"}, f.store.notifications)
	})

	t.Run("unknown property", func(t *testing.T) {
		f := newFixture(t)
		params := f.createParams("2025-06-10", "2025-06-13", 2)
		params.PropertyID = uuid.New()

		_, err := f.uc.CreateBooking(context.Background(), params)
		assert.ErrorIs(t, err, commands.ErrPropertyNotFound)
	})

	t.Run("inactive property", func(t *testing.T) {
		f := newFixture(t)
		f.store.properties[f.terms.ID].Status = property.StatusInactive.String()

		_, err := f.uc.CreateBooking(context.Background(), f.createParams("2025-06-10", "2025-06-13", 2))
		assert.ErrorIs(t, err, commands.ErrPropertyNotBookable)
	})

	t.Run("overlapping dates rejected", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.CreateBooking(context.Background(), f.createParams("2025-06-10", "2025-06-13", 2))
		require.NoError(t, err)

		_, err = f.uc.CreateBooking(context.Background(), f.createParams("2025-06-12", "2025-06-15", 2))
		assert.ErrorIs(t, err, commands.ErrDomainValidation)
		assert.ErrorIs(t, err, booking.ErrDateConflict)
	})

	t.Run("back to back stays allowed", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.CreateBooking(context.Background(), f.createParams("2025-06-10", "2025-06-13", 2))
		require.NoError(t, err)

		_, err = f.uc.CreateBooking(context.Background(), f.createParams("2025-06-13", "2025-06-16", 2))
		assert.NoError(t, err)
	})

	t.Run("cancelled stay frees the range", func(t *testing.T) {
		f := newFixture(t)
		first, err := f.uc.CreateBooking(context.Background(), f.createParams("2025-06-10", "2025-06-13", 2))
		require.NoError(t, err)

		_, err = f.uc.CancelBooking(context.Background(), first.ID, first.GuestID)
		require.NoError(t, err)

		_, err = f.uc.CreateBooking(context.Background(), f.createParams("2025-06-10", "2025-06-13", 2))
		assert.NoError(t, err)
	})

	t.Run("stay bounds violation carries the field", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.uc.CreateBooking(context.Background(), f.createParams("2025-06-10", "2025-06-11", 2))
		assert.ErrorIs(t, err, booking.ErrStayTooShort)

		var violation *booking.RuleViolation
		require.ErrorAs(t, err, &violation)
		assert.Equal(t, "check_out", violation.Field)
		assert.Equal(t, 2, violation.Limit)
	})
}

func TestConfirmBooking(t *testing.T) {
	t.Run("host confirms pending", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.uc.CreateBooking(context.Background(), f.createParams("2025-06-10", "2025-06-13", 2))
		require.NoError(t, err)

		view, err := f.uc.ConfirmBooking(context.Background(), created.ID, f.terms.HostID)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusConfirmed.String(), view.Status)
	})

	t.Run("guest cannot confirm", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.uc.CreateBooking(context.Background(), f.createParams("2025-06-10", "2025-06-13", 2))
		require.NoError(t, err)

		_, err = f.uc.ConfirmBooking(context.Background(), created.ID, created.GuestID)
		assert.ErrorIs(t, err, commands.ErrPermissionDenied)
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.ConfirmBooking(context.Background(), uuid.New(), f.terms.HostID)
		assert.ErrorIs(t, err, commands.ErrBookingNotFound)
	})
}

func TestCancelBooking(t *testing.T) {
	t.Run("moderate policy full refund far out", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.uc.CreateBooking(context.Background(), f.createParams("2025-06-10", "2025-06-13", 2))
		require.NoError(t, err)

		result, err := f.uc.CancelBooking(context.Background(), created.ID, created.GuestID)
		require.NoError(t, err)
		assert.Equal(t, created.TotalPriceCents, result.RefundCents)
		assert.Equal(t, booking.StatusCancelled.String(), result.Booking.Status)
	})

	t.Run("repeated cancel is a no-op with the recorded refund", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.uc.CreateBooking(context.Background(), f.createParams("2025-06-10", "2025-06-13", 2))
		require.NoError(t, err)

		first, err := f.uc.CancelBooking(context.Background(), created.ID, created.GuestID)
		require.NoError(t, err)
		firstCancelledAt := first.Booking.CancelledAt
		require.NotNil(t, firstCancelledAt)

		f.clock.Add(48 * time.Hour)

		second, err := f.uc.CancelBooking(context.Background(), created.ID, created.GuestID)
		require.NoError(t, err)
		assert.Equal(t, first.RefundCents, second.RefundCents)
		assert.Equal(t, firstCancelledAt, second.Booking.CancelledAt)

		// Only the first cancel enqueues a notification
		assert.Equal(t, []string{"booking_created", "booking_cancelled"}, f.store.notifications)
	})

	t.Run("stranger cannot cancel", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.uc.CreateBooking(context.Background(), f.createParams("2025-06-10", "2025-06-13", 2))
		require.NoError(t, err)

		_, err = f.uc.CancelBooking(context.Background(), created.ID, uuid.New())
		assert.ErrorIs(t, err, commands.ErrPermissionDenied)
	})

	t.Run("completed booking cannot be cancelled", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.uc.CreateBooking(context.Background(), f.createParams("2025-06-10", "2025-06-13", 2))
		require.NoError(t, err)

		_, err = f.uc.ConfirmBooking(context.Background(), created.ID, f.terms.HostID)
		require.NoError(t, err)

		f.clock.Set(time.Date(2025, 6, 14, 12, 0, 0, 0, time.UTC))
		_, err = f.uc.CompleteBooking(context.Background(), created.ID)
		require.NoError(t, err)

		_, err = f.uc.CancelBooking(context.Background(), created.ID, created.GuestID)
		assert.ErrorIs(t, err, booking.ErrInvalidTransition)
	})
}

func TestCompleteBooking(t *testing.T) {
	t.Run("before checkout is rejected", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.uc.CreateBooking(context.Background(), f.createParams("2025-06-10", "2025-06-13", 2))
		require.NoError(t, err)

		_, err = f.uc.CompleteBooking(context.Background(), created.ID)
		assert.ErrorIs(t, err, commands.ErrDomainValidation)
	})

	t.Run("pending completes directly after checkout", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.uc.CreateBooking(context.Background(), f.createParams("2025-06-10", "2025-06-13", 2))
		require.NoError(t, err)

		f.clock.Set(time.Date(2025, 6, 13, 0, 0, 0, 0, time.UTC))
		view, err := f.uc.CompleteBooking(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusCompleted.String(), view.Status)
	})
}

func TestRecalculatePrice(t *testing.T) {
	t.Run("reprices from current terms", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.uc.CreateBooking(context.Background(), f.createParams("2025-06-10", "2025-06-13", 2))
		require.NoError(t, err)
		require.Equal(t, int64(33000), created.TotalPriceCents)

		f.store.properties[f.terms.ID].NightlyRateCents = 15000

		view, err := f.uc.RecalculatePrice(context.Background(), created.ID, created.GuestID)
		require.NoError(t, err)
		assert.Equal(t, int64(45000), view.BasePriceCents)
		assert.Equal(t, int64(48000), view.TotalPriceCents)
	})

	t.Run("cancelled booking cannot be repriced", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.uc.CreateBooking(context.Background(), f.createParams("2025-06-10", "2025-06-13", 2))
		require.NoError(t, err)

		_, err = f.uc.CancelBooking(context.Background(), created.ID, created.GuestID)
		require.NoError(t, err)

		_, err = f.uc.RecalculatePrice(context.Background(), created.ID, created.GuestID)
		assert.ErrorIs(t, err, booking.ErrInvalidTransition)
	})
}
