//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/domain/user"
	"stayhub/internal/infra"
	"stayhub/internal/usecase/queries"
	"stayhub/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBookingReads struct {
	views map[uuid.UUID]*queries.BookingView
	byGuest map[uuid.UUID][]*queries.BookingListItem
	byHost  map[uuid.UUID][]*queries.BookingListItem
}

func (s *stubBookingReads) FindByID(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
	view, ok := s.views[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return view, nil
}

func (s *stubBookingReads) FindByGuestID(_ context.Context, guestID uuid.UUID) ([]*queries.BookingListItem, error) {
	return s.byGuest[guestID], nil
}

func (s *stubBookingReads) FindByHostID(_ context.Context, hostID uuid.UUID) ([]*queries.BookingListItem, error) {
	return s.byHost[hostID], nil
}

type stubPropertyReads struct {
	views map[uuid.UUID]*queries.PropertyView
}

func (s *stubPropertyReads) FindByID(_ context.Context, id uuid.UUID) (*queries.PropertyView, error) {
	view, ok := s.views[id]
	if !ok {
		return nil, infra.WrapRepoErr("property not found", nil, infra.KindNotFound)
	}
	return view, nil
}

func TestGetByID(t *testing.T) {
	view := builder.NewBookingBuilder().BuildView()
	bookings := &stubBookingReads{views: map[uuid.UUID]*queries.BookingView{view.ID: view}}
	q := queries.NewBookingQueries(bookings, &stubPropertyReads{})

	cases := []struct {
		name    string
		actorID uuid.UUID
		role    user.Role
		wantErr error
	}{
		{name: "guest sees own booking", actorID: view.GuestID, role: user.RoleGuest},
		{name: "host sees booking on own property", actorID: view.HostID, role: user.RoleHost},
		{name: "admin sees any booking", actorID: uuid.New(), role: user.RoleAdmin},
		{name: "stranger is denied", actorID: uuid.New(), role: user.RoleGuest, wantErr: queries.ErrAccessDenied},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := q.GetByID(context.Background(), tc.actorID, tc.role, view.ID)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, view.ID, got.ID)
		})
	}

	t.Run("missing booking", func(t *testing.T) {
		_, err := q.GetByID(context.Background(), view.GuestID, user.RoleGuest, uuid.New())
		assert.ErrorIs(t, err, queries.ErrBookingNotFound)
	})
}

func TestListForActor(t *testing.T) {
	actorID := uuid.New()
	guestItems := []*queries.BookingListItem{{ID: uuid.New()}}
	hostItems := []*queries.BookingListItem{{ID: uuid.New()}, {ID: uuid.New()}}

	bookings := &stubBookingReads{
		byGuest: map[uuid.UUID][]*queries.BookingListItem{actorID: guestItems},
		byHost:  map[uuid.UUID][]*queries.BookingListItem{actorID: hostItems},
	}
	q := queries.NewBookingQueries(bookings, &stubPropertyReads{})

	t.Run("guest lists own bookings", func(t *testing.T) {
		got, err := q.ListForActor(context.Background(), actorID, user.RoleGuest)
		require.NoError(t, err)
		assert.Equal(t, guestItems, got)
	})

	t.Run("host lists bookings on own properties", func(t *testing.T) {
		got, err := q.ListForActor(context.Background(), actorID, user.RoleHost)
		require.NoError(t, err)
		assert.Equal(t, hostItems, got)
	})
}

func TestQuotePrice(t *testing.T) {
	terms := builder.NewTermsBuilder()
	properties := &stubPropertyReads{
		views: map[uuid.UUID]*queries.PropertyView{terms.ID: terms.BuildPropertyView()},
	}
	q := queries.NewBookingQueries(&stubBookingReads{}, properties)

	params := func(nights, guests int) queries.QuoteParams {
		checkIn := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
		return queries.QuoteParams{
			PropertyID: terms.ID,
			CheckIn:    checkIn,
			CheckOut:   checkIn.AddDate(0, 0, nights),
			GuestCount: guests,
		}
	}

	t.Run("reference three night stay", func(t *testing.T) {
		quote, err := q.QuotePrice(context.Background(), params(3, 2))
		require.NoError(t, err)

		assert.Equal(t, 3, quote.Nights)
		assert.Equal(t, int64(30000), quote.BasePriceCents)
		assert.Equal(t, int64(33000), quote.TotalPriceCents)
		assert.Equal(t, int64(3000), quote.SecurityDepositCents)
	})

	t.Run("quote validates stay bounds", func(t *testing.T) {
		_, err := q.QuotePrice(context.Background(), params(1, 2))
		assert.ErrorIs(t, err, booking.ErrStayTooShort)
	})

	t.Run("quote validates capacity", func(t *testing.T) {
		_, err := q.QuotePrice(context.Background(), params(3, 9))
		assert.ErrorIs(t, err, booking.ErrCapacityExceeded)
	})

	t.Run("unknown property", func(t *testing.T) {
		p := params(3, 2)
		p.PropertyID = uuid.New()
		_, err := q.QuotePrice(context.Background(), p)
		assert.ErrorIs(t, err, queries.ErrPropertyNotFound)
	})
}
