package readstore

import (
	"context"

	"stayhub/internal/infra"
	"stayhub/internal/infra/db"
	"stayhub/internal/pkg/pgconv"
	"stayhub/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

const bookingViewColumns = `
	b.id, b.property_id, p.title, p.host_id, b.guest_id,
	b.check_in, b.check_out, b.guest_count, b.status,
	b.base_price, b.cleaning_fee, b.service_fee, b.security_deposit, b.total_price,
	b.cancellation_policy, b.cancelled_at, b.cancellation_refund,
	b.created_at, b.updated_at`

func (s *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	query := `
		SELECT` + bookingViewColumns + `
		FROM bookings b
		JOIN properties p ON p.id = b.property_id
		WHERE b.id = $1`

	view, err := scanBookingView(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return view, nil
}

func (s *BookingReadStore) FindByGuestID(ctx context.Context, guestID uuid.UUID) ([]*queries.BookingListItem, error) {
	const query = `
		SELECT b.id, b.property_id, p.title, b.check_in, b.check_out,
		       b.guest_count, b.status, b.total_price, b.created_at
		FROM bookings b
		JOIN properties p ON p.id = b.property_id
		WHERE b.guest_id = $1
		ORDER BY b.created_at DESC`

	return s.listBookings(ctx, query, guestID)
}

func (s *BookingReadStore) FindByHostID(ctx context.Context, hostID uuid.UUID) ([]*queries.BookingListItem, error) {
	const query = `
		SELECT b.id, b.property_id, p.title, b.check_in, b.check_out,
		       b.guest_count, b.status, b.total_price, b.created_at
		FROM bookings b
		JOIN properties p ON p.id = b.property_id
		WHERE p.host_id = $1
		ORDER BY b.created_at DESC`

	return s.listBookings(ctx, query, hostID)
}

func (s *BookingReadStore) listBookings(ctx context.Context, query string, actorID uuid.UUID) ([]*queries.BookingListItem, error) {
	rows, err := s.db.Query(ctx, query, actorID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	items := make([]*queries.BookingListItem, 0)
	for rows.Next() {
		var (
			item     queries.BookingListItem
			checkIn  pgtype.Date
			checkOut pgtype.Date
			total    pgtype.Numeric
			created  pgtype.Timestamptz
		)
		if err := rows.Scan(
			&item.ID, &item.PropertyID, &item.PropertyTitle,
			&checkIn, &checkOut, &item.GuestCount, &item.Status,
			&total, &created,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		item.CheckIn = pgconv.DateFromPgtype(checkIn)
		item.CheckOut = pgconv.DateFromPgtype(checkOut)
		item.CreatedAt = pgconv.TimeFromPgtype(created)
		if item.TotalPriceCents, err = pgconv.NumericToCents(total); err != nil {
			return nil, infra.WrapRepoErr("stored total price is invalid", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking rows", err)
	}
	return items, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBookingView(row rowScanner) (*queries.BookingView, error) {
	var (
		view                                    queries.BookingView
		checkIn, checkOut                       pgtype.Date
		base, cleaning, service, deposit, total pgtype.Numeric
		cancelledAt                             pgtype.Timestamptz
		refund                                  pgtype.Numeric
		createdAt, updatedAt                    pgtype.Timestamptz
	)
	err := row.Scan(
		&view.ID, &view.PropertyID, &view.PropertyTitle, &view.HostID, &view.GuestID,
		&checkIn, &checkOut, &view.GuestCount, &view.Status,
		&base, &cleaning, &service, &deposit, &total,
		&view.CancellationPolicy, &cancelledAt, &refund,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	view.CheckIn = pgconv.DateFromPgtype(checkIn)
	view.CheckOut = pgconv.DateFromPgtype(checkOut)
	view.Nights = int(view.CheckOut.Sub(view.CheckIn).Hours() / 24)
	view.CancelledAt = pgconv.TimePtrFromPgtype(cancelledAt)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)

	for _, conv := range []struct {
		src pgtype.Numeric
		dst *int64
	}{
		{base, &view.BasePriceCents},
		{cleaning, &view.CleaningFeeCents},
		{service, &view.ServiceFeeCents},
		{deposit, &view.SecurityDepositCents},
		{total, &view.TotalPriceCents},
		{refund, &view.CancellationRefundCents},
	} {
		if *conv.dst, err = pgconv.NumericToCents(conv.src); err != nil {
			return nil, err
		}
	}
	return &view, nil
}
