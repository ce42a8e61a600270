package repository

import (
	"context"

	"stayhub/internal/domain/booking"
	"stayhub/internal/domain/property"
	"stayhub/internal/infra"
	"stayhub/internal/infra/db"
	"stayhub/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

// LockProperty takes the property row lock that serializes concurrent
// booking writes for one listing. Must run inside the write transaction,
// before the conflict scan.
func (r *BookingRepository) LockProperty(ctx context.Context, propertyID uuid.UUID) error {
	const query = `SELECT id FROM properties WHERE id = $1 FOR UPDATE`

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, query, propertyID).Scan(&id); err != nil {
		if pgconv.IsNoRows(err) {
			return infra.WrapRepoErr("property not found", err, infra.KindNotFound)
		}
		return infra.WrapRepoErr("failed to lock property", err)
	}
	return nil
}

func (r *BookingRepository) OccupiedStays(ctx context.Context, propertyID, exclude uuid.UUID) ([]booking.StayRange, error) {
	const query = `
		SELECT check_in, check_out
		FROM bookings
		WHERE property_id = $1
		  AND status IN ('pending', 'confirmed')
		  AND id <> $2`

	rows, err := r.db.Query(ctx, query, propertyID, exclude)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan occupied stays", err)
	}
	defer rows.Close()

	var stays []booking.StayRange
	for rows.Next() {
		var checkIn, checkOut pgtype.Date
		if err := rows.Scan(&checkIn, &checkOut); err != nil {
			return nil, infra.WrapRepoErr("failed to scan stay row", err)
		}
		stay, err := booking.NewStayRange(pgconv.DateFromPgtype(checkIn), pgconv.DateFromPgtype(checkOut))
		if err != nil {
			return nil, infra.WrapRepoErr("stored stay range is invalid", err)
		}
		stays = append(stays, stay)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate occupied stays", err)
	}
	return stays, nil
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) (uuid.UUID, error) {
	const query = `
		INSERT INTO bookings (
			id, property_id, guest_id, check_in, check_out, guest_count, status,
			base_price, cleaning_fee, service_fee, security_deposit, total_price,
			cancellation_policy, cancellation_refund, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id`

	price := b.Price()
	var id uuid.UUID
	err := r.db.QueryRow(ctx, query,
		b.ID(), b.PropertyID(), b.GuestID(),
		pgconv.DateToPgtype(b.Stay().CheckIn()), pgconv.DateToPgtype(b.Stay().CheckOut()),
		b.GuestCount(), b.Status().String(),
		pgconv.CentsToNumeric(price.BasePrice.Cents()),
		pgconv.CentsToNumeric(price.CleaningFee.Cents()),
		pgconv.CentsToNumeric(price.ServiceFee.Cents()),
		pgconv.CentsToNumeric(price.SecurityDeposit.Cents()),
		pgconv.CentsToNumeric(price.Total.Cents()),
		b.CancellationPolicy().String(),
		pgconv.CentsToNumeric(b.Refund().Cents()),
		pgconv.TimeToPgtype(b.CreatedAt()), pgconv.TimeToPgtype(b.UpdatedAt()),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create booking", err)
	}
	return id, nil
}

// Update persists every mutable field in one statement, so a cancellation's
// status, cancelled_at and refund land atomically.
func (r *BookingRepository) Update(ctx context.Context, b *booking.Booking) error {
	const query = `
		UPDATE bookings SET
			status = $2,
			base_price = $3,
			cleaning_fee = $4,
			service_fee = $5,
			security_deposit = $6,
			total_price = $7,
			cancelled_at = $8,
			cancellation_refund = $9,
			updated_at = $10
		WHERE id = $1`

	price := b.Price()
	tag, err := r.db.Exec(ctx, query,
		b.ID(), b.Status().String(),
		pgconv.CentsToNumeric(price.BasePrice.Cents()),
		pgconv.CentsToNumeric(price.CleaningFee.Cents()),
		pgconv.CentsToNumeric(price.ServiceFee.Cents()),
		pgconv.CentsToNumeric(price.SecurityDeposit.Cents()),
		pgconv.CentsToNumeric(price.Total.Cents()),
		pgconv.TimePtrToPgtype(b.CancelledAt()),
		pgconv.CentsToNumeric(b.Refund().Cents()),
		pgconv.TimeToPgtype(b.UpdatedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	const query = `
		SELECT b.id, b.property_id, p.host_id, b.guest_id,
		       b.check_in, b.check_out, b.guest_count, b.status,
		       b.base_price, b.cleaning_fee, b.service_fee, b.security_deposit, b.total_price,
		       b.cancellation_policy, b.cancelled_at, b.cancellation_refund,
		       b.created_at, b.updated_at
		FROM bookings b
		JOIN properties p ON p.id = b.property_id
		WHERE b.id = $1`

	var (
		bookingID, propertyID, hostID, guestID     uuid.UUID
		checkIn, checkOut                          pgtype.Date
		guestCount                                 int
		statusStr, policyStr                       string
		base, cleaning, service, deposit, total    pgtype.Numeric
		cancelledAt                                pgtype.Timestamptz
		refund                                     pgtype.Numeric
		createdAt, updatedAt                       pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&bookingID, &propertyID, &hostID, &guestID,
		&checkIn, &checkOut, &guestCount, &statusStr,
		&base, &cleaning, &service, &deposit, &total,
		&policyStr, &cancelledAt, &refund,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	return reconstructBooking(
		bookingID, propertyID, hostID, guestID,
		checkIn, checkOut, guestCount, statusStr,
		base, cleaning, service, deposit, total,
		policyStr, cancelledAt, refund, createdAt, updatedAt,
	)
}

func reconstructBooking(
	id, propertyID, hostID, guestID uuid.UUID,
	checkIn, checkOut pgtype.Date,
	guestCount int,
	statusStr string,
	base, cleaning, service, deposit, total pgtype.Numeric,
	policyStr string,
	cancelledAt pgtype.Timestamptz,
	refund pgtype.Numeric,
	createdAt, updatedAt pgtype.Timestamptz,
) (*booking.Booking, error) {
	stay, err := booking.NewStayRange(pgconv.DateFromPgtype(checkIn), pgconv.DateFromPgtype(checkOut))
	if err != nil {
		return nil, infra.WrapRepoErr("stored stay range is invalid", err)
	}
	status, err := booking.ParseStatus(statusStr)
	if err != nil {
		return nil, infra.WrapRepoErr("stored status is invalid", err)
	}
	policy, err := property.NewCancellationPolicy(policyStr)
	if err != nil {
		return nil, infra.WrapRepoErr("stored cancellation policy is invalid", err)
	}

	price, err := priceFromNumerics(base, cleaning, service, deposit, total)
	if err != nil {
		return nil, err
	}
	refundMoney, err := moneyFromNumeric(refund)
	if err != nil {
		return nil, err
	}

	return booking.ReconstructBooking(
		id, propertyID, hostID, guestID,
		stay, guestCount, status, price, policy,
		pgconv.TimePtrFromPgtype(cancelledAt), refundMoney,
		pgconv.TimeFromPgtype(createdAt), pgconv.TimeFromPgtype(updatedAt),
	), nil
}

func priceFromNumerics(base, cleaning, service, deposit, total pgtype.Numeric) (booking.PriceBreakdown, error) {
	var (
		breakdown booking.PriceBreakdown
		err       error
	)
	if breakdown.BasePrice, err = moneyFromNumeric(base); err != nil {
		return booking.PriceBreakdown{}, err
	}
	if breakdown.CleaningFee, err = moneyFromNumeric(cleaning); err != nil {
		return booking.PriceBreakdown{}, err
	}
	if breakdown.ServiceFee, err = moneyFromNumeric(service); err != nil {
		return booking.PriceBreakdown{}, err
	}
	if breakdown.SecurityDeposit, err = moneyFromNumeric(deposit); err != nil {
		return booking.PriceBreakdown{}, err
	}
	if breakdown.Total, err = moneyFromNumeric(total); err != nil {
		return booking.PriceBreakdown{}, err
	}
	return breakdown, nil
}

func moneyFromNumeric(n pgtype.Numeric) (booking.Money, error) {
	cents, err := pgconv.NumericToCents(n)
	if err != nil {
		return booking.Money{}, infra.WrapRepoErr("stored amount is not a valid price", err)
	}
	m, err := booking.NewMoney(cents)
	if err != nil {
		return booking.Money{}, infra.WrapRepoErr("stored amount is negative", err)
	}
	return m, nil
}
