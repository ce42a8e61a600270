package readstore

import (
	"context"

	"stayhub/internal/infra"
	"stayhub/internal/infra/db"
	"stayhub/internal/pkg/pgconv"
	"stayhub/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// SnapshotReads serves the write side's validation reads. Bound to a pool
// it reads committed state; bound to a transaction it reads what the
// transaction sees, which matters after LockProperty.
type SnapshotReads struct {
	db db.DBTX
}

func NewSnapshotReads(dbtx db.DBTX) *SnapshotReads {
	return &SnapshotReads{db: dbtx}
}

func (s *SnapshotReads) PropertyByID(ctx context.Context, id uuid.UUID) (*shared.PropertySnapshot, error) {
	const query = `
		SELECT id, host_id, title, nightly_rate, cleaning_fee, service_fee,
		       max_guests, min_stay_nights, max_stay_nights, cancellation_policy, status
		FROM properties
		WHERE id = $1`

	var (
		snap                    shared.PropertySnapshot
		rate, cleaning, service pgtype.Numeric
	)
	err := s.db.QueryRow(ctx, query, id).Scan(
		&snap.ID, &snap.HostID, &snap.Title, &rate, &cleaning, &service,
		&snap.MaxGuests, &snap.MinStayNights, &snap.MaxStayNights,
		&snap.Policy, &snap.Status,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("property not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to snapshot property", err)
	}

	if snap.NightlyRateCents, err = pgconv.NumericToCents(rate); err != nil {
		return nil, infra.WrapRepoErr("stored nightly rate is invalid", err)
	}
	if snap.CleaningFeeCents, err = pgconv.NumericToCents(cleaning); err != nil {
		return nil, infra.WrapRepoErr("stored cleaning fee is invalid", err)
	}
	if snap.ServiceFeeCents, err = pgconv.NumericToCents(service); err != nil {
		return nil, infra.WrapRepoErr("stored service fee is invalid", err)
	}
	return &snap, nil
}

func (s *SnapshotReads) BookingByID(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	const query = `
		SELECT b.id, b.property_id, b.guest_id, p.host_id, b.status, b.check_in, b.check_out
		FROM bookings b
		JOIN properties p ON p.id = b.property_id
		WHERE b.id = $1`

	var (
		snap              shared.BookingSnapshot
		checkIn, checkOut pgtype.Date
	)
	err := s.db.QueryRow(ctx, query, id).Scan(
		&snap.ID, &snap.PropertyID, &snap.GuestID, &snap.HostID,
		&snap.Status, &checkIn, &checkOut,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to snapshot booking", err)
	}
	snap.CheckIn = pgconv.DateFromPgtype(checkIn)
	snap.CheckOut = pgconv.DateFromPgtype(checkOut)
	return &snap, nil
}
