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

type PropertyReadStore struct {
	db db.DBTX
}

func NewPropertyReadStore(dbtx db.DBTX) *PropertyReadStore {
	return &PropertyReadStore{db: dbtx}
}

func (s *PropertyReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.PropertyView, error) {
	const query = `
		SELECT id, host_id, title, nightly_rate, cleaning_fee, service_fee,
		       max_guests, min_stay_nights, max_stay_nights, cancellation_policy, status
		FROM properties
		WHERE id = $1`

	var (
		view                   queries.PropertyView
		rate, cleaning, service pgtype.Numeric
	)
	err := s.db.QueryRow(ctx, query, id).Scan(
		&view.ID, &view.HostID, &view.Title, &rate, &cleaning, &service,
		&view.MaxGuests, &view.MinStayNights, &view.MaxStayNights,
		&view.Policy, &view.Status,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("property not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find property by ID", err)
	}

	for _, conv := range []struct {
		src pgtype.Numeric
		dst *int64
	}{
		{rate, &view.NightlyRateCents},
		{cleaning, &view.CleaningFeeCents},
		{service, &view.ServiceFeeCents},
	} {
		var convErr error
		if *conv.dst, convErr = pgconv.NumericToCents(conv.src); convErr != nil {
			return nil, infra.WrapRepoErr("stored rate is invalid", convErr)
		}
	}
	return &view, nil
}
