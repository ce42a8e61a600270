//go:build unit

package builder

import (
	"stayhub/internal/domain/property"
	"stayhub/internal/usecase/queries"
	"stayhub/internal/usecase/shared"

	"github.com/google/uuid"
)

// TermsBuilder produces the reference property used across the suites:
// 100.00/night, 20.00 cleaning, 10.00 service, stays of 2-14 nights.
type TermsBuilder struct {
	ID               uuid.UUID
	HostID           uuid.UUID
	Title            string
	NightlyRateCents int64
	CleaningFeeCents int64
	ServiceFeeCents  int64
	MaxGuests        int
	MinStayNights    int
	MaxStayNights    int
	Policy           property.CancellationPolicy
	Status           property.Status
}

func NewTermsBuilder() *TermsBuilder {
	return &TermsBuilder{
		ID:               uuid.New(),
		HostID:           uuid.New(),
		Title:            "Seaside Cottage",
		NightlyRateCents: 10000,
		CleaningFeeCents: 2000,
		ServiceFeeCents:  1000,
		MaxGuests:        4,
		MinStayNights:    2,
		MaxStayNights:    14,
		Policy:           property.PolicyModerate,
		Status:           property.StatusActive,
	}
}

func (b *TermsBuilder) With(mutate func(*TermsBuilder)) *TermsBuilder {
	mutate(b)
	return b
}

func (b *TermsBuilder) WithPolicy(p property.CancellationPolicy) *TermsBuilder {
	b.Policy = p
	return b
}

func (b *TermsBuilder) WithStayBounds(minNights, maxNights int) *TermsBuilder {
	b.MinStayNights = minNights
	b.MaxStayNights = maxNights
	return b
}

func (b *TermsBuilder) WithMaxGuests(n int) *TermsBuilder {
	b.MaxGuests = n
	return b
}

func (b *TermsBuilder) BuildDomain() (*property.Terms, error) {
	return property.NewTerms(
		b.ID, b.HostID, b.Title,
		b.NightlyRateCents, b.CleaningFeeCents, b.ServiceFeeCents,
		b.MaxGuests, b.MinStayNights, b.MaxStayNights,
		b.Policy, b.Status,
	)
}

func (b *TermsBuilder) BuildPropertyView() *queries.PropertyView {
	return &queries.PropertyView{
		ID:               b.ID,
		HostID:           b.HostID,
		Title:            b.Title,
		NightlyRateCents: b.NightlyRateCents,
		CleaningFeeCents: b.CleaningFeeCents,
		ServiceFeeCents:  b.ServiceFeeCents,
		MaxGuests:        b.MaxGuests,
		MinStayNights:    b.MinStayNights,
		MaxStayNights:    b.MaxStayNights,
		Policy:           b.Policy.String(),
		Status:           b.Status.String(),
	}
}

func (b *TermsBuilder) BuildSnapshot() *shared.PropertySnapshot {
	return &shared.PropertySnapshot{
		ID:               b.ID,
		HostID:           b.HostID,
		Title:            b.Title,
		NightlyRateCents: b.NightlyRateCents,
		CleaningFeeCents: b.CleaningFeeCents,
		ServiceFeeCents:  b.ServiceFeeCents,
		MaxGuests:        b.MaxGuests,
		MinStayNights:    b.MinStayNights,
		MaxStayNights:    b.MaxStayNights,
		Policy:           b.Policy.String(),
		Status:           b.Status.String(),
	}
}
