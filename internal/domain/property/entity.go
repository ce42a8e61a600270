package property

import (
	"stayhub/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrNegativeRate   = errs.New("rates and fees cannot be negative")
	ErrInvalidStayCap = errs.New("min stay cannot exceed max stay")
	ErrNoCapacity     = errs.New("max guests must be positive")
)

// Terms is the read-only slice of a listing the booking engine consumes:
// pricing parameters, capacity, stay-length bounds and cancellation policy.
// Listing content (photos, amenities, location) belongs to the properties
// service and never crosses into this package.
type Terms struct {
	id                 uuid.UUID
	hostID             uuid.UUID
	title              string
	nightlyRateCents   int64
	cleaningFeeCents   int64
	serviceFeeCents    int64
	maxGuests          int
	minStayNights      int
	maxStayNights      int
	cancellationPolicy CancellationPolicy
	status             Status
}

func NewTerms(
	id, hostID uuid.UUID,
	title string,
	nightlyRateCents, cleaningFeeCents, serviceFeeCents int64,
	maxGuests, minStayNights, maxStayNights int,
	policy CancellationPolicy,
	status Status,
) (*Terms, error) {
	if nightlyRateCents < 0 || cleaningFeeCents < 0 || serviceFeeCents < 0 {
		return nil, ErrNegativeRate
	}
	if maxGuests <= 0 {
		return nil, ErrNoCapacity
	}
	if minStayNights < 1 {
		minStayNights = 1
	}
	if minStayNights > maxStayNights {
		return nil, ErrInvalidStayCap
	}
	if !policy.IsValid() {
		return nil, ErrInvalidCancellationPolicy
	}
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	return &Terms{
		id:                 id,
		hostID:             hostID,
		title:              title,
		nightlyRateCents:   nightlyRateCents,
		cleaningFeeCents:   cleaningFeeCents,
		serviceFeeCents:    serviceFeeCents,
		maxGuests:          maxGuests,
		minStayNights:      minStayNights,
		maxStayNights:      maxStayNights,
		cancellationPolicy: policy,
		status:             status,
	}, nil
}

func (t *Terms) ID() uuid.UUID                          { return t.id }
func (t *Terms) HostID() uuid.UUID                      { return t.hostID }
func (t *Terms) Title() string                          { return t.title }
func (t *Terms) NightlyRateCents() int64                { return t.nightlyRateCents }
func (t *Terms) CleaningFeeCents() int64                { return t.cleaningFeeCents }
func (t *Terms) ServiceFeeCents() int64                 { return t.serviceFeeCents }
func (t *Terms) MaxGuests() int                         { return t.maxGuests }
func (t *Terms) MinStayNights() int                     { return t.minStayNights }
func (t *Terms) MaxStayNights() int                     { return t.maxStayNights }
func (t *Terms) CancellationPolicy() CancellationPolicy { return t.cancellationPolicy }
func (t *Terms) Status() Status                         { return t.status }

func (t *Terms) IsBookable() bool {
	return t.status == StatusActive
}
