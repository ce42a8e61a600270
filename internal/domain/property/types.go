package property

import "stayhub/internal/pkg/errs"

var (
	ErrInvalidCancellationPolicy = errs.New("invalid cancellation policy")
	ErrInvalidStatus             = errs.New("invalid property status")
)

// CancellationPolicy is captured onto each booking at creation time, so
// later edits to a property never change an existing booking's refund terms.
type CancellationPolicy string

const (
	PolicyFlexible CancellationPolicy = "flexible"
	PolicyModerate CancellationPolicy = "moderate"
	PolicyStrict   CancellationPolicy = "strict"
)

func (p CancellationPolicy) String() string {
	return string(p)
}

func (p CancellationPolicy) IsValid() bool {
	switch p {
	case PolicyFlexible, PolicyModerate, PolicyStrict:
		return true
	default:
		return false
	}
}

func NewCancellationPolicy(s string) (CancellationPolicy, error) {
	policy := CancellationPolicy(s)
	if !policy.IsValid() {
		return "", ErrInvalidCancellationPolicy
	}
	return policy, nil
}

type Status string

const (
	StatusActive      Status = "active"
	StatusInactive    Status = "inactive"
	StatusUnderReview Status = "under_review"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusUnderReview:
		return true
	default:
		return false
	}
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}
