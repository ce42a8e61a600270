package booking

import (
	"fmt"

	"stayhub/internal/domain/property"

	"stayhub/internal/pkg/errs"
)

var (
	ErrInvalidDateRange  = errs.New("check-out date must be after check-in date")
	ErrStayTooShort      = errs.New("stay is shorter than the minimum")
	ErrStayTooLong       = errs.New("stay is longer than the maximum")
	ErrCapacityExceeded  = errs.New("guest count exceeds property capacity")
	ErrDateConflict      = errs.New("property is already booked for the selected dates")
	ErrInvalidTransition = errs.New("invalid booking status transition")
	ErrNegativeAmount    = errs.New("amount cannot be negative")
)

// RuleViolation is a structured validation failure: the violated rule as a
// sentinel (for errors.Is), the offending field and, where a bound was
// crossed, the bound itself. Callers render it without inspecting stacks.
type RuleViolation struct {
	Rule  error
	Field string
	Limit int
}

func (v *RuleViolation) Error() string {
	if v.Limit > 0 {
		return fmt.Sprintf("%s: %s (limit %d)", v.Rule.Error(), v.Field, v.Limit)
	}
	return fmt.Sprintf("%s: %s", v.Rule.Error(), v.Field)
}

func (v *RuleViolation) Unwrap() error {
	return v.Rule
}

// ValidateStay checks a proposed stay against property terms, short-circuiting
// on the first violated rule. The conflict scan is separate (CheckConflict)
// because it needs the persisted booking set and a transactional lock.
func ValidateStay(terms *property.Terms, stay StayRange, guestCount int) error {
	nights := stay.Nights()

	if nights < terms.MinStayNights() {
		return &RuleViolation{Rule: ErrStayTooShort, Field: "check_out", Limit: terms.MinStayNights()}
	}
	if nights > terms.MaxStayNights() {
		return &RuleViolation{Rule: ErrStayTooLong, Field: "check_out", Limit: terms.MaxStayNights()}
	}
	if guestCount > terms.MaxGuests() {
		return &RuleViolation{Rule: ErrCapacityExceeded, Field: "guest_count", Limit: terms.MaxGuests()}
	}
	return nil
}

// CheckConflict tests the stay against every occupying booking's range.
// Callers pass ranges of bookings in {pending, confirmed} for the same
// property, excluding the booking under validation itself.
func CheckConflict(stay StayRange, occupied []StayRange) error {
	for _, other := range occupied {
		if stay.Overlaps(other) {
			return &RuleViolation{Rule: ErrDateConflict, Field: "check_in"}
		}
	}
	return nil
}
