package booking

import "stayhub/internal/domain/property"

// RefundAmount maps a cancellation policy tier and the number of whole days
// remaining before check-in (measured at cancellation time) to the refundable
// share of the total price.
//
//	flexible:  >1 day out 100%, otherwise 50%
//	moderate:  >5 days out 100%, >1 day out 50%, otherwise 0%
//	strict:    >7 days out 50%, otherwise 0%
//
// Boundaries are strict: moderate at exactly 5 days out refunds 50%, not 100%.
func RefundAmount(policy property.CancellationPolicy, total Money, daysUntilCheckIn int) Money {
	switch policy {
	case property.PolicyFlexible:
		if daysUntilCheckIn > 1 {
			return total
		}
		return total.Percent(50)

	case property.PolicyModerate:
		if daysUntilCheckIn > 5 {
			return total
		}
		if daysUntilCheckIn > 1 {
			return total.Percent(50)
		}
		return Money{}

	case property.PolicyStrict:
		if daysUntilCheckIn > 7 {
			return total.Percent(50)
		}
		return Money{}
	}

	return Money{}
}
