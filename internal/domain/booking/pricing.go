package booking

import "stayhub/internal/domain/property"

// PriceBreakdown is the frozen pricing of a stay. The security deposit is an
// informational hold and is excluded from Total.
type PriceBreakdown struct {
	BasePrice       Money
	CleaningFee     Money
	ServiceFee      Money
	SecurityDeposit Money
	Total           Money
}

// CalculatePrice is a pure function of property terms and stay length:
//
//	base  = nightly rate x nights
//	total = base + cleaning fee + service fee
//
// When no explicit deposit is supplied the deposit defaults to 10% of base.
// An explicitly supplied (non-zero) deposit is kept verbatim.
func CalculatePrice(terms *property.Terms, nights int, deposit Money) PriceBreakdown {
	base := MustMoney(terms.NightlyRateCents()).MulNights(nights)
	cleaning := MustMoney(terms.CleaningFeeCents())
	service := MustMoney(terms.ServiceFeeCents())

	if deposit.IsZero() {
		deposit = base.Percent(10)
	}

	return PriceBreakdown{
		BasePrice:       base,
		CleaningFee:     cleaning,
		ServiceFee:      service,
		SecurityDeposit: deposit,
		Total:           base.Add(cleaning).Add(service),
	}
}
