//go:build unit

package booking_test

import (
	"testing"

	"stayhub/internal/domain/booking"
	"stayhub/internal/domain/property"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func referenceTerms(t *testing.T) *property.Terms {
	t.Helper()
	terms, err := property.NewTerms(
		uuid.New(), uuid.New(), "Seaside Cottage",
		10000, 2000, 1000,
		4, 2, 14,
		property.PolicyModerate, property.StatusActive,
	)
	require.NoError(t, err)
	return terms
}

func TestCalculatePrice(t *testing.T) {
	terms := referenceTerms(t)

	t.Run("three night stay on the reference property", func(t *testing.T) {
		price := booking.CalculatePrice(terms, 3, booking.Money{})

		assert.Equal(t, int64(30000), price.BasePrice.Cents())
		assert.Equal(t, int64(2000), price.CleaningFee.Cents())
		assert.Equal(t, int64(1000), price.ServiceFee.Cents())
		assert.Equal(t, int64(33000), price.Total.Cents())
	})

	t.Run("deposit defaults to ten percent of base", func(t *testing.T) {
		price := booking.CalculatePrice(terms, 3, booking.Money{})
		assert.Equal(t, int64(3000), price.SecurityDeposit.Cents())
	})

	t.Run("explicit deposit is kept verbatim and excluded from total", func(t *testing.T) {
		price := booking.CalculatePrice(terms, 3, booking.MustMoney(50000))
		assert.Equal(t, int64(50000), price.SecurityDeposit.Cents())
		assert.Equal(t, int64(33000), price.Total.Cents())
	})

	t.Run("pure and deterministic", func(t *testing.T) {
		first := booking.CalculatePrice(terms, 7, booking.Money{})
		second := booking.CalculatePrice(terms, 7, booking.Money{})
		assert.Empty(t, cmp.Diff(first, second, cmp.AllowUnexported(booking.Money{})))
	})
}
