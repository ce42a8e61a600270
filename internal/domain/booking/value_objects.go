package booking

import (
	"fmt"
	"time"
)

// Money is an amount in integer cents. Monetary columns are NUMERIC(10,2);
// all arithmetic here stays in integers so no float ever touches a price.
type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativeAmount
	}
	return Money{cents: cents}, nil
}

func MustMoney(cents int64) Money {
	m, err := NewMoney(cents)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) IsZero() bool {
	return m.cents == 0
}

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

func (m Money) MulNights(nights int) Money {
	return Money{cents: m.cents * int64(nights)}
}

// Percent computes p% of the amount, truncating sub-cent remainders.
func (m Money) Percent(p int64) Money {
	return Money{cents: m.cents * p / 100}
}

func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}

// StayRange is a half-open date range [checkIn, checkOut): checkout day is
// exclusive, so a stay ending on day D never conflicts with one starting on D.
type StayRange struct {
	checkIn  time.Time
	checkOut time.Time
}

func NewStayRange(checkIn, checkOut time.Time) (StayRange, error) {
	checkIn = toDate(checkIn)
	checkOut = toDate(checkOut)
	if !checkOut.After(checkIn) {
		return StayRange{}, &RuleViolation{Rule: ErrInvalidDateRange, Field: "check_out"}
	}
	return StayRange{checkIn: checkIn, checkOut: checkOut}, nil
}

func (r StayRange) CheckIn() time.Time {
	return r.checkIn
}

func (r StayRange) CheckOut() time.Time {
	return r.checkOut
}

func (r StayRange) Nights() int {
	return int(r.checkOut.Sub(r.checkIn).Hours() / 24)
}

// Overlaps tests half-open interval overlap: [a0,a1) and [b0,b1)
// overlap unless a1 <= b0 or a0 >= b1.
func (r StayRange) Overlaps(other StayRange) bool {
	return r.checkOut.After(other.checkIn) && other.checkOut.After(r.checkIn)
}

// DaysUntilCheckIn counts whole days from the given date to check-in.
// Negative once check-in has passed.
func (r StayRange) DaysUntilCheckIn(today time.Time) int {
	return int(r.checkIn.Sub(toDate(today)).Hours() / 24)
}

func (r StayRange) EndedBy(today time.Time) bool {
	return r.checkOut.Before(toDate(today)) || r.checkOut.Equal(toDate(today))
}

func (r StayRange) IsZero() bool {
	return r.checkIn.IsZero() && r.checkOut.IsZero()
}

func toDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
