package curve

import (
	"errors"
	"math"
	"time"

	"github.com/meenmo/qldemo/utils"
)

// ErrNilCurve is returned when a required curve argument is nil.
var ErrNilCurve = errors.New("nil curve")

// YieldCurve is the term-structure view used by short-rate models and the
// lattice engine: times are measured from ReferenceDate with DayCount.
type YieldCurve interface {
	ReferenceDate() time.Time
	DayCount() utils.DayCount
	TimeFrom(d time.Time) float64
	Discount(t float64) float64
}

// FlatForward is a yield curve with a single rate for every maturity.
type FlatForward struct {
	referenceDate time.Time
	rate          InterestRate
}

// NewFlatForward builds a flat curve anchored at referenceDate.
func NewFlatForward(referenceDate time.Time, rate InterestRate) *FlatForward {
	return &FlatForward{referenceDate: referenceDate, rate: rate}
}

func (c *FlatForward) ReferenceDate() time.Time { return c.referenceDate }

func (c *FlatForward) DayCount() utils.DayCount { return c.rate.DayCount }

// Rate returns the quoted rate with its conventions.
func (c *FlatForward) Rate() InterestRate { return c.rate }

// TimeFrom returns the year fraction from the reference date to d.
func (c *FlatForward) TimeFrom(d time.Time) float64 {
	return utils.YearFraction(c.referenceDate, d, c.rate.DayCount)
}

// Discount returns the discount factor for a time t in years.
func (c *FlatForward) Discount(t float64) float64 {
	if t == 0 {
		return 1
	}
	return c.rate.DiscountFactor(t)
}

// DF returns the discount factor for a date.
func (c *FlatForward) DF(d time.Time) float64 {
	return c.Discount(c.TimeFrom(d))
}

// ZeroRate returns the continuously compounded zero rate to time t.
func (c *FlatForward) ZeroRate(t float64) float64 {
	if t == 0 {
		t = 1e-4
	}
	return -math.Log(c.Discount(t)) / t
}

// ZeroRateAt returns the continuously compounded zero rate to d, in percent.
func (c *FlatForward) ZeroRateAt(d time.Time) float64 {
	return c.ZeroRate(c.TimeFrom(d)) * 100
}

// ForwardRate returns the continuously compounded forward rate between t1
// and t2. When the two coincide the instantaneous forward is returned.
func (c *FlatForward) ForwardRate(t1, t2 float64) float64 {
	const dt = 1e-4
	if t2 == t1 {
		if t1 > dt/2 {
			t1 -= dt / 2
		}
		t2 = t1 + dt
	}
	return math.Log(c.Discount(t1)/c.Discount(t2)) / (t2 - t1)
}
