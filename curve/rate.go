package curve

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/meenmo/qldemo/utils"
)

// Compounding selects how an InterestRate accrues.
type Compounding string

const (
	Simple               Compounding = "SIMPLE"
	Compounded           Compounding = "COMPOUNDED"
	Continuous           Compounding = "CONTINUOUS"
	SimpleThenCompounded Compounding = "SIMPLE_THEN_COMPOUNDED"
)

// Frequency is the number of compounding (or coupon) periods per year.
type Frequency int

const (
	NoFrequency Frequency = 0
	Annual      Frequency = 1
	Semiannual  Frequency = 2
	Quarterly   Frequency = 4
	Monthly     Frequency = 12
)

// Months returns the length of one period in months.
func (f Frequency) Months() int {
	if f <= 0 {
		return 0
	}
	return 12 / int(f)
}

var (
	// ErrFrequencyRequired is returned when compounding needs a frequency.
	ErrFrequencyRequired = errors.New("compounding frequency required")
	// ErrNonPositiveCompound is returned when a compound factor is not positive.
	ErrNonPositiveCompound = errors.New("positive compound factor required")
)

// ParseCompounding accepts the usual spellings of a compounding rule.
func ParseCompounding(s string) (Compounding, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SIMPLE":
		return Simple, nil
	case "COMPOUNDED":
		return Compounded, nil
	case "CONTINUOUS":
		return Continuous, nil
	case "SIMPLE_THEN_COMPOUNDED", "SIMPLETHENCOMPOUNDED":
		return SimpleThenCompounded, nil
	default:
		return "", fmt.Errorf("ParseCompounding: unknown compounding %q", s)
	}
}

// ParseFrequency accepts names (Annual, Semiannual, Quarterly, Monthly) or
// the number of periods per year.
func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ANNUAL", "1":
		return Annual, nil
	case "SEMIANNUAL", "SEMI", "2":
		return Semiannual, nil
	case "QUARTERLY", "4":
		return Quarterly, nil
	case "MONTHLY", "12":
		return Monthly, nil
	case "NONE", "0", "":
		return NoFrequency, nil
	default:
		return 0, fmt.Errorf("ParseFrequency: unknown frequency %q", s)
	}
}

// InterestRate is a rate together with the conventions needed to turn it
// into compound and discount factors.
type InterestRate struct {
	Rate        float64
	DayCount    utils.DayCount
	Compounding Compounding
	Frequency   Frequency
}

// NewInterestRate validates the conventions and returns the rate.
func NewInterestRate(rate float64, dc utils.DayCount, comp Compounding, freq Frequency) (InterestRate, error) {
	if (comp == Compounded || comp == SimpleThenCompounded) && freq <= 0 {
		return InterestRate{}, fmt.Errorf("NewInterestRate: %s: %w", comp, ErrFrequencyRequired)
	}
	return InterestRate{Rate: rate, DayCount: dc, Compounding: comp, Frequency: freq}, nil
}

// CompoundFactor returns the growth of one unit over t years.
func (ir InterestRate) CompoundFactor(t float64) float64 {
	r := ir.Rate
	f := float64(ir.Frequency)
	switch ir.Compounding {
	case Simple:
		return 1 + r*t
	case Compounded:
		return math.Pow(1+r/f, f*t)
	case Continuous:
		return math.Exp(r * t)
	case SimpleThenCompounded:
		if t <= 1/f {
			return 1 + r*t
		}
		return math.Pow(1+r/f, f*t)
	default:
		return math.Exp(r * t)
	}
}

// DiscountFactor returns 1 / CompoundFactor(t).
func (ir InterestRate) DiscountFactor(t float64) float64 {
	return 1 / ir.CompoundFactor(t)
}

// CompoundFactorBetween measures time between d1 and d2 with the rate's day
// counter, using refStart/refEnd as the coupon reference period.
func (ir InterestRate) CompoundFactorBetween(d1, d2, refStart, refEnd time.Time) float64 {
	return ir.CompoundFactor(utils.YearFractionRef(d1, d2, refStart, refEnd, ir.DayCount))
}

// DiscountFactorBetween is the reciprocal of CompoundFactorBetween.
func (ir InterestRate) DiscountFactorBetween(d1, d2, refStart, refEnd time.Time) float64 {
	return 1 / ir.CompoundFactorBetween(d1, d2, refStart, refEnd)
}

// ImpliedRate returns the rate that produces compound over t years under
// the given conventions.
func ImpliedRate(compound float64, dc utils.DayCount, comp Compounding, freq Frequency, t float64) (InterestRate, error) {
	if compound <= 0 {
		return InterestRate{}, fmt.Errorf("ImpliedRate: %w", ErrNonPositiveCompound)
	}
	if compound == 1 || t == 0 {
		return NewInterestRate(0, dc, comp, freq)
	}
	f := float64(freq)
	var r float64
	switch comp {
	case Simple:
		r = (compound - 1) / t
	case Compounded:
		r = (math.Pow(compound, 1/(f*t)) - 1) * f
	case Continuous:
		r = math.Log(compound) / t
	case SimpleThenCompounded:
		if t <= 1/f {
			r = (compound - 1) / t
		} else {
			r = (math.Pow(compound, 1/(f*t)) - 1) * f
		}
	default:
		return InterestRate{}, fmt.Errorf("ImpliedRate: unknown compounding %q", comp)
	}
	return NewInterestRate(r, dc, comp, freq)
}

// EquivalentRate converts the rate to other conventions over t years.
func (ir InterestRate) EquivalentRate(comp Compounding, freq Frequency, t float64) (InterestRate, error) {
	return ImpliedRate(ir.CompoundFactor(t), ir.DayCount, comp, freq, t)
}

func (ir InterestRate) String() string {
	switch ir.Compounding {
	case Compounded, SimpleThenCompounded:
		return fmt.Sprintf("%.6f%% %s %s %d/yr", ir.Rate*100, ir.DayCount, strings.ToLower(string(ir.Compounding)), ir.Frequency)
	default:
		return fmt.Sprintf("%.6f%% %s %s", ir.Rate*100, ir.DayCount, strings.ToLower(string(ir.Compounding)))
	}
}
