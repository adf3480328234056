package bond

import (
	"fmt"
	"math"
	"time"

	"github.com/meenmo/qldemo/config"
	"github.com/meenmo/qldemo/curve"
	"github.com/meenmo/qldemo/utils"
)

// YieldSpec holds the conventions a yield is quoted in and the solver limits.
// Zero Accuracy or MaxIterations fall back to the active config.
type YieldSpec struct {
	DayCount      utils.DayCount
	Compounding   curve.Compounding
	Frequency     curve.Frequency
	Accuracy      float64
	MaxIterations int
}

// YieldResult is the solved yield (decimal) and the steps it took.
type YieldResult struct {
	Yield      float64
	Iterations int
}

const (
	yieldFloor   = -0.5
	yieldCeiling = 2.0
	bumpSize     = 1e-6
)

// discountedFlow is one flow after settlement with its cumulative time and
// discount factor.
type discountedFlow struct {
	amount   float64
	time     float64
	discount float64
}

// discountFlows discounts the flows paid after settlement back to settlement
// at a flat yield. Each coupon is discounted over its own reference period;
// the redemption uses the interval from the preceding flow.
func (b *FixedRateBond) discountFlows(y curve.InterestRate, settlement time.Time) []discountedFlow {
	out := make([]discountedFlow, 0, len(b.coupons)+1)
	discount := 1.0
	tSum := 0.0
	last := settlement

	add := func(amount float64, date, refStart, refEnd time.Time) {
		tSum += utils.YearFractionRef(last, date, refStart, refEnd, y.DayCount)
		discount *= y.DiscountFactorBetween(last, date, refStart, refEnd)
		last = date
		out = append(out, discountedFlow{amount: amount, time: tSum, discount: discount})
	}

	for _, c := range b.coupons {
		if c.HasOccurred(settlement) {
			continue
		}
		add(c.Amount, c.PayDate, c.RefStart, c.RefEnd)
	}
	red := b.RedemptionCashflow()
	if red.Date.After(settlement) {
		refStart := last
		if last.Equal(settlement) {
			refStart = utils.AddYear(red.Date, -1)
		}
		add(red.Principal, red.Date, refStart, red.Date)
	}
	return out
}

// NPVAtYield is the settlement value of the remaining flows at yield y.
func (b *FixedRateBond) NPVAtYield(y curve.InterestRate, settlement time.Time) float64 {
	npv := 0.0
	for _, f := range b.discountFlows(y, settlement) {
		npv += f.amount * f.discount
	}
	return npv
}

// npvAndDeriv returns (npv, dNPV/dy). The derivative is analytic for
// compounded and continuous yields and a central difference otherwise.
func (b *FixedRateBond) npvAndDeriv(y curve.InterestRate, settlement time.Time) (float64, float64) {
	flows := b.discountFlows(y, settlement)
	var npv, deriv float64
	for _, f := range flows {
		pv := f.amount * f.discount
		npv += pv
		switch y.Compounding {
		case curve.Compounded:
			deriv += -f.time * pv / (1 + y.Rate/float64(y.Frequency))
		case curve.Continuous:
			deriv += -f.time * pv
		}
	}
	if y.Compounding != curve.Compounded && y.Compounding != curve.Continuous {
		up, dn := y, y
		up.Rate += bumpSize
		dn.Rate -= bumpSize
		deriv = (b.NPVAtYield(up, settlement) - b.NPVAtYield(dn, settlement)) / (2 * bumpSize)
	}
	return npv, deriv
}

// Yield solves for the flat yield whose NPV at settlement equals dirty
// (currency units), ignoring any embedded option.
//
// The solver uses Newton-Raphson with a bisection fallback whenever a step
// leaves the bracket or the derivative vanishes.
func (b *FixedRateBond) Yield(dirty float64, settlement time.Time, spec YieldSpec) (YieldResult, error) {
	cfg := config.GetConfig()
	accuracy := spec.Accuracy
	if accuracy <= 0 {
		accuracy = cfg.YieldAccuracy
	}
	maxIter := spec.MaxIterations
	if maxIter <= 0 {
		maxIter = cfg.YieldMaxIterations
	}
	if dirty <= 0 {
		return YieldResult{}, fmt.Errorf("Yield: dirty price must be positive, got %f", dirty)
	}
	if !b.MaturityDate().After(settlement) {
		return YieldResult{}, fmt.Errorf("Yield: no cashflows after %s", settlement.Format(utils.DateLayout))
	}

	rate, err := curve.NewInterestRate(cfg.YieldGuess, spec.DayCount, spec.Compounding, spec.Frequency)
	if err != nil {
		return YieldResult{}, fmt.Errorf("Yield: %w", err)
	}

	lo, hi := yieldFloor, yieldCeiling
	y := clamp(rate.Rate, lo, hi)
	for iter := 0; iter < maxIter; iter++ {
		rate.Rate = y
		npv, d := b.npvAndDeriv(rate, settlement)
		f := npv - dirty

		// NPV falls as the yield rises.
		if f > 0 {
			lo = y
		} else {
			hi = y
		}

		var next float64
		if math.Abs(d) < cfg.DerivativeThreshold {
			next = 0.5 * (lo + hi)
		} else {
			next = y - f/d
			if next < lo || next > hi {
				next = 0.5 * (lo + hi)
			}
		}

		if math.Abs(next-y) < accuracy {
			return YieldResult{Yield: next, Iterations: iter + 1}, nil
		}
		y = next
	}

	return YieldResult{Yield: y, Iterations: maxIter},
		fmt.Errorf("Yield: %d iterations: %w", maxIter, ErrYieldNoConvergence)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
