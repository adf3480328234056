package bond

import (
	"fmt"
	"time"

	"github.com/meenmo/qldemo/calendar"
	"github.com/meenmo/qldemo/utils"
)

// CallSchedule builds n callabilities at price (per 100, clean) starting at
// first and stepping stepMonths on cal, each step advancing from the
// previous date.
func CallSchedule(first time.Time, n, stepMonths int, price float64, cal calendar.CalendarID) []Callability {
	out := make([]Callability, 0, n)
	d := first
	for i := 0; i < n; i++ {
		out = append(out, Callability{Date: d, Price: price, PriceType: Clean, Type: Call})
		d = calendar.Advance(cal, d, stepMonths, calendar.Months, calendar.Unadjusted)
	}
	return out
}

// CallableFixedRateBond is a fixed-rate bond with an embedded call (or put)
// schedule.
type CallableFixedRateBond struct {
	*FixedRateBond
	Callabilities []Callability
}

// NewCallableFixedRateBond builds the coupon leg and attaches the schedule.
func NewCallableFixedRateBond(b FixedRateBond, calls []Callability) (*CallableFixedRateBond, error) {
	fixed, err := NewFixedRateBond(b)
	if err != nil {
		return nil, fmt.Errorf("NewCallableFixedRateBond: %w", err)
	}
	for i, c := range calls {
		if c.Price <= 0 {
			return nil, fmt.Errorf("NewCallableFixedRateBond: callability %d on %s has non-positive price", i, c.Date.Format(utils.DateLayout))
		}
	}
	return &CallableFixedRateBond{FixedRateBond: fixed, Callabilities: calls}, nil
}

// Arguments collects the flows and exercise dates strictly after settlement.
// Clean call prices are turned into dirty amounts in currency units; on a
// coupon date the accrued is zero, so the exercise value equals the quoted
// price and the coupon is added on top by the engine.
func (b *CallableFixedRateBond) Arguments(settlement time.Time) EngineArguments {
	args := EngineArguments{
		SettlementDate: settlement,
		FaceAmount:     b.FaceAmount,
	}
	for _, c := range b.Coupons() {
		if c.HasOccurred(settlement) {
			continue
		}
		args.CouponDates = append(args.CouponDates, c.PayDate)
		args.CouponAmounts = append(args.CouponAmounts, c.Amount)
	}
	for _, c := range b.Callabilities {
		if !c.Date.After(settlement) {
			continue
		}
		price := c.Price * b.FaceAmount / 100
		if c.PriceType == Clean {
			price += b.AccruedAmount(c.Date)
		}
		args.CallDates = append(args.CallDates, c.Date)
		args.CallPrices = append(args.CallPrices, price)
		args.CallTypes = append(args.CallTypes, c.Type)
	}
	red := b.RedemptionCashflow()
	args.Redemption = red.Principal
	args.RedemptionDate = red.Date
	return args
}

// Result is a priced bond quoted per 100 of face.
type Result struct {
	EvaluationDate time.Time
	SettlementDate time.Time
	NPV            float64
	DirtyPrice     float64
	Accrued        float64
	CleanPrice     float64
}

// Price values the bond with engine as of evaluation.
func (b *CallableFixedRateBond) Price(engine PricingEngine, evaluation time.Time) (Result, error) {
	if engine == nil {
		return Result{}, fmt.Errorf("Price: %w", ErrNilEngine)
	}
	settlement := b.SettlementDate(evaluation)
	if !b.MaturityDate().After(settlement) {
		return Result{}, fmt.Errorf("Price: bond matured on %s, settlement %s", b.MaturityDate().Format(utils.DateLayout), settlement.Format(utils.DateLayout))
	}

	res, err := engine.Calculate(b.Arguments(settlement))
	if err != nil {
		return Result{}, fmt.Errorf("Price: %w", err)
	}

	dirty := res.SettlementValue * 100 / b.FaceAmount
	accrued := b.AccruedPer100(settlement)
	return Result{
		EvaluationDate: evaluation,
		SettlementDate: settlement,
		NPV:            res.Value,
		DirtyPrice:     dirty,
		Accrued:        accrued,
		CleanPrice:     dirty - accrued,
	}, nil
}

// YieldOf converts a priced result into a yield under spec.
func (b *CallableFixedRateBond) YieldOf(res Result, spec YieldSpec) (YieldResult, error) {
	dirty := (res.CleanPrice + res.Accrued) * b.FaceAmount / 100
	return b.Yield(dirty, res.SettlementDate, spec)
}
