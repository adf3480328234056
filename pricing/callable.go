package pricing

import (
	"math"
	"time"

	"github.com/meenmo/qldemo/bond"
	"github.com/meenmo/qldemo/lattice"
)

// snapWindow is how far after a call date a coupon may fall and still be
// treated as paid on the call date.
const snapWindow = 1.0 / 52

// discretizedCallableBond carries a callable fixed-rate bond through the
// lattice. Values start at the redemption amount; at a call time they are
// capped at the call price (floored for puts) before the coupon paid at the
// same time is added.
type discretizedCallableBond struct {
	redemption     float64
	redemptionTime float64
	couponTimes    []float64
	couponAmounts  []float64
	callTimes      []float64
	callPrices     []float64
	callTypes      []bond.CallabilityType
}

func newDiscretizedCallableBond(args bond.EngineArguments, timeOf func(time.Time) float64) *discretizedCallableBond {
	db := &discretizedCallableBond{
		redemption:     args.Redemption,
		redemptionTime: timeOf(args.RedemptionDate),
		couponAmounts:  append([]float64(nil), args.CouponAmounts...),
		callPrices:     append([]float64(nil), args.CallPrices...),
		callTypes:      append([]bond.CallabilityType(nil), args.CallTypes...),
	}
	for _, d := range args.CouponDates {
		db.couponTimes = append(db.couponTimes, timeOf(d))
	}
	for _, d := range args.CallDates {
		db.callTimes = append(db.callTimes, timeOf(d))
	}

	for _, exercise := range db.callTimes {
		for j, c := range db.couponTimes {
			if withinNextWeek(exercise, c) {
				db.couponTimes[j] = exercise
			}
		}
	}
	return db
}

func withinNextWeek(t1, t2 float64) bool {
	return t1 <= t2 && t2 <= t1+snapWindow
}

func (b *discretizedCallableBond) Reset(size int) []float64 {
	v := make([]float64, size)
	for i := range v {
		v[i] = b.redemption
	}
	return v
}

func (b *discretizedCallableBond) MandatoryTimes() []float64 {
	times := []float64{b.redemptionTime}
	for _, t := range b.couponTimes {
		if t >= 0 {
			times = append(times, t)
		}
	}
	for _, t := range b.callTimes {
		if t >= 0 {
			times = append(times, t)
		}
	}
	return times
}

func (b *discretizedCallableBond) PreAdjust(a *lattice.DiscretizedAsset) {
	for i, t := range b.callTimes {
		if t < 0 || !a.IsOnTime(t) {
			continue
		}
		values := a.Values()
		price := b.callPrices[i]
		for j, v := range values {
			switch b.callTypes[i] {
			case bond.Call:
				values[j] = math.Min(price, v)
			case bond.Put:
				values[j] = math.Max(price, v)
			}
		}
	}
}

func (b *discretizedCallableBond) PostAdjust(a *lattice.DiscretizedAsset) {
	for i, t := range b.couponTimes {
		if t < 0 || !a.IsOnTime(t) {
			continue
		}
		values := a.Values()
		for j := range values {
			values[j] += b.couponAmounts[i]
		}
	}
}
