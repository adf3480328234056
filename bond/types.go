package bond

import (
	"errors"
	"time"
)

var (
	// ErrInvalidSchedule is returned for schedules that cannot produce coupons.
	ErrInvalidSchedule = errors.New("invalid schedule")
	// ErrYieldNoConvergence is returned when the yield solver runs out of iterations.
	ErrYieldNoConvergence = errors.New("yield did not converge")
	// ErrNilEngine is returned when pricing is requested without an engine.
	ErrNilEngine = errors.New("nil pricing engine")
)

// Cashflow is a single dated cash payment for a bond.
//
// Amounts are in currency units, not price-per-100.
type Cashflow struct {
	Date      time.Time
	Coupon    float64
	Principal float64
}

func (c Cashflow) Amount() float64 {
	return c.Coupon + c.Principal
}

// Coupon is a fixed-rate coupon period. RefStart/RefEnd is the notional
// regular period used by ACT/ACT (ISMA) for stub periods.
type Coupon struct {
	AccrualStart time.Time
	AccrualEnd   time.Time
	RefStart     time.Time
	RefEnd       time.Time
	PayDate      time.Time
	Nominal      float64
	Rate         float64
	Amount       float64
}

// HasOccurred reports whether the coupon is paid on or before d.
func (c Coupon) HasOccurred(d time.Time) bool {
	return !c.PayDate.After(d)
}

// Cashflow converts the coupon into a dated payment.
func (c Coupon) Cashflow() Cashflow {
	return Cashflow{Date: c.PayDate, Coupon: c.Amount}
}

// CallabilityType distinguishes issuer calls from holder puts.
type CallabilityType string

const (
	Call CallabilityType = "CALL"
	Put  CallabilityType = "PUT"
)

// PriceType says whether a call price includes accrued interest.
type PriceType string

const (
	Clean PriceType = "CLEAN"
	Dirty PriceType = "DIRTY"
)

// Callability is one exercise date of the embedded option. Price is quoted
// per 100 of face.
type Callability struct {
	Date      time.Time
	Price     float64
	PriceType PriceType
	Type      CallabilityType
}

// EngineArguments are the inputs a pricing engine needs, restricted to the
// flows that have not occurred at settlement.
type EngineArguments struct {
	SettlementDate time.Time
	FaceAmount     float64
	CouponDates    []time.Time
	CouponAmounts  []float64
	CallDates      []time.Time
	// CallPrices are dirty prices in currency units.
	CallPrices     []float64
	CallTypes      []CallabilityType
	Redemption     float64
	RedemptionDate time.Time
}

// EngineResults is what an engine reports back.
type EngineResults struct {
	// Value is the present value at the curve reference date.
	Value float64
	// SettlementValue is the value used for the settlement dirty price.
	SettlementValue float64
}

// PricingEngine values a callable bond from its arguments.
type PricingEngine interface {
	Calculate(args EngineArguments) (EngineResults, error)
}
