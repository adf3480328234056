package bond

import (
	"fmt"
	"time"

	"github.com/meenmo/qldemo/calendar"
	"github.com/meenmo/qldemo/utils"
)

// FixedRateBond is a bullet bond paying a constant coupon rate on a schedule.
type FixedRateBond struct {
	SettlementDays    int
	FaceAmount        float64
	Schedule          Schedule
	CouponRate        float64
	DayCount          utils.DayCount
	PaymentConvention calendar.BusinessDayConvention
	// Redemption is quoted per 100 of face.
	Redemption float64
	IssueDate  time.Time
	// Calendar is used for the settlement lag; it defaults to the schedule calendar.
	Calendar calendar.CalendarID

	coupons []Coupon
}

// NewFixedRateBond validates the terms and builds the coupon leg.
func NewFixedRateBond(b FixedRateBond) (*FixedRateBond, error) {
	if b.FaceAmount <= 0 {
		return nil, fmt.Errorf("NewFixedRateBond: FaceAmount must be positive")
	}
	if b.Schedule.Periods() == 0 {
		return nil, fmt.Errorf("NewFixedRateBond: %w", ErrInvalidSchedule)
	}
	if b.Redemption == 0 {
		b.Redemption = 100
	}
	if b.Calendar == "" {
		b.Calendar = b.Schedule.Calendar
	}
	if b.IssueDate.IsZero() {
		b.IssueDate = b.Schedule.Dates[0]
	}
	b.coupons = b.buildCoupons()
	return &b, nil
}

// buildCoupons assigns reference periods the way ACT/ACT (ISMA) expects: an
// irregular first period is measured against the regular period ending on
// its end date, an irregular last one against the period starting on its
// start date.
func (b *FixedRateBond) buildCoupons() []Coupon {
	s := b.Schedule
	n := s.Periods()
	coupons := make([]Coupon, 0, n)
	for i := 0; i < n; i++ {
		start, end := s.Dates[i], s.Dates[i+1]
		refStart, refEnd := start, end
		if !s.Regular[i] {
			switch i {
			case 0:
				refStart = calendar.AdjustWith(s.Calendar, utils.AddMonth(end, -s.TenorMonths), s.Convention)
			case n - 1:
				refEnd = calendar.AdjustWith(s.Calendar, utils.AddMonth(start, s.TenorMonths), s.Convention)
			}
		}
		yf := utils.YearFractionRef(start, end, refStart, refEnd, b.DayCount)
		coupons = append(coupons, Coupon{
			AccrualStart: start,
			AccrualEnd:   end,
			RefStart:     refStart,
			RefEnd:       refEnd,
			PayDate:      calendar.AdjustWith(s.Calendar, end, b.PaymentConvention),
			Nominal:      b.FaceAmount,
			Rate:         b.CouponRate,
			Amount:       b.FaceAmount * b.CouponRate * yf,
		})
	}
	return coupons
}

// Coupons returns the coupon leg.
func (b *FixedRateBond) Coupons() []Coupon {
	return b.coupons
}

// MaturityDate is the payment date of the redemption.
func (b *FixedRateBond) MaturityDate() time.Time {
	return b.coupons[len(b.coupons)-1].PayDate
}

// RedemptionCashflow is the final principal payment in currency units.
func (b *FixedRateBond) RedemptionCashflow() Cashflow {
	return Cashflow{Date: b.MaturityDate(), Principal: b.FaceAmount * b.Redemption / 100}
}

// Cashflows lists coupons and redemption in payment order.
func (b *FixedRateBond) Cashflows() []Cashflow {
	out := make([]Cashflow, 0, len(b.coupons)+1)
	for _, c := range b.coupons {
		out = append(out, c.Cashflow())
	}
	return append(out, b.RedemptionCashflow())
}

// SettlementDate is evaluation plus the settlement lag, never before issue.
func (b *FixedRateBond) SettlementDate(evaluation time.Time) time.Time {
	d := calendar.AddBusinessDays(b.Calendar, evaluation, b.SettlementDays)
	if d.Before(b.IssueDate) {
		return b.IssueDate
	}
	return d
}

// AccruedAmount is the accrued coupon at d in currency units. It is zero on
// coupon dates because the coupon paid on d no longer accrues.
func (b *FixedRateBond) AccruedAmount(d time.Time) float64 {
	for _, c := range b.coupons {
		if c.HasOccurred(d) {
			continue
		}
		if !d.After(c.AccrualStart) || d.After(c.PayDate) {
			return 0
		}
		end := utils.MinDate(d, c.AccrualEnd)
		return c.Nominal * c.Rate * utils.YearFractionRef(c.AccrualStart, end, c.RefStart, c.RefEnd, b.DayCount)
	}
	return 0
}

// AccruedPer100 is AccruedAmount quoted per 100 of face.
func (b *FixedRateBond) AccruedPer100(d time.Time) float64 {
	return b.AccruedAmount(d) * 100 / b.FaceAmount
}
