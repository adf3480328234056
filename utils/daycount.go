package utils

import (
	"fmt"
	"time"
)

// DayCount names a day count convention.
type DayCount string

const (
	Act360    DayCount = "ACT/360"
	Act365F   DayCount = "ACT/365F"
	Thirty360 DayCount = "30/360"
	// ActActBond is ACT/ACT ISMA, the convention used for bond coupons and
	// bond yields.
	ActActBond DayCount = "ACT/ACT"
)

// ParseDayCount maps the accepted spellings onto a DayCount.
func ParseDayCount(s string) (DayCount, error) {
	switch s {
	case "ACT/360", "A360":
		return Act360, nil
	case "ACT/365F", "ACT/365", "A365F":
		return Act365F, nil
	case "30/360", "30E/360":
		return Thirty360, nil
	case "ACT/ACT", "ACT/ACT ISMA", "ACT/ACT BOND", "ISMA":
		return ActActBond, nil
	default:
		return "", fmt.Errorf("ParseDayCount: unknown day count %q", s)
	}
}

// YearFraction computes the year fraction between two dates.
//
// For ActActBond the reference period defaults to (start, end), which makes
// the result the month-rounded length of the interval.
func YearFraction(start, end time.Time, convention DayCount) float64 {
	return YearFractionRef(start, end, time.Time{}, time.Time{}, convention)
}

// YearFractionRef computes the year fraction with an explicit coupon
// reference period. Only ActActBond uses refStart/refEnd.
func YearFractionRef(start, end, refStart, refEnd time.Time, convention DayCount) float64 {
	switch convention {
	case Act360:
		return Days(start, end) / 360.0
	case Act365F:
		return Days(start, end) / 365.0
	case Thirty360:
		d1 := start.Day()
		if d1 > 30 {
			d1 = 30
		}
		d2 := end.Day()
		if d2 > 30 {
			d2 = 30
		}
		y1, m1 := start.Year(), int(start.Month())
		y2, m2 := end.Year(), int(end.Month())
		return float64(360*(y2-y1)+30*(m2-m1)+(d2-d1)) / 360.0
	case ActActBond:
		return actActISMA(start, end, refStart, refEnd)
	default:
		return Days(start, end) / 365.0
	}
}

// actActISMA divides the interval into reference periods: the accrual inside
// a period is (period length in years) * days / days-in-period, where the
// period length is rounded to whole months.
func actActISMA(d1, d2, refStart, refEnd time.Time) float64 {
	if d1.Equal(d2) {
		return 0
	}
	if d1.After(d2) {
		return -actActISMA(d2, d1, refStart, refEnd)
	}
	if refStart.IsZero() {
		refStart = d1
	}
	if refEnd.IsZero() {
		refEnd = d2
	}
	if !refEnd.After(refStart) || !refEnd.After(d1) {
		// Degenerate reference period; fall back to the interval itself.
		refStart, refEnd = d1, d2
	}

	months := int(0.5 + 12*Days(refStart, refEnd)/365)
	if months == 0 {
		refStart = d1
		refEnd = AddYear(d1, 1)
		months = 12
	}
	period := float64(months) / 12.0

	if !d2.After(refEnd) {
		if !d1.Before(refStart) {
			return period * Days(d1, d2) / Days(refStart, refEnd)
		}
		// Long first coupon: d1 falls before the reference period.
		previousRef := AddMonth(refStart, -months)
		if d2.After(refStart) {
			return actActISMA(d1, refStart, previousRef, refStart) +
				actActISMA(refStart, d2, refStart, refEnd)
		}
		return actActISMA(d1, d2, previousRef, refStart)
	}

	if refStart.After(d1) {
		// Span starts before the reference period and ends after it.
		return Days(d1, d2) / 365.0
	}

	sum := actActISMA(d1, refEnd, refStart, refEnd)
	var newRefStart, newRefEnd time.Time
	for i := 0; ; i++ {
		newRefStart = AddMonth(refEnd, months*i)
		newRefEnd = AddMonth(refEnd, months*(i+1))
		if d2.Before(newRefEnd) {
			break
		}
		sum += period
	}
	return sum + actActISMA(newRefStart, d2, newRefStart, newRefEnd)
}
