package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/meenmo/qldemo/utils"
)

// CalendarID identifies a holiday calendar.
type CalendarID string

const (
	// NullCalendar treats every day, weekends included, as a business day.
	NullCalendar     CalendarID = "NULL"
	USGovernmentBond CalendarID = "US-GOVBOND"
	TARGET           CalendarID = "TARGET"
)

// ParseCalendar maps a configuration string onto a CalendarID.
func ParseCalendar(s string) (CalendarID, error) {
	switch s {
	case "", "NULL", "NullCalendar":
		return NullCalendar, nil
	case "US-GOVBOND", "UnitedStates/GovernmentBond", "USD":
		return USGovernmentBond, nil
	case "TARGET":
		return TARGET, nil
	default:
		return "", fmt.Errorf("ParseCalendar: unknown calendar %q", s)
	}
}

// BusinessDayConvention says how a date falling on a holiday is rolled.
type BusinessDayConvention string

const (
	Unadjusted        BusinessDayConvention = "UNADJUSTED"
	Following         BusinessDayConvention = "FOLLOWING"
	ModifiedFollowing BusinessDayConvention = "MODIFIED_FOLLOWING"
	Preceding         BusinessDayConvention = "PRECEDING"
)

// ParseConvention maps a convention name onto a BusinessDayConvention.
func ParseConvention(s string) (BusinessDayConvention, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "UNADJUSTED", "NONE":
		return Unadjusted, nil
	case "FOLLOWING", "F":
		return Following, nil
	case "MODIFIED_FOLLOWING", "MODIFIEDFOLLOWING", "MF":
		return ModifiedFollowing, nil
	case "PRECEDING", "P":
		return Preceding, nil
	default:
		return "", fmt.Errorf("ParseConvention: unknown convention %q", s)
	}
}

// TimeUnit is the unit of a calendar period.
type TimeUnit int

const (
	Days TimeUnit = iota
	Weeks
	Months
	Years
)

func isHoliday(cal CalendarID, t time.Time) bool {
	switch cal {
	case USGovernmentBond:
		return isUSGovBondHoliday(t)
	case TARGET:
		return isTargetHoliday(t)
	default:
		return false
	}
}

func isWeekend(t time.Time) bool {
	return t.Weekday() == time.Saturday || t.Weekday() == time.Sunday
}

// IsBusinessDay checks weekends and holiday sets.
func IsBusinessDay(cal CalendarID, t time.Time) bool {
	if cal == NullCalendar {
		return true
	}
	if isWeekend(t) {
		return false
	}
	return !isHoliday(cal, t)
}

// Adjust applies Modified Following.
func Adjust(cal CalendarID, t time.Time) time.Time {
	origMonth := t.Month()
	for !IsBusinessDay(cal, t) {
		t = t.AddDate(0, 0, 1)
	}
	if t.Month() != origMonth {
		t = t.AddDate(0, 0, -1)
		for !IsBusinessDay(cal, t) {
			t = t.AddDate(0, 0, -1)
		}
	}
	return t
}

// AdjustFollowing applies a simple Following convention (no month preservation).
func AdjustFollowing(cal CalendarID, t time.Time) time.Time {
	for !IsBusinessDay(cal, t) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

// AdjustWith rolls t according to conv.
func AdjustWith(cal CalendarID, t time.Time, conv BusinessDayConvention) time.Time {
	switch conv {
	case Following:
		return AdjustFollowing(cal, t)
	case ModifiedFollowing:
		return Adjust(cal, t)
	case Preceding:
		for !IsBusinessDay(cal, t) {
			t = t.AddDate(0, 0, -1)
		}
		return t
	default:
		return t
	}
}

// AddBusinessDays advances n business days (n can be negative).
func AddBusinessDays(cal CalendarID, t time.Time, n int) time.Time {
	step := 1
	if n < 0 {
		step = -1
	}
	for n != 0 {
		t = t.AddDate(0, 0, step)
		if IsBusinessDay(cal, t) {
			n -= step
		}
	}
	return t
}

// Advance moves t by n units. Days count business days; the other units move
// the calendar date (clipping to month end) and then roll with conv.
func Advance(cal CalendarID, t time.Time, n int, unit TimeUnit, conv BusinessDayConvention) time.Time {
	switch unit {
	case Days:
		if n == 0 {
			return AdjustWith(cal, t, conv)
		}
		return AddBusinessDays(cal, t, n)
	case Weeks:
		return AdjustWith(cal, t.AddDate(0, 0, 7*n), conv)
	case Months:
		return AdjustWith(cal, utils.AddMonth(t, n), conv)
	case Years:
		return AdjustWith(cal, utils.AddYear(t, n), conv)
	default:
		return t
	}
}
