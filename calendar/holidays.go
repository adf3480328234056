package calendar

import "time"

// easterSunday returns Easter Sunday of the given year (Gregorian computus).
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func isGoodFriday(t time.Time) bool {
	return sameDay(t, easterSunday(t.Year()).AddDate(0, 0, -2))
}

func isEasterMonday(t time.Time) bool {
	return sameDay(t, easterSunday(t.Year()).AddDate(0, 0, 1))
}

// isUSGovBondHoliday follows the SIFMA recommended bond market closings,
// without the one-off early closes.
func isUSGovBondHoliday(t time.Time) bool {
	d, m, y, w := t.Day(), t.Month(), t.Year(), t.Weekday()

	switch {
	// New Year's Day, moved to Monday when on Sunday
	case m == time.January && (d == 1 || (d == 2 && w == time.Monday)):
		return true
	// Martin Luther King's birthday, third Monday in January
	case y >= 1983 && m == time.January && d >= 15 && d <= 21 && w == time.Monday:
		return true
	// Washington's birthday, third Monday in February
	case m == time.February && d >= 15 && d <= 21 && w == time.Monday:
		return true
	case isGoodFriday(t):
		return true
	// Memorial Day, last Monday in May
	case m == time.May && d >= 25 && w == time.Monday:
		return true
	case m == time.July && observed(d, 4, w):
		return true
	// Labor Day, first Monday in September
	case m == time.September && d <= 7 && w == time.Monday:
		return true
	// Columbus Day, second Monday in October
	case y >= 1971 && m == time.October && d >= 8 && d <= 14 && w == time.Monday:
		return true
	case m == time.November && observed(d, 11, w):
		return true
	// Thanksgiving, fourth Thursday in November
	case m == time.November && d >= 22 && d <= 28 && w == time.Thursday:
		return true
	case m == time.December && observed(d, 25, w):
		return true
	}
	return false
}

// observed reports whether day d is the fixed-date holiday h or its weekday
// substitute (Friday before a Saturday, Monday after a Sunday).
func observed(d, h int, w time.Weekday) bool {
	return d == h || (d == h+1 && w == time.Monday) || (d == h-1 && w == time.Friday)
}

func isTargetHoliday(t time.Time) bool {
	d, m, y := t.Day(), t.Month(), t.Year()

	switch {
	case m == time.January && d == 1:
		return true
	case y >= 2000 && (isGoodFriday(t) || isEasterMonday(t)):
		return true
	case y >= 2000 && m == time.May && d == 1:
		return true
	case m == time.December && d == 25:
		return true
	case y >= 2000 && m == time.December && d == 26:
		return true
	case m == time.December && d == 31 && (y == 1998 || y == 1999 || y == 2001):
		return true
	}
	return false
}
