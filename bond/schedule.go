package bond

import (
	"fmt"
	"time"

	"github.com/meenmo/qldemo/calendar"
	"github.com/meenmo/qldemo/utils"
)

// DateGeneration selects the direction schedule dates are rolled in.
type DateGeneration string

const (
	// Backward rolls from termination toward effective; a stub, if any, is first.
	Backward DateGeneration = "BACKWARD"
	// Forward rolls from effective toward termination; a stub, if any, is last.
	Forward DateGeneration = "FORWARD"
)

// ScheduleSpec describes a coupon schedule.
type ScheduleSpec struct {
	Effective             time.Time
	Termination           time.Time
	TenorMonths           int
	Calendar              calendar.CalendarID
	Convention            calendar.BusinessDayConvention
	TerminationConvention calendar.BusinessDayConvention
	Rule                  DateGeneration
	EndOfMonth            bool
}

// Schedule is an ordered list of period boundaries. Regular[i] reports
// whether period i (Dates[i] to Dates[i+1]) has full tenor length.
type Schedule struct {
	Dates       []time.Time
	Regular     []bool
	TenorMonths int
	Calendar    calendar.CalendarID
	Convention  calendar.BusinessDayConvention
}

// Periods returns the number of coupon periods.
func (s Schedule) Periods() int {
	if len(s.Dates) < 2 {
		return 0
	}
	return len(s.Dates) - 1
}

// GenerateSchedule builds the period boundaries described by spec. Dates are
// generated unadjusted and then rolled with the schedule conventions.
func GenerateSchedule(spec ScheduleSpec) (Schedule, error) {
	if !spec.Termination.After(spec.Effective) {
		return Schedule{}, fmt.Errorf("GenerateSchedule: termination %s not after effective %s: %w",
			spec.Termination.Format(utils.DateLayout), spec.Effective.Format(utils.DateLayout), ErrInvalidSchedule)
	}
	if spec.TenorMonths <= 0 {
		return Schedule{}, fmt.Errorf("GenerateSchedule: tenor must be positive, got %d months: %w", spec.TenorMonths, ErrInvalidSchedule)
	}
	if spec.TerminationConvention == "" {
		spec.TerminationConvention = spec.Convention
	}

	var dates []time.Time
	var regular []bool
	switch spec.Rule {
	case Backward, "":
		dates, regular = rollBackward(spec)
	case Forward:
		dates, regular = rollForward(spec)
	default:
		return Schedule{}, fmt.Errorf("GenerateSchedule: unknown rule %q: %w", spec.Rule, ErrInvalidSchedule)
	}

	last := len(dates) - 1
	for i := range dates {
		conv := spec.Convention
		if i == last {
			conv = spec.TerminationConvention
		}
		dates[i] = calendar.AdjustWith(spec.Calendar, dates[i], conv)
	}

	return Schedule{
		Dates:       dates,
		Regular:     regular,
		TenorMonths: spec.TenorMonths,
		Calendar:    spec.Calendar,
		Convention:  spec.Convention,
	}, nil
}

func rollDate(seed time.Time, months int, eom bool) time.Time {
	d := utils.AddMonth(seed, months)
	if eom && isMonthEnd(seed) {
		d = time.Date(d.Year(), d.Month()+1, 0, 0, 0, 0, 0, d.Location())
	}
	return d
}

func sameAdjusted(cal calendar.CalendarID, conv calendar.BusinessDayConvention, a, b time.Time) bool {
	return calendar.AdjustWith(cal, a, conv).Equal(calendar.AdjustWith(cal, b, conv))
}

func isMonthEnd(t time.Time) bool {
	return t.AddDate(0, 0, 1).Month() != t.Month()
}

func rollBackward(spec ScheduleSpec) ([]time.Time, []bool) {
	dates := []time.Time{spec.Termination}
	var regular []bool
	for i := 1; ; i++ {
		d := rollDate(spec.Termination, -i*spec.TenorMonths, spec.EndOfMonth)
		if d.Before(spec.Effective) {
			break
		}
		prev := dates[len(dates)-1]
		if !sameAdjusted(spec.Calendar, spec.Convention, prev, d) {
			dates = append(dates, d)
			regular = append(regular, true)
		}
	}
	if !sameAdjusted(spec.Calendar, spec.Convention, dates[len(dates)-1], spec.Effective) {
		dates = append(dates, spec.Effective)
		regular = append(regular, false)
	}

	for i, j := 0, len(dates)-1; i < j; i, j = i+1, j-1 {
		dates[i], dates[j] = dates[j], dates[i]
	}
	for i, j := 0, len(regular)-1; i < j; i, j = i+1, j-1 {
		regular[i], regular[j] = regular[j], regular[i]
	}
	return dates, regular
}

func rollForward(spec ScheduleSpec) ([]time.Time, []bool) {
	dates := []time.Time{spec.Effective}
	var regular []bool
	for i := 1; ; i++ {
		d := rollDate(spec.Effective, i*spec.TenorMonths, spec.EndOfMonth)
		if d.After(spec.Termination) {
			break
		}
		prev := dates[len(dates)-1]
		if !sameAdjusted(spec.Calendar, spec.Convention, prev, d) {
			dates = append(dates, d)
			regular = append(regular, true)
		}
	}
	if !sameAdjusted(spec.Calendar, spec.TerminationConvention, dates[len(dates)-1], spec.Termination) {
		dates = append(dates, spec.Termination)
		regular = append(regular, false)
	}
	return dates, regular
}
