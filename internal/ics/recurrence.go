package ics

import (
	"errors"
	"fmt"

	"github.com/teambition/rrule-go"

	"taskcal/internal/tasks"
)

var ErrRecurrence = errors.New("unsupported recurrence")

// weekdays maps 0=Sunday..6=Saturday onto rrule weekdays.
var weekdays = [7]rrule.Weekday{rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA}

var frequencies = map[tasks.RecurrenceType]rrule.Frequency{
	tasks.RepeatDaily:   rrule.DAILY,
	tasks.RepeatWeekly:  rrule.WEEKLY,
	tasks.RepeatMonthly: rrule.MONTHLY,
	tasks.RepeatYearly:  rrule.YEARLY,
}

// RRule renders rec as an RRULE value such as "FREQ=WEEKLY;INTERVAL=2;BYDAY=MO,WE".
//
// NthDay is read as an ordinal weekday ("+2MO") when days are given on a
// monthly or yearly rule, as BYMONTHDAY on a monthly rule without days and as
// BYYEARDAY on a yearly one. Daily and weekly rules ignore it.
func RRule(rec *tasks.Recurrence) (string, error) {
	if rec == nil {
		return "", nil
	}
	freq, ok := frequencies[rec.Type]
	if !ok {
		return "", fmt.Errorf("%w: type %q", ErrRecurrence, rec.Type)
	}

	opt := rrule.ROption{Freq: freq, Interval: max(rec.Interval, 1)}
	ordinal := rec.NthDay != 0 && (freq == rrule.MONTHLY || freq == rrule.YEARLY)

	for _, d := range rec.DaysOfWeek {
		if d < 0 || d > 6 {
			return "", fmt.Errorf("%w: weekday %d", ErrRecurrence, d)
		}
		wd := weekdays[d]
		if ordinal {
			wd = wd.Nth(rec.NthDay)
		}
		opt.Byweekday = append(opt.Byweekday, wd)
	}
	if ordinal && len(rec.DaysOfWeek) == 0 {
		if freq == rrule.MONTHLY {
			opt.Bymonthday = []int{rec.NthDay}
		} else {
			opt.Byyearday = []int{rec.NthDay}
		}
	}

	if _, err := rrule.NewRRule(opt); err != nil {
		return "", fmt.Errorf("%w: %w", ErrRecurrence, err)
	}
	return opt.RRuleString(), nil
}

// ParseRRule is the inverse of RRule. Sub-daily frequencies and rules with
// more than one ordinal are rejected.
func ParseRRule(value string) (*tasks.Recurrence, error) {
	opt, err := rrule.StrToROption(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRecurrence, err)
	}

	rec := &tasks.Recurrence{Interval: max(opt.Interval, 1)}
	switch opt.Freq {
	case rrule.DAILY:
		rec.Type = tasks.RepeatDaily
	case rrule.WEEKLY:
		rec.Type = tasks.RepeatWeekly
	case rrule.MONTHLY:
		rec.Type = tasks.RepeatMonthly
	case rrule.YEARLY:
		rec.Type = tasks.RepeatYearly
	default:
		return nil, fmt.Errorf("%w: frequency %s", ErrRecurrence, opt.Freq)
	}

	for _, wd := range opt.Byweekday {
		// rrule counts from Monday.
		rec.DaysOfWeek = append(rec.DaysOfWeek, (wd.Day()+1)%7)
		if n := wd.N(); n != 0 {
			if rec.NthDay != 0 && rec.NthDay != n {
				return nil, fmt.Errorf("%w: mixed ordinals in %q", ErrRecurrence, value)
			}
			rec.NthDay = n
		}
	}
	switch {
	case len(opt.Bymonthday) > 1 || len(opt.Byyearday) > 1:
		return nil, fmt.Errorf("%w: more than one day in %q", ErrRecurrence, value)
	case len(opt.Bymonthday) == 1 && rec.NthDay == 0:
		rec.NthDay = opt.Bymonthday[0]
	case len(opt.Byyearday) == 1 && rec.NthDay == 0:
		rec.NthDay = opt.Byyearday[0]
	}
	return rec, nil
}
