// Package calendar holds civil-date arithmetic, view modes, grid generation
// and navigation for the calendar views.
package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// ErrDateParse is returned when a date string cannot be read as a calendar date.
var ErrDateParse = errors.New("invalid date")

// Date is a calendar day with no time of day and no location.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate normalizes out-of-range values the way time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns the current day in loc. A nil loc means time.Local.
func Today(loc *time.Location) Date {
	if loc == nil {
		loc = time.Local
	}
	return DateOf(time.Now().In(loc))
}

// ParseDate reads either a plain YYYY-MM-DD date or an RFC 3339 timestamp.
// Timestamps are converted to loc before the time of day is dropped, so
// "2024-03-15T23:30:00Z" may land on the 16th east of UTC.
func ParseDate(s string, loc *time.Location) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, fmt.Errorf("%w: empty", ErrDateParse)
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return DateOf(t), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrDateParse, s)
	}
	if loc == nil {
		loc = time.Local
	}
	return DateOf(t.In(loc)), nil
}

// MustParseDate is ParseDate for literals; it panics on bad input.
func MustParseDate(s string) Date {
	d, err := ParseDate(s, time.UTC)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) utc() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// In returns midnight of d in loc.
func (d Date) In(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Date) String() string {
	return d.utc().Format(dateLayout)
}

// Format formats d with a time package layout.
func (d Date) Format(layout string) string {
	return d.utc().Format(layout)
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) Weekday() time.Weekday {
	return d.utc().Weekday()
}

func (d Date) AddDays(n int) Date {
	return DateOf(d.utc().AddDate(0, 0, n))
}

// AddMonths moves n calendar months and clamps the day to the length of the
// target month: Jan 31 + 1 month is Feb 29 in a leap year.
func (d Date) AddMonths(n int) Date {
	first := time.Date(d.Year, d.Month+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	y, m, _ := first.Date()
	day := min(d.Day, DaysIn(y, m))
	return Date{Year: y, Month: m, Day: day}
}

// AddYears moves n years with the same clamping as AddMonths (Feb 29 + 1 year
// is Feb 28).
func (d Date) AddYears(n int) Date {
	return d.AddMonths(12 * n)
}

func (d Date) Compare(o Date) int {
	return d.utc().Compare(o.utc())
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }

func (d Date) After(o Date) bool { return d.Compare(o) > 0 }

// SameMonth reports whether d and o fall in the same month of the same year.
func (d Date) SameMonth(o Date) bool {
	return d.Year == o.Year && d.Month == o.Month
}

func (d Date) StartOfMonth() Date {
	return Date{Year: d.Year, Month: d.Month, Day: 1}
}

func (d Date) EndOfMonth() Date {
	return Date{Year: d.Year, Month: d.Month, Day: DaysIn(d.Year, d.Month)}
}

// StartOfWeek returns the closest day on or before d that falls on weekStart.
func (d Date) StartOfWeek(weekStart time.Weekday) Date {
	offset := (int(d.Weekday()) - int(weekStart) + 7) % 7
	return d.AddDays(-offset)
}

// EndOfWeek returns the last day of the week containing d.
func (d Date) EndOfWeek(weekStart time.Weekday) Date {
	return d.StartOfWeek(weekStart).AddDays(6)
}

// MarshalText encodes d as YYYY-MM-DD.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText accepts anything ParseDate does, resolving timestamps in
// time.Local.
func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b), time.Local)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
