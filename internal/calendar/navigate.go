package calendar

import "fmt"

// Direction is a navigation step: Prev or Next.
type Direction int

const (
	Prev Direction = -1
	Next Direction = 1
)

// Step moves d by one unit of mode: a day, a week, a calendar month or a
// year. Month and year steps clamp the day of month, see Date.AddMonths.
func Step(d Date, mode ViewMode, dir Direction) (Date, error) {
	if dir != Prev && dir != Next {
		return d, fmt.Errorf("%w: got %d", ErrDirection, int(dir))
	}
	n := int(dir)
	switch mode {
	case Daily:
		return d.AddDays(n), nil
	case Weekly:
		return d.AddDays(7 * n), nil
	case Monthly:
		return d.AddMonths(n), nil
	case Yearly:
		return d.AddYears(n), nil
	}
	return d, fmt.Errorf("%w: %d", ErrUnknownView, int(mode))
}
