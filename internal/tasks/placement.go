package tasks

import (
	"time"

	"taskcal/internal/calendar"
)

// On returns the tasks scheduled on day, keeping list order.
func On(list []Task, day calendar.Date) []Task {
	var out []Task
	for _, t := range list {
		if t.Date == day {
			out = append(out, t)
		}
	}
	return out
}

// InMonth returns the tasks in the month of monthStart. Yearly cells use it
// because they stand for a whole month.
func InMonth(list []Task, monthStart calendar.Date) []Task {
	var out []Task
	for _, t := range list {
		if t.Date.SameMonth(monthStart) {
			out = append(out, t)
		}
	}
	return out
}

// ForCell picks the placement rule for a cell of the given view.
func ForCell(list []Task, cell calendar.Date, mode calendar.ViewMode) []Task {
	if mode == calendar.Yearly {
		return InMonth(list, cell)
	}
	return On(list, cell)
}

// OnDate is On with a date string. A string that does not parse fails the
// lookup and returns no tasks.
func OnDate(list []Task, s string, loc *time.Location) ([]Task, error) {
	day, err := calendar.ParseDate(s, loc)
	if err != nil {
		return nil, err
	}
	return On(list, day), nil
}
