package calendar

import (
	"fmt"
	"time"
)

// Cell is one unit of a calendar grid. InMonth is only false for the
// padding days of a monthly grid.
type Cell struct {
	Date    Date
	InMonth bool
}

// Grid returns the cells to display for mode around ref.
func Grid(ref Date, mode ViewMode, weekStart time.Weekday) ([]Cell, error) {
	switch mode {
	case Daily:
		return cells(Day(ref)), nil
	case Weekly:
		return cells(Week(ref, weekStart)), nil
	case Monthly:
		return Month(ref, weekStart), nil
	case Yearly:
		return cells(Year(ref)), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownView, int(mode))
}

func cells(days []Date) []Cell {
	out := make([]Cell, len(days))
	for i, d := range days {
		out[i] = Cell{Date: d, InMonth: true}
	}
	return out
}

// Day is the single-cell daily grid.
func Day(ref Date) []Date {
	return []Date{ref}
}

// Week returns the seven days of the week containing ref.
func Week(ref Date, weekStart time.Weekday) []Date {
	start := ref.StartOfWeek(weekStart)
	days := make([]Date, 7)
	for i := range days {
		days[i] = start.AddDays(i)
	}
	return days
}

// Month covers the month containing ref with whole weeks, padding with days
// from the neighbouring months.
func Month(ref Date, weekStart time.Weekday) []Cell {
	first := ref.StartOfMonth()
	start := first.StartOfWeek(weekStart)
	end := ref.EndOfMonth().EndOfWeek(weekStart)

	out := make([]Cell, 0, 42)
	for d := start; !d.After(end); d = d.AddDays(1) {
		out = append(out, Cell{Date: d, InMonth: d.SameMonth(first)})
	}
	return out
}

// Year returns the first day of each month of ref's year.
func Year(ref Date) []Date {
	months := make([]Date, 12)
	for i := range months {
		months[i] = Date{Year: ref.Year, Month: time.January + time.Month(i), Day: 1}
	}
	return months
}

// Weeks splits a monthly grid into rows of seven.
func Weeks(grid []Cell) [][]Cell {
	rows := make([][]Cell, 0, len(grid)/7+1)
	for i := 0; i < len(grid); i += 7 {
		rows = append(rows, grid[i:min(i+7, len(grid))])
	}
	return rows
}
