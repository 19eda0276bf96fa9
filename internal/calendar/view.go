package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrUnknownView = errors.New("unknown view mode")
	ErrDirection   = errors.New("direction must be -1 or +1")
	ErrWeekStart   = errors.New("week start must be sunday or monday")
)

// ViewMode selects which calendar window is shown.
type ViewMode int

const (
	Daily ViewMode = iota
	Weekly
	Monthly
	Yearly
)

// Modes lists every view mode in display order.
func Modes() []ViewMode {
	return []ViewMode{Daily, Weekly, Monthly, Yearly}
}

func (v ViewMode) String() string {
	switch v {
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	case Yearly:
		return "yearly"
	default:
		return fmt.Sprintf("ViewMode(%d)", int(v))
	}
}

// Title is the capitalized label used on view selector buttons.
func (v ViewMode) Title() string {
	s := v.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseViewMode reads a mode name case-insensitively.
func ParseViewMode(s string) (ViewMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily", "day":
		return Daily, nil
	case "weekly", "week":
		return Weekly, nil
	case "monthly", "month":
		return Monthly, nil
	case "yearly", "year":
		return Yearly, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownView, s)
}

func (v ViewMode) MarshalText() ([]byte, error) {
	switch v {
	case Daily, Weekly, Monthly, Yearly:
		return []byte(v.String()), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownView, int(v))
}

func (v *ViewMode) UnmarshalText(b []byte) error {
	parsed, err := ParseViewMode(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Label is the header shown above a grid: "March 2024", or "2024" for the
// yearly view.
func Label(ref Date, mode ViewMode) string {
	if mode == Yearly {
		return ref.Format("2006")
	}
	return ref.Format("January 2006")
}

// ParseWeekStart maps a config value to a weekday. Only Sunday and Monday
// are supported.
func ParseWeekStart(s string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sunday", "sun":
		return time.Sunday, nil
	case "monday", "mon":
		return time.Monday, nil
	}
	return time.Sunday, fmt.Errorf("%w: %q", ErrWeekStart, s)
}
