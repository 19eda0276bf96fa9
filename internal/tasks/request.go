package tasks

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hay-kot/criterio"

	"taskcal/internal/calendar"
)

// ErrValidation marks a request rejected before it reached the store.
var ErrValidation = errors.New("invalid task")

// Request is what the creation form submits. Title, Date and Time are
// required; an empty Color falls back to the store default.
type Request struct {
	Title      string
	Date       string
	Time       string
	Color      string
	Recurrence *Recurrence
}

// Validate checks required fields. The returned error wraps ErrValidation and
// a criterio.FieldErrors with one entry per bad field.
func (r Request) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if strings.TrimSpace(r.Title) == "" {
		errs = errs.Append("title", errors.New("is required"))
	}
	if strings.TrimSpace(r.Date) == "" {
		errs = errs.Append("date", errors.New("is required"))
	}
	if strings.TrimSpace(r.Time) == "" {
		errs = errs.Append("time", errors.New("is required"))
	}
	if rec := r.Recurrence; rec != nil {
		if _, err := ParseRecurrenceType(string(rec.Type)); err != nil {
			errs = errs.Append("recurrence.type", err)
		}
		if rec.Interval < 1 {
			errs = errs.Append("recurrence.interval", fmt.Errorf("must be at least 1, got %d", rec.Interval))
		}
		for i, d := range rec.DaysOfWeek {
			if d < 0 || d > 6 {
				errs = errs.Append(fmt.Sprintf("recurrence.daysOfWeek[%d]", i), fmt.Errorf("weekday %d out of range 0-6", d))
			}
		}
	}

	if err := errs.ToError(); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}

// task builds the Task for r without an id. The date must parse; anything
// else was checked by Validate.
func (r Request) task(loc *time.Location, defaultColor string) (Task, error) {
	date, err := calendar.ParseDate(r.Date, loc)
	if err != nil {
		return Task{}, fmt.Errorf("%w: date: %w", ErrValidation, err)
	}
	color := strings.TrimSpace(r.Color)
	if color == "" {
		color = defaultColor
	}
	var rec *Recurrence
	if r.Recurrence != nil {
		cp := *r.Recurrence
		cp.DaysOfWeek = append([]int(nil), r.Recurrence.DaysOfWeek...)
		if len(cp.DaysOfWeek) == 0 {
			cp.DaysOfWeek = nil
		}
		rec = &cp
	}
	return Task{
		Title:      strings.TrimSpace(r.Title),
		Date:       date,
		Time:       strings.TrimSpace(r.Time),
		Color:      color,
		Recurrence: rec,
	}, nil
}
