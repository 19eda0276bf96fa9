package ics

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"taskcal/internal/calendar"
	"taskcal/internal/tasks"
)

var ErrParse = errors.New("parse calendar")

// allDayTime is the time given to imported all-day events that carry no
// X-TASKCAL-TIME.
const allDayTime = "00:00"

// Skipped is a VEVENT that could not be turned into a request.
type Skipped struct {
	UID string
	Err error
}

func (s Skipped) Error() string {
	return fmt.Sprintf("event %q: %v", s.UID, s.Err)
}

// Import reads a calendar and returns one creation request per usable
// VEVENT. Events without a summary or start are reported in the skipped list.
// An RRULE that cannot be mapped is dropped and the event is kept.
func Import(r io.Reader, loc *time.Location) ([]tasks.Request, []Skipped, error) {
	if loc == nil {
		loc = time.Local
	}
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	var (
		reqs    []tasks.Request
		skipped []Skipped
	)
	for _, ev := range cal.Events() {
		req, err := request(ev, loc)
		if err != nil {
			skipped = append(skipped, Skipped{UID: ev.Id(), Err: err})
			continue
		}
		reqs = append(reqs, req)
	}
	return reqs, skipped, nil
}

func request(ev *ical.VEvent, loc *time.Location) (tasks.Request, error) {
	var req tasks.Request

	if p := ev.GetProperty(ical.ComponentPropertySummary); p != nil {
		req.Title = strings.TrimSpace(p.Value)
	}
	if req.Title == "" {
		return req, errors.New("missing SUMMARY")
	}

	start := ev.GetProperty(ical.ComponentPropertyDtStart)
	if start == nil {
		return req, errors.New("missing DTSTART")
	}
	if isAllDay(start) {
		t, err := ev.GetAllDayStartAt()
		if err != nil {
			return req, fmt.Errorf("DTSTART: %w", err)
		}
		req.Date = calendar.DateOf(t).String()
		req.Time = allDayTime
	} else {
		t, err := ev.GetStartAt()
		if err != nil {
			return req, fmt.Errorf("DTSTART: %w", err)
		}
		t = t.In(loc)
		req.Date = calendar.DateOf(t).String()
		req.Time = t.Format(timeLayout)
	}
	if p := ev.GetProperty(propertyTime); p != nil && strings.TrimSpace(p.Value) != "" {
		req.Time = strings.TrimSpace(p.Value)
	}

	if p := ev.GetProperty(ical.ComponentPropertyColor); p != nil {
		req.Color = strings.TrimSpace(p.Value)
	}
	if p := ev.GetProperty(ical.ComponentPropertyRrule); p != nil {
		if rec, err := ParseRRule(p.Value); err == nil {
			req.Recurrence = rec
		}
	}
	return req, nil
}

func isAllDay(p *ical.IANAProperty) bool {
	if vs := p.ICalParameters[string(ical.ParameterValue)]; len(vs) > 0 && strings.EqualFold(vs[0], string(ical.ValueDataTypeDate)) {
		return true
	}
	return !strings.Contains(p.Value, "T")
}
