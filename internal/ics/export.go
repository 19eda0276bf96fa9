// Package ics converts tasks to and from iCalendar documents.
package ics

import (
	"io"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/rs/zerolog"

	"taskcal/internal/tasks"
)

const (
	ProductID     = "-//taskcal//Task Calendar//EN"
	uidSuffix     = "@taskcal"
	timeLayout    = "15:04"
	eventDuration = 30 * time.Minute
)

// propertyTime keeps the task's original time string so all-day exports
// survive a round trip.
const propertyTime = ical.ComponentProperty("X-TASKCAL-TIME")

type Options struct {
	// Location anchors task dates and times. Defaults to time.Local.
	Location *time.Location
	// Stamp is written as DTSTAMP. Defaults to time.Now.
	Stamp time.Time
	Log   zerolog.Logger
}

func (o Options) location() *time.Location {
	if o.Location == nil {
		return time.Local
	}
	return o.Location
}

// Calendar builds a PUBLISH calendar with one VEVENT per task. Tasks whose
// time does not parse as HH:MM become all-day events. A recurrence that
// cannot be expressed as an RRULE is dropped with a warning.
func Calendar(list []tasks.Task, opts Options) *ical.Calendar {
	loc := opts.location()
	stamp := opts.Stamp
	if stamp.IsZero() {
		stamp = time.Now()
	}

	cal := ical.NewCalendar()
	cal.SetProductId(ProductID)
	cal.SetMethod(ical.MethodPublish)

	for _, t := range list {
		ev := cal.AddEvent(t.ID + uidSuffix)
		ev.SetDtStampTime(stamp)
		ev.SetSummary(t.Title)
		if t.Color != "" {
			ev.SetColor(t.Color)
		}
		ev.SetProperty(propertyTime, t.Time)

		if clock, err := time.Parse(timeLayout, t.Time); err == nil {
			start := time.Date(t.Date.Year, t.Date.Month, t.Date.Day, clock.Hour(), clock.Minute(), 0, 0, loc)
			ev.SetStartAt(start)
			ev.SetEndAt(start.Add(eventDuration))
		} else {
			ev.SetAllDayStartAt(t.Date.In(loc))
			ev.SetAllDayEndAt(t.Date.AddDays(1).In(loc))
		}

		if t.Recurrence != nil {
			rule, err := RRule(t.Recurrence)
			if err != nil {
				opts.Log.Warn().Err(err).Str("id", t.ID).Msg("recurrence not exported")
				continue
			}
			ev.AddRrule(rule)
		}
	}
	return cal
}

// Export writes list to w as an iCalendar document.
func Export(w io.Writer, list []tasks.Task, opts Options) error {
	return Calendar(list, opts).SerializeTo(w)
}
