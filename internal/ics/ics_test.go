package ics

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskcal/internal/calendar"
	"taskcal/internal/tasks"
)

var stamp = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

func TestRRule(t *testing.T) {
	tests := []struct {
		name string
		rec  tasks.Recurrence
		want string
	}{
		{"daily", tasks.Recurrence{Type: tasks.RepeatDaily, Interval: 1}, "FREQ=DAILY;INTERVAL=1"},
		{"zero interval", tasks.Recurrence{Type: tasks.RepeatDaily}, "FREQ=DAILY;INTERVAL=1"},
		{"weekly days", tasks.Recurrence{Type: tasks.RepeatWeekly, Interval: 2, DaysOfWeek: []int{1, 3}}, "FREQ=WEEKLY;INTERVAL=2;BYDAY=MO,WE"},
		{"sunday", tasks.Recurrence{Type: tasks.RepeatWeekly, Interval: 1, DaysOfWeek: []int{0}}, "FREQ=WEEKLY;INTERVAL=1;BYDAY=SU"},
		{"weekly ignores nth", tasks.Recurrence{Type: tasks.RepeatWeekly, Interval: 1, DaysOfWeek: []int{5}, NthDay: 2}, "FREQ=WEEKLY;INTERVAL=1;BYDAY=FR"},
		{"second tuesday", tasks.Recurrence{Type: tasks.RepeatMonthly, Interval: 1, DaysOfWeek: []int{2}, NthDay: 2}, "FREQ=MONTHLY;INTERVAL=1;BYDAY=+2TU"},
		{"last friday", tasks.Recurrence{Type: tasks.RepeatMonthly, Interval: 1, DaysOfWeek: []int{5}, NthDay: -1}, "FREQ=MONTHLY;INTERVAL=1;BYDAY=-1FR"},
		{"month day", tasks.Recurrence{Type: tasks.RepeatMonthly, Interval: 3, NthDay: 15}, "FREQ=MONTHLY;INTERVAL=3;BYMONTHDAY=15"},
		{"year day", tasks.Recurrence{Type: tasks.RepeatYearly, Interval: 1, NthDay: 100}, "FREQ=YEARLY;INTERVAL=1;BYYEARDAY=100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RRule(&tt.rec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRRule_Nil(t *testing.T) {
	got, err := RRule(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRRule_Errors(t *testing.T) {
	tests := []struct {
		name string
		rec  tasks.Recurrence
	}{
		{"unknown type", tasks.Recurrence{Type: "hourly", Interval: 1}},
		{"weekday out of range", tasks.Recurrence{Type: tasks.RepeatWeekly, Interval: 1, DaysOfWeek: []int{7}}},
		{"month day out of range", tasks.Recurrence{Type: tasks.RepeatMonthly, Interval: 1, NthDay: 40}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RRule(&tt.rec)
			assert.ErrorIs(t, err, ErrRecurrence)
		})
	}
}

func TestParseRRule_InvertsRRule(t *testing.T) {
	recs := []tasks.Recurrence{
		{Type: tasks.RepeatDaily, Interval: 4},
		{Type: tasks.RepeatWeekly, Interval: 2, DaysOfWeek: []int{1, 3}},
		{Type: tasks.RepeatWeekly, Interval: 1, DaysOfWeek: []int{0, 6}},
		{Type: tasks.RepeatMonthly, Interval: 1, DaysOfWeek: []int{2}, NthDay: 2},
		{Type: tasks.RepeatMonthly, Interval: 1, NthDay: 31},
		{Type: tasks.RepeatYearly, Interval: 1, NthDay: 100},
		{Type: tasks.RepeatYearly, Interval: 2},
	}

	for _, rec := range recs {
		s, err := RRule(&rec)
		require.NoError(t, err)

		got, err := ParseRRule(s)
		require.NoError(t, err, s)
		assert.Equal(t, rec, *got, s)
	}
}

func TestParseRRule_Errors(t *testing.T) {
	for _, s := range []string{
		"",
		"garbage",
		"FREQ=HOURLY",
		"FREQ=MONTHLY;BYDAY=+1MO,+2TU",
		"FREQ=MONTHLY;BYMONTHDAY=1,15",
	} {
		_, err := ParseRRule(s)
		assert.ErrorIs(t, err, ErrRecurrence, s)
	}
}

func TestExport(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	list := []tasks.Task{
		{ID: "a1", Title: "Write spec", Date: calendar.MustParseDate("2024-03-15"), Time: "09:30", Color: "#3B82F6"},
		{
			ID: "b2", Title: "Standup", Date: calendar.MustParseDate("2024-03-18"), Time: "morning", Color: "#22C55E",
			Recurrence: &tasks.Recurrence{Type: tasks.RepeatWeekly, Interval: 1, DaysOfWeek: []int{1, 3}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, list, Options{Location: loc, Stamp: stamp}))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR"))
	assert.Contains(t, out, "PRODID:"+ProductID)
	assert.Contains(t, out, "METHOD:PUBLISH")
	assert.Contains(t, out, "UID:a1@taskcal")
	assert.Contains(t, out, "SUMMARY:Write spec")
	assert.Contains(t, out, "DTSTART:20240315T143000Z")
	assert.Contains(t, out, "DTEND:20240315T150000Z")
	assert.Contains(t, out, "DTSTAMP:20240301T120000Z")
	assert.Contains(t, out, "COLOR:#3B82F6")

	assert.Contains(t, out, "DTSTART;VALUE=DATE:20240318")
	assert.Contains(t, out, "DTEND;VALUE=DATE:20240319")
	assert.Contains(t, out, "RRULE:FREQ=WEEKLY;INTERVAL=1;BYDAY=MO,WE")
	assert.Equal(t, 2, strings.Count(out, "BEGIN:VEVENT"))
}

func TestExport_BadRecurrenceKeepsEvent(t *testing.T) {
	list := []tasks.Task{{
		ID: "x", Title: "Odd", Date: calendar.MustParseDate("2024-03-15"), Time: "10:00",
		Recurrence: &tasks.Recurrence{Type: "fortnightly", Interval: 1},
	}}

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, list, Options{Location: time.UTC, Stamp: stamp}))
	assert.Contains(t, buf.String(), "SUMMARY:Odd")
	assert.NotContains(t, buf.String(), "RRULE")
}

func TestExportImport_RoundTrip(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	list := []tasks.Task{
		{ID: "1", Title: "Lunch, with team", Date: calendar.MustParseDate("2024-03-15"), Time: "12:00", Color: "#EF4444"},
		{ID: "2", Title: "Late", Date: calendar.MustParseDate("2024-12-31"), Time: "23:45", Color: "#3B82F6"},
		{
			ID: "3", Title: "Rent", Date: calendar.MustParseDate("2024-02-29"), Time: "all day", Color: "#3B82F6",
			Recurrence: &tasks.Recurrence{Type: tasks.RepeatMonthly, Interval: 1, NthDay: 1},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, list, Options{Location: loc, Stamp: stamp}))

	reqs, skipped, err := Import(&buf, loc)
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, reqs, len(list))

	for i, task := range list {
		assert.Equal(t, task.Title, reqs[i].Title)
		assert.Equal(t, task.Date.String(), reqs[i].Date)
		assert.Equal(t, task.Time, reqs[i].Time)
		assert.Equal(t, task.Color, reqs[i].Color)
		assert.Equal(t, task.Recurrence, reqs[i].Recurrence)
	}
}

const foreign = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//Example//EN\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:late@example.com\r\n" +
	"DTSTAMP:20240301T000000Z\r\n" +
	"DTSTART:20240315T200000Z\r\n" +
	"SUMMARY:Call Tokyo\r\n" +
	"RRULE:FREQ=MINUTELY\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:holiday@example.com\r\n" +
	"DTSTAMP:20240301T000000Z\r\n" +
	"DTSTART;VALUE=DATE:20240401\r\n" +
	"SUMMARY:Holiday\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:untitled@example.com\r\n" +
	"DTSTAMP:20240301T000000Z\r\n" +
	"DTSTART:20240402T090000Z\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:nostart@example.com\r\n" +
	"DTSTAMP:20240301T000000Z\r\n" +
	"SUMMARY:Someday\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func TestImport_ForeignCalendar(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)

	reqs, skipped, err := Import(strings.NewReader(foreign), loc)
	require.NoError(t, err)

	require.Len(t, reqs, 2)
	assert.Equal(t, tasks.Request{Title: "Call Tokyo", Date: "2024-03-16", Time: "05:00"}, reqs[0])
	assert.Equal(t, tasks.Request{Title: "Holiday", Date: "2024-04-01", Time: "00:00"}, reqs[1])

	require.Len(t, skipped, 2)
	assert.Equal(t, "untitled@example.com", skipped[0].UID)
	assert.Equal(t, "nostart@example.com", skipped[1].UID)
	assert.Contains(t, skipped[1].Error(), "DTSTART")

	for _, req := range reqs {
		assert.NoError(t, req.Validate())
	}
}

func TestImport_Malformed(t *testing.T) {
	_, _, err := Import(strings.NewReader("not a calendar"), time.UTC)
	assert.ErrorIs(t, err, ErrParse)
}
