// Package tasks owns the task model, its persisted JSON form, the task store
// and the rules that place tasks on calendar cells.
package tasks

import (
	"fmt"
	"slices"
	"strings"

	"taskcal/internal/calendar"
)

// DefaultColor is the color a task gets when the form leaves it blank.
const DefaultColor = "#3B82F6"

// RecurrenceType names the repeat unit of a Recurrence.
type RecurrenceType string

const (
	RepeatDaily   RecurrenceType = "daily"
	RepeatWeekly  RecurrenceType = "weekly"
	RepeatMonthly RecurrenceType = "monthly"
	RepeatYearly  RecurrenceType = "yearly"
)

func ParseRecurrenceType(s string) (RecurrenceType, error) {
	switch rt := RecurrenceType(strings.ToLower(strings.TrimSpace(s))); rt {
	case RepeatDaily, RepeatWeekly, RepeatMonthly, RepeatYearly:
		return rt, nil
	}
	return "", fmt.Errorf("unknown recurrence type %q", s)
}

// Recurrence describes how a task repeats. It is stored and exported but
// never expanded into extra occurrences.
type Recurrence struct {
	Type     RecurrenceType `json:"type"`
	Interval int            `json:"interval"`
	// DaysOfWeek uses 0 for Sunday through 6 for Saturday.
	DaysOfWeek []int `json:"daysOfWeek,omitempty"`
	NthDay     int   `json:"nthDay,omitempty"`
}

// Task is one scheduled item.
type Task struct {
	ID         string        `json:"id"`
	Title      string        `json:"title"`
	Date       calendar.Date `json:"date"`
	Time       string        `json:"time"`
	Color      string        `json:"color"`
	Recurrence *Recurrence   `json:"recurrence,omitempty"`
}

// clone copies t so the result shares no recurrence data with it.
func (t Task) clone() Task {
	if t.Recurrence != nil {
		rec := *t.Recurrence
		rec.DaysOfWeek = slices.Clone(t.Recurrence.DaysOfWeek)
		t.Recurrence = &rec
	}
	return t
}

func cloneAll(list []Task) []Task {
	if list == nil {
		return nil
	}
	out := make([]Task, len(list))
	for i, t := range list {
		out[i] = t.clone()
	}
	return out
}
