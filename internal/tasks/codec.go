package tasks

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"taskcal/internal/calendar"
)

// storedTask is the persisted shape. Date stays a string until the caller's
// location is known.
type storedTask struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	Date       string      `json:"date"`
	Time       string      `json:"time"`
	Color      string      `json:"color"`
	Recurrence *Recurrence `json:"recurrence,omitempty"`
}

// ErrZeroDate rejects a task with no date; it would not read back.
var ErrZeroDate = errors.New("task has no date")

// Encode serializes tasks as a JSON array with ISO dates. An empty
// Recurrence.DaysOfWeek is omitted and decodes as nil.
func Encode(list []Task) ([]byte, error) {
	out := make([]storedTask, len(list))
	for i, t := range list {
		if t.Date.IsZero() {
			return nil, fmt.Errorf("encode task %d (%q): %w", i, t.ID, ErrZeroDate)
		}
		out[i] = storedTask{
			ID:         t.ID,
			Title:      t.Title,
			Date:       t.Date.String(),
			Time:       t.Time,
			Color:      t.Color,
			Recurrence: t.Recurrence,
		}
	}
	return json.Marshal(out)
}

// BadEntry describes an array element Decode had to skip.
type BadEntry struct {
	Index int
	ID    string
	Err   error
}

// Decode parses a JSON array written by Encode, or an older document that
// stored full timestamps. A malformed document is an error;
// individual entries with unreadable dates are skipped and reported.
func Decode(data []byte, loc *time.Location) ([]Task, []BadEntry, error) {
	var raw []storedTask
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("decode tasks: %w", err)
	}

	list := make([]Task, 0, len(raw))
	var bad []BadEntry
	for i, st := range raw {
		date, err := calendar.ParseDate(st.Date, loc)
		if err != nil {
			bad = append(bad, BadEntry{Index: i, ID: st.ID, Err: err})
			continue
		}
		if rec := st.Recurrence; rec != nil && len(rec.DaysOfWeek) == 0 {
			rec.DaysOfWeek = nil
		}
		list = append(list, Task{
			ID:         st.ID,
			Title:      st.Title,
			Date:       date,
			Time:       st.Time,
			Color:      st.Color,
			Recurrence: st.Recurrence,
		})
	}
	return list, bad, nil
}
