package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskcal/internal/calendar"
	"taskcal/internal/tasks"
)

const (
	fieldTitle = iota
	fieldDate
	fieldTime
	fieldColor
)

func formFields() []string {
	return []string{"Title", "Date", "Time", "Color"}
}

type formState struct {
	inputs []textinput.Model
	index  int
}

func newForm(date calendar.Date, color string) *formState {
	placeholders := []string{"Task title", "YYYY-MM-DD", "HH:MM", tasks.DefaultColor}
	limits := []int{256, 32, 5, 16}

	f := &formState{inputs: make([]textinput.Model, len(placeholders))}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = limits[i]
		ti.Width = 40
		f.inputs[i] = ti
	}
	f.inputs[fieldDate].SetValue(date.String())
	f.inputs[fieldColor].SetValue(color)
	return f
}

func (f *formState) focus() tea.Cmd {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	return f.inputs[f.index].Focus()
}

// move shifts focus by delta fields, wrapping around.
func (f *formState) move(delta int) tea.Cmd {
	f.index = wrapIndex(f.index+delta, len(f.inputs))
	return f.focus()
}

func (f *formState) last() bool {
	return f.index == len(f.inputs)-1
}

func (f *formState) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.index], cmd = f.inputs[f.index].Update(msg)
	return cmd
}

func (f *formState) setWidth(w int) {
	if w < 10 {
		w = 10
	}
	for i := range f.inputs {
		f.inputs[i].Width = w
	}
}

func (f *formState) request() tasks.Request {
	return tasks.Request{
		Title: f.inputs[fieldTitle].Value(),
		Date:  f.inputs[fieldDate].Value(),
		Time:  f.inputs[fieldTime].Value(),
		Color: f.inputs[fieldColor].Value(),
	}
}

func wrapIndex(idx, n int) int {
	if n <= 0 {
		return 0
	}
	idx %= n
	if idx < 0 {
		idx += n
	}
	return idx
}
