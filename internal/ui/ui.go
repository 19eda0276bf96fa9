package ui

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"taskcal/internal/calendar"
	"taskcal/internal/config"
	"taskcal/internal/tasks"
)

type mode int

const (
	modeCalendar mode = iota
	modeForm
)

// ViewState is the navigation state behind the screen.
type ViewState struct {
	CurrentDate  calendar.Date
	View         calendar.ViewMode
	SelectedDate *calendar.Date
	FormOpen     bool
}

type Model struct {
	store     *tasks.Store
	cfg       config.Config
	log       zerolog.Logger
	weekStart time.Weekday
	today     calendar.Date

	current  calendar.Date
	view     calendar.ViewMode
	cursor   calendar.Date
	selected *calendar.Date
	mode     mode
	form     *formState
	status   string
	width    int
}

type Option func(*Model)

func WithLogger(l zerolog.Logger) Option {
	return func(m *Model) { m.log = l }
}

// WithToday pins the date used for highlighting and the today key.
func WithToday(d calendar.Date) Option {
	return func(m *Model) { m.today = d }
}

func New(store *tasks.Store, cfg config.Config, opts ...Option) Model {
	m := Model{
		store:     store,
		cfg:       cfg,
		log:       zerolog.Nop(),
		weekStart: cfg.WeekStartDay(),
		today:     calendar.Today(store.Location()),
		view:      cfg.View(),
		mode:      modeCalendar,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.current = m.today
	m.cursor = m.anchor(m.today)
	m.status = fmt.Sprintf("%s add • %s/%s navigate • %s quit", m.cfg.Keys.Add, m.cfg.Keys.Prev, m.cfg.Keys.Next, m.cfg.Keys.Quit)
	return m
}

func Run(store *tasks.Store, cfg config.Config, log zerolog.Logger) error {
	program := tea.NewProgram(New(store, cfg, WithLogger(log)), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func (m Model) State() ViewState {
	return ViewState{
		CurrentDate:  m.current,
		View:         m.view,
		SelectedDate: m.selected,
		FormOpen:     m.form != nil,
	}
}

func (m Model) Cursor() calendar.Date { return m.cursor }

func (m Model) Status() string { return m.status }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.mode == modeForm {
			return m.updateFormMode(msg.String(), msg)
		}
		return m.updateCalendarMode(msg.String())
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if m.form != nil {
			m.form.setWidth(msg.Width - 20)
		}
	}
	return m, nil
}

func (m Model) updateCalendarMode(key string) (tea.Model, tea.Cmd) {
	k := m.cfg.Keys
	switch key {
	case "ctrl+c", k.Quit:
		return m, tea.Quit
	case k.Prev:
		return m.step(calendar.Prev), nil
	case k.Next:
		return m.step(calendar.Next), nil
	case k.Today:
		m.current = m.today
		m.cursor = m.anchor(m.today)
		m.status = "Today"
	case k.Daily:
		return m.switchView(calendar.Daily), nil
	case k.Weekly:
		return m.switchView(calendar.Weekly), nil
	case k.Monthly:
		return m.switchView(calendar.Monthly), nil
	case k.Yearly:
		return m.switchView(calendar.Yearly), nil
	case "left", "h":
		return m.moveCursor(-1, 0), nil
	case "right", "l":
		return m.moveCursor(1, 0), nil
	case "up", "k":
		return m.moveCursor(0, -1), nil
	case "down", "j":
		return m.moveCursor(0, 1), nil
	case k.Add:
		return m.openForm()
	}
	return m, nil
}

func (m Model) step(dir calendar.Direction) Model {
	current, err := calendar.Step(m.current, m.view, dir)
	if err != nil {
		m.status = err.Error()
		return m
	}
	cursor, err := calendar.Step(m.cursor, m.view, dir)
	if err != nil {
		m.status = err.Error()
		return m
	}
	m.current = current
	m.cursor = m.anchor(cursor)
	if !m.visible(m.cursor) {
		m.cursor = m.anchor(current)
	}
	m.status = calendar.Label(m.current, m.view)
	return m
}

func (m Model) switchView(v calendar.ViewMode) Model {
	m.view = v
	m.cursor = m.anchor(m.cursor)
	m.current = m.cursor
	m.status = v.Title() + " view"
	return m
}

// moveCursor moves the highlight by dx cells and dy rows. Leaving the
// visible window re-anchors the view on the new cursor.
func (m Model) moveCursor(dx, dy int) Model {
	switch m.view {
	case calendar.Daily:
		m.cursor = m.cursor.AddDays(dx + dy)
	case calendar.Weekly:
		m.cursor = m.cursor.AddDays(dx + 7*dy)
	case calendar.Monthly:
		m.cursor = m.cursor.AddDays(dx + 7*dy)
	case calendar.Yearly:
		m.cursor = m.cursor.AddMonths(dx + yearColumns*dy)
	}
	if !m.visible(m.cursor) {
		m.current = m.cursor
	}
	return m
}

// anchor maps d onto the cell that represents it in the current view.
func (m Model) anchor(d calendar.Date) calendar.Date {
	if m.view == calendar.Yearly {
		return d.StartOfMonth()
	}
	return d
}

func (m Model) visible(d calendar.Date) bool {
	grid, err := calendar.Grid(m.current, m.view, m.weekStart)
	if err != nil {
		return false
	}
	for _, c := range grid {
		if c.InMonth && c.Date == d {
			return true
		}
	}
	return false
}

func (m Model) openForm() (tea.Model, tea.Cmd) {
	sel := m.cursor
	m.selected = &sel
	m.form = newForm(sel, m.cfg.DefaultColor)
	if m.width > 0 {
		m.form.setWidth(m.width - 20)
	}
	m.mode = modeForm
	m.status = fmt.Sprintf("New task on %s: %s next field, %s save, %s cancel",
		sel.Format("Jan 2 2006"), m.cfg.Keys.NextField, m.cfg.Keys.Confirm, m.cfg.Keys.Cancel)
	return m, m.form.focus()
}

func (m Model) closeForm(status string) Model {
	m.form = nil
	m.selected = nil
	m.mode = modeCalendar
	m.status = status
	return m
}

func (m Model) updateFormMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.cfg.Keys
	switch key {
	case k.Cancel, "ctrl+c":
		return m.closeForm("Cancelled"), nil
	case k.NextField:
		return m, m.form.move(1)
	case k.PrevField:
		return m, m.form.move(-1)
	case k.Confirm:
		if !m.form.last() {
			return m, m.form.move(1)
		}
		return m.submit()
	default:
		return m, m.form.update(msg)
	}
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	req := m.form.request()
	task, err := m.store.AddTask(req)
	switch {
	case errors.Is(err, tasks.ErrStorageWrite):
		m.log.Warn().Err(err).Str("id", task.ID).Msg("task kept in memory only")
		m = m.closeForm(fmt.Sprintf("Added %q but could not save: %v", task.Title, err))
	case err != nil:
		m.status = fmt.Sprintf("Cannot add task: %v", err)
		return m, nil
	default:
		m = m.closeForm(fmt.Sprintf("Added %q", task.Title))
	}

	m.cursor = m.anchor(task.Date)
	if !m.visible(m.cursor) {
		m.current = m.cursor
	}
	return m, nil
}
