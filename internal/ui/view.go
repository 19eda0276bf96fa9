package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"taskcal/internal/calendar"
	"taskcal/internal/config"
	"taskcal/internal/tasks"
)

const (
	defaultWidth = 112
	yearColumns  = 4
	minCellWidth = 10
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	tabStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	activeTab     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	weekdayStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	todayStyle    = lipgloss.NewStyle().Underline(true).Bold(true)
	selectedStyle = lipgloss.NewStyle().Background(lipgloss.Color("63")).Foreground(lipgloss.Color("0"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	helpStyle     = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("244"))
	formStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(1, 2)
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	grid, err := m.renderGrid()
	if err != nil {
		b.WriteString(err.Error())
	} else {
		b.WriteString(grid)
	}

	if m.form != nil {
		b.WriteString("\n\n")
		b.WriteString(m.renderForm())
	}

	b.WriteString("\n\n")
	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(renderHelp(m.cfg.Keys)))
	return b.String()
}

func (m Model) renderHeader() string {
	keys := map[calendar.ViewMode]string{
		calendar.Daily:   m.cfg.Keys.Daily,
		calendar.Weekly:  m.cfg.Keys.Weekly,
		calendar.Monthly: m.cfg.Keys.Monthly,
		calendar.Yearly:  m.cfg.Keys.Yearly,
	}
	tabs := make([]string, 0, 4)
	for _, v := range calendar.Modes() {
		if v == m.view {
			tabs = append(tabs, activeTab.Render("["+v.Title()+"]"))
			continue
		}
		tabs = append(tabs, tabStyle.Render(fmt.Sprintf(" %s:%s ", keys[v], v.Title())))
	}
	return headerStyle.Render(calendar.Label(m.current, m.view)) + "   " + strings.Join(tabs, " ")
}

func (m Model) renderGrid() (string, error) {
	grid, err := calendar.Grid(m.current, m.view, m.weekStart)
	if err != nil {
		return "", err
	}
	list := m.store.Tasks()
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}

	switch m.view {
	case calendar.Daily:
		return m.renderDay(grid[0], list, width), nil
	case calendar.Weekly:
		col := max(width/7, minCellWidth)
		cols := make([]string, len(grid))
		for i, c := range grid {
			cols[i] = m.renderCell(c, c.Date.Format("Mon 2"), tasks.On(list, c.Date), col, 8)
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, cols...), nil
	case calendar.Monthly:
		col := max(width/7, minCellWidth)
		rows := []string{m.renderWeekdays(col)}
		for _, week := range calendar.Weeks(grid) {
			cells := make([]string, len(week))
			for i, c := range week {
				cells[i] = m.renderCell(c, fmt.Sprint(c.Date.Day), tasks.On(list, c.Date), col, 3)
			}
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		}
		return lipgloss.JoinVertical(lipgloss.Left, rows...), nil
	case calendar.Yearly:
		col := max(width/yearColumns, minCellWidth)
		var rows []string
		for i := 0; i < len(grid); i += yearColumns {
			var cells []string
			for _, c := range grid[i:min(i+yearColumns, len(grid))] {
				cells = append(cells, m.renderCell(c, c.Date.Format("January"), tasks.InMonth(list, c.Date), col, 4))
			}
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		}
		return lipgloss.JoinVertical(lipgloss.Left, rows...), nil
	}
	return "", fmt.Errorf("%w: %d", calendar.ErrUnknownView, int(m.view))
}

func (m Model) renderDay(c calendar.Cell, list []tasks.Task, width int) string {
	var b strings.Builder
	b.WriteString(m.labelStyle(c).Render(c.Date.Format("Monday, January 2 2006")))
	b.WriteString("\n")
	day := tasks.On(list, c.Date)
	if len(day) == 0 {
		b.WriteString(dimStyle.Render("No tasks"))
		return b.String()
	}
	for _, t := range day {
		b.WriteString("\n")
		b.WriteString(taskStyle(t).Render(truncate(fmt.Sprintf("%s  %s", t.Time, t.Title), width)))
	}
	return b.String()
}

func (m Model) renderWeekdays(col int) string {
	names := make([]string, 7)
	for i := range names {
		wd := time.Weekday((int(m.weekStart) + i) % 7)
		names[i] = weekdayStyle.Width(col).Render(wd.String()[:3])
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, names...)
}

// renderCell draws a fixed-width cell: its label, then up to limit task
// lines and a "+n more" line.
func (m Model) renderCell(c calendar.Cell, label string, list []tasks.Task, width, limit int) string {
	inner := width - 1
	lines := []string{m.labelStyle(c).Render(truncate(label, inner))}
	for i, t := range list {
		if i == limit {
			lines = append(lines, dimStyle.Render(fmt.Sprintf("+%d more", len(list)-limit)))
			break
		}
		lines = append(lines, taskStyle(t).Render(truncate(taskLine(t, m.view), inner)))
	}
	return lipgloss.NewStyle().Width(width).Height(limit + 2).Render(strings.Join(lines, "\n"))
}

func (m Model) labelStyle(c calendar.Cell) lipgloss.Style {
	style := lipgloss.NewStyle()
	switch {
	case c.Date == m.cursor:
		style = selectedStyle
	case !c.InMonth:
		style = dimStyle
	}
	if m.isToday(c.Date) {
		style = style.Inherit(todayStyle)
	}
	return style
}

func (m Model) isToday(d calendar.Date) bool {
	if m.view == calendar.Yearly {
		return d.SameMonth(m.today)
	}
	return d == m.today
}

// taskLine formats a task for a cell. Yearly cells stand for a month, so
// they carry the day too.
func taskLine(t tasks.Task, view calendar.ViewMode) string {
	if view == calendar.Yearly {
		return fmt.Sprintf("%s at %s %s", t.Date.Format("Jan 2"), t.Time, t.Title)
	}
	return fmt.Sprintf("%s %s", t.Title, t.Time)
}

func taskStyle(t tasks.Task) lipgloss.Style {
	if t.Color == "" {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Color))
}

func (m Model) renderForm() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("New task"))
	b.WriteString("\n\n")
	for i, name := range formFields() {
		prefix := " "
		if i == m.form.index {
			prefix = ">"
		}
		b.WriteString(fmt.Sprintf("%s %-6s: %s\n", prefix, name, m.form.inputs[i].View()))
	}
	return formStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func renderHelp(k config.Keymap) string {
	return fmt.Sprintf("%s/%s prev/next • %s today • %s/%s/%s/%s view • arrows move • %s add • %s quit",
		k.Prev, k.Next, k.Today, k.Daily, k.Weekly, k.Monthly, k.Yearly, k.Add, k.Quit)
}

func truncate(s string, w int) string {
	r := []rune(s)
	if w <= 0 || len(r) <= w {
		return s
	}
	if w == 1 {
		return string(r[:1])
	}
	return string(r[:w-1]) + "…"
}
