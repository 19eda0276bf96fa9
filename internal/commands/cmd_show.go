package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"

	"taskcal/internal/calendar"
	"taskcal/internal/tasks"
)

type ShowCmd struct {
	flags *Flags
	app   *App

	// flags
	view string
	date string
}

// NewShowCmd creates a new show command
func NewShowCmd(flags *Flags, app *App) *ShowCmd {
	return &ShowCmd{flags: flags, app: app}
}

// Register adds the show command to the application
func (cmd *ShowCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "show",
		Usage:     "Print a calendar view",
		UsageText: "taskcal show [--view daily|weekly|monthly|yearly] [--date YYYY-MM-DD]",
		Description: `Prints the grid of a view around a date, followed by the tasks placed on it.

Days with tasks are marked with '*'. Days outside the month are shown as '.'.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "view",
				Usage:       "view mode (default from config)",
				Destination: &cmd.view,
			},
			&cli.StringFlag{
				Name:        "date",
				Usage:       "reference date as YYYY-MM-DD (default: today)",
				Destination: &cmd.date,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ShowCmd) run(ctx context.Context, c *cli.Command) error {
	loc := cmd.app.Store.Location()

	view := cmd.app.Config.View()
	if cmd.view != "" {
		v, err := calendar.ParseViewMode(cmd.view)
		if err != nil {
			return err
		}
		view = v
	}

	ref := calendar.Today(loc)
	if cmd.date != "" {
		d, err := calendar.ParseDate(cmd.date, loc)
		if err != nil {
			return err
		}
		ref = d
	}

	weekStart := cmd.app.Config.WeekStartDay()
	grid, err := calendar.Grid(ref, view, weekStart)
	if err != nil {
		return err
	}

	list := cmd.app.Store.Tasks()
	sortTasks(list)
	return printGrid(c.Root().Writer, ref, view, weekStart, grid, list)
}

func printGrid(out io.Writer, ref calendar.Date, view calendar.ViewMode, weekStart time.Weekday, grid []calendar.Cell, list []tasks.Task) error {
	fmt.Fprintf(out, "%s (%s)\n\n", calendar.Label(ref, view), view)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	switch view {
	case calendar.Monthly:
		names := make([]string, 7)
		for i := range names {
			names[i] = time.Weekday((int(weekStart) + i) % 7).String()[:3]
		}
		fmt.Fprintln(w, strings.Join(names, "\t")+"\t")
		for _, week := range calendar.Weeks(grid) {
			days := make([]string, len(week))
			for i, cell := range week {
				days[i] = dayMark(cell, list)
			}
			fmt.Fprintln(w, strings.Join(days, "\t")+"\t")
		}
	case calendar.Weekly:
		heads := make([]string, len(grid))
		days := make([]string, len(grid))
		for i, cell := range grid {
			heads[i] = cell.Date.Format("Mon")
			days[i] = dayMark(cell, list)
		}
		fmt.Fprintln(w, strings.Join(heads, "\t")+"\t")
		fmt.Fprintln(w, strings.Join(days, "\t")+"\t")
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if view == calendar.Monthly || view == calendar.Weekly {
		fmt.Fprintln(out)
	}

	empty := true
	for _, cell := range grid {
		if !cell.InMonth && view == calendar.Monthly {
			continue
		}
		placed := tasks.ForCell(list, cell.Date, view)
		if len(placed) == 0 {
			continue
		}
		empty = false
		if view == calendar.Yearly {
			fmt.Fprintln(out, cell.Date.Format("January"))
		} else {
			fmt.Fprintln(out, cell.Date.Format("Mon Jan 2"))
		}
		for _, t := range placed {
			if view == calendar.Yearly {
				fmt.Fprintf(out, "  %s at %s  %s\n", t.Date.Format("Jan 2"), t.Time, t.Title)
				continue
			}
			fmt.Fprintf(out, "  %s  %s\n", t.Time, t.Title)
		}
	}
	if empty {
		fmt.Fprintln(out, "No tasks")
	}
	return nil
}

func dayMark(cell calendar.Cell, list []tasks.Task) string {
	if !cell.InMonth {
		return "."
	}
	s := fmt.Sprint(cell.Date.Day)
	if len(tasks.On(list, cell.Date)) > 0 {
		s += "*"
	}
	return s
}
