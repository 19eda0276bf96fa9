package commands

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"taskcal/internal/tasks"
)

type ListCmd struct {
	flags *Flags
	app   *App

	// flags
	date       string
	jsonOutput bool
}

// NewListCmd creates a new list command
func NewListCmd(flags *Flags, app *App) *ListCmd {
	return &ListCmd{flags: flags, app: app}
}

// Register adds the list command to the application
func (cmd *ListCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "List tasks",
		UsageText: "taskcal list [--date YYYY-MM-DD] [--json]",
		Description: `Displays a table of tasks ordered by date and time.

Use --date to show a single day and --json for the stored JSON form.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "date",
				Usage:       "only tasks on this date (YYYY-MM-DD)",
				Destination: &cmd.date,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as a JSON array",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ListCmd) run(ctx context.Context, c *cli.Command) error {
	list := cmd.app.Store.Tasks()
	if cmd.date != "" {
		var err error
		list, err = tasks.OnDate(list, cmd.date, cmd.app.Store.Location())
		if err != nil {
			return err
		}
	}
	sortTasks(list)

	out := c.Root().Writer
	if cmd.jsonOutput {
		data, err := tasks.Encode(list)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	if len(list) == 0 {
		fmt.Fprintln(c.Root().ErrWriter, "No tasks found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tTIME\tTITLE\tCOLOR\tREPEAT\tID")
	for _, t := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", t.Date, t.Time, t.Title, t.Color, repeatLabel(t.Recurrence), t.ID)
	}
	return w.Flush()
}

func sortTasks(list []tasks.Task) {
	slices.SortStableFunc(list, func(a, b tasks.Task) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return strings.Compare(a.Time, b.Time)
	})
}

func repeatLabel(rec *tasks.Recurrence) string {
	if rec == nil {
		return "-"
	}
	if rec.Interval > 1 {
		return fmt.Sprintf("every %d %s", rec.Interval, rec.Type)
	}
	return string(rec.Type)
}
