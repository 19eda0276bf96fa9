package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"taskcal/internal/calendar"
	"taskcal/internal/tasks"
)

type AddCmd struct {
	flags *Flags
	app   *App

	// flags
	title    string
	date     string
	time     string
	color    string
	repeat   string
	interval int
	days     []string
	nth      int
}

// NewAddCmd creates a new add command
func NewAddCmd(flags *Flags, app *App) *AddCmd {
	return &AddCmd{flags: flags, app: app}
}

// Register adds the add command to the application
func (cmd *AddCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "add",
		Usage:     "Schedule a task",
		UsageText: "taskcal add --title TITLE --time HH:MM [--date YYYY-MM-DD] [--color HEX] [--repeat TYPE]",
		Description: `Adds a task to the calendar and saves it immediately.

The date defaults to today in the configured timezone. --repeat records how
the task repeats (daily, weekly, monthly or yearly); --days takes weekday
numbers with 0 for Sunday.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "title",
				Usage:       "task title",
				Required:    true,
				Destination: &cmd.title,
			},
			&cli.StringFlag{
				Name:        "date",
				Usage:       "date as YYYY-MM-DD (default: today)",
				Destination: &cmd.date,
			},
			&cli.StringFlag{
				Name:        "time",
				Usage:       "time of day as HH:MM",
				Required:    true,
				Destination: &cmd.time,
			},
			&cli.StringFlag{
				Name:        "color",
				Usage:       "display color (default from config)",
				Destination: &cmd.color,
			},
			&cli.StringFlag{
				Name:        "repeat",
				Usage:       "recurrence type: daily, weekly, monthly, yearly",
				Destination: &cmd.repeat,
			},
			&cli.IntFlag{
				Name:        "interval",
				Usage:       "recurrence interval",
				Value:       1,
				Destination: &cmd.interval,
			},
			&cli.StringSliceFlag{
				Name:        "days",
				Usage:       "recurrence weekdays, 0-6 from Sunday (e.g. 1,3)",
				Destination: &cmd.days,
			},
			&cli.IntFlag{
				Name:        "nth",
				Usage:       "recurrence nth day or weekday ordinal",
				Destination: &cmd.nth,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *AddCmd) run(ctx context.Context, c *cli.Command) error {
	req := tasks.Request{
		Title: cmd.title,
		Date:  cmd.date,
		Time:  cmd.time,
		Color: cmd.color,
	}
	if req.Date == "" {
		req.Date = calendar.Today(cmd.app.Store.Location()).String()
	}

	rec, err := cmd.recurrence()
	if err != nil {
		return err
	}
	req.Recurrence = rec

	task, err := cmd.app.Store.AddTask(req)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.Root().Writer, "Added %q on %s at %s (%s)\n", task.Title, task.Date, task.Time, task.ID)
	return nil
}

func (cmd *AddCmd) recurrence() (*tasks.Recurrence, error) {
	if cmd.repeat == "" {
		if len(cmd.days) > 0 || cmd.nth != 0 {
			return nil, errors.New("--days and --nth need --repeat")
		}
		return nil, nil
	}

	rec := &tasks.Recurrence{
		Type:     tasks.RecurrenceType(strings.ToLower(cmd.repeat)),
		Interval: cmd.interval,
		NthDay:   cmd.nth,
	}
	for _, s := range cmd.days {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("invalid weekday %q: %w", s, err)
		}
		rec.DaysOfWeek = append(rec.DaysOfWeek, n)
	}
	return rec, nil
}
