package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"taskcal/internal/ics"
)

type ExportCmd struct {
	flags *Flags
	app   *App

	// flags
	out string
}

// NewExportCmd creates a new export command
func NewExportCmd(flags *Flags, app *App) *ExportCmd {
	return &ExportCmd{flags: flags, app: app}
}

// Register adds the export command to the application
func (cmd *ExportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "export",
		Usage:     "Export tasks as iCalendar",
		UsageText: "taskcal export [--out FILE]",
		Description: `Writes every task as a VEVENT of an iCalendar document.

Recurring tasks carry an RRULE. Without --out the document goes to stdout.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "file to write instead of stdout",
				Destination: &cmd.out,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ExportCmd) run(ctx context.Context, c *cli.Command) error {
	var w io.Writer = c.Root().Writer
	if cmd.out != "" {
		f, err := os.Create(cmd.out)
		if err != nil {
			return fmt.Errorf("create %s: %w", cmd.out, err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	list := cmd.app.Store.Tasks()
	err := ics.Export(w, list, ics.Options{
		Location: cmd.app.Store.Location(),
		Stamp:    time.Now(),
		Log:      log.With().Str("component", "ics").Logger(),
	})
	if err != nil {
		return fmt.Errorf("export tasks: %w", err)
	}

	if cmd.out != "" {
		fmt.Fprintf(c.Root().ErrWriter, "Exported %d task(s) to %s\n", len(list), cmd.out)
	}
	return nil
}
