package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"taskcal/internal/ics"
	"taskcal/internal/tasks"
)

type ImportCmd struct {
	flags *Flags
	app   *App
}

// NewImportCmd creates a new import command
func NewImportCmd(flags *Flags, app *App) *ImportCmd {
	return &ImportCmd{flags: flags, app: app}
}

// Register adds the import command to the application
func (cmd *ImportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "import",
		Usage:     "Import tasks from an iCalendar file",
		UsageText: "taskcal import FILE",
		Description: `Adds one task per VEVENT in FILE.

Events without a summary or start are skipped and reported. All-day events
are scheduled at 00:00.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *ImportCmd) run(ctx context.Context, c *cli.Command) error {
	path := c.Args().First()
	if path == "" {
		return errors.New("import needs a file argument")
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	reqs, skipped, err := ics.Import(f, cmd.app.Store.Location())
	if err != nil {
		return err
	}

	for _, s := range skipped {
		log.Warn().Str("uid", s.UID).Err(s.Err).Msg("skipped event")
		fmt.Fprintf(c.Root().ErrWriter, "skipped: %v\n", s)
	}

	added := 0
	var saveErr error
	for _, req := range reqs {
		_, err := cmd.app.Store.AddTask(req)
		switch {
		case errors.Is(err, tasks.ErrStorageWrite):
			added++
			saveErr = err
		case err != nil:
			fmt.Fprintf(c.Root().ErrWriter, "skipped %q: %v\n", req.Title, err)
		default:
			added++
		}
	}

	fmt.Fprintf(c.Root().Writer, "Imported %d task(s) from %s\n", added, path)
	return saveErr
}
