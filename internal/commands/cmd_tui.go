package commands

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"taskcal/internal/ui"
)

type TuiCmd struct {
	flags *Flags
	app   *App
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags, app *App) *TuiCmd {
	return &TuiCmd{flags: flags, app: app}
}

// Register adds the tui command to the application
func (cmd *TuiCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "tui",
		Usage:     "Open the interactive calendar",
		UsageText: "taskcal tui",
		Description: `Opens the calendar in the configured default view.

This is also what runs when taskcal is started without a command.`,
		Action: cmd.Run,
	})

	return app
}

func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return ui.Run(cmd.app.Store, cmd.app.Config, log.With().Str("component", "ui").Logger())
}
