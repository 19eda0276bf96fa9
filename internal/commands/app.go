package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"taskcal/internal/config"
	"taskcal/internal/logutils"
	"taskcal/internal/storage"
	"taskcal/internal/tasks"
)

// New builds the root command. Running it without a subcommand opens the
// calendar TUI.
func New(version string) *cli.Command {
	var (
		flags     = &Flags{}
		app       = &App{}
		db        *storage.Store
		logCloser func()
	)

	root := &cli.Command{
		Name:      config.AppName,
		Usage:     "A terminal calendar for scheduling tasks",
		UsageText: "taskcal [global options] [command [command options]]",
		Description: `taskcal shows your tasks on a daily, weekly, monthly or yearly calendar.

Run 'taskcal' with no arguments to open the interactive calendar.
Run 'taskcal add' to schedule a task from the command line.`,
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file (.toml, .yaml or .yml)",
				Sources:     cli.EnvVars("TASKCAL_CONFIG"),
				Value:       config.ResolveConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error); overrides the config",
				Sources:     cli.EnvVars("TASKCAL_LOG_LEVEL"),
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file; overrides the config",
				Sources:     cli.EnvVars("TASKCAL_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "db",
				Usage:       "path to the SQLite database; overrides the config",
				Sources:     cli.EnvVars("TASKCAL_DB"),
				Destination: &flags.DBPath,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			cfg, err := config.LoadOrCreate(flags.ConfigPath)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			if flags.LogLevel != "" {
				cfg.Log.Level = flags.LogLevel
			}
			if flags.LogFile != "" {
				cfg.Log.File = flags.LogFile
			}
			if flags.DBPath != "" {
				cfg.DBPath = flags.DBPath
			}
			if err := cfg.Validate(); err != nil {
				return ctx, fmt.Errorf("invalid config %s: %w", flags.ConfigPath, err)
			}

			logger, closer, err := logutils.New(cfg.Log.Level, cfg.Log.File)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			db, err = storage.Open(cfg.DBPath)
			if err != nil {
				return ctx, fmt.Errorf("open database: %w", err)
			}

			store := tasks.NewStore(db,
				tasks.WithKey(cfg.StorageKey),
				tasks.WithLocation(cfg.Location()),
				tasks.WithDefaultColor(cfg.DefaultColor),
				tasks.WithLogger(log.With().Str("component", "tasks").Logger()),
			)
			store.Load()

			*app = App{Config: cfg, Store: store, Log: logger}
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if db != nil {
				if err := db.Close(); err != nil {
					log.Error().Err(err).Msg("failed to close database")
					return err
				}
			}
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	tuiCmd := NewTuiCmd(flags, app)

	root = tuiCmd.Register(root)
	root = NewAddCmd(flags, app).Register(root)
	root = NewListCmd(flags, app).Register(root)
	root = NewShowCmd(flags, app).Register(root)
	root = NewExportCmd(flags, app).Register(root)
	root = NewImportCmd(flags, app).Register(root)

	root.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'taskcal --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}
	return root
}
