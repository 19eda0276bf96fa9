package commands

import (
	"github.com/rs/zerolog"

	"taskcal/internal/config"
	"taskcal/internal/tasks"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DBPath     string
}

// App holds what the Before hook builds for every command.
type App struct {
	Config config.Config
	Store  *tasks.Store
	Log    zerolog.Logger
}
