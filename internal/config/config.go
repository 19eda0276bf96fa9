package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/hay-kot/criterio"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"taskcal/internal/calendar"
	"taskcal/internal/tasks"
)

const (
	AppName               = "taskcal"
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "taskcal.db"
	DefaultLogName        = "taskcal.log"
)

type Keymap struct {
	Quit      string `toml:"quit" yaml:"quit"`
	Prev      string `toml:"prev" yaml:"prev"`
	Next      string `toml:"next" yaml:"next"`
	Today     string `toml:"today" yaml:"today"`
	Daily     string `toml:"daily" yaml:"daily"`
	Weekly    string `toml:"weekly" yaml:"weekly"`
	Monthly   string `toml:"monthly" yaml:"monthly"`
	Yearly    string `toml:"yearly" yaml:"yearly"`
	Add       string `toml:"add" yaml:"add"`
	Confirm   string `toml:"confirm" yaml:"confirm"`
	Cancel    string `toml:"cancel" yaml:"cancel"`
	NextField string `toml:"next_field" yaml:"next_field"`
	PrevField string `toml:"prev_field" yaml:"prev_field"`
}

type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
	File  string `toml:"file" yaml:"file"`
}

type Config struct {
	DBPath       string    `toml:"db_path" yaml:"db_path"`
	StorageKey   string    `toml:"storage_key" yaml:"storage_key"`
	Timezone     string    `toml:"timezone" yaml:"timezone"`
	WeekStart    string    `toml:"week_start" yaml:"week_start"`
	DefaultView  string    `toml:"default_view" yaml:"default_view"`
	DefaultColor string    `toml:"default_color" yaml:"default_color"`
	Log          LogConfig `toml:"log" yaml:"log"`
	Keys         Keymap    `toml:"keys" yaml:"keys"`
}

// ResolveConfigPath returns the config file location under the user config
// directory, or the working directory when that is unavailable.
func ResolveConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, AppName, DefaultConfigFileName)
}

// LoadOrCreate reads path, writing a default config there first if it does
// not exist. Relative db and log paths are resolved against the config
// file's directory.
func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, errors.New("config path is empty")
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		cfg.resolvePaths(filepath.Dir(path))
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := unmarshal(path, data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.Normalize()
	cfg.resolvePaths(filepath.Dir(path))
	return cfg, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func unmarshal(path string, data []byte, cfg *Config) error {
	if isYAML(path) {
		return yaml.Unmarshal(data, cfg)
	}
	return toml.Unmarshal(data, cfg)
}

func write(path string, cfg Config) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(cfg)
	} else {
		data, err = toml.Marshal(cfg)
	}
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Normalize fills zero values with defaults so partial files still work.
func (c *Config) Normalize() {
	def := Default()
	if c.DBPath == "" {
		c.DBPath = def.DBPath
	}
	if c.StorageKey == "" {
		c.StorageKey = def.StorageKey
	}
	if c.WeekStart == "" {
		c.WeekStart = def.WeekStart
	}
	if c.DefaultView == "" {
		c.DefaultView = def.DefaultView
	}
	if c.DefaultColor == "" {
		c.DefaultColor = def.DefaultColor
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Log.File == "" {
		c.Log.File = def.Log.File
	}

	keys := []struct {
		dst *string
		def string
	}{
		{&c.Keys.Quit, def.Keys.Quit},
		{&c.Keys.Prev, def.Keys.Prev},
		{&c.Keys.Next, def.Keys.Next},
		{&c.Keys.Today, def.Keys.Today},
		{&c.Keys.Daily, def.Keys.Daily},
		{&c.Keys.Weekly, def.Keys.Weekly},
		{&c.Keys.Monthly, def.Keys.Monthly},
		{&c.Keys.Yearly, def.Keys.Yearly},
		{&c.Keys.Add, def.Keys.Add},
		{&c.Keys.Confirm, def.Keys.Confirm},
		{&c.Keys.Cancel, def.Keys.Cancel},
		{&c.Keys.NextField, def.Keys.NextField},
		{&c.Keys.PrevField, def.Keys.PrevField},
	}
	for _, k := range keys {
		if *k.dst == "" {
			*k.dst = k.def
		}
	}
}

func (c *Config) resolvePaths(base string) {
	if c.DBPath != "" && !filepath.IsAbs(c.DBPath) && !strings.HasPrefix(c.DBPath, "file:") {
		c.DBPath = filepath.Join(base, c.DBPath)
	}
	if c.Log.File != "" && !filepath.IsAbs(c.Log.File) {
		c.Log.File = filepath.Join(base, c.Log.File)
	}
}

// Validate reports every bad field at once.
func (c Config) Validate() error {
	var errs criterio.FieldErrorsBuilder
	if _, err := calendar.ParseWeekStart(c.WeekStart); err != nil {
		errs = errs.Append("week_start", err)
	}
	if _, err := calendar.ParseViewMode(c.DefaultView); err != nil {
		errs = errs.Append("default_view", err)
	}
	if _, err := loadLocation(c.Timezone); err != nil {
		errs = errs.Append("timezone", err)
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		errs = errs.Append("log.level", err)
	}
	if strings.TrimSpace(c.DBPath) == "" {
		errs = errs.Append("db_path", errors.New("is required"))
	}
	if strings.TrimSpace(c.StorageKey) == "" {
		errs = errs.Append("storage_key", errors.New("is required"))
	}
	errs = c.Keys.validate(errs)
	return errs.ToError()
}

// reservedKeys move the cursor or quit in the calendar view and cannot be
// rebound.
var reservedKeys = []string{"ctrl+c", "left", "right", "up", "down", "h", "j", "k", "l"}

type binding struct {
	field string
	key   string
}

func (k Keymap) calendarBindings() []binding {
	return []binding{
		{"keys.quit", k.Quit},
		{"keys.prev", k.Prev},
		{"keys.next", k.Next},
		{"keys.today", k.Today},
		{"keys.daily", k.Daily},
		{"keys.weekly", k.Weekly},
		{"keys.monthly", k.Monthly},
		{"keys.yearly", k.Yearly},
		{"keys.add", k.Add},
	}
}

func (k Keymap) formBindings() []binding {
	return []binding{
		{"keys.confirm", k.Confirm},
		{"keys.cancel", k.Cancel},
		{"keys.next_field", k.NextField},
		{"keys.prev_field", k.PrevField},
	}
}

// validate rejects empty, reserved and duplicate keys. Calendar and form
// bindings are active in different modes, so only clashes within a mode
// count.
func (k Keymap) validate(errs criterio.FieldErrorsBuilder) criterio.FieldErrorsBuilder {
	for _, group := range [][]binding{k.calendarBindings(), k.formBindings()} {
		seen := map[string]string{}
		for _, b := range group {
			key := strings.TrimSpace(b.key)
			switch {
			case key == "":
				errs = errs.Append(b.field, errors.New("is required"))
				continue
			case slices.Contains(reservedKeys, key):
				errs = errs.Append(b.field, fmt.Errorf("%q is reserved", key))
				continue
			}
			if prev, ok := seen[key]; ok {
				errs = errs.Append(b.field, fmt.Errorf("%q is already bound to %s", key, prev))
				continue
			}
			seen[key] = b.field
		}
	}
	return errs
}

// Location returns the configured zone, time.Local when unset or invalid.
func (c Config) Location() *time.Location {
	loc, err := loadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// WeekStartDay returns the configured first day of the week, Sunday when
// invalid.
func (c Config) WeekStartDay() time.Weekday {
	ws, _ := calendar.ParseWeekStart(c.WeekStart)
	return ws
}

// View returns the configured default view, monthly when invalid.
func (c Config) View() calendar.ViewMode {
	v, err := calendar.ParseViewMode(c.DefaultView)
	if err != nil {
		return calendar.Monthly
	}
	return v
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}

// Default returns the configuration written on first launch, with paths
// still relative.
func Default() Config {
	return Config{
		DBPath:       DefaultDBName,
		StorageKey:   tasks.DefaultKey,
		Timezone:     "",
		WeekStart:    "sunday",
		DefaultView:  calendar.Monthly.String(),
		DefaultColor: tasks.DefaultColor,
		Log: LogConfig{
			Level: "info",
			File:  DefaultLogName,
		},
		Keys: Keymap{
			Quit:      "q",
			Prev:      "p",
			Next:      "n",
			Today:     "t",
			Daily:     "d",
			Weekly:    "w",
			Monthly:   "m",
			Yearly:    "y",
			Add:       "enter",
			Confirm:   "enter",
			Cancel:    "esc",
			NextField: "tab",
			PrevField: "shift+tab",
		},
	}
}
