// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/rota/internal/calendar"
)

// Config holds the application configuration.
type Config struct {
	Calendar CalendarConfig `toml:"calendar"`
	Grid     GridConfig     `toml:"grid"`
	Storage  StorageConfig  `toml:"storage"`
	UI       UIConfig       `toml:"ui"`
}

// CalendarConfig holds navigation settings.
type CalendarConfig struct {
	DefaultView string `toml:"default_view"` // "day", "week", "month", "year"
	Timezone    string `toml:"timezone"`     // IANA name; empty means local
}

// GridConfig holds resource grid geometry, in terminal cells.
type GridConfig struct {
	MinCellWidth int `toml:"min_cell_width"`
	RowHeight    int `toml:"row_height"`
	LabelWidth   int `toml:"label_width"` // resource title column
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Calendar: CalendarConfig{
			DefaultView: string(calendar.ViewWeek),
		},
		Grid: GridConfig{
			MinCellWidth: int(calendar.MinCellWidth),
			RowHeight:    2,
			LabelWidth:   14,
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "frappe",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "rota.db"
	}
	return filepath.Join(home, ".local", "share", "rota", "rota.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "rota", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.Calendar.DefaultView = strings.ToLower(strings.TrimSpace(cfg.Calendar.DefaultView))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("ROTA_DEFAULT_VIEW"); v != "" {
		cfg.Calendar.DefaultView = v
	}
	if v := os.Getenv("ROTA_TIMEZONE"); v != "" {
		cfg.Calendar.Timezone = v
	}
	if v := os.Getenv("ROTA_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("ROTA_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}

	ints := []struct {
		env string
		dst *int
	}{
		{"ROTA_MIN_CELL_WIDTH", &cfg.Grid.MinCellWidth},
		{"ROTA_ROW_HEIGHT", &cfg.Grid.RowHeight},
	}
	for _, o := range ints {
		v := os.Getenv(o.env)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("parsing %s: %w", o.env, err)
		}
		*o.dst = n
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := calendar.ParseView(c.Calendar.DefaultView); err != nil {
		return fmt.Errorf("default_view: %w", err)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.Grid.MinCellWidth < int(calendar.MinCellWidth) {
		return fmt.Errorf("min_cell_width must be at least %d, got %d", int(calendar.MinCellWidth), c.Grid.MinCellWidth)
	}
	if c.Grid.RowHeight < 1 {
		return fmt.Errorf("row_height must be at least 1, got %d", c.Grid.RowHeight)
	}
	if c.Grid.LabelWidth < 4 {
		return fmt.Errorf("label_width must be at least 4, got %d", c.Grid.LabelWidth)
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	return nil
}

// View returns the configured default view.
func (c *Config) View() calendar.View {
	v, err := calendar.ParseView(c.Calendar.DefaultView)
	if err != nil {
		return calendar.ViewWeek
	}
	return v
}

// Location resolves the configured time zone. An empty timezone is local time.
func (c *Config) Location() (*time.Location, error) {
	if c.Calendar.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Calendar.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone: %w", err)
	}
	return loc, nil
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
