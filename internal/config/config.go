// Package config loads the studyr TOML configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

// Config is the on-disk configuration.
type Config struct {
	DataDir           string  `toml:"data_dir" validate:"required"`
	LogLevel          string  `toml:"log_level" validate:"oneof=debug info warn error"`
	WeeklyGoalMinutes int     `toml:"weekly_goal_minutes" validate:"min=0,max=10080"`
	Storage           Storage `toml:"storage"`
}

// Storage selects the key-value backend.
// The Type field determines whether Path is used.
type Storage struct {
	Type string `toml:"type" validate:"oneof=sqlite badger memory"` // "sqlite" (default), "badger" or "memory"
	Path string `toml:"path,omitempty"`                             // file for sqlite, directory for badger
}

const (
	DefaultLogLevel          = "info"
	DefaultWeeklyGoalMinutes = 600
)

var validate = validator.New()

// Default returns the configuration used when no file exists.
func Default() *Config {
	dir := DefaultDataDir()
	return &Config{
		DataDir:           dir,
		LogLevel:          DefaultLogLevel,
		WeeklyGoalMinutes: DefaultWeeklyGoalMinutes,
		Storage: Storage{
			Type: "sqlite",
			Path: filepath.Join(dir, "studyr.db"),
		},
	}
}

// DefaultDataDir returns ~/.config/studyr, or .studyr in the working
// directory when the user config directory cannot be resolved.
func DefaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".studyr"
	}
	return filepath.Join(dir, "studyr")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(DefaultDataDir(), "config.toml")
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// applyDefaults fills zero fields so a partial file stays usable.
func (c *Config) applyDefaults() {
	if c.DataDir == "" {
		c.DataDir = DefaultDataDir()
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Storage.Type == "" {
		c.Storage.Type = "sqlite"
	}
	if c.Storage.Path == "" {
		switch c.Storage.Type {
		case "sqlite":
			c.Storage.Path = filepath.Join(c.DataDir, "studyr.db")
		case "badger":
			c.Storage.Path = filepath.Join(c.DataDir, "badger")
		}
	}
}

// SetStorage switches the backend and resets its path to the default for
// that backend.
func (c *Config) SetStorage(typ string) {
	c.Storage = Storage{Type: typ}
	c.applyDefaults()
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from r, fills defaults and validates it.
// A missing weekly_goal_minutes key keeps the default goal.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	cfg := Config{WeeklyGoalMinutes: DefaultWeeklyGoalMinutes}
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Write encodes a Config to w.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// Load reads path, returning Default when the file does not exist.
func Load(path string) (*Config, error) {
	cfg, err := ReadFromFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

func writeToFile(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init writes cfg to path. It refuses to overwrite an existing file.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
