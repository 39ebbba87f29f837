package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the CLI's defaults for building shift events. Every field
// has a working zero-value fallback so a missing or partial file behaves.
type Config struct {
	// Organiser is the default ORGANIZER value for new events.
	Organiser string `yaml:"organiser"`

	// ProdID identifies this application in exported documents.
	ProdID string `yaml:"prodid"`

	// Summary is the default label for a shift.
	Summary string `yaml:"summary"`

	// DefaultStart / DefaultEnd are wall-clock times ("HH:MM", 24h) applied
	// when a shift spec omits its times.
	DefaultStart string `yaml:"default_start"`
	DefaultEnd   string `yaml:"default_end"`

	// Output is the default save path. The export extension is applied on
	// save regardless of what this says.
	Output string `yaml:"output"`
}

// Default returns the in-memory default configuration.
func Default() *Config {
	return &Config{
		Organiser:    "shiftcal",
		ProdID:       "shiftcal",
		Summary:      "long day",
		DefaultStart: "07:00",
		DefaultEnd:   "20:00",
		Output:       "shifts",
	}
}

// Normalize fills missing values with defaults so partially-filled configs
// still behave.
func (c *Config) Normalize() {
	def := Default()
	if c.Organiser == "" {
		c.Organiser = def.Organiser
	}
	if c.ProdID == "" {
		c.ProdID = def.ProdID
	}
	if c.Summary == "" {
		c.Summary = def.Summary
	}
	if _, err := ParseClock(c.DefaultStart); err != nil {
		c.DefaultStart = def.DefaultStart
	}
	if _, err := ParseClock(c.DefaultEnd); err != nil {
		c.DefaultEnd = def.DefaultEnd
	}
	if c.Output == "" {
		c.Output = def.Output
	}
}

// ParseClock parses a "HH:MM" wall-clock string.
func ParseClock(s string) (time.Time, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q (want HH:MM): %w", s, err)
	}
	return t, nil
}

// Load reads configuration from the given YAML path. A missing file is not
// an error: the defaults are returned as-is. An unreadable or malformed
// file is.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes the configuration to path, creating the parent directory if
// needed. The write goes through a temp file and a rename so readers never
// see a partial file.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".shiftcal-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
