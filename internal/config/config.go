// Package config reads the optional lylvey.yaml settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const DefaultPath = "lylvey.yaml"

type Config struct {
	// UI language for command output: ko or en
	Language string `yaml:"language"`

	Preview struct {
		Mode         string        `yaml:"mode"`
		Alignment    string        `yaml:"alignment"`
		Animation    bool          `yaml:"animation"`
		TickInterval time.Duration `yaml:"tick_interval"`
		Rows         int           `yaml:"rows"`
		Width        int           `yaml:"width"`
	} `yaml:"preview"`

	Export struct {
		Filename string `yaml:"filename"`
	} `yaml:"export"`

	Translate struct {
		Provider    string `yaml:"provider"`
		Model       string `yaml:"model"`
		Concurrency int    `yaml:"concurrency"`
		BatchSize   int    `yaml:"batch_size"`
	} `yaml:"translate"`

	path string
}

func Default() *Config {
	c := &Config{}
	c.Language = "en"

	c.Preview.Mode = "karaoke"
	c.Preview.Alignment = "center"
	c.Preview.Animation = true
	c.Preview.TickInterval = 250 * time.Millisecond
	c.Preview.Rows = 9
	c.Preview.Width = 60

	c.Export.Filename = "lyrics.srt"

	c.Translate.Provider = "gemini"
	c.Translate.Concurrency = 3
	c.Translate.BatchSize = 50
	return c
}

// Load decodes path over the defaults. A missing file is not an error when
// path is the default location; an explicitly named file must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.path = path
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// path the config was read from, empty when only defaults are in use
func (c *Config) Path() string {
	return c.path
}

func (c *Config) normalize() {
	c.Language = strings.ToLower(strings.TrimSpace(c.Language))
	c.Preview.Mode = strings.ToLower(strings.TrimSpace(c.Preview.Mode))
	c.Preview.Alignment = strings.ToLower(strings.TrimSpace(c.Preview.Alignment))
	c.Translate.Provider = strings.ToLower(strings.TrimSpace(c.Translate.Provider))
	c.Export.Filename = strings.TrimSpace(c.Export.Filename)

	if c.Export.Filename == "" {
		c.Export.Filename = "lyrics.srt"
	}
	if c.Preview.TickInterval <= 0 {
		c.Preview.TickInterval = 250 * time.Millisecond
	}
}

func (c *Config) Validate() error {
	switch c.Language {
	case "en", "ko":
	default:
		return fmt.Errorf("language must be en or ko, got %q", c.Language)
	}
	switch c.Preview.Mode {
	case "karaoke", "subtitle":
	default:
		return fmt.Errorf("preview.mode must be karaoke or subtitle, got %q", c.Preview.Mode)
	}
	switch c.Preview.Alignment {
	case "left", "center", "right":
	default:
		return fmt.Errorf("preview.alignment must be left, center or right, got %q", c.Preview.Alignment)
	}
	if c.Preview.Rows < 1 {
		return fmt.Errorf("preview.rows must be positive, got %d", c.Preview.Rows)
	}
	if c.Preview.Width < 0 {
		return fmt.Errorf("preview.width must not be negative, got %d", c.Preview.Width)
	}
	switch c.Translate.Provider {
	case "gemini", "openai", "anthropic":
	default:
		return fmt.Errorf("translate.provider must be gemini, openai or anthropic, got %q", c.Translate.Provider)
	}
	if c.Translate.Concurrency < 1 {
		return fmt.Errorf("translate.concurrency must be at least 1, got %d", c.Translate.Concurrency)
	}
	if c.Translate.BatchSize < 1 {
		return fmt.Errorf("translate.batch_size must be at least 1, got %d", c.Translate.BatchSize)
	}
	if strings.ContainsAny(c.Export.Filename, `/\`) {
		return fmt.Errorf("export.filename must be a bare file name, got %q", c.Export.Filename)
	}
	return nil
}

// WriteDefault writes the default settings to path. It refuses to overwrite.
func WriteDefault(path string) error {
	if path == "" {
		path = DefaultPath
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config %s already exists", path)
	}

	data, err := Default().Marshal()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

// Marshal encodes the settings as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}
