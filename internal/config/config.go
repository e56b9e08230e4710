// Package config loads rtfconv settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/tsawler/richtext/rtfdoc"
)

// Config holds the settings for one rtfconv invocation.
type Config struct {
	Log  LogConfig  `toml:"log"`
	RTF  RTFConfig  `toml:"rtf"`
	HTML HTMLConfig `toml:"html"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn or error
	File  string `toml:"file"`  // JSON log file, empty for none
}

// RTFConfig controls the RTF reader and writer.
type RTFConfig struct {
	ANSICodePage       bool   `toml:"ansi_code_page"`
	StandardColorIndex bool   `toml:"standard_color_index"`
	DefaultFont        string `toml:"default_font"`
}

// HTMLConfig controls the HTML parser.
type HTMLConfig struct {
	SkipBoilerplate bool `toml:"skip_boilerplate"`
}

// ParseError is returned when a config file is not valid TOML.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing config %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "warn"},
		RTF: RTFConfig{DefaultFont: rtfdoc.DefaultFontFamily},
	}
}

// Load reads a config file over the defaults. A missing file is not an
// error and yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return parse(path, data)
}

// LoadFromReader reads a config from r over the defaults.
func LoadFromReader(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return parse("<reader>", data)
}

func parse(source string, data []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, &ParseError{
			Path:    source,
			Message: err.Error(),
			Err:     err,
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", source, err)
	}
	return cfg, nil
}

// Validate checks values that cannot be expressed in the TOML schema.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	if strings.TrimSpace(c.RTF.DefaultFont) == "" {
		return errors.New("rtf.default_font must not be empty")
	}
	return nil
}

// Marshal encodes the config as TOML.
func (c *Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}
