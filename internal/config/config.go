package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/multierr"

	"github.com/dshills/selcore/internal/editor"
	"github.com/dshills/selcore/internal/engine/buffer"
	"github.com/dshills/selcore/internal/logging"
)

// Config is the complete configuration.
type Config struct {
	Editor EditorConfig `toml:"editor"`
	Log    LogConfig    `toml:"log"`
}

// EditorConfig holds the editing options.
type EditorConfig struct {
	TabStop     int  `toml:"tabstop"`
	IndentWidth int  `toml:"indentwidth"`
	AlignTab    bool `toml:"aligntab"`
	IncSearch   bool `toml:"incsearch"`
	MaxHistory  int  `toml:"max_history"`
}

// LogConfig holds the logging options.
type LogConfig struct {
	Level       string `toml:"level"`
	File        string `toml:"file"`
	Development bool   `toml:"development"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	opts := editor.DefaultOptions()
	return &Config{
		Editor: EditorConfig{
			TabStop:     opts.TabStop,
			IndentWidth: opts.IndentWidth,
			AlignTab:    opts.AlignTab,
			IncSearch:   opts.IncSearch,
			MaxHistory:  buffer.DefaultMaxHistory,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return parse(path, data)
}

// Parse decodes and validates TOML data over the defaults.
func Parse(data []byte) (*Config, error) {
	return parse("<data>", data)
}

func parse(source string, data []byte) (*Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		perr := &ParseError{Path: source, Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return nil, perr
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return cfg, nil
}

// Validate reports every out of range value.
func (c *Config) Validate() error {
	var err error
	if c.Editor.TabStop <= 0 {
		err = multierr.Append(err, fieldError("editor.tabstop", c.Editor.TabStop, "must be positive"))
	}
	if c.Editor.IndentWidth < 0 {
		err = multierr.Append(err, fieldError("editor.indentwidth", c.Editor.IndentWidth, "must not be negative"))
	}
	if c.Editor.MaxHistory <= 0 {
		err = multierr.Append(err, fieldError("editor.max_history", c.Editor.MaxHistory, "must be positive"))
	}
	if _, lerr := logging.ParseLevel(c.Log.Level); lerr != nil {
		err = multierr.Append(err, fmt.Errorf("%w: log.level: %w", ErrValidationFailed, lerr))
	}
	return err
}

// EditorOptions returns the options of an editor context.
func (c *Config) EditorOptions() editor.Options {
	return editor.Options{
		TabStop:     c.Editor.TabStop,
		IndentWidth: c.Editor.IndentWidth,
		AlignTab:    c.Editor.AlignTab,
		IncSearch:   c.Editor.IncSearch,
	}
}

// Logging returns the logger configuration.
func (c *Config) Logging() logging.Config {
	return logging.Config{
		Level:       c.Log.Level,
		File:        c.Log.File,
		Development: c.Log.Development,
	}
}

// BufferOptions returns the options of the buffers created under c.
func (c *Config) BufferOptions() []buffer.Option {
	return []buffer.Option{buffer.WithMaxHistory(c.Editor.MaxHistory)}
}
