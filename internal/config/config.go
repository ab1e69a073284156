package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration validation.
var (
	// ErrInvalidTabWidth indicates a non-positive tab width.
	ErrInvalidTabWidth = errors.New("tab width must be positive")

	// ErrInvalidLogLevel indicates an unknown log level name.
	ErrInvalidLogLevel = errors.New("invalid log level")
)

// Config is the root configuration.
type Config struct {
	Editor Editor `toml:"editor"`
	Script Script `toml:"script"`
	Log    Log    `toml:"log"`
}

// Editor holds the editing behavior settings.
type Editor struct {
	// TabWidth is the number of spaces per tab stop.
	TabWidth int `toml:"tab_width"`

	// AutoIndent carries the previous line's indentation onto new lines.
	AutoIndent bool `toml:"auto_indent"`

	// AutoCloseBrackets inserts the closing bracket when an opener is typed.
	AutoCloseBrackets bool `toml:"auto_close_brackets"`

	// AutoCloseQuotes inserts the closing quote when a quote is typed.
	AutoCloseQuotes bool `toml:"auto_close_quotes"`

	// SmartDedent makes backspace in leading whitespace delete back to the
	// previous tab stop instead of a single space.
	SmartDedent bool `toml:"smart_dedent"`
}

// Script holds the scripting settings.
type Script struct {
	// IndentRulePath is an optional Lua file defining a custom indent rule.
	// Empty disables scripted indentation.
	IndentRulePath string `toml:"indent_rule_path"`
}

// Log holds the logging settings.
type Log struct {
	// Level is the minimum level to log ("debug", "info", "warn", "error").
	Level string `toml:"level"`

	// File is the log output path. Empty logs to stderr.
	File string `toml:"file"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Editor: Editor{
			TabWidth:          4,
			AutoIndent:        true,
			AutoCloseBrackets: true,
			AutoCloseQuotes:   true,
			SmartDedent:       true,
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Validate checks the configuration for invalid values.
func (c Config) Validate() error {
	if c.Editor.TabWidth <= 0 {
		return fmt.Errorf("editor.tab_width %d: %w", c.Editor.TabWidth, ErrInvalidTabWidth)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q: %w", c.Log.Level, ErrInvalidLogLevel)
	}

	return nil
}
