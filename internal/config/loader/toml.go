package loader

import (
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/textstorm/internal/config"
)

// TOMLLoader loads configuration from TOML files.
type TOMLLoader struct {
	fs   FileSystem
	path string
}

// NewTOMLLoader creates a new TOML loader for the given path.
func NewTOMLLoader(path string) *TOMLLoader {
	return &TOMLLoader{
		fs:   DefaultFS(),
		path: path,
	}
}

// NewTOMLLoaderWithFS creates a TOML loader with a custom file system.
func NewTOMLLoaderWithFS(fs FileSystem, path string) *TOMLLoader {
	return &TOMLLoader{
		fs:   fs,
		path: path,
	}
}

// Path returns the path the loader reads from.
func (l *TOMLLoader) Path() string {
	return l.path
}

// Load reads configuration from the configured path.
// A missing file returns the defaults.
func (l *TOMLLoader) Load() (config.Config, error) {
	return l.LoadFrom(l.path)
}

// LoadFrom reads configuration from a specific path.
func (l *TOMLLoader) LoadFrom(path string) (config.Config, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config.Default(), nil
		}
		return config.Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	}

	return l.parse(path, data)
}

// LoadFromReader reads configuration from an io.Reader.
func (l *TOMLLoader) LoadFromReader(r io.Reader) (config.Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return config.Config{}, fmt.Errorf("reading config: %w", err)
	}

	return l.parse("<reader>", data)
}

// parse unmarshals TOML data over the defaults, so keys absent from the
// file keep their default values.
func (l *TOMLLoader) parse(source string, data []byte) (config.Config, error) {
	cfg := config.Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return config.Config{}, &ParseError{
			Path:    source,
			Message: err.Error(),
			Err:     err,
		}
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("validating %s: %w", source, err)
	}

	return cfg, nil
}

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
