package keymap

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// keymapFile is the YAML structure of a keymap file.
type keymapFile struct {
	Name     string    `yaml:"name"`
	Bindings []Binding `yaml:"bindings"`
}

// LoadFile loads a keymap from a YAML file.
func LoadFile(path string) (*Keymap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening keymap file: %w", err)
	}
	defer f.Close()

	return LoadReader(f)
}

// LoadReader loads a keymap from a reader.
func LoadReader(r io.Reader) (*Keymap, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading keymap: %w", err)
	}

	var file keymapFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decoding keymap: %w", err)
	}
	if file.Name == "" {
		file.Name = "user"
	}

	return New(file.Name, file.Bindings)
}

// LoadOrDefault returns the default keymap with the file's bindings
// layered on top. An empty path or a missing file yields the defaults
// alone.
func LoadOrDefault(path string) (*Keymap, error) {
	base := Default()
	if path == "" {
		return base, nil
	}

	user, err := LoadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return base, nil
		}
		return nil, err
	}
	return base.Merge(user), nil
}
