// Package config defines the editor configuration.
//
// Configuration is a flat set of typed sections loaded from a TOML file
// by the loader subpackage. Missing keys keep their defaults, so a
// partial file is valid. The watcher subpackage reloads the file when
// it changes on disk.
//
// Sections are plain value structs; handing a Config to a component
// gives it a snapshot that later reloads do not mutate.
package config
