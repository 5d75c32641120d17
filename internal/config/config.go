// Package config holds the immutable settings of one tracker run.
package config

import (
	"errors"
	"fmt"
	"strings"

	"line-tracker/internal/history"
	"line-tracker/internal/walkwalk"
)

// ErrNoPath is returned when no scan root was given.
var ErrNoPath = errors.New("no path specified")

// ErrBadFilter is returned when an ignore rule cannot be used.
var ErrBadFilter = errors.New("bad ignore rule")

// Config is built once from the command line and passed by value.
type Config struct {
	// Path is the scan root and the search path recorded in history.
	Path string
	// IgnoreExtension is nil when no extension rule was given.
	IgnoreExtension  *string
	IgnoreFolders    []string
	IgnoreGlobs      []string
	IgnoreWhitespace bool
	Quiet            bool

	// HistoryFile overrides ~/.linecounter when set.
	HistoryFile string
	FileHistory bool
	Patch       bool
	NoColor     bool
	Verbose     bool
}

// Flags mirrors the raw flag values before they are turned into a Config.
type Flags struct {
	Path             string
	IgnoreExtension  string
	IgnoreExtSet     bool
	IgnoreFolders    string
	IgnoreGlobs      []string
	IgnoreWhitespace bool
	Quiet            bool
	HistoryFile      string
	FileHistory      bool
	Patch            bool
	NoColor          bool
	Verbose          bool
}

// New converts raw flags into a Config and validates it.
func New(f Flags) (Config, error) {
	c := Config{
		Path:             f.Path,
		IgnoreFolders:    walkwalk.SplitFolders(f.IgnoreFolders),
		IgnoreGlobs:      append([]string(nil), f.IgnoreGlobs...),
		IgnoreWhitespace: f.IgnoreWhitespace,
		Quiet:            f.Quiet,
		HistoryFile:      f.HistoryFile,
		FileHistory:      f.FileHistory,
		Patch:            f.Patch,
		NoColor:          f.NoColor,
		Verbose:          f.Verbose,
	}
	if f.IgnoreExtSet {
		ext := f.IgnoreExtension
		c.IgnoreExtension = &ext
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks that the configuration can drive a scan.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Path) == "" {
		return ErrNoPath
	}
	if err := c.Filter().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrBadFilter, err)
	}
	return nil
}

// Filter returns the path filter for this run.
func (c Config) Filter() walkwalk.Filter {
	return walkwalk.Filter{
		IgnoreExtension: c.IgnoreExtension,
		IgnoreFolders:   c.IgnoreFolders,
		IgnoreGlobs:     c.IgnoreGlobs,
	}
}

// HistoryPath resolves the history file location.
func (c Config) HistoryPath() (string, error) {
	if c.HistoryFile != "" {
		return c.HistoryFile, nil
	}
	return history.DefaultPath()
}
