// Package config loads arbor's optional user configuration file.
//
// The file lives at $XDG_CONFIG_HOME/arbor/config.toml and sets defaults
// for the process-wide tree. The library never reads it on its own; the
// CLI (or any embedding application) loads it explicitly and applies it.
package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/arbor/pkg/arbor"
	"github.com/arthur-debert/arbor/pkg/errors"
	"github.com/arthur-debert/arbor/pkg/styles"
)

// File mirrors the TOML configuration file. Pointer fields distinguish
// "unset" from an explicit zero value.
type File struct {
	// Color is one of auto, always, never
	Color string `toml:"color,omitempty"`
	// MaxDepth limits visible nesting; negative means unlimited
	MaxDepth *int `toml:"max_depth,omitempty"`
	// Timing toggles elapsed-time lines
	Timing *bool `toml:"timing,omitempty"`
	// Unicode forces the glyph set instead of locale detection
	Unicode *bool `toml:"unicode,omitempty"`
	// Theme is a path to a YAML theme file overriding the embedded one
	Theme string `toml:"theme,omitempty"`
}

// Path returns the location of the user configuration file.
func Path() string {
	return filepath.Join(xdg.ConfigHome, "arbor", "config.toml")
}

// Load reads the user configuration file. A missing file is not an error:
// it yields an empty File whose Apply is a no-op.
func Load() (*File, error) {
	return LoadFrom(Path())
}

// LoadFrom reads a configuration file from an explicit path.
func LoadFrom(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &File{}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read config file %s", path)
	}

	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse config file %s", path)
	}
	return &f, nil
}

// Apply pushes the file's settings onto a tree. Unset fields leave the
// tree untouched.
func (f *File) Apply(t *arbor.Tree) error {
	if f.Color != "" {
		mode, err := arbor.ParseColorMode(f.Color)
		if err != nil {
			return errors.Wrap(err, errors.ErrConfigParse, "invalid color mode")
		}
		t.SetColorMode(mode)
	}
	if f.MaxDepth != nil {
		t.SetMaxDepth(*f.MaxDepth)
	}
	if f.Timing != nil {
		t.SetTiming(*f.Timing)
	}

	theme, err := f.theme()
	if err != nil {
		return err
	}
	if theme != nil {
		t.SetTheme(theme)
	}
	return nil
}

// theme resolves the theme the file asks for, or nil when it asks for
// nothing beyond the defaults.
func (f *File) theme() (*styles.Theme, error) {
	var theme *styles.Theme
	if f.Theme != "" {
		loaded, err := styles.Load(f.Theme)
		if err != nil {
			return nil, err
		}
		theme = loaded
	}
	if f.Unicode != nil {
		if theme == nil {
			theme = styles.Default()
		}
		glyphs := styles.ASCII
		if *f.Unicode {
			glyphs = styles.Unicode
		}
		// Copy before mutating: the default theme is shared
		forced := *theme
		forced.Glyphs = glyphs
		theme = &forced
	}
	return theme, nil
}
