// Package styles defines the visual vocabulary for arbor's tree output.
//
// A Theme bundles the box-drawing glyphs used for the tree scaffolding with
// per-role lipgloss styles. The default theme is loaded from an embedded
// YAML file and can be replaced wholesale, or overridden from a user file,
// so downstream tools can re-skin the tree without touching the renderer.
package styles

import (
	_ "embed"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	arborerrors "github.com/arthur-debert/arbor/pkg/errors"
)

// Role identifies the kind of content a rendered line segment carries.
// Each role maps to its own style in the theme.
type Role string

const (
	RoleText       Role = "text"
	RoleScaffold   Role = "scaffold"
	RoleTiming     Role = "timing"
	RoleSection    Role = "section"
	RoleTruncation Role = "truncation"
)

// ColorDef represents an adaptive color definition in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// RoleDef represents a role style definition in YAML
type RoleDef struct {
	Foreground string `yaml:"foreground,omitempty"`
	Bold       bool   `yaml:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty"`
	Underline  bool   `yaml:"underline,omitempty"`
}

// Config represents the complete theme configuration
type Config struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Roles  map[string]RoleDef  `yaml:"roles"`
}

// Theme maps roles to lipgloss styles and carries the glyph set used to
// draw the tree scaffolding.
type Theme struct {
	Glyphs Glyphs
	styles map[Role]lipgloss.Style
}

// Style returns the lipgloss style for a role. Unknown roles get the zero
// style, which renders text unchanged.
func (t *Theme) Style(role Role) lipgloss.Style {
	if t == nil || t.styles == nil {
		return lipgloss.NewStyle()
	}
	if s, ok := t.styles[role]; ok {
		return s
	}
	return lipgloss.NewStyle()
}

// Render applies the role's style to text.
func (t *Theme) Render(role Role, text string) string {
	return t.Style(role).Render(text)
}

//go:embed theme.yaml
var embeddedTheme []byte

var (
	defaultOnce  sync.Once
	defaultTheme *Theme
)

// Default returns the process-wide theme, built from the embedded
// configuration on first use. If the embedded data fails to parse the
// theme degrades to unstyled output rather than failing.
func Default() *Theme {
	defaultOnce.Do(func() {
		th, err := FromData(embeddedTheme)
		if err != nil {
			th = &Theme{Glyphs: DetectGlyphs(), styles: map[Role]lipgloss.Style{}}
		}
		defaultTheme = th
	})
	return defaultTheme
}

// Load builds a theme from a YAML file on disk.
func Load(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, arborerrors.Wrapf(err, arborerrors.ErrThemeLoad, "failed to read theme file %s", path)
	}
	return FromData(data)
}

// FromData builds a theme from YAML byte data.
func FromData(data []byte) (*Theme, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, arborerrors.Wrap(err, arborerrors.ErrThemeParse, "failed to parse theme data")
	}
	return FromConfig(config), nil
}

// FromConfig builds a theme from an already-parsed configuration.
func FromConfig(config Config) *Theme {
	colors := make(map[string]lipgloss.AdaptiveColor)
	for name, def := range config.Colors {
		colors[name] = lipgloss.AdaptiveColor{
			Light: def.Light,
			Dark:  def.Dark,
		}
	}

	theme := &Theme{
		Glyphs: DetectGlyphs(),
		styles: make(map[Role]lipgloss.Style),
	}
	for name, def := range config.Roles {
		style := lipgloss.NewStyle()
		if def.Foreground != "" {
			if c, ok := colors[def.Foreground]; ok {
				style = style.Foreground(c)
			} else {
				// Allow literal color values alongside named ones
				style = style.Foreground(lipgloss.Color(def.Foreground))
			}
		}
		if def.Bold {
			style = style.Bold(true)
		}
		if def.Italic {
			style = style.Italic(true)
		}
		if def.Underline {
			style = style.Underline(true)
		}
		theme.styles[Role(name)] = style
	}
	return theme
}

// Plain returns a theme with no styling at all, keeping only the glyph set.
// Useful for tests and non-terminal sinks.
func Plain(glyphs Glyphs) *Theme {
	return &Theme{Glyphs: glyphs, styles: map[Role]lipgloss.Style{}}
}
