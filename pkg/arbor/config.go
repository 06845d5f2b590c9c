package arbor

import (
	"strings"

	"github.com/arthur-debert/arbor/pkg/errors"
)

// Unlimited disables max-depth truncation.
const Unlimited = -1

// ColorMode controls when role colors are applied.
type ColorMode string

const (
	// ColorAuto enables color when the sink is a terminal that supports it
	ColorAuto ColorMode = "auto"
	// ColorAlways enables color unconditionally
	ColorAlways ColorMode = "always"
	// ColorNever disables color
	ColorNever ColorMode = "never"
)

// ParseColorMode parses a string into a ColorMode value
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return ColorAuto, nil
	case "always", "on":
		return ColorAlways, nil
	case "never", "off":
		return ColorNever, nil
	default:
		return ColorAuto, errors.Newf(errors.ErrInvalidInput, "unknown color mode: %s", s)
	}
}

// Config holds the process-wide switches consulted on every render call.
type Config struct {
	// Enabled turns all output on or off. Depth is tracked either way.
	Enabled bool
	// Timing renders an elapsed-time line when a section exits.
	Timing bool
	// MaxDepth is the deepest visible nesting level; Unlimited (or any
	// negative value) disables truncation.
	MaxDepth int
	// Passthrough emits raw text with no scaffolding or color.
	Passthrough bool
	// Color controls colorization of scaffold and payload.
	Color ColorMode
}

// DefaultConfig returns the configuration a fresh tree starts with.
func DefaultConfig() Config {
	return Config{
		Enabled:  true,
		Timing:   true,
		MaxDepth: Unlimited,
		Color:    ColorAuto,
	}
}

// within reports whether a line at the given depth is inside the visible
// part of the tree.
func (c Config) within(depth int) bool {
	return c.MaxDepth < 0 || depth <= c.MaxDepth
}
