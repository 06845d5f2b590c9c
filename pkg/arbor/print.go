package arbor

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/arbor/pkg/styles"
)

// Print joins its arguments with spaces and renders the result at the
// current depth. Embedded newlines produce one decorated line per segment.
// Every call emits complete lines; there is no way to accumulate a logical
// line across calls, so callers that need a custom separator or a joined
// line build the string first, with Printf or strings.Join.
func (t *Tree) Print(args ...any) error {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = fmt.Sprint(arg)
	}
	return t.print(strings.Join(parts, " "))
}

// Printf formats according to the format specifier and renders the result
// at the current depth.
func (t *Tree) Printf(format string, args ...any) error {
	return t.print(fmt.Sprintf(format, args...))
}

func (t *Tree) print(text string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.renderText(t.out, len(t.stack), text, false)
}

// Package-level functions delegate to the default tree.

// Print joins its arguments with spaces and renders them on the default
// tree at the current depth.
func Print(args ...any) error { return Default().Print(args...) }

// Printf formats and renders on the default tree at the current depth.
func Printf(format string, args ...any) error { return Default().Printf(format, args...) }

// In runs body inside a section of the default tree.
func In(title string, body func() error, opts ...SectionOption) error {
	return Default().In(title, body, opts...)
}

// Begin opens a section on the default tree.
func Begin(title string, opts ...SectionOption) *Section {
	return Default().Begin(title, opts...)
}

// Func wraps a callable in a section of the default tree.
func Func(title string, fn func() error) func() error {
	return Default().Func(title, fn)
}

// Captured runs body with stdout (and optionally stderr) folded into the
// default tree.
func Captured(body func() error, opts ...CaptureOption) error {
	return Default().Captured(body, opts...)
}

// StartCapture installs a capture session on the default tree.
func StartCapture(opts ...CaptureOption) (*Capture, error) {
	return Default().StartCapture(opts...)
}

// Depth returns the default tree's current nesting level.
func Depth() int { return Default().Depth() }

// SetEnabled toggles all output on the default tree.
func SetEnabled(enabled bool) { Default().SetEnabled(enabled) }

// SetTiming toggles elapsed-time lines on the default tree.
func SetTiming(timing bool) { Default().SetTiming(timing) }

// SetMaxDepth limits the default tree's visible nesting.
func SetMaxDepth(depth int) { Default().SetMaxDepth(depth) }

// SetPassthrough toggles raw output on the default tree.
func SetPassthrough(passthrough bool) { Default().SetPassthrough(passthrough) }

// SetColorMode sets the default tree's color mode.
func SetColorMode(mode ColorMode) { Default().SetColorMode(mode) }

// SetTheme swaps the default tree's theme.
func SetTheme(theme *styles.Theme) { Default().SetTheme(theme) }
