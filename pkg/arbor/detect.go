package arbor

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// colorCapable determines whether the sink can display colors, following
// the usual conventions: NO_COLOR wins, pipes and redirects get plain
// text, and the terminal must advertise a color profile.
func colorCapable(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	// Check if NO_COLOR is set
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	// Check if we're being piped or redirected
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}

	// Check terminal color support
	return termenv.ColorProfile() != termenv.Ascii
}

// resolveColor turns a ColorMode into an effective on/off decision for a
// given sink.
func resolveColor(mode ColorMode, w io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return colorCapable(w)
	}
}
