package arbor

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/arthur-debert/arbor/pkg/errors"
	"github.com/arthur-debert/arbor/pkg/styles"
)

// truncationNote is appended to the header of a section cut off by the
// configured max depth.
const truncationNote = " (log tree truncated here)"

// paint applies the role's style when color is on.
func (t *Tree) paint(role styles.Role, text string) string {
	if !t.color {
		return text
	}
	return t.theme.Render(role, text)
}

// emit writes one finished line to the sink. Write failures surface to the
// caller: silently losing output would defeat the whole tool.
func (t *Tree) emit(w io.Writer, line string) error {
	if _, err := io.WriteString(w, line+"\n"); err != nil {
		return errors.Wrap(err, errors.ErrSinkWrite, "failed to write output line")
	}
	return nil
}

// scaffold builds the left-hand prefix: depth vertical glyphs plus a
// connector, styled as scaffold.
func (t *Tree) scaffold(depth int, connector string) string {
	g := t.theme.Glyphs
	return t.paint(styles.RoleScaffold, strings.Repeat(g.Vertical, depth)+connector)
}

// renderText renders a text payload at the given depth, splitting embedded
// newlines so every physical line gets its own scaffolding. The first line
// carries the branch glyph, continuation lines the vertical glyph; with
// separate set, every line carries the branch glyph (used when folding in
// captured output, where each line stands alone).
//
// Caller must hold t.mu.
func (t *Tree) renderText(w io.Writer, depth int, text string, separate bool) error {
	if !t.cfg.Enabled {
		return nil
	}
	if t.cfg.Passthrough {
		return t.emit(w, text)
	}
	if !t.cfg.within(depth) {
		return nil
	}

	g := t.theme.Glyphs
	segments := strings.Split(text, "\n")
	// A trailing newline is a line terminator, not an extra empty line. An
	// explicitly empty payload still renders one scaffold-only line, which
	// callers use as a separator.
	if n := len(segments); n > 1 && segments[n-1] == "" {
		segments = segments[:n-1]
	}
	for i, segment := range segments {
		connector := g.Vertical
		if i == 0 || separate {
			connector = g.Branch
		}
		line := t.scaffold(depth, connector) + " " + t.paint(styles.RoleText, segment)
		if err := t.emit(w, line); err != nil {
			return err
		}
	}
	return nil
}

// renderHeader renders a section's opening line, or its truncation marker
// when the section sits just past the visible depth. Deeper sections are
// silent. Caller must hold t.mu.
func (t *Tree) renderHeader(depth int, title string) error {
	if !t.cfg.Enabled {
		return nil
	}
	if t.cfg.Passthrough {
		return t.emit(t.out, title)
	}

	g := t.theme.Glyphs
	switch {
	case t.cfg.within(depth + 1):
		line := t.scaffold(depth, g.BranchDown) + " " + t.paint(styles.RoleSection, title)
		return t.emit(t.out, line)
	case depth+1 == t.cfg.MaxDepth+1:
		line := t.scaffold(depth, g.Branch+g.Truncated) + " " +
			t.paint(styles.RoleSection, title) +
			t.paint(styles.RoleTruncation, truncationNote)
		return t.emit(t.out, line)
	default:
		return nil
	}
}

// renderFooter renders a section's elapsed-time line and the closing
// scaffold separator. depth is the level the tree returned to after the
// exit. Caller must hold t.mu.
func (t *Tree) renderFooter(depth int, elapsed time.Duration, timing bool) error {
	if !t.cfg.Enabled {
		return nil
	}
	if t.cfg.Passthrough {
		if timing && t.cfg.Timing {
			return t.emit(t.out, formatElapsed(elapsed))
		}
		return nil
	}
	if !t.cfg.within(depth + 1) {
		return nil
	}
	g := t.theme.Glyphs
	if timing && t.cfg.Timing {
		line := t.scaffold(depth+1, g.Terminate+g.LeftArrow) + " " + t.paint(styles.RoleTiming, formatElapsed(elapsed))
		if err := t.emit(t.out, line); err != nil {
			return err
		}
	}
	return t.emit(t.out, t.scaffold(depth+1, ""))
}

// formatElapsed reports a duration in the unit that best matches its
// magnitude.
func formatElapsed(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%.2f microseconds", float64(d)/float64(time.Microsecond))
	case d < time.Second:
		return fmt.Sprintf("%.2f milliseconds", float64(d)/float64(time.Millisecond))
	case d < time.Minute:
		return fmt.Sprintf("%.2f seconds", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%.2f minutes", d.Minutes())
	default:
		return fmt.Sprintf("%.2f hours", d.Hours())
	}
}
