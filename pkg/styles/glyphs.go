package styles

import (
	"os"
	"runtime"
	"strings"
)

// Glyphs holds the characters used to draw the tree scaffolding.
type Glyphs struct {
	Vertical   string // continuation of an enclosing section
	Branch     string // marker for an ordinary line
	BranchDown string // marker opening a new section
	Terminate  string // marker closing a section (timing line)
	LeftArrow  string // points at the elapsed time
	Truncated  string // appended to a section header cut off by max depth
}

// Unicode is the default glyph set.
var Unicode = Glyphs{
	Vertical:   "│",
	Branch:     "├",
	BranchDown: "├╗",
	Terminate:  "┴",
	LeftArrow:  "«",
	Truncated:  "=",
}

// ASCII is the fallback for terminals without usable box-drawing characters.
var ASCII = Glyphs{
	Vertical:   "|",
	Branch:     "|->",
	BranchDown: "|\\",
	Terminate:  "-",
	LeftArrow:  "<<",
	Truncated:  "=",
}

// DetectGlyphs picks a glyph set based on the locale environment. Terminals
// not declaring a UTF-8 encoding get the ASCII set.
func DetectGlyphs() Glyphs {
	for _, key := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		upper := strings.ToUpper(v)
		if strings.Contains(upper, "UTF-8") || strings.Contains(upper, "UTF8") {
			return Unicode
		}
		return ASCII
	}
	if runtime.GOOS == "windows" {
		return ASCII
	}
	return Unicode
}
