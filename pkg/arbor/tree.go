package arbor

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/arthur-debert/arbor/pkg/styles"
)

// frame is one active section on the tree's stack.
type frame struct {
	title string
	start time.Time
}

// Tree renders hierarchical output to a single sink. All methods are
// serialized by an internal mutex; for concurrent output without
// interleaving, give each goroutine its own Tree.
type Tree struct {
	mu     sync.Mutex
	cfg    Config
	theme  *styles.Theme
	out       io.Writer
	errOut    io.Writer
	color     bool
	stack     []frame
	capturing bool
}

// Option configures a Tree at construction time.
type Option func(*Tree)

// WithOutput sets the tree's output sink.
func WithOutput(w io.Writer) Option {
	return func(t *Tree) { t.out = w }
}

// WithErrOutput sets the sink used for captured stderr lines.
func WithErrOutput(w io.Writer) Option {
	return func(t *Tree) { t.errOut = w }
}

// WithTheme sets the tree's theme.
func WithTheme(theme *styles.Theme) Option {
	return func(t *Tree) { t.theme = theme }
}

// WithConfig sets the tree's initial configuration.
func WithConfig(cfg Config) Option {
	return func(t *Tree) { t.cfg = cfg }
}

// New builds an isolated Tree. With no options it writes to stdout using
// the default theme and configuration.
func New(opts ...Option) *Tree {
	t := &Tree{
		cfg:    DefaultConfig(),
		theme:  styles.Default(),
		out:    os.Stdout,
		errOut: os.Stderr,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.cfg.MaxDepth < 0 {
		t.cfg.MaxDepth = Unlimited
	}
	t.color = resolveColor(t.cfg.Color, t.out)
	return t
}

var (
	defaultOnce sync.Once
	defaultTree *Tree
)

// Default returns the process-wide tree writing to stdout.
func Default() *Tree {
	defaultOnce.Do(func() {
		defaultTree = New()
	})
	return defaultTree
}

// Depth returns the current nesting level.
func (t *Tree) Depth() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.stack)
}

// Config returns a copy of the tree's current configuration.
func (t *Tree) Config() Config {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cfg
}

// SetEnabled turns all output on or off.
func (t *Tree) SetEnabled(enabled bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cfg.Enabled = enabled
}

// SetTiming turns elapsed-time lines on or off.
func (t *Tree) SetTiming(timing bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cfg.Timing = timing
}

// SetMaxDepth sets the deepest visible nesting level. Negative values mean
// unlimited.
func (t *Tree) SetMaxDepth(depth int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if depth < 0 {
		depth = Unlimited
	}
	t.cfg.MaxDepth = depth
}

// SetPassthrough toggles raw, undecorated output.
func (t *Tree) SetPassthrough(passthrough bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cfg.Passthrough = passthrough
}

// SetColorMode sets when colors are applied and re-resolves the effective
// decision against the current sink.
func (t *Tree) SetColorMode(mode ColorMode) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cfg.Color = mode
	t.color = resolveColor(mode, t.out)
}

// SetTheme swaps the tree's theme.
func (t *Tree) SetTheme(theme *styles.Theme) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.theme = theme
}

// enter pushes a new section frame. Caller must hold t.mu.
func (t *Tree) enter(title string) {
	t.stack = append(t.stack, frame{title: title, start: time.Now()})
}

// exit pops the top frame and returns its elapsed time. A pop on an empty
// stack is a programmer error: the enter/exit pairing is broken and every
// depth computed from here on would be wrong. Caller must hold t.mu.
func (t *Tree) exit() time.Duration {
	if len(t.stack) == 0 {
		panic("arbor: section exit without matching entry")
	}
	f := t.stack[len(t.stack)-1]
	t.stack = t.stack[:len(t.stack)-1]
	return time.Since(f.start)
}
