package arbor

import (
	"reflect"
	"runtime"
	"strings"
)

// SectionOption configures a single section.
type SectionOption func(*sectionOpts)

type sectionOpts struct {
	noTiming bool
}

// NoTiming suppresses the elapsed-time line for this section only.
func NoTiming() SectionOption {
	return func(o *sectionOpts) { o.noTiming = true }
}

// Section is one node in the printed tree: a scoped region of code with a
// title and a measured duration. Obtained from Begin and closed with End;
// prefer In, which pairs the two for you.
type Section struct {
	tree   *Tree
	timing bool
	err    error
	done   bool
}

// Begin opens a section: renders its header line at the current depth and
// descends one level. The returned Section must be closed with End exactly
// once. A header write failure is carried to End rather than lost.
func (t *Tree) Begin(title string, opts ...SectionOption) *Section {
	var o sectionOpts
	for _, opt := range opts {
		opt(&o)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	// Render before entering; an over-limit section still enters so the
	// stack stays in lockstep with the depth.
	err := t.renderHeader(len(t.stack), title)
	t.enter(title)

	return &Section{tree: t, timing: !o.noTiming, err: err}
}

// End closes the section: ascends one level and renders the elapsed-time
// line. Calling End twice, or without a matching Begin, is a programmer
// error and panics.
func (s *Section) End() error {
	if s.done {
		panic("arbor: section ended twice")
	}
	s.done = true

	t := s.tree
	t.mu.Lock()
	defer t.mu.Unlock()

	elapsed := t.exit()
	if err := t.renderFooter(len(t.stack), elapsed, s.timing); err != nil && s.err == nil {
		s.err = err
	}
	return s.err
}

// In runs body inside a section. The exit transition is guaranteed: it
// fires when body returns an error and when body panics. The body's error
// is returned as-is; render errors surface only when the body itself
// succeeded.
func (t *Tree) In(title string, body func() error, opts ...SectionOption) (err error) {
	s := t.Begin(title, opts...)
	defer func() {
		endErr := s.End()
		if err == nil {
			err = endErr
		}
	}()
	return body()
}

// Func wraps a callable so that every invocation runs inside its own
// section. An empty title defaults to the callable's name.
func (t *Tree) Func(title string, fn func() error) func() error {
	if title == "" {
		title = funcName(fn)
	}
	return func() error {
		return t.In(title, fn)
	}
}

// WrapFunc is the result-preserving form of Func: the wrapped callable's
// value passes through untouched and its error propagates after the exit
// transition runs.
func WrapFunc[T any](t *Tree, title string, fn func() (T, error)) func() (T, error) {
	if title == "" {
		title = funcName(fn)
	}
	return func() (T, error) {
		var out T
		err := t.In(title, func() error {
			var innerErr error
			out, innerErr = fn()
			return innerErr
		})
		return out, err
	}
}

// funcName resolves a callable's display name, without the package path.
func funcName(fn any) string {
	pc := reflect.ValueOf(fn).Pointer()
	f := runtime.FuncForPC(pc)
	if f == nil {
		return "func"
	}
	name := f.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}
