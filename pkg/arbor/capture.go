package arbor

import (
	"bufio"
	stderrors "errors"
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/arbor/pkg/errors"
)

// CaptureOption configures a capture session.
type CaptureOption func(*captureOpts)

type captureOpts struct {
	stderr bool
}

// WithStderr also captures the standard error channel.
func WithStderr() CaptureOption {
	return func(o *captureOpts) { o.stderr = true }
}

// Capture is an active redirection of os.Stdout (and optionally os.Stderr)
// into the tree. Every complete line the intercepted code writes is
// rendered at the depth that was active when the capture began. Stop
// restores the original channels unconditionally.
type Capture struct {
	tree    *Tree
	depth   int
	streams []*captureStream
	stopped bool
}

// captureStream handles one swapped channel.
type captureStream struct {
	target **os.File // the swapped variable, &os.Stdout or &os.Stderr
	saved  *os.File
	sink   io.Writer // where rendered lines go
	pr, pw *os.File
	done   chan struct{}
	err    error // first render failure, read after done closes
}

// StartCapture swaps the ambient output channels for pipes and begins
// folding their lines into the tree. Only one capture can be active on a
// tree at a time; starting a second one fails with ErrCaptureActive. A
// pipe that cannot be created is an install failure and propagates; any
// channel already swapped is restored before returning.
func (t *Tree) StartCapture(opts ...CaptureOption) (*Capture, error) {
	var o captureOpts
	for _, opt := range opts {
		opt(&o)
	}

	t.mu.Lock()
	if t.capturing {
		t.mu.Unlock()
		return nil, errors.New(errors.ErrCaptureActive, "a capture is already active on this tree")
	}
	t.capturing = true
	depth := len(t.stack)
	t.mu.Unlock()

	c := &Capture{tree: t, depth: depth}
	targets := []**os.File{&os.Stdout}
	if o.stderr {
		targets = append(targets, &os.Stderr)
	}

	for _, target := range targets {
		pr, pw, err := os.Pipe()
		if err != nil {
			installErr := errors.Wrap(err, errors.ErrCaptureInstall, "failed to create capture pipe")
			if stopErr := c.Stop(); stopErr != nil {
				return nil, stderrors.Join(installErr, stopErr)
			}
			return nil, installErr
		}
		// Rendered lines go to the tree's own sink. When that sink is the
		// very channel being swapped, the tree holds the original file, so
		// writes land on the real channel rather than looping into the pipe.
		sink := io.Writer(t.out)
		if target == &os.Stderr {
			sink = t.errOut
		}
		st := &captureStream{
			target: target,
			saved:  *target,
			sink:   sink,
			pr:     pr,
			pw:     pw,
			done:   make(chan struct{}),
		}
		*target = pw
		c.streams = append(c.streams, st)
		go c.drain(st)
	}
	return c, nil
}

// drain reads the pipe until the write end closes, rendering each complete
// line. Text split across multiple writes is coalesced until a line
// terminator arrives; a partial trailing line is flushed at EOF.
func (c *Capture) drain(st *captureStream) {
	defer close(st.done)
	reader := bufio.NewReader(st.pr)
	for {
		chunk, err := reader.ReadString('\n')
		if line, terminated := strings.CutSuffix(chunk, "\n"); terminated || (err != nil && line != "") {
			if renderErr := c.renderLine(st, line); renderErr != nil && st.err == nil {
				st.err = renderErr
			}
		}
		if err != nil {
			return
		}
	}
}

// renderLine folds one captured line into the tree.
func (c *Capture) renderLine(st *captureStream, line string) error {
	t := c.tree
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.renderText(st.sink, c.depth, line, true)
}

// Stop restores the original channels, flushes any partial trailing line
// and tears the session down. Restoration happens first and always; pipe
// teardown or render failures are reported but never prevent it. Stopping
// twice is a no-op.
func (c *Capture) Stop() error {
	if c.stopped {
		return nil
	}
	c.stopped = true

	c.tree.mu.Lock()
	c.tree.capturing = false
	c.tree.mu.Unlock()

	var errs []error
	for _, st := range c.streams {
		*st.target = st.saved
		if err := st.pw.Close(); err != nil {
			errs = append(errs, errors.Wrap(err, errors.ErrCaptureRestore, "failed to close capture pipe"))
		}
		<-st.done
		if err := st.pr.Close(); err != nil {
			errs = append(errs, errors.Wrap(err, errors.ErrCaptureRestore, "failed to close capture pipe"))
		}
		if st.err != nil {
			errs = append(errs, st.err)
		}
	}
	return stderrors.Join(errs...)
}

// Captured runs body with the ambient output channels folded into the
// tree. Restoration is guaranteed: it happens when body returns an error
// and when body panics. The body's error takes precedence over capture
// teardown errors.
func (t *Tree) Captured(body func() error, opts ...CaptureOption) (err error) {
	c, installErr := t.StartCapture(opts...)
	if installErr != nil {
		return installErr
	}
	defer func() {
		stopErr := c.Stop()
		if err == nil {
			err = stopErr
		}
	}()
	return body()
}
