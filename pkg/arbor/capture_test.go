package arbor_test

import (
	"bytes"
	"fmt"
	"os"
	"testing"

	"github.com/arthur-debert/arbor/pkg/arbor"
	"github.com/arthur-debert/arbor/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapturedFoldsStdoutIntoTree(t *testing.T) {
	var buf bytes.Buffer
	tree := newTestTree(&buf)

	require.NoError(t, tree.Captured(func() error {
		fmt.Println("from a third party")
		return nil
	}))

	assert.Equal(t, []string{"├ from a third party"}, lines(&buf))
}

func TestCapturedAtSectionDepth(t *testing.T) {
	var buf bytes.Buffer
	tree := newTestTree(&buf)

	require.NoError(t, tree.In("wrapping", func() error {
		return tree.Captured(func() error {
			fmt.Println("inner output")
			return nil
		})
	}))

	got := lines(&buf)
	require.Len(t, got, 3)
	assert.Equal(t, "├╗ wrapping", got[0])
	assert.Equal(t, "│├ inner output", got[1])
	assert.Equal(t, "│", got[2])
}

func TestCaptureCoalescesSplitWrites(t *testing.T) {
	var buf bytes.Buffer
	tree := newTestTree(&buf)

	require.NoError(t, tree.Captured(func() error {
		fmt.Print("split ")
		fmt.Print("across ")
		fmt.Print("writes\n")
		return nil
	}))

	assert.Equal(t, []string{"├ split across writes"}, lines(&buf))
}

func TestCaptureFlushesPartialLineAtStop(t *testing.T) {
	var buf bytes.Buffer
	tree := newTestTree(&buf)

	require.NoError(t, tree.Captured(func() error {
		fmt.Print("no trailing newline")
		return nil
	}))

	assert.Equal(t, []string{"├ no trailing newline"}, lines(&buf))
}

func TestCaptureEachLineStandsAlone(t *testing.T) {
	var buf bytes.Buffer
	tree := newTestTree(&buf)

	require.NoError(t, tree.Captured(func() error {
		fmt.Println("first")
		fmt.Println("second")
		return nil
	}))

	// Captured lines each carry the branch glyph, not the continuation one
	assert.Equal(t, []string{"├ first", "├ second"}, lines(&buf))
}

func TestCaptureWithStderr(t *testing.T) {
	var out, errOut bytes.Buffer
	cfg := arbor.DefaultConfig()
	cfg.Color = arbor.ColorNever
	cfg.Timing = false
	tree := arbor.New(
		arbor.WithOutput(&out),
		arbor.WithErrOutput(&errOut),
		arbor.WithConfig(cfg),
	)

	require.NoError(t, tree.Captured(func() error {
		fmt.Fprintln(os.Stdout, "to stdout")
		fmt.Fprintln(os.Stderr, "to stderr")
		return nil
	}, arbor.WithStderr()))

	assert.Contains(t, out.String(), "to stdout")
	assert.Contains(t, errOut.String(), "to stderr")
}

func TestCaptureRestoresChannels(t *testing.T) {
	var buf bytes.Buffer
	tree := newTestTree(&buf)

	savedOut, savedErr := os.Stdout, os.Stderr

	require.NoError(t, tree.Captured(func() error {
		assert.NotSame(t, savedOut, os.Stdout)
		return nil
	}, arbor.WithStderr()))

	assert.Same(t, savedOut, os.Stdout)
	assert.Same(t, savedErr, os.Stderr)
}

func TestCaptureRestoresOnBodyError(t *testing.T) {
	var buf bytes.Buffer
	tree := newTestTree(&buf)

	savedOut := os.Stdout
	wantErr := fmt.Errorf("body failed")

	err := tree.Captured(func() error {
		fmt.Println("before the failure")
		return wantErr
	})
	assert.Equal(t, wantErr, err)
	assert.Same(t, savedOut, os.Stdout)
	assert.Equal(t, []string{"├ before the failure"}, lines(&buf))
}

func TestCaptureRestoresOnBodyPanic(t *testing.T) {
	var buf bytes.Buffer
	tree := newTestTree(&buf)

	savedOut := os.Stdout
	assert.PanicsWithValue(t, "mid-capture", func() {
		_ = tree.Captured(func() error {
			panic("mid-capture")
		})
	})
	assert.Same(t, savedOut, os.Stdout)
}

func TestStartStopExplicit(t *testing.T) {
	var buf bytes.Buffer
	tree := newTestTree(&buf)

	c, err := tree.StartCapture()
	require.NoError(t, err)
	fmt.Println("while captured")
	require.NoError(t, c.Stop())

	// Stopping twice is harmless
	require.NoError(t, c.Stop())
	assert.Equal(t, []string{"├ while captured"}, lines(&buf))
}

func TestSecondCaptureOnSameTreeFails(t *testing.T) {
	var buf bytes.Buffer
	tree := newTestTree(&buf)

	c, err := tree.StartCapture()
	require.NoError(t, err)

	_, err = tree.StartCapture()
	assert.True(t, errors.IsCode(err, errors.ErrCaptureActive))

	// Stopping the first session frees the tree for a new one.
	require.NoError(t, c.Stop())
	c2, err := tree.StartCapture()
	require.NoError(t, err)
	require.NoError(t, c2.Stop())
}
