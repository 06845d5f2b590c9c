package arbor_test

import (
	"bytes"
	"fmt"
	"regexp"
	"testing"

	"github.com/arthur-debert/arbor/pkg/arbor"
	"github.com/arthur-debert/arbor/pkg/styles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInRendersHeaderBodyTiming(t *testing.T) {
	var buf bytes.Buffer
	cfg := arbor.DefaultConfig()
	cfg.Color = arbor.ColorNever
	tree := arbor.New(
		arbor.WithOutput(&buf),
		arbor.WithTheme(styles.Plain(styles.Unicode)),
		arbor.WithConfig(cfg),
	)

	require.NoError(t, tree.In("work", func() error {
		return tree.Print("step")
	}))

	got := lines(&buf)
	require.Len(t, got, 4)
	assert.Equal(t, "├╗ work", got[0])
	assert.Equal(t, "│├ step", got[1])
	assert.Regexp(t, regexp.MustCompile(`^│┴« \d+\.\d{2} (microseconds|milliseconds|seconds)$`), got[2])
	assert.Equal(t, "│", got[3])
}

func TestNoTimingOverride(t *testing.T) {
	var buf bytes.Buffer
	cfg := arbor.DefaultConfig()
	cfg.Color = arbor.ColorNever
	tree := arbor.New(
		arbor.WithOutput(&buf),
		arbor.WithTheme(styles.Plain(styles.Unicode)),
		arbor.WithConfig(cfg),
	)

	require.NoError(t, tree.In("quiet", func() error { return nil }, arbor.NoTiming()))

	assert.Equal(t, []string{"├╗ quiet", "│"}, lines(&buf))
}

func TestDepthRestoredOnBodyError(t *testing.T) {
	var buf bytes.Buffer
	tree := newTestTree(&buf)

	wantErr := fmt.Errorf("body blew up")
	err := tree.In("outer", func() error {
		return tree.In("inner", func() error {
			return wantErr
		})
	})
	assert.Equal(t, wantErr, err)
	assert.Equal(t, 0, tree.Depth())
}

func TestDepthRestoredOnBodyPanic(t *testing.T) {
	var buf bytes.Buffer
	tree := newTestTree(&buf)

	assert.PanicsWithValue(t, "boom", func() {
		_ = tree.In("doomed", func() error {
			panic("boom")
		})
	})
	assert.Equal(t, 0, tree.Depth())
}

func TestEndTwicePanics(t *testing.T) {
	var buf bytes.Buffer
	tree := newTestTree(&buf)

	s := tree.Begin("once")
	require.NoError(t, s.End())
	assert.Panics(t, func() { _ = s.End() })
}

func TestFuncWrapsEachInvocation(t *testing.T) {
	var buf bytes.Buffer
	tree := newTestTree(&buf)

	calls := 0
	wrapped := tree.Func("job", func() error {
		calls++
		return nil
	})

	require.NoError(t, wrapped())
	require.NoError(t, wrapped())

	assert.Equal(t, 2, calls)
	got := lines(&buf)
	// two header lines, two closing separators
	require.Len(t, got, 4)
	assert.Equal(t, "├╗ job", got[0])
	assert.Equal(t, "├╗ job", got[2])
	assert.Equal(t, 0, tree.Depth())
}

func namedWorker() error { return nil }

func TestFuncDefaultTitleIsCallableName(t *testing.T) {
	var buf bytes.Buffer
	tree := newTestTree(&buf)

	require.NoError(t, tree.Func("", namedWorker)())

	got := lines(&buf)
	require.NotEmpty(t, got)
	assert.Contains(t, got[0], "namedWorker")
}

func TestWrapFuncPreservesResultAndError(t *testing.T) {
	var buf bytes.Buffer
	tree := newTestTree(&buf)

	load := arbor.WrapFunc(tree, "load", func() (int, error) {
		return 42, nil
	})
	v, err := load()
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	wantErr := fmt.Errorf("nope")
	fail := arbor.WrapFunc(tree, "fail", func() (string, error) {
		return "partial", wantErr
	})
	s, err := fail()
	assert.Equal(t, wantErr, err)
	assert.Equal(t, "partial", s)
	assert.Equal(t, 0, tree.Depth())
}

func TestTruncationScenario(t *testing.T) {
	// The canonical sequence: max depth 1, a visible section holding an
	// over-limit one.
	var buf bytes.Buffer
	tree := newTestTree(&buf)
	tree.SetMaxDepth(1)

	a := tree.Begin("A")
	require.NoError(t, tree.Print("x"))
	b := tree.Begin("B")
	require.NoError(t, tree.Print("y"))
	require.NoError(t, b.End())
	require.NoError(t, a.End())

	got := lines(&buf)
	require.Len(t, got, 4)
	assert.Equal(t, "├╗ A", got[0])
	assert.Equal(t, "│├ x", got[1])
	assert.Equal(t, "│├= B (log tree truncated here)", got[2])
	// no line for "y", no footer for B
	assert.Equal(t, "│", got[3])
}

func TestTruncationMarkerPerEntry(t *testing.T) {
	var buf bytes.Buffer
	tree := newTestTree(&buf)
	tree.SetMaxDepth(0)

	// Two sibling over-limit sections each get their own marker
	for _, title := range []string{"first", "second"} {
		require.NoError(t, tree.In(title, func() error {
			return tree.Print("hidden")
		}))
	}

	got := lines(&buf)
	assert.Equal(t, []string{
		"├= first (log tree truncated here)",
		"├= second (log tree truncated here)",
	}, got)
}

func TestTruncationDeeperNestingSilent(t *testing.T) {
	var buf bytes.Buffer
	tree := newTestTree(&buf)
	tree.SetMaxDepth(0)

	require.NoError(t, tree.In("edge", func() error {
		return tree.In("beyond", func() error {
			return tree.Print("void")
		})
	}))

	got := lines(&buf)
	// Only the first over-limit level announces the cut
	assert.Equal(t, []string{"├= edge (log tree truncated here)"}, got)
	assert.Equal(t, 0, tree.Depth())
}

func TestNestedSectionsOutput(t *testing.T) {
	var buf bytes.Buffer
	tree := newTestTree(&buf)

	require.NoError(t, tree.In("outer", func() error {
		if err := tree.Print("a"); err != nil {
			return err
		}
		return tree.In("inner", func() error {
			return tree.Print("b")
		})
	}))

	assert.Equal(t, []string{
		"├╗ outer",
		"│├ a",
		"│├╗ inner",
		"││├ b",
		"││",
		"│",
	}, lines(&buf))
}

func TestConcurrentUseDoesNotCorruptState(t *testing.T) {
	var buf bytes.Buffer
	tree := newTestTree(&buf)

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func(n int) {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 50; j++ {
				_ = tree.In("worker", func() error {
					return tree.Printf("iteration %d", j)
				})
			}
		}(i)
	}
	for i := 0; i < 8; i++ {
		<-done
	}
	assert.Equal(t, 0, tree.Depth())
}
