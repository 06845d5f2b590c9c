// Package arbor prints hierarchical, tree-shaped console output: nested
// sections of text that mirror the nesting of your code, annotated with
// per-section elapsed time.
//
// The package-level functions operate on a process-wide default tree
// writing to stdout:
//
//	arbor.In("loading assets", func() error {
//	    arbor.Print("42 textures")
//	    return arbor.In("decoding", decode)
//	})
//
// which renders as:
//
//	├╗ loading assets
//	│├ 42 textures
//	│├╗ decoding
//	││┴« 12.41 milliseconds
//	││
//	│┴« 13.02 milliseconds
//	│
//
// Every component accepts overrides: New builds an isolated Tree with its
// own configuration, theme and output sink, which is also the supported way
// to use arbor from multiple goroutines (one Tree per goroutine). The
// default tree serializes all operations with an internal mutex, so
// concurrent use cannot corrupt the section stack, but interleaved output
// from different goroutines will still read jumbled; per-goroutine Trees
// avoid that.
//
// Section entry and exit are paired with guaranteed-release semantics: the
// exit transition (timing line, depth decrement) runs even when the body
// returns an error or panics.
//
// Output from third-party code can be folded into the tree with Captured
// or StartCapture, which temporarily swap os.Stdout (and optionally
// os.Stderr) for a pipe and render each complete line at the depth that was
// active when the capture began. One capture can be active on a tree at a
// time; opening new sections inside a capture is best-effort and not
// supported.
package arbor
