// Package ppdoc is a Wadler/Lindig-style pretty-printing engine: build a
// document tree with a Builder, then lay it out against a maximum line
// width with Format, or collapse it onto one line with SinglelineFormat.
package ppdoc

import (
	"io"
	"strings"

	"github.com/wadlergo/ppdoc/internal/invariant"
)

// Options configures Format and FormatChunks. The zero value is valid: every
// field falls back to its default when left unset.
type Options struct {
	// MaxWidth is the column budget a Group must fit within to render flat.
	// Defaults to 80.
	MaxWidth int
	// Newline is the string emitted for every line break. Defaults to "\n".
	Newline string
	// GenSpace maps a column count to the indentation string to emit at the
	// start of a line. Defaults to n ASCII spaces.
	GenSpace func(n int) string
	// BaseIndent is the indentation level the root group starts at.
	BaseIndent int
}

func (o Options) withDefaults() Options {
	if o.MaxWidth == 0 {
		o.MaxWidth = 80
	}
	if o.Newline == "" {
		o.Newline = "\n"
	}
	if o.GenSpace == nil {
		o.GenSpace = genSpaces
	}
	return o
}

func genSpaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

// Format builds a document with build, lays it out against opts, and writes
// the result to w. Any error returned comes from w's Write, propagated from
// the single flush that happens once layout completes.
func Format(w io.Writer, opts Options, build func(*Builder)) error {
	invariant.Check(build != nil, "Format: build function must not be nil")
	opts = opts.withDefaults()

	b := NewBuilder()
	build(b)

	buf := NewStringBuffer()
	newEngine(buf, opts).render(b.rootGroup())

	_, err := io.WriteString(w, buf.String())
	return err
}

// FormatChunks is Format for callers whose sink is a typed chunk list rather
// than text. buf accumulates the laid-out chunks; it is not reset first, so
// callers rendering into a fresh buf should pass one from NewChunkBuffer.
func FormatChunks(buf *ChunkBuffer, opts Options, build func(*Builder)) error {
	invariant.Check(build != nil, "FormatChunks: build function must not be nil")
	invariant.Check(buf != nil, "FormatChunks: buf must not be nil")
	opts = opts.withDefaults()

	b := NewBuilder()
	build(b)

	newEngine(buf, opts).render(b.rootGroup())
	return nil
}

// SinglelineFormat builds a document with build, collapses it onto one line
// and writes the result to w.
func SinglelineFormat(w io.Writer, build func(*Builder)) error {
	invariant.Check(build != nil, "SinglelineFormat: build function must not be nil")

	b := NewBuilder()
	build(b)

	buf := NewStringBuffer()
	renderSingleline(buf, b.rootGroup())

	_, err := io.WriteString(w, buf.String())
	return err
}

// SinglelineFormatChunks is SinglelineFormat for a chunk-array sink.
func SinglelineFormatChunks(buf *ChunkBuffer, build func(*Builder)) error {
	invariant.Check(build != nil, "SinglelineFormatChunks: build function must not be nil")
	invariant.Check(buf != nil, "SinglelineFormatChunks: buf must not be nil")

	b := NewBuilder()
	build(b)

	renderSingleline(buf, b.rootGroup())
	return nil
}
