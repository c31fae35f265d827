package ppdoc

import (
	"fmt"
	"strings"
)

// Buffer is the append-only output sink the layout engine writes to. It
// supports two operations: append content, and erase (and report the width of)
// any trailing run of spaces/tabs on the current output line without
// crossing a newline.
type Buffer interface {
	// Append writes v to the sink. StringBuffer writes strings and
	// fmt.Stringer values as text and renders anything else with
	// fmt.Sprint; ChunkBuffer stores v as is.
	Append(v any)
	// TrimTrailing removes a trailing run of ' '/'\t' characters on the
	// current line and returns the number of columns removed. It never
	// looks past the most recent '\n'.
	TrimTrailing() int
	// Blank returns a fresh, empty Buffer of the same concrete variant. The
	// Fits predicate uses it as scratch space to model Trim
	// semantics during bounded lookahead without touching the real sink.
	Blank() Buffer
}

// StringBuffer is the string-backed Buffer variant: the common path, backed
// by a single growing byte slice.
type StringBuffer struct {
	buf []byte
}

// NewStringBuffer returns an empty string-backed Buffer.
func NewStringBuffer() *StringBuffer {
	return &StringBuffer{}
}

// Append implements Buffer.
func (b *StringBuffer) Append(v any) {
	b.buf = append(b.buf, stringify(v)...)
}

// TrimTrailing implements Buffer.
func (b *StringBuffer) TrimTrailing() int {
	end := len(b.buf)
	start := end
	for start > 0 && isSpaceOrTab(b.buf[start-1]) {
		start--
	}
	removed := end - start
	b.buf = b.buf[:start]
	return removed
}

// String returns the buffer's content so far.
func (b *StringBuffer) String() string {
	return string(b.buf)
}

// Blank implements Buffer.
func (b *StringBuffer) Blank() Buffer {
	return NewStringBuffer()
}

func isSpaceOrTab(c byte) bool {
	return c == ' ' || c == '\t'
}

func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprint(v)
	}
}

// ChunkBuffer is the chunk-array-backed Buffer variant, for callers whose
// "output" is a typed list of objects (e.g. terminal styling spans) rather
// than plain characters.
type ChunkBuffer struct {
	chunks []any
	// Width measures the display width of a chunk for trimming purposes. It
	// defaults to treating strings as their own width-in-runes and anything
	// else as width 0 (never trimmed away on its own, never merged into a
	// trimmed whitespace run).
	Width func(any) int
}

// NewChunkBuffer returns an empty chunk-backed Buffer.
func NewChunkBuffer() *ChunkBuffer {
	return &ChunkBuffer{Width: defaultChunkWidth}
}

func defaultChunkWidth(v any) int {
	if s, ok := v.(string); ok {
		return len([]rune(s))
	}
	return 0
}

// Append implements Buffer.
func (b *ChunkBuffer) Append(v any) {
	b.chunks = append(b.chunks, v)
}

// Chunks returns the accumulated chunks in emission order.
func (b *ChunkBuffer) Chunks() []any {
	return b.chunks
}

// Blank implements Buffer.
func (b *ChunkBuffer) Blank() Buffer {
	return &ChunkBuffer{Width: b.Width}
}

// TrimTrailing implements Buffer. It repeatedly pops trailing elements that
// are entirely whitespace, then, if the new last element is a string, strips
// its trailing whitespace in place (by replacing it with the trimmed form).
func (b *ChunkBuffer) TrimTrailing() int {
	var removed int
	for len(b.chunks) > 0 {
		last := b.chunks[len(b.chunks)-1]
		s, ok := last.(string)
		if !ok {
			break
		}
		if strings.ContainsAny(s, "\n") {
			break
		}
		trimmed := strings.TrimRight(s, " \t")
		if trimmed == "" {
			removed += b.Width(last)
			b.chunks = b.chunks[:len(b.chunks)-1]
			continue
		}
		if trimmed != s {
			removed += b.Width(s) - b.Width(trimmed)
			b.chunks[len(b.chunks)-1] = trimmed
		}
		break
	}
	return removed
}
