// Package sexpr is a tiny S-expression formatter that exercises the ppdoc
// Builder surface end to end: Group, Indent, IfBreak/IfFlat, Seplist and its
// default CommaBreakable separator, and LineSuffix. It plays the same role
// relative to ppdoc that a language-specific printer plays relative to its
// layout engine: the one concrete consumer that turns a domain value into a
// document. Atom and comment text is measured with runewidth.TextWidth
// rather than a plain rune count, so atoms containing wide runes still align
// correctly.
package sexpr

import (
	"github.com/wadlergo/ppdoc"
	"github.com/wadlergo/ppdoc/internal/runewidth"
)

// Value is an S-expression: an Atom, a List of Values, or a Commented value.
type Value interface {
	value()
}

// Atom is a bare symbol, number, or string literal, printed verbatim.
type Atom string

func (Atom) value() {}

// List is a parenthesized sequence of Values.
type List []Value

func (List) value() {}

// Commented pairs a Value with a trailing end-of-line comment. The comment
// is deferred with LineSuffix so it always lands after whatever ends up
// sharing its line, however the enclosing List breaks.
type Commented struct {
	Value   Value
	Comment string
}

func (Commented) value() {}

// Format returns a build function that lays out v, suitable for
// ppdoc.Format/ppdoc.SinglelineFormat.
func Format(v Value) func(*ppdoc.Builder) {
	return func(b *ppdoc.Builder) {
		layout(b, v)
	}
}

func layout(b *ppdoc.Builder, v Value) {
	switch t := v.(type) {
	case Atom:
		b.Text(string(t), runewidth.TextWidth(string(t)))
	case List:
		layoutList(b, t)
	case Commented:
		layout(b, t.Value)
		b.LineSuffix(func(b *ppdoc.Builder) {
			broken := " ; " + t.Comment
			flat := "  ; " + t.Comment
			b.IfBreak(func(b *ppdoc.Builder) {
				b.Text(broken, runewidth.TextWidth(broken))
			}).IfFlat(func(b *ppdoc.Builder) {
				b.Text(flat, runewidth.TextWidth(flat))
			})
		})
	}
}

func layoutList(b *ppdoc.Builder, items List) {
	if len(items) == 0 {
		b.Text("()")
		return
	}

	b.Text("(")
	b.Group(func(b *ppdoc.Builder) {
		b.Indent(func(b *ppdoc.Builder) {
			b.BreakableEmpty()
			ppdoc.Seplist(b, items, layout, nil)
		})
		b.BreakableEmpty()
	})
	b.Text(")")
}
