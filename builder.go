package ppdoc

import (
	"fmt"
	"unicode/utf8"

	"github.com/wadlergo/ppdoc/internal/invariant"
)

// Target is an opaque handle to a document's append-destination, returned by
// Builder.Target and consumed by Builder.WithTarget, Builder.LastPosition and
// Builder.RemoveBreaks. Callers cannot construct document nodes directly —
// node is a closed sum type internal to this package — but they can save a
// Target to redirect later construction into an already-linked subtree, the
// same dynamic-scope trick with_target uses.
type Target = *[]node

// GroupHandle is a read-only reference to an open Group, returned by
// Builder.CurrentGroup.
type GroupHandle struct {
	g *groupNode
}

// Depth returns the group's nesting depth (informational).
func (h GroupHandle) Depth() int { return h.g.depth }

// Broken reports whether the group's broken bit has been set, either by a
// contained BreakParent during construction or by the layout engine during
// render.
func (h GroupHandle) Broken() bool { return h.g.broken }

// Builder constructs a document tree. It maintains a stack of
// open Groups and a single current append-destination ("target"); every
// operation that opens a container temporarily redirects the target into
// that container's children and restores the previous target on exit, even
// if the body panics.
//
// A Builder is not safe for concurrent use.
type Builder struct {
	groups []*groupNode
	target Target
}

// NewBuilder returns a Builder whose tree is rooted in a synthetic outer
// Group at depth 0. Like any Group, it only renders
// broken if it contains a forced break or fails its own fits check; the
// engine seeds its initial command with break mode, so the root is always
// measured (or rendered broken) rather than assumed flat.
func NewBuilder() *Builder {
	root := &groupNode{depth: 0}
	b := &Builder{groups: []*groupNode{root}}
	b.target = &root.children
	return b
}

func (b *Builder) currentGroup() *groupNode {
	return b.groups[len(b.groups)-1]
}

func (b *Builder) rootGroup() *groupNode {
	return b.groups[0]
}

// Target returns the Builder's current append-destination.
func (b *Builder) Target() Target {
	return b.target
}

// WithTarget temporarily redirects appends into an arbitrary, previously
// captured Target for the duration of body, then restores the Builder's own
// target — even if body panics.
func (b *Builder) WithTarget(target Target, body func(*Builder)) *Builder {
	invariant.Check(target != nil, "WithTarget: target must not be nil")
	prev := b.target
	defer func() { b.target = prev }()
	b.target = target
	body(b)
	return b
}

// CurrentGroup returns a handle to the innermost open Group.
func (b *Builder) CurrentGroup() GroupHandle {
	return GroupHandle{g: b.currentGroup()}
}

func textWidth(v any) int {
	switch s := v.(type) {
	case string:
		return utf8.RuneCountInString(s)
	case fmt.Stringer:
		return utf8.RuneCountInString(s.String())
	default:
		return 0
	}
}

func textWidthString(s string) int {
	return utf8.RuneCountInString(s)
}

func textOf(v any, width int) *textNode {
	return &textNode{parts: []textPart{{value: v, width: width}}, width: width}
}

// Text appends obj to the document. Consecutive Text calls coalesce into a
// single textNode so construction doesn't allocate a node per call. width
// defaults to the rune count of obj's string form (0 for values that are
// neither a string nor a fmt.Stringer).
func (b *Builder) Text(obj any, width ...int) *Builder {
	w := textWidth(obj)
	if len(width) > 0 {
		w = width[0]
	}

	if n := len(*b.target); n > 0 {
		if t, ok := (*b.target)[n-1].(*textNode); ok {
			t.parts = append(t.parts, textPart{value: obj, width: w})
			t.width += w
			return b
		}
	}

	*b.target = append(*b.target, textOf(obj, w))
	return b
}

// Breakable appends a Breakable: in flat mode it emits sep, in break mode a
// newline (plus indentation, when indentFlag is true). A forced Breakable
// also invokes BreakParent.
func (b *Builder) Breakable(sep string, width int, indentFlag bool, force bool) *Builder {
	*b.target = append(*b.target, &breakableNode{sep: sep, width: width, force: force, indent: indentFlag})
	if force {
		b.BreakParent()
	}
	return b
}

// BreakableSpace is Breakable(" ", 1, true, false).
func (b *Builder) BreakableSpace() *Builder {
	return b.Breakable(" ", 1, true, false)
}

// BreakableEmpty is Breakable("", 0, true, false).
func (b *Builder) BreakableEmpty() *Builder {
	return b.Breakable("", 0, true, false)
}

// BreakableForce is Breakable("", 0, true, true): it always breaks and
// propagates BreakParent to every enclosing group.
func (b *Builder) BreakableForce() *Builder {
	return b.Breakable("", 0, true, true)
}

// BreakableReturn is Breakable("", 0, false, true): a forced break whose next
// line starts at column 0 rather than the current indent level.
func (b *Builder) BreakableReturn() *Builder {
	return b.Breakable("", 0, false, true)
}

// CommaBreakable appends "," followed by a breakable space: ", " flat, ",\n"
// broken. It is the default separator for Seplist.
func (b *Builder) CommaBreakable() *Builder {
	b.Text(",")
	return b.BreakableSpace()
}

// FillBreakable is a thin synonym for BreakableSpace, named for use as a
// seplist separator over content that should wrap greedily rather than as a
// single all-or-nothing group decision. A richer "fill" combinator that
// wraps greedily item-by-item is out of scope; this is sugar over the same
// primitive.
func (b *Builder) FillBreakable() *Builder {
	return b.BreakableSpace()
}

// BreakParent marks every open Group, from innermost outward, as broken,
// stopping at the first Group that is already broken (broken is monotonic,
// so every Group above it is already broken too).
func (b *Builder) BreakParent() *Builder {
	*b.target = append(*b.target, &breakParentNode{})
	for i := len(b.groups) - 1; i >= 0; i-- {
		if b.groups[i].broken {
			break
		}
		b.groups[i].broken = true
	}
	return b
}

// Trim appends a Trim marker, erasing trailing spaces/tabs on the current
// output line at render time.
func (b *Builder) Trim() *Builder {
	*b.target = append(*b.target, &trimNode{})
	return b
}

// GroupOptions configures Group. Indent, when non-zero, wraps the body in an
// implicit Nest(Indent, body). Open/Close, when non-empty, are emitted as
// Text immediately outside the group. OpenWidth/CloseWidth default to the
// rune count of Open/Close when left at zero.
type GroupOptions struct {
	Indent     int
	Open       string
	Close      string
	OpenWidth  int
	CloseWidth int
}

// Group opens a new Group, runs body with the target redirected into it, and
// closes it — restoring the previous target even if body panics.
func (b *Builder) Group(body func(*Builder)) *Builder {
	return b.GroupWith(GroupOptions{}, body)
}

// GroupWith is Group with the full option surface: custom open/close
// delimiters and an indent delta.
func (b *Builder) GroupWith(opts GroupOptions, body func(*Builder)) *Builder {
	if opts.Open != "" {
		w := opts.OpenWidth
		if w == 0 {
			w = textWidthString(opts.Open)
		}
		b.Text(opts.Open, w)
	}

	b.withNewGroup(opts.Indent, body)

	if opts.Close != "" {
		w := opts.CloseWidth
		if w == 0 {
			w = textWidthString(opts.Close)
		}
		b.Text(opts.Close, w)
	}
	return b
}

func (b *Builder) withNewGroup(indent int, body func(*Builder)) {
	g := &groupNode{depth: b.currentGroup().depth + 1}
	*b.target = append(*b.target, g)
	b.groups = append(b.groups, g)
	prev := b.target
	defer func() {
		b.groups = b.groups[:len(b.groups)-1]
		b.target = prev
	}()
	b.target = &g.children

	if indent != 0 {
		b.withAlign(indent, body)
	} else {
		body(b)
	}
}

func (b *Builder) withAlign(delta int, body func(*Builder)) {
	n := &alignNode{delta: delta}
	*b.target = append(*b.target, n)
	prev := b.target
	defer func() { b.target = prev }()
	b.target = &n.children
	body(b)
}

// Nest increases indentation by delta columns (possibly negative) for body.
func (b *Builder) Nest(delta int, body func(*Builder)) *Builder {
	b.withAlign(delta, body)
	return b
}

// Indent increases indentation by a fixed two columns for body.
func (b *Builder) Indent(body func(*Builder)) *Builder {
	n := &indentNode{}
	*b.target = append(*b.target, n)
	prev := b.target
	defer func() { b.target = prev }()
	b.target = &n.children
	body(b)
	return b
}

// IfBreakBuilder is the chainable value returned by IfBreak, used to capture
// the flat-mode alternative with IfFlat.
type IfBreakBuilder struct {
	b             *Builder
	node          *ifBreakNode
	alreadyBroken bool
}

// IfBreak appends an IfBreak node and runs body to build its break-mode
// contents. Call IfFlat on the result to build the flat-mode alternative.
func (b *Builder) IfBreak(body func(*Builder)) *IfBreakBuilder {
	n := &ifBreakNode{}
	*b.target = append(*b.target, n)

	prev := b.target
	func() {
		defer func() { b.target = prev }()
		b.target = &n.breakContents
		body(b)
	}()

	// Read after body runs: body may itself call BreakParent, which must
	// still count as "already broken" for the IfFlat that follows.
	alreadyBroken := b.currentGroup().broken

	return &IfBreakBuilder{b: b, node: n, alreadyBroken: alreadyBroken}
}

// IfFlat builds the flat-mode alternative for the IfBreak this was chained
// from. If the enclosing group was already broken when IfBreak returned, the
// block still runs (so any BreakParent inside it still propagates) but its
// emitted content is discarded.
func (ib *IfBreakBuilder) IfFlat(body func(*Builder)) *Builder {
	b := ib.b
	if ib.alreadyBroken {
		b.runDiscarded(body)
		return b
	}

	prev := b.target
	defer func() { b.target = prev }()
	b.target = &ib.node.flatContents
	body(b)
	return b
}

// runDiscarded runs body into a throwaway Group so any BreakParent inside it
// is still observed and propagated to the real enclosing group, while its
// emitted content never reaches the real tree.
func (b *Builder) runDiscarded(body func(*Builder)) {
	throwaway := &groupNode{depth: b.currentGroup().depth + 1}
	b.groups = append(b.groups, throwaway)
	prev := b.target
	func() {
		defer func() {
			b.groups = b.groups[:len(b.groups)-1]
			b.target = prev
		}()
		b.target = &throwaway.children
		body(b)
	}()

	if throwaway.broken {
		b.BreakParent()
	}
}

// IfFlat appends content that only renders when the enclosing group is flat.
// If the enclosing group is already broken, body still runs (into a
// throwaway Group) so a contained BreakParent still propagates, but nothing
// it emits reaches the tree.
func (b *Builder) IfFlat(body func(*Builder)) *Builder {
	if b.currentGroup().broken {
		b.runDiscarded(body)
		return b
	}

	n := &ifBreakNode{}
	*b.target = append(*b.target, n)
	prev := b.target
	defer func() { b.target = prev }()
	b.target = &n.flatContents
	body(b)
	return b
}

// LineSuffix defers body's content until the next newline or document end,
// at the default priority of 1.
func (b *Builder) LineSuffix(body func(*Builder)) *Builder {
	return b.LineSuffixPriority(1, body)
}

// LineSuffixPriority is LineSuffix with an explicit priority: among suffixes
// draining on the same newline, higher priority drains first, ties broken by
// most-recently-added first.
func (b *Builder) LineSuffixPriority(priority int, body func(*Builder)) *Builder {
	n := &lineSuffixNode{priority: priority}
	*b.target = append(*b.target, n)
	prev := b.target
	defer func() { b.target = prev }()
	b.target = &n.children
	body(b)
	return b
}

// Seplist iterates items, invoking item for each and sep between consecutive
// items. sep defaults to CommaBreakable. The separator is never invoked for
// an empty list.
func Seplist[T any](b *Builder, items []T, item func(*Builder, T), sep func(*Builder)) *Builder {
	if sep == nil {
		sep = func(bb *Builder) { bb.CommaBreakable() }
	}
	for i, it := range items {
		if i > 0 {
			sep(b)
		}
		item(b, it)
	}
	return b
}

// LastPosition computes the column offset of the last character that would
// be emitted by target if rendered flat, resetting to 0 at every Breakable.
// Callers use this for alignment calculations against content already built.
func (b *Builder) LastPosition(target Target) int {
	var col int
	lastPosition(*target, &col)
	return col
}

func lastPosition(nodes []node, col *int) {
	for _, n := range nodes {
		switch t := n.(type) {
		case *textNode:
			*col += t.width
		case *breakableNode:
			*col = 0
		case *groupNode:
			lastPosition(t.children, col)
		case *indentNode:
			lastPosition(t.children, col)
		case *alignNode:
			lastPosition(t.children, col)
		case *ifBreakNode:
			lastPosition(t.flatContents, col)
		case *rawNode:
			*col += t.width
		}
	}
}

// RemoveBreaks walks target in place, replacing every Breakable with Text
// (its separator if unforced, replacement if forced — defaulting to "; ")
// and every IfBreak with an Align(0) wrapping its flat contents. It collapses
// a subtree into a form that can never break.
func (b *Builder) RemoveBreaks(target Target, replacement string) {
	if replacement == "" {
		replacement = "; "
	}
	removeBreaks(*target, replacement)
}

func removeBreaks(nodes []node, replacement string) {
	for i, n := range nodes {
		switch t := n.(type) {
		case *breakableNode:
			if t.force {
				nodes[i] = textOf(replacement, textWidthString(replacement))
			} else {
				nodes[i] = textOf(t.sep, t.width)
			}
		case *ifBreakNode:
			removeBreaks(t.flatContents, replacement)
			nodes[i] = &alignNode{delta: 0, children: t.flatContents}
		case *groupNode:
			removeBreaks(t.children, replacement)
		case *indentNode:
			removeBreaks(t.children, replacement)
		case *alignNode:
			removeBreaks(t.children, replacement)
		case *lineSuffixNode:
			removeBreaks(t.children, replacement)
		}
	}
}
