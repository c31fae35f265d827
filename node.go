package ppdoc

// node is the tagged-variant document tree the Builder constructs. It is a
// closed sum type: every concrete type below implements node via the
// unexported marker method so that no package outside ppdoc can add new
// variants the engine doesn't know how to render.
type node interface {
	node()
}

// textNode accumulates opaque string-like objects plus their precomputed
// column width. Builder.Text coalesces consecutive additions into one
// textNode so construction doesn't allocate a new node per call.
type textNode struct {
	parts []textPart
	width int
}

type textPart struct {
	value any
	width int
}

func (*textNode) node() {}

// breakableNode emits sep in flat mode, or a newline (plus indentation when
// indent is true) in break mode. A Force breakable behaves exactly like a
// non-forcing breakable immediately followed by
// a breakParentNode: it sets should-remeasure on the engine and propagates
// brokenness to every enclosing group at construction time.
type breakableNode struct {
	sep    string
	width  int
	force  bool
	indent bool
}

func (*breakableNode) node() {}

// groupNode is a subtree that renders either fully flat or fully broken.
// broken is monotonic: once the builder or the engine sets it, it is never
// cleared.
type groupNode struct {
	children []node
	depth    int
	broken   bool
}

func (*groupNode) node() {}

// indentNode increases indentation by a fixed two columns for its children.
type indentNode struct {
	children []node
}

func (*indentNode) node() {}

// alignNode increases indentation by an arbitrary (possibly negative) delta
// for its children. This is the generalization of indentNode: Indent(body)
// is Nest(2, body).
type alignNode struct {
	children []node
	delta    int
}

func (*alignNode) node() {}

// ifBreakNode renders breakContents when its enclosing group is broken and
// flatContents when it is flat.
type ifBreakNode struct {
	breakContents []node
	flatContents  []node
}

func (*ifBreakNode) node() {}

// lineSuffixNode defers its children until the next newline or document end
// by the engine. Higher priority drains first; among equal priorities the
// most recently added drains first.
type lineSuffixNode struct {
	children []node
	priority int
}

func (*lineSuffixNode) node() {}

// breakParentNode is a marker with no children: its only effect happens at
// construction time, when Builder.BreakParent walks the open-group stack.
type breakParentNode struct{}

func (*breakParentNode) node() {}

// trimNode is a marker with no children: it erases trailing spaces/tabs on
// the current output line and adjusts the column counter.
type trimNode struct{}

func (*trimNode) node() {}

// rawNode is the "bare string / unknown" fallback: the engine renders it by
// appending value to the buffer and advancing by width. No Builder
// operation creates one; Builder.Text stores any value, string or not, in a
// textNode.
type rawNode struct {
	value any
	width int
}

func (*rawNode) node() {}
