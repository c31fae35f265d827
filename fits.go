package ppdoc

// mode is the engine's two rendering modes for an open container: flat (no
// line breaks) or break (Breakables render as newlines).
type mode int

const (
	modeBreak mode = iota
	modeFlat
)

// command is one entry of the layout engine's command stack: render n at
// indent columns of indentation, in mode.
type command struct {
	indent int
	mode   mode
	n      node
}

// pushChildren appends children to stack in reverse order, so that popping
// from the end of stack yields them in forward (document) order. This is the
// reverse-DFS push every container node uses when expanding its children.
func pushChildren(stack []command, children []node, indent int, m mode) []command {
	for i := len(children) - 1; i >= 0; i-- {
		stack = append(stack, command{indent: indent, mode: m, n: children[i]})
	}
	return stack
}

// fits is the bounded-lookahead predicate. seed is the
// reverse-DFS command list just produced by opening a Group in flat mode;
// rest is the engine's own command stack, consulted (but never mutated) from
// its top once seed is exhausted. scratch is a fresh Buffer of the same
// variant as the real output sink, used only so a Trim node encountered
// during lookahead can report how many columns it would actually free.
//
// fits returns true as soon as it finds a line break (a Breakable rendered
// in break mode, or a forced Breakable) before remaining goes negative, and
// false the moment remaining goes negative first.
func fits(seed []command, rest []command, remaining int, scratch Buffer) bool {
	stack := make([]command, len(seed))
	copy(stack, seed)
	restIdx := len(rest)

	for remaining >= 0 {
		if len(stack) == 0 {
			if restIdx == 0 {
				return true
			}
			restIdx--
			stack = append(stack, rest[restIdx])
			continue
		}

		cmd := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch n := cmd.n.(type) {
		case *textNode:
			for _, p := range n.parts {
				scratch.Append(p.value)
			}
			remaining -= n.width
		case *rawNode:
			scratch.Append(n.value)
			remaining -= n.width
		case *groupNode:
			m := cmd.mode
			if n.broken {
				m = modeBreak
			}
			stack = pushChildren(stack, n.children, cmd.indent, m)
		case *indentNode:
			stack = pushChildren(stack, n.children, cmd.indent+2, cmd.mode)
		case *alignNode:
			stack = pushChildren(stack, n.children, cmd.indent+n.delta, cmd.mode)
		case *ifBreakNode:
			contents := n.flatContents
			if cmd.mode == modeBreak {
				contents = n.breakContents
			}
			stack = pushChildren(stack, contents, cmd.indent, cmd.mode)
		case *breakableNode:
			if cmd.mode == modeBreak || n.force {
				return true
			}
			scratch.Append(n.sep)
			remaining -= n.width
		case *trimNode:
			remaining += scratch.TrimTrailing()
		case *lineSuffixNode, *breakParentNode:
			// both are ignored for width purposes.
		}
	}
	return false
}
