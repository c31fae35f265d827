package ppdoc

// renderSingleline implements single-line mode: the whole
// tree collapses onto one line with no break decisions whatsoever. Breakable
// always contributes its flat separator, IfBreak always takes its flat
// branch, and Indent/Align/Group contribute only their children. LineSuffix
// content is rendered into a side buffer and concatenated onto the end of the
// main output once the whole tree has been rendered.
func renderSingleline(buf Buffer, root *groupNode) {
	r := &singlelineRenderer{buf: buf}
	r.renderChildren(root.children)
	r.flush()
}

type singlelineRenderer struct {
	buf      Buffer
	suffixes []Buffer
}

func (r *singlelineRenderer) renderChildren(nodes []node) {
	for _, n := range nodes {
		r.renderNode(n)
	}
}

func (r *singlelineRenderer) renderNode(n node) {
	switch t := n.(type) {
	case *textNode:
		for _, p := range t.parts {
			r.buf.Append(p.value)
		}
	case *rawNode:
		r.buf.Append(t.value)
	case *breakableNode:
		r.buf.Append(t.sep)
	case *groupNode:
		r.renderChildren(t.children)
	case *indentNode:
		r.renderChildren(t.children)
	case *alignNode:
		r.renderChildren(t.children)
	case *ifBreakNode:
		r.renderChildren(t.flatContents)
	case *lineSuffixNode:
		side := r.buf.Blank()
		sr := &singlelineRenderer{buf: side}
		sr.renderChildren(t.children)
		sr.flush()
		r.suffixes = append(r.suffixes, side)
	case *breakParentNode:
		// no-op
	case *trimNode:
		r.buf.TrimTrailing()
	}
}

// flush concatenates any deferred LineSuffix side buffers onto the main
// buffer, in the order their LineSuffix nodes were encountered.
func (r *singlelineRenderer) flush() {
	for _, s := range r.suffixes {
		copyBuffer(r.buf, s)
	}
	r.suffixes = nil
}

func copyBuffer(dst Buffer, src Buffer) {
	switch s := src.(type) {
	case *StringBuffer:
		dst.Append(s.String())
	case *ChunkBuffer:
		for _, c := range s.Chunks() {
			dst.Append(c)
		}
	}
}
