package ppdoc

import "sort"

// suffixEntry is a LineSuffix capture awaiting drain: its children, and the
// (indent, mode) they were captured under, plus enough bookkeeping to sort
// by (priority desc, insertion-order desc).
type suffixEntry struct {
	priority int
	seq      int
	indent   int
	mode     mode
	children []node
}

// engine runs the stack-based layout algorithm over a single
// rendered tree, writing into buf.
type engine struct {
	buf             Buffer
	opts            Options
	pos             int
	cmds            []command
	shouldRemeasure bool
	suffixes        []suffixEntry
	nextSeq         int
}

func newEngine(buf Buffer, opts Options) *engine {
	return &engine{buf: buf, opts: opts}
}

// render lays out root (always the document's synthetic outer group, seeded
// in break mode so that it is measured like any other group) at the
// configured base indent.
func (e *engine) render(root *groupNode) {
	if e.opts.BaseIndent > 0 {
		e.buf.Append(e.opts.GenSpace(e.opts.BaseIndent))
	}
	e.pos = e.opts.BaseIndent
	e.cmds = []command{{indent: e.opts.BaseIndent, mode: modeBreak, n: root}}

	for {
		if len(e.cmds) == 0 {
			if len(e.suffixes) == 0 {
				return
			}
			e.drainSuffixes()
			continue
		}

		cmd := e.cmds[len(e.cmds)-1]
		e.cmds = e.cmds[:len(e.cmds)-1]
		e.step(cmd)
	}
}

func (e *engine) step(cmd command) {
	switch n := cmd.n.(type) {
	case *textNode:
		for _, p := range n.parts {
			e.buf.Append(p.value)
		}
		e.pos += n.width
	case *rawNode:
		e.buf.Append(n.value)
		e.pos += n.width
	case *groupNode:
		e.stepGroup(cmd, n)
	case *indentNode:
		e.cmds = pushChildren(e.cmds, n.children, cmd.indent+2, cmd.mode)
	case *alignNode:
		e.cmds = pushChildren(e.cmds, n.children, cmd.indent+n.delta, cmd.mode)
	case *ifBreakNode:
		contents := n.flatContents
		if cmd.mode == modeBreak {
			contents = n.breakContents
		}
		e.cmds = pushChildren(e.cmds, contents, cmd.indent, cmd.mode)
	case *breakableNode:
		e.stepBreakable(cmd, n)
	case *lineSuffixNode:
		e.nextSeq++
		e.suffixes = append(e.suffixes, suffixEntry{
			priority: n.priority,
			seq:      e.nextSeq,
			indent:   cmd.indent,
			mode:     cmd.mode,
			children: n.children,
		})
	case *breakParentNode:
		// no-op: its effect was applied during construction.
	case *trimNode:
		e.pos -= e.buf.TrimTrailing()
	}
}

func (e *engine) stepGroup(cmd command, n *groupNode) {
	if cmd.mode == modeFlat && !e.shouldRemeasure {
		m := modeFlat
		if n.broken {
			m = modeBreak
		}
		e.cmds = pushChildren(e.cmds, n.children, cmd.indent, m)
		return
	}

	e.shouldRemeasure = false

	if n.broken {
		e.cmds = pushChildren(e.cmds, n.children, cmd.indent, modeBreak)
		return
	}

	seed := pushChildren(nil, n.children, cmd.indent, modeFlat)
	remaining := e.opts.MaxWidth - e.pos
	if fits(seed, e.cmds, remaining, e.buf.Blank()) {
		e.cmds = append(e.cmds, seed...)
		return
	}

	n.broken = true
	e.cmds = pushChildren(e.cmds, n.children, cmd.indent, modeBreak)
}

func (e *engine) stepBreakable(cmd command, n *breakableNode) {
	if cmd.mode == modeFlat {
		if !n.force {
			e.buf.Append(n.sep)
			e.pos += n.width
			return
		}
		e.shouldRemeasure = true
	}

	if len(e.suffixes) > 0 {
		e.cmds = append(e.cmds, cmd)
		e.drainSuffixes()
		return
	}

	if !n.indent {
		e.buf.Append(e.opts.Newline)
		e.pos = 0
		return
	}

	e.pos -= e.buf.TrimTrailing()
	e.buf.Append(e.opts.Newline)
	e.buf.Append(e.opts.GenSpace(cmd.indent))
	e.pos = cmd.indent
}

// drainSuffixes sorts pending LineSuffix captures by (priority desc, seq
// desc) and pushes each one's children back onto the command stack so the
// highest-priority, most-recently-added suffix is processed first.
func (e *engine) drainSuffixes() {
	entries := e.suffixes
	e.suffixes = nil

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].priority != entries[j].priority {
			return entries[i].priority > entries[j].priority
		}
		return entries[i].seq > entries[j].seq
	})

	for i := len(entries) - 1; i >= 0; i-- {
		s := entries[i]
		e.cmds = pushChildren(e.cmds, s.children, s.indent, s.mode)
	}
}
