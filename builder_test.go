package ppdoc

import (
	"strings"
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"
)

func TestGroupOptionsOpenClose(t *testing.T) {
	got := formatString(t, 80, func(b *Builder) {
		b.GroupWith(GroupOptions{Open: "[", Close: "]"}, func(b *Builder) {
			b.Text("a")
			b.BreakableSpace()
			b.Text("b")
		})
	})
	assert.EqualValues(t, got, "[a b]")
}

func TestIfFlatDiscardsButPropagatesBreak(t *testing.T) {
	got := formatString(t, 80, func(b *Builder) {
		b.BreakParent()
		b.IfFlat(func(b *Builder) {
			b.Text("should not appear")
			b.BreakableForce()
		})
		b.Text("after")
	})
	assert.Falsef(t, strings.Contains(got, "should not appear"), "discarded IfFlat body leaked into output: %q", got)
	assert.EqualValues(t, got, "after")
}

func TestIfFlatRunsWhenGroupIsFlat(t *testing.T) {
	got := formatString(t, 80, func(b *Builder) {
		b.IfFlat(func(b *Builder) {
			b.Text("flat")
		})
	})
	assert.EqualValues(t, got, "flat")
}

func TestWithTargetRedirectsAppends(t *testing.T) {
	got := formatString(t, 80, func(b *Builder) {
		var side []node
		b.WithTarget(&side, func(b *Builder) {
			b.Text("aside")
		})
		b.Text("main")
		b.WithTarget(&side, func(b *Builder) {
			b.Text("-more")
		})
		b.WithTarget(&side, func(b *Builder) {})
		// side was never linked into the tree, so only "main" renders.
		_ = side
	})
	assert.EqualValues(t, got, "main")
}

func TestLastPositionResetsAcrossBreakables(t *testing.T) {
	b := NewBuilder()
	target := b.Target()
	b.Text("ab")
	b.BreakableSpace()
	b.Text("cde")

	assert.EqualValues(t, b.LastPosition(target), 3)
}

func TestLastPositionAccumulatesWithinGroup(t *testing.T) {
	b := NewBuilder()
	target := b.Target()
	b.Group(func(b *Builder) {
		b.Text("ab")
		b.Text("cd")
	})

	assert.EqualValues(t, b.LastPosition(target), 4)
}

func TestCurrentGroupReportsDepthAndBroken(t *testing.T) {
	var depth int
	var broken bool
	_ = formatString(t, 80, func(b *Builder) {
		b.Group(func(b *Builder) {
			b.BreakableForce()
			depth = b.CurrentGroup().Depth()
			broken = b.CurrentGroup().Broken()
		})
	})
	assert.EqualValues(t, depth, 1)
	assert.Truef(t, broken, "expected group containing a forced Breakable to report Broken() == true")
}

func TestTextCoalescesConsecutiveCalls(t *testing.T) {
	b := NewBuilder()
	b.Text("a")
	b.Text("b")
	b.Text("c")

	require.EqualValues(t, len(*b.Target()), 1)
	tn, ok := (*b.Target())[0].(*textNode)
	require.NotNilf(t, tn, "expected a single coalesced textNode")
	assert.Truef(t, ok, "expected a *textNode")
	assert.EqualValues(t, tn.width, 3)
}

func TestBreakableForceSetsBrokenOnEveryEnclosingGroup(t *testing.T) {
	var outer, inner GroupHandle
	_ = formatString(t, 80, func(b *Builder) {
		b.Group(func(b *Builder) {
			outer = b.CurrentGroup()
			b.Group(func(b *Builder) {
				b.BreakableForce()
				inner = b.CurrentGroup()
			})
		})
	})
	assert.Truef(t, outer.Broken(), "expected outer group broken by propagation")
	assert.Truef(t, inner.Broken(), "expected inner group broken directly")
}

func TestIfFlatDiscardedWhenBreakContentsItselfForcesABreak(t *testing.T) {
	got := formatString(t, 80, func(b *Builder) {
		b.Group(func(b *Builder) {
			ib := b.IfBreak(func(b *Builder) {
				b.BreakParent()
				b.Text("BREAK")
			})
			ib.IfFlat(func(b *Builder) {
				b.Text("FLAT")
			})
		})
	})
	assert.Truef(t, strings.Contains(got, "BREAK"), "expected break_contents to render: %q", got)
	assert.Falsef(t, strings.Contains(got, "FLAT"), "expected flat_contents to be discarded since break_parent inside break_contents already broke the group: %q", got)
}

func TestIfFlatDiscardedContentNeverReachesTheNode(t *testing.T) {
	b := NewBuilder()
	var node *ifBreakNode
	b.Group(func(b *Builder) {
		ib := b.IfBreak(func(b *Builder) {
			b.BreakParent()
			b.Text("BREAK")
		})
		ib.IfFlat(func(b *Builder) {
			b.Text("FLAT")
		})
		node = ib.node
	})

	require.EqualValues(t, len(node.flatContents), 0)
}
