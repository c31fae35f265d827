package sexpr

import (
	"strings"
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"
	"github.com/wadlergo/ppdoc"
)

func format(t *testing.T, width int, v Value) string {
	t.Helper()
	var sb strings.Builder
	err := ppdoc.Format(&sb, ppdoc.Options{MaxWidth: width}, Format(v))
	require.NoError(t, err)
	return sb.String()
}

func TestAtom(t *testing.T) {
	got := format(t, 80, Atom("foo"))
	assert.EqualValues(t, got, "foo")
}

func TestEmptyList(t *testing.T) {
	got := format(t, 80, List{})
	assert.EqualValues(t, got, "()")
}

func TestListFitsOnOneLine(t *testing.T) {
	got := format(t, 80, List{Atom("a"), Atom("b"), Atom("c")})
	assert.EqualValues(t, got, "(a, b, c)")
}

func TestNestedListBreaksWhenTooWide(t *testing.T) {
	v := List{
		Atom("define"),
		List{Atom("a-rather-long-identifier"), Atom("another-rather-long-identifier")},
	}
	got := format(t, 20, v)
	want := "(\n  define,\n  (\n    a-rather-long-identifier,\n    another-rather-long-identifier\n  )\n)"
	assert.EqualValues(t, got, want)
}

func TestCommentedValueFlat(t *testing.T) {
	got := format(t, 80, Commented{Value: Atom("x"), Comment: "note"})
	assert.EqualValues(t, got, "x  ; note")
}

func TestAtomWidthAccountsForWideRunes(t *testing.T) {
	// "日本語" is 3 runes but 6 display columns; a plain rune count would
	// under-measure it by half and let this list fit flat at width 10.
	v := List{Atom("ab"), Atom("日本語")}

	flat := format(t, 13, v)
	assert.EqualValues(t, flat, "(ab, 日本語)")

	broken := format(t, 10, v)
	assert.Truef(t, strings.Contains(broken, "\n"), "expected the wide atom's real display width to force a break at width 10: %q", broken)
}

func TestCommentedValueBroken(t *testing.T) {
	v := List{
		Commented{Value: Atom("a-rather-long-identifier-to-force-a-break"), Comment: "note"},
		Atom("another-rather-long-identifier-to-force-a-break"),
	}
	got := format(t, 10, v)
	assert.Truef(t, strings.Contains(got, " ; note"), "expected the comment to survive a broken render: %q", got)
	assert.Falsef(t, strings.Contains(got, "  ; note"), "expected the break-mode (single-space) comment form, not the flat-mode (double-space) one: %q", got)
}
