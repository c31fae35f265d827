// Package runewidth is an optional, caller-side helper for computing the
// display width of text that contains wide (e.g. CJK) or zero-width runes.
// The core ppdoc engine deliberately never calls this package itself: its
// Builder.Text width parameter is a plain rune count; the core engine never
// computes Unicode column width on its own. Front ends that
// need terminal-accurate alignment, such as example/sexpr, can call
// TextWidth explicitly and pass the result as the width argument to
// Builder.Text.
package runewidth

import "github.com/mattn/go-runewidth"

// TextWidth returns s's display width in terminal columns, accounting for
// double-width and zero-width runes.
func TextWidth(s string) int {
	return runewidth.StringWidth(s)
}
