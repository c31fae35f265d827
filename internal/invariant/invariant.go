// Package invariant provides runtime assertion checking for programmer-error
// conditions in the ppdoc builder and engine.
package invariant

import "fmt"

// Check panics if condition is false. It reports misuse of the Builder API
// at construction time (a programmer error, caught while building the
// document tree) rather than malformed input, which is handled separately
// and never panics.
func Check(condition bool, msg string, args ...any) {
	if condition {
		return
	}

	if len(args) > 0 {
		panic(fmt.Sprintf(msg, args...))
	}
	panic(msg)
}
