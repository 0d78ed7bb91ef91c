//go:build rp2040 || rp2350

package tinymalloc

import "runtime/interrupt"

// State is the saved interrupt mask.
type State = interrupt.State

// Section masks interrupts on the current core for the duration of a
// Guarded call. It does not protect against the second core.
type Section struct{}

func (s *Section) Enter() State  { return interrupt.Disable() }
func (s *Section) Exit(st State) { interrupt.Restore(st) }
