//go:build !(rp2040 || rp2350)

package tinymalloc

import "sync"

// State is the token returned by Enter and handed back to Exit.
type State uintptr

// Section serialises Guarded calls. Host builds have no interrupts to mask,
// so goroutines take the place of interrupt handlers and a mutex is enough.
type Section struct{ mu sync.Mutex }

func (s *Section) Enter() State {
	s.mu.Lock()
	return 0
}

func (s *Section) Exit(State) { s.mu.Unlock() }
