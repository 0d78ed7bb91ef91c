// Package nlr provides non-local return: establish a recovery point, then
// jump back to it from any call depth with a payload.
//
// Push establishes the point and runs the protected body. It returns false
// when the body returns normally and true when a Jump targeting the point
// transferred control back, in which case Buf.Payload holds the value passed
// to Jump. The return paths of every frame between the Jump and the Push are
// skipped. Deferred calls in those frames still run; the Go runtime always
// runs them while unwinding.
//
// A frame between the Jump and the Push must not recover the jump. If one
// does, the body carries on after the jump site; Push notices when the body
// then returns normally and panics with errcode.SwallowedJump instead of
// reporting a normal return.
//
// A Buf is valid only while its Push is on the stack. Jumping to a Buf whose
// Push has returned is a programming error and panics with
// errcode.StaleRecovery. Jumping to a Buf owned by another goroutine is
// undefined.
package nlr

import "bspcore-go/errcode"

// Buf is one recovery point.
type Buf struct {
	// Payload is written by Jump before control resumes at Push.
	Payload any

	prev   *Buf
	active bool
	jumped bool
}

// Active reports whether b can currently be jumped to.
func (b *Buf) Active() bool { return b != nil && b.active }

// jump is the unwind signal. A single pointer field keeps the interface
// conversion in panic allocation-free.
type jump struct{ to *Buf }

// Push establishes buf and runs body under it.
func Push(buf *Buf, body func()) (resumed bool) {
	buf.Payload = nil
	buf.active = true
	buf.jumped = false
	defer func() {
		buf.active = false
		r := recover()
		if r == nil {
			if buf.jumped {
				panic(errcode.SwallowedJump)
			}
			return
		}
		if j, ok := r.(jump); ok && j.to == buf {
			resumed = true
			return
		}
		// Not ours: keep unwinding towards the target.
		panic(r)
	}()
	body()
	return false
}

// Jump stores payload in buf and resumes buf's Push. It never returns.
func Jump(buf *Buf, payload any) {
	if !buf.Active() {
		panic(errcode.StaleRecovery)
	}
	buf.Payload = payload
	buf.jumped = true
	panic(jump{to: buf})
}
