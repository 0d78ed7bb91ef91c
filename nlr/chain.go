package nlr

import "bspcore-go/errcode"

// FatalFunc handles a raise that no recovery point claims. It must not
// return; on hardware it halts the board.
type FatalFunc func(payload any)

// Chain is the stack of nested recovery points of one thread of control.
// Raise targets the innermost point. A Chain is not safe for concurrent use.
type Chain struct {
	top   *Buf
	depth int

	// Fatal receives payloads raised with an empty chain.
	Fatal FatalFunc
}

// NewChain returns an empty chain using fatal for uncaught raises.
func NewChain(fatal FatalFunc) *Chain { return &Chain{Fatal: fatal} }

// Top is the innermost active recovery point, or nil.
func (c *Chain) Top() *Buf { return c.top }

// Depth is the number of nested recovery points.
func (c *Chain) Depth() int { return c.depth }

// Run pushes a recovery point, runs body and pops the point again however
// body exits. raised reports whether a Raise (or Jump) to this point ended
// body early; payload is what was raised.
func (c *Chain) Run(body func()) (payload any, raised bool) {
	var b Buf
	b.prev = c.top
	c.top = &b
	c.depth++
	defer func() {
		c.top = b.prev
		c.depth--
	}()
	raised = Push(&b, body)
	return b.Payload, raised
}

// Raise jumps to the innermost recovery point. With nothing left to catch
// the payload goes to Fatal. Raise never returns.
func (c *Chain) Raise(payload any) {
	if c.top == nil {
		c.fatal(payload)
	}
	Jump(c.top, payload)
}

func (c *Chain) fatal(payload any) {
	if c.Fatal == nil {
		panic(&Uncaught{Payload: payload})
	}
	c.Fatal(payload)
	panic(&errcode.E{C: errcode.FatalReturned, Op: "nlr.raise", Err: &Uncaught{Payload: payload}})
}

// Try runs body and turns a raise into an error. Error payloads are
// returned as-is; anything else is wrapped in *Uncaught.
func (c *Chain) Try(body func()) error {
	p, raised := c.Run(body)
	if !raised {
		return nil
	}
	if err, ok := p.(error); ok {
		return err
	}
	return &Uncaught{Payload: p}
}

// Uncaught carries a payload nobody handled.
type Uncaught struct {
	Payload any
}

func (u *Uncaught) Error() string {
	switch v := u.Payload.(type) {
	case error:
		return "uncaught: " + v.Error()
	case string:
		return "uncaught: " + v
	default:
		return "uncaught"
	}
}

func (u *Uncaught) Code() errcode.Code { return errcode.Uncaught }
