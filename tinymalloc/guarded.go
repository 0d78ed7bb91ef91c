package tinymalloc

// Guarded brackets every Arena call with a Section, making the arena safe
// to share with interrupt handlers (MCU) or goroutines (host).
type Guarded struct {
	a  *Arena
	cs Section
}

// Guard wraps a. The Arena must not be used directly afterwards.
func Guard(a *Arena) *Guarded { return &Guarded{a: a} }

func (g *Guarded) Alloc(n int) Ptr {
	st := g.cs.Enter()
	p := g.a.Alloc(n)
	g.cs.Exit(st)
	return p
}

func (g *Guarded) Free(p Ptr) {
	st := g.cs.Enter()
	g.a.Free(p)
	g.cs.Exit(st)
}

// Bytes returns the payload view of p. The slice stays valid until p is freed.
func (g *Guarded) Bytes(p Ptr) []byte {
	st := g.cs.Enter()
	b := g.a.Bytes(p)
	g.cs.Exit(st)
	return b
}

func (g *Guarded) Stats() Stats {
	st := g.cs.Enter()
	s := g.a.Stats()
	g.cs.Exit(st)
	return s
}

func (g *Guarded) Check() error {
	st := g.cs.Enter()
	err := g.a.Check()
	g.cs.Exit(st)
	return err
}

// Size is fixed for the arena's lifetime and needs no bracketing.
func (g *Guarded) Size() int { return g.a.Size() }
