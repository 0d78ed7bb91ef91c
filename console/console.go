// Package console is the board's debug output. Producers push bytes into
// a ring without blocking; a single drain loop moves them to the UART (or
// stdout on host builds).
//
// Write and the Put* helpers neither block nor allocate and may be called
// from interrupt handlers. Printf formats into scratch taken from the arena
// and is meant for thread context.
package console

import (
	"context"
	"io"
	"sync"
	"sync/atomic"

	"bspcore-go/tinymalloc"
	"bspcore-go/x/fmtx"
	"bspcore-go/x/mathx"
	"bspcore-go/x/ring"
	"bspcore-go/x/strconvx"
)

const (
	minRing     = 64
	maxRing     = 4096
	scratchSize = 128
	drainChunk  = 64
)

type Console struct {
	heap *tinymalloc.Guarded
	w    io.Writer
	r    *ring.Ring

	prod tinymalloc.Section // ring producer side is single-producer

	drainMu sync.Mutex
	chunk   [drainChunk]byte

	droppedMsgs  atomic.Uint32
	droppedBytes atomic.Uint32
}

// New builds a console writing to w. ringSize is rounded up to a power of
// two and clamped to [64, 4096].
func New(heap *tinymalloc.Guarded, w io.Writer, ringSize int) *Console {
	return &Console{heap: heap, w: w, r: ring.New(RingSize(ringSize))}
}

// RingSize normalises a requested ring size.
func RingSize(n int) int {
	n = mathx.Clamp(n, minRing, maxRing)
	size := minRing
	for size < n {
		size <<= 1
	}
	return size
}

// Write queues p. Bytes that do not fit are dropped and counted; Write
// always reports success so log writers never stall.
func (c *Console) Write(p []byte) (int, error) {
	c.push(p)
	return len(p), nil
}

func (c *Console) push(p []byte) {
	st := c.prod.Enter()
	n := c.r.TryWriteFrom(p)
	c.prod.Exit(st)
	if n < len(p) {
		c.droppedBytes.Add(uint32(len(p) - n))
	}
}

// Printf formats directly into arena scratch. When the arena cannot supply
// scratch the message is dropped and counted. Output longer than the scratch
// block is truncated; the formatter never writes past it.
func (c *Console) Printf(format string, a ...any) {
	p := c.heap.Alloc(scratchSize)
	if p == tinymalloc.Nil {
		c.droppedMsgs.Add(1)
		return
	}
	buf := c.heap.Bytes(p)
	n := fmtx.Bprintf(buf, format, a...)
	c.push(buf[:n])
	c.heap.Free(p)
}

// PutString queues s.
func (c *Console) PutString(s string) {
	var b [scratchSize]byte
	for len(s) > 0 {
		n := copy(b[:], s)
		c.push(b[:n])
		s = s[n:]
	}
}

// PutUint queues the decimal form of v.
func (c *Console) PutUint(v uint64) {
	var b [20]byte
	c.push(strconvx.AppendUint(b[:0], v, 10))
}

// PutHex queues v as 8 upper-case hex digits with a 0x prefix.
func (c *Console) PutHex(v uint32) {
	var b [10]byte
	c.push(appendHex32(b[:0], v))
}

// Flush drains everything queued so far to the writer and returns the first
// write error.
func (c *Console) Flush() error {
	c.drainMu.Lock()
	defer c.drainMu.Unlock()
	var first error
	for {
		n := c.r.TryReadInto(c.chunk[:])
		if n == 0 {
			return first
		}
		if _, err := c.w.Write(c.chunk[:n]); err != nil && first == nil {
			first = err
		}
	}
}

// Run drains the ring whenever it becomes readable, until ctx is done. A
// final Flush runs before returning.
func (c *Console) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			_ = c.Flush()
			return ctx.Err()
		case <-c.r.Readable():
			_ = c.Flush()
		}
	}
}

// Dropped reports messages lost to arena exhaustion and bytes lost to a
// full ring.
func (c *Console) Dropped() (msgs, bytes uint32) {
	return c.droppedMsgs.Load(), c.droppedBytes.Load()
}

func appendHex32(dst []byte, v uint32) []byte {
	const hexd = "0123456789ABCDEF"
	dst = append(dst, '0', 'x')
	for shift := 28; shift >= 0; shift -= 4 {
		dst = append(dst, hexd[(v>>uint(shift))&0xF])
	}
	return dst
}
