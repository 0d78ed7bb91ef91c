// Package tinymalloc is a block allocator over one fixed, caller-owned
// memory region. It is meant for memory that the collected heap must not
// manage: pre-heap-init scratch, interrupt-context buffers and secondary
// pools.
//
// The arena is a singly linked list of blocks in increasing address order,
// each prefixed by a HeaderSize-byte header stored in the arena itself:
//
//	[size uint32][free uint32][next uint32][payload: size bytes] ...
//
// next is the offset of the following header; 0 terminates the list. A Ptr
// is the offset of a payload, so Nil (0) never names a real allocation.
//
// An Arena performs no locking. If Alloc or Free can be re-entered from an
// interrupt handler, bracket every call with a critical section or use
// Guarded. Double free and use-after-free are not detected.
package tinymalloc

import (
	"encoding/binary"
	"math"

	"bspcore-go/errcode"
	"bspcore-go/x/mathx"
)

// HeaderSize is the per-block overhead in bytes.
const HeaderSize = 12

// DefaultAlign is the request rounding applied unless WithAlign overrides it.
const DefaultAlign = 4

// Ptr is a payload offset into the arena.
type Ptr uint32

// Nil is the failed-allocation result.
const Nil Ptr = 0

// Scan selects how Alloc looks for a block.
type Scan uint8

const (
	// FirstFit walks the whole list and takes the first usable block.
	FirstFit Scan = iota
	// Truncated stops at the first free block at least as large as the
	// request (or at the last block) and decides on that block alone, so it
	// can fail while a usable block exists further on.
	Truncated
)

func (s Scan) String() string {
	switch s {
	case FirstFit:
		return "first_fit"
	case Truncated:
		return "truncated"
	default:
		return "unknown"
	}
}

// ParseScan maps a config name to a Scan.
func ParseScan(s string) (Scan, bool) {
	switch s {
	case "", "first_fit":
		return FirstFit, true
	case "truncated":
		return Truncated, true
	}
	return FirstFit, false
}

// Arena is one allocator context. Create it with Init.
type Arena struct {
	mem   []byte
	align uint32
	scan  Scan
}

type Option func(*Arena)

// WithAlign rounds every request up to a multiple of n (a power of two).
// n <= 1 disables rounding.
func WithAlign(n uint32) Option { return func(a *Arena) { a.align = n } }

// WithScan selects the block search policy.
func WithScan(s Scan) Option { return func(a *Arena) { a.scan = s } }

// Init zeroes mem and installs a single free block spanning all of it minus
// one header. The caller keeps ownership of mem and must not touch it while
// the Arena is in use.
func Init(mem []byte, opts ...Option) (*Arena, error) {
	if len(mem) <= HeaderSize {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "tinymalloc.init", Msg: "arena smaller than one header"}
	}
	if uint64(len(mem)) > math.MaxUint32 {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "tinymalloc.init", Msg: "arena larger than 4GiB"}
	}
	a := &Arena{mem: mem, align: DefaultAlign, scan: FirstFit}
	for _, o := range opts {
		o(a)
	}
	if a.align == 0 {
		a.align = 1
	}
	if !mathx.IsPow2(a.align) {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "tinymalloc.init", Msg: "alignment must be a power of two"}
	}
	if a.scan != FirstFit && a.scan != Truncated {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "tinymalloc.init", Msg: "unknown scan policy"}
	}

	clear(mem)
	a.store(0, header{size: uint32(len(mem)) - HeaderSize, free: true})
	return a, nil
}

// Size is the arena extent in bytes, headers included.
func (a *Arena) Size() int { return len(a.mem) }

// Align is the active request rounding.
func (a *Arena) Align() uint32 { return a.align }

// ScanPolicy is the active search policy.
func (a *Arena) ScanPolicy() Scan { return a.scan }

// Alloc reserves n payload bytes (after rounding) and returns the payload
// offset, or Nil when no block can hold the request. A failed Alloc leaves
// the arena untouched.
//
// A free block is used as-is when its size equals the request, and split
// when it is strictly larger than request+HeaderSize. A block of exactly
// request+HeaderSize bytes cannot carry a non-empty remainder and is not
// used.
func (a *Arena) Alloc(n int) Ptr {
	if n <= 0 || uint64(n) > uint64(len(a.mem)) {
		return Nil
	}
	want := uint64(mathx.AlignUp(uint32(n), a.align))
	if want == 0 || want > uint64(len(a.mem)) {
		return Nil
	}

	off, h := a.find(want)
	if !h.free {
		return Nil
	}
	switch {
	case uint64(h.size) == want:
		h.free = false
		a.store(off, h)
	case uint64(h.size) > want+HeaderSize:
		rest := off + HeaderSize + uint32(want)
		a.store(rest, header{size: h.size - uint32(want) - HeaderSize, free: true, next: h.next})
		a.store(off, header{size: uint32(want), next: rest})
	default:
		return Nil
	}
	return Ptr(off + HeaderSize)
}

func (a *Arena) usable(h header, want uint64) bool {
	return h.free && (uint64(h.size) == want || uint64(h.size) > want+HeaderSize)
}

// find returns the candidate header for want. The caller decides whether it
// is actually usable.
func (a *Arena) find(want uint64) (uint32, header) {
	var off uint32
	h := a.load(0)
	if a.scan == Truncated {
		for (uint64(h.size) < want || !h.free) && h.next != 0 {
			off = h.next
			h = a.load(off)
		}
		return off, h
	}
	for {
		if a.usable(h, want) {
			return off, h
		}
		if h.next == 0 {
			return 0, header{}
		}
		off = h.next
		h = a.load(off)
	}
}

// Free releases p and merges every run of adjacent free blocks. Pointers
// outside [HeaderSize, Size()] are ignored without error. A pointer inside
// that range that Alloc did not return is not detected and corrupts the
// list; Ptr(Size()) passes the bound but can never be a live payload.
func (a *Arena) Free(p Ptr) {
	off, ok := a.headerOf(p)
	if !ok {
		return
	}
	binary.LittleEndian.PutUint32(a.mem[off+4:], 1)
	a.coalesce()
}

func (a *Arena) headerOf(p Ptr) (uint32, bool) {
	if p < HeaderSize || uint64(p) > uint64(len(a.mem)) {
		return 0, false
	}
	return uint32(p) - HeaderSize, true
}

// coalesce makes one forward pass; a merged block is re-checked against its
// new neighbour before moving on, so runs of any length collapse.
func (a *Arena) coalesce() {
	var off uint32
	for {
		h := a.load(off)
		if h.next == 0 {
			return
		}
		nx := a.load(h.next)
		if h.free && nx.free {
			h.size += HeaderSize + nx.size
			h.next = nx.next
			a.store(off, h)
			continue
		}
		off = h.next
	}
}

// SizeOf reports the payload size of the block behind p, 0 if p is out of
// range.
func (a *Arena) SizeOf(p Ptr) int {
	off, ok := a.headerOf(p)
	if !ok || p == Ptr(len(a.mem)) {
		return 0
	}
	size := uint64(binary.LittleEndian.Uint32(a.mem[off:]))
	if uint64(p)+size > uint64(len(a.mem)) {
		return 0
	}
	return int(size)
}

// Bytes returns the payload of p as a slice aliasing the arena, capped to
// the block size. It returns nil for Nil or out-of-range pointers.
func (a *Arena) Bytes(p Ptr) []byte {
	n := a.SizeOf(p)
	if n == 0 {
		return nil
	}
	return a.mem[p : int(p)+n : int(p)+n]
}

// ---- header codec ----

type header struct {
	size uint32
	free bool
	next uint32
}

func (a *Arena) load(off uint32) header {
	b := a.mem[off : off+HeaderSize]
	return header{
		size: binary.LittleEndian.Uint32(b[0:]),
		free: binary.LittleEndian.Uint32(b[4:]) != 0,
		next: binary.LittleEndian.Uint32(b[8:]),
	}
}

func (a *Arena) store(off uint32, h header) {
	b := a.mem[off : off+HeaderSize]
	binary.LittleEndian.PutUint32(b[0:], h.size)
	var f uint32
	if h.free {
		f = 1
	}
	binary.LittleEndian.PutUint32(b[4:], f)
	binary.LittleEndian.PutUint32(b[8:], h.next)
}
