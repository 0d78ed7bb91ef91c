package tinymalloc

import (
	"bspcore-go/errcode"
	"bspcore-go/x/strconvx"
)

// Block describes one list entry.
type Block struct {
	Header uint32 // offset of the header
	Size   uint32 // payload bytes
	Free   bool
}

// Ptr is the payload offset of b.
func (b Block) Ptr() Ptr { return Ptr(b.Header + HeaderSize) }

// Walk calls fn for every block in address order until fn returns false.
// The arena must not be mutated from fn.
func (a *Arena) Walk(fn func(Block) bool) {
	var off uint32
	for {
		h := a.load(off)
		if !fn(Block{Header: off, Size: h.size, Free: h.free}) || h.next == 0 {
			return
		}
		off = h.next
	}
}

// Stats is a point-in-time summary of the block list.
type Stats struct {
	Blocks    int
	FreeCount int
	UsedCount int
	FreeBytes int
	UsedBytes int
	Largest   int // largest free payload
}

// Stats walks the list once.
func (a *Arena) Stats() Stats {
	var s Stats
	a.Walk(func(b Block) bool {
		s.Blocks++
		if b.Free {
			s.FreeCount++
			s.FreeBytes += int(b.Size)
			if int(b.Size) > s.Largest {
				s.Largest = int(b.Size)
			}
		} else {
			s.UsedCount++
			s.UsedBytes += int(b.Size)
		}
		return true
	})
	return s
}

// Check verifies the list invariants: every header lies inside the arena,
// addresses strictly increase with no gaps, the list terminates, the blocks
// account for every byte, and no two adjacent blocks are both free.
func (a *Arena) Check() error {
	var (
		off      uint32
		total    uint64
		prevFree bool
		n        int
	)
	limit := len(a.mem)/HeaderSize + 1
	for {
		if uint64(off)+HeaderSize > uint64(len(a.mem)) {
			return corrupt(off, "header outside arena")
		}
		h := a.load(off)
		end := uint64(off) + HeaderSize + uint64(h.size)
		if end > uint64(len(a.mem)) {
			return corrupt(off, "block overruns arena")
		}
		if n > 0 && prevFree && h.free {
			return corrupt(off, "adjacent free blocks")
		}
		total += HeaderSize + uint64(h.size)
		prevFree = h.free
		n++
		if h.next == 0 {
			break
		}
		if uint64(h.next) != end {
			return corrupt(off, "next does not follow block")
		}
		if n > limit {
			return corrupt(off, "list does not terminate")
		}
		off = h.next
	}
	if total != uint64(len(a.mem)) {
		return corrupt(off, "blocks cover "+strconvx.FormatUint(total, 10)+" of "+strconvx.Itoa(len(a.mem))+" bytes")
	}
	return nil
}

func corrupt(off uint32, msg string) error {
	return &errcode.E{C: errcode.Corrupt, Op: "tinymalloc.check", Msg: "@" + strconvx.FormatUint(uint64(off), 10) + ": " + msg}
}
