package console

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"bspcore-go/tinymalloc"
)

type syncBuf struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuf) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuf) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

func newHeap(t *testing.T, size int) *tinymalloc.Guarded {
	t.Helper()
	a, err := tinymalloc.Init(make([]byte, size))
	if err != nil {
		t.Fatal(err)
	}
	return tinymalloc.Guard(a)
}

func TestPrintfFlush(t *testing.T) {
	heap := newHeap(t, 1024)
	var out syncBuf
	c := New(heap, &out, 256)
	c.Printf("heap %d/%d\n", 12, 1024)
	c.PutString("raw ")
	c.PutUint(4096)
	c.PutString(" ")
	c.PutHex(0xBEEF)
	if err := c.Flush(); err != nil {
		t.Fatal(err)
	}
	want := "heap 12/1024\nraw 4096 0x0000BEEF"
	if out.String() != want {
		t.Fatalf("got %q want %q", out.String(), want)
	}
	if st := heap.Stats(); st.UsedCount != 0 {
		t.Fatalf("scratch leaked: %+v", st)
	}
}

func TestPrintfDropsWhenArenaExhausted(t *testing.T) {
	heap := newHeap(t, 64) // too small for one scratch block
	var out syncBuf
	c := New(heap, &out, 64)
	c.Printf("lost %d", 1)
	c.Printf("lost %d", 2)
	_ = c.Flush()
	if out.String() != "" {
		t.Fatalf("unexpected output %q", out.String())
	}
	if msgs, _ := c.Dropped(); msgs != 2 {
		t.Fatalf("dropped msgs = %d", msgs)
	}
}

func TestPrintfTruncatesLongLines(t *testing.T) {
	heap := newHeap(t, 1024)
	var out syncBuf
	c := New(heap, &out, 512)
	c.Printf("%s", strings.Repeat("x", 300))
	_ = c.Flush()
	if got := len(out.String()); got != scratchSize {
		t.Fatalf("line length %d want %d", got, scratchSize)
	}
}

func TestPrintfFormatsInsideScratch(t *testing.T) {
	mem := make([]byte, 512)
	a, err := tinymalloc.Init(mem)
	if err != nil {
		t.Fatal(err)
	}
	heap := tinymalloc.Guard(a)
	var out syncBuf
	c := New(heap, &out, 512)
	c.Printf("%s", strings.Repeat("y", 300))

	// The first block's payload starts right after its header; the block
	// after it must be untouched.
	payload := mem[tinymalloc.HeaderSize : tinymalloc.HeaderSize+scratchSize]
	if string(payload) != strings.Repeat("y", scratchSize) {
		t.Fatalf("scratch = %q", payload)
	}
	if err := heap.Check(); err != nil {
		t.Fatalf("arena damaged by Printf: %v", err)
	}
	_ = c.Flush()
	if out.String() != string(payload) {
		t.Fatalf("flushed %q", out.String())
	}
}

func TestWriteCountsOverflow(t *testing.T) {
	var out syncBuf
	c := New(newHeap(t, 256), &out, 64)
	n, err := c.Write(make([]byte, 80))
	if n != 80 || err != nil {
		t.Fatalf("Write = %d, %v", n, err)
	}
	if _, b := c.Dropped(); b != 16 {
		t.Fatalf("dropped bytes = %d", b)
	}
	_ = c.Flush()
	if len(out.String()) != 64 {
		t.Fatalf("flushed %d bytes", len(out.String()))
	}
}

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) { return 0, errors.New("uart down") }

func TestFlushReportsWriterError(t *testing.T) {
	c := New(newHeap(t, 256), failWriter{}, 64)
	c.PutString("x")
	if err := c.Flush(); err == nil {
		t.Fatal("expected error")
	}
}

func TestRunDrainsUntilCancelled(t *testing.T) {
	var out syncBuf
	c := New(newHeap(t, 1024), &out, 128)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	c.Printf("tick %d\n", 1)
	deadline := time.Now().Add(time.Second)
	for !strings.Contains(out.String(), "tick 1") {
		if time.Now().After(deadline) {
			t.Fatal("drain loop did not write")
		}
		time.Sleep(5 * time.Millisecond)
	}

	c.Printf("tick %d\n", 2)
	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Run = %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not stop")
	}
	if !strings.Contains(out.String(), "tick 2") {
		t.Fatalf("final flush missing: %q", out.String())
	}
}

func TestRingSize(t *testing.T) {
	cases := map[int]int{0: 64, 64: 64, 65: 128, 1000: 1024, 1 << 20: 4096}
	for in, want := range cases {
		if got := RingSize(in); got != want {
			t.Fatalf("RingSize(%d) = %d want %d", in, got, want)
		}
	}
}
