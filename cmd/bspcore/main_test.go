package main

import (
	"bytes"
	"strings"
	"testing"

	"bspcore-go/config"
)

type haltSignal struct{ payload any }

type harness struct {
	rt     *system
	mem    []byte
	out    *bytes.Buffer
	halted []any
}

func newHarness(t *testing.T, raw string) *harness {
	t.Helper()
	cfg, err := config.Parse("test", []byte(raw))
	if err != nil {
		t.Fatal(err)
	}
	h := &harness{mem: make([]byte, cfg.ArenaSize), out: &bytes.Buffer{}}
	h.rt, err = boot(cfg, h.mem, h.out, func(p any) {
		h.halted = append(h.halted, p)
		panic(haltSignal{p})
	})
	if err != nil {
		t.Fatal(err)
	}
	return h
}

func TestBootAndHeartbeat(t *testing.T) {
	h := newHarness(t, `{"arena_size": 2048, "log_level": "info"}`)
	h.rt.heartbeat()
	h.rt.heartbeat()
	if err := h.rt.con.Flush(); err != nil {
		t.Fatal(err)
	}
	s := h.out.String()
	if !strings.Contains(s, "INFO boot test: arena=2048B align=4 scan=first_fit") {
		t.Fatalf("boot line missing: %q", s)
	}
	if !strings.Contains(s, "heartbeat 2: used=0 free=2036 largest=2036 blocks=1") {
		t.Fatalf("heartbeat line missing: %q", s)
	}
	if len(h.halted) != 0 {
		t.Fatalf("unexpected halt: %v", h.halted)
	}
}

func TestBootRejectsTinyArena(t *testing.T) {
	cfg, err := config.Parse("test", []byte(`{}`))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := boot(cfg, make([]byte, 8), &bytes.Buffer{}, func(any) {}); err == nil {
		t.Fatal("expected init error")
	}
}

func TestCorruptArenaHalts(t *testing.T) {
	h := newHarness(t, `{"arena_size": 1024}`)
	h.mem[3] = 0x7F // first header's size now overruns the arena

	func() {
		defer func() {
			if _, ok := recover().(haltSignal); !ok {
				t.Fatal("expected halt")
			}
		}()
		h.rt.heartbeat()
	}()
	if len(h.halted) != 1 {
		t.Fatalf("halted %d times", len(h.halted))
	}
	if !strings.Contains(h.out.String(), "ERROR uncaught: tinymalloc.check: arena_corrupt") {
		t.Fatalf("fatal log missing: %q", h.out.String())
	}
}
