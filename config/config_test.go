package config

import (
	"testing"

	"bspcore-go/errcode"
	"bspcore-go/tinymalloc"
	"bspcore-go/x/logx"
)

func TestLoadEmbeddedBoards(t *testing.T) {
	cases := []struct {
		board string
		arena int
		align uint32
	}{
		{"host", 16384, 4},
		{"pico", 8192, 4},
		{"esp8266", 4096, 4},
		{"rx63n", 8192, 1},
		{"rza2m", 65536, 1},
	}
	for _, tc := range cases {
		b, err := Load(tc.board)
		if err != nil {
			t.Fatalf("%s: %v", tc.board, err)
		}
		if b.Name != tc.board || b.ArenaSize != tc.arena || b.Align != tc.align {
			t.Fatalf("%s: got %+v", tc.board, b)
		}
		if _, err := tinymalloc.Init(make([]byte, b.ArenaSize), b.ArenaOptions()...); err != nil {
			t.Fatalf("%s: arena options rejected: %v", tc.board, err)
		}
	}
}

func TestLoadUnknownBoard(t *testing.T) {
	if _, err := Load("nope"); errcode.Of(err) != errcode.InvalidParams {
		t.Fatalf("err = %v", err)
	}
}

func TestLookupOverride(t *testing.T) {
	old := EmbeddedConfigLookup
	EmbeddedConfigLookup = func(board string) ([]byte, bool) {
		if board != "bench" {
			return nil, false
		}
		return []byte(`{"arena_size": 1024, "scan": "truncated", "log_level": "warn", "heartbeat_s": 0}`), true
	}
	t.Cleanup(func() { EmbeddedConfigLookup = old })

	b, err := Load("bench")
	if err != nil {
		t.Fatal(err)
	}
	if b.ArenaSize != 1024 || b.Level() != logx.Warn || b.Heartbeat != 1 {
		t.Fatalf("got %+v", b)
	}
	a, err := tinymalloc.Init(make([]byte, b.ArenaSize), b.ArenaOptions()...)
	if err != nil {
		t.Fatal(err)
	}
	if a.ScanPolicy() != tinymalloc.Truncated {
		t.Fatalf("scan = %v", a.ScanPolicy())
	}
	// Defaults survive for keys the override leaves out.
	if b.UARTBaud != 115200 || b.RingSize != 256 {
		t.Fatalf("defaults lost: %+v", b)
	}
}

func TestParseRejects(t *testing.T) {
	cases := map[string]struct {
		raw  string
		code errcode.Code
	}{
		"small arena":   {`{"arena_size": 16}`, errcode.InvalidParams},
		"odd align":     {`{"align": 6}`, errcode.InvalidParams},
		"bad scan":      {`{"scan": "best_fit"}`, errcode.InvalidParams},
		"bad level":     {`{"log_level": "trace"}`, errcode.InvalidParams},
		"unknown key":   {`{"heap": 1}`, errcode.InvalidPayload},
		"not an object": {`[1,2]`, errcode.InvalidPayload},
	}
	for name, tc := range cases {
		if _, err := Parse("t", []byte(tc.raw)); errcode.Of(err) != tc.code {
			t.Fatalf("%s: err = %v, want %s", name, err, tc.code)
		}
	}
}

func TestZeroAlignMeansUnrounded(t *testing.T) {
	b, err := Parse("t", []byte(`{"align": 0}`))
	if err != nil {
		t.Fatal(err)
	}
	if b.Align != 1 {
		t.Fatalf("align = %d", b.Align)
	}
}
