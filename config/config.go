package config

import (
	"bytes"
	"encoding/json"

	"bspcore-go/errcode"
	"bspcore-go/tinymalloc"
	"bspcore-go/x/logx"
	"bspcore-go/x/mathx"
)

// EmbeddedConfigLookup allows overriding how configs are resolved.
var EmbeddedConfigLookup = func(board string) ([]byte, bool) {
	b, ok := embeddedConfigs[board]
	return b, ok
}

// Board is the runtime configuration of one board.
type Board struct {
	Name      string `json:"name"`
	ArenaSize int    `json:"arena_size"`
	Align     uint32 `json:"align"`
	Scan      string `json:"scan"`
	RingSize  int    `json:"ring_size"`
	UARTBaud  uint32 `json:"uart_baud"`
	I2CHz     uint32 `json:"i2c_hz"`
	LogLevel  string `json:"log_level"`
	Heartbeat int    `json:"heartbeat_s"`
	ScanI2C   bool   `json:"scan_i2c"`

	// Filled by Validate.
	scan       tinymalloc.Scan
	level      logx.Level
	normalised bool
}

const (
	minArena     = 256
	maxHeartbeat = 3600
)

// Default is used for keys a board config leaves out.
func Default() Board {
	return Board{
		ArenaSize: 4096,
		Align:     tinymalloc.DefaultAlign,
		Scan:      "first_fit",
		RingSize:  256,
		UARTBaud:  115200,
		I2CHz:     100000,
		LogLevel:  "info",
		Heartbeat: 1,
		ScanI2C:   true,
	}
}

// Load resolves the embedded config for board, overlays it on Default and
// validates the result.
func Load(board string) (Board, error) {
	raw, ok := EmbeddedConfigLookup(board)
	if !ok || len(raw) == 0 {
		return Board{}, &errcode.E{C: errcode.InvalidParams, Op: "config.load", Msg: "no embedded config for board: " + board}
	}
	return Parse(board, raw)
}

// Parse decodes raw over Default. Unknown keys are rejected.
func Parse(board string, raw []byte) (Board, error) {
	b := Default()
	b.Name = board
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&b); err != nil {
		return Board{}, errcode.Wrap(errcode.InvalidPayload, "config.parse", err)
	}
	if b.Name == "" {
		b.Name = board
	}
	if err := b.Validate(); err != nil {
		return Board{}, err
	}
	return b, nil
}

// Validate rejects unusable values and normalises the rest in place.
func (b *Board) Validate() error {
	if b.ArenaSize < minArena {
		return invalid("arena_size below minimum")
	}
	if b.Align == 0 {
		b.Align = 1
	}
	if !mathx.IsPow2(b.Align) {
		return invalid("align must be a power of two")
	}
	scan, ok := tinymalloc.ParseScan(b.Scan)
	if !ok {
		return invalid("unknown scan policy: " + b.Scan)
	}
	level, ok := logx.ParseLevel(b.LogLevel)
	if !ok {
		return invalid("unknown log level: " + b.LogLevel)
	}
	b.Heartbeat = mathx.Clamp(b.Heartbeat, 1, maxHeartbeat)
	b.scan, b.level, b.normalised = scan, level, true
	return nil
}

// ArenaOptions maps the board settings onto allocator options.
func (b Board) ArenaOptions() []tinymalloc.Option {
	return []tinymalloc.Option{tinymalloc.WithAlign(b.Align), tinymalloc.WithScan(b.scan)}
}

// Level is the parsed log level; valid after Validate.
func (b Board) Level() logx.Level {
	if !b.normalised {
		return logx.Info
	}
	return b.level
}

func invalid(msg string) error {
	return &errcode.E{C: errcode.InvalidParams, Op: "config.validate", Msg: msg}
}
