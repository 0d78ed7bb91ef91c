package main

import (
	"context"
	"io"
	"time"

	"bspcore-go/board"
	"bspcore-go/config"
	"bspcore-go/console"
	"bspcore-go/nlr"
	"bspcore-go/periph"
	"bspcore-go/tinymalloc"
	"bspcore-go/x/logx"
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)

	cfg, err := config.Load(board.Name())
	if err != nil {
		board.Halt(err)
	}
	if err := board.Init(cfg); err != nil {
		board.Halt(err)
	}

	rt, err := boot(cfg, make([]byte, cfg.ArenaSize), board.Output(), board.Halt)
	if err != nil {
		board.Halt(err)
	}
	go func() { _ = rt.con.Run(context.Background()) }()

	if bus, ok := board.I2C(); ok && cfg.ScanI2C {
		rt.scanI2C(periph.NewI2C(bus, rt.chain, rt.heap))
	}

	// Periodic stats.
	tick := time.NewTicker(time.Duration(cfg.Heartbeat) * time.Second)
	defer tick.Stop()
	for range tick.C {
		rt.heartbeat()
	}
}

// system is the state the boot sequence hands to the main loop.
type system struct {
	heap  *tinymalloc.Guarded
	con   *console.Console
	log   *logx.Logger
	chain *nlr.Chain
	beats uint64
}

// boot builds the arena over mem (the board's static pool) and everything
// that depends on it.
func boot(cfg config.Board, mem []byte, out io.Writer, halt nlr.FatalFunc) (*system, error) {
	arena, err := tinymalloc.Init(mem, cfg.ArenaOptions()...)
	if err != nil {
		return nil, err
	}
	heap := tinymalloc.Guard(arena)
	con := console.New(heap, out, cfg.RingSize)
	log := logx.New(con, "", cfg.Level())

	rt := &system{heap: heap, con: con, log: log}
	rt.chain = nlr.NewChain(func(p any) {
		log.Errorf("uncaught: %v", p)
		_ = con.Flush()
		halt(p)
	})
	log.Infof("boot %s: arena=%dB align=%d scan=%s", cfg.Name, arena.Size(), arena.Align(), arena.ScanPolicy())
	return rt, nil
}

func (rt *system) scanI2C(bus *periph.I2C) {
	log := rt.log.Named("i2c")
	err := rt.chain.Try(func() {
		for _, addr := range bus.Scan() {
			log.Infof("device at 0x%02x", addr)
		}
	})
	if err != nil {
		log.Warnf("scan failed: %v", err)
	}
}

// heartbeat logs arena usage and console losses. A corrupt arena cannot be
// recovered from, so it is raised with no handler and ends in the fatal
// halt.
func (rt *system) heartbeat() {
	rt.beats++
	if err := rt.heap.Check(); err != nil {
		rt.chain.Raise(err)
	}
	st := rt.heap.Stats()
	msgs, bytes := rt.con.Dropped()
	rt.log.Infof("heartbeat %d: used=%d free=%d largest=%d blocks=%d dropped=%d/%d",
		rt.beats, st.UsedBytes, st.FreeBytes, st.Largest, st.Blocks, msgs, bytes)
}
