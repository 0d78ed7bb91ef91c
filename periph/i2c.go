// Package periph holds the interpreter-facing peripheral wrappers. Every
// call either succeeds or raises an *OSError through the nlr.Chain; none of
// them return errors.
package periph

import (
	"bspcore-go/nlr"
	"bspcore-go/tinymalloc"

	"tinygo.org/x/drivers"
)

const (
	// 7-bit address space excluding the reserved ranges.
	scanFirst = 0x08
	scanLast  = 0x77
	maxAddr   = 0x7F
)

// I2C wraps a bus controller.
type I2C struct {
	bus   drivers.I2C
	chain *nlr.Chain
	heap  *tinymalloc.Guarded
}

// NewI2C binds bus to the chain that receives raised errors and the arena
// that supplies transfer scratch.
func NewI2C(bus drivers.I2C, chain *nlr.Chain, heap *tinymalloc.Guarded) *I2C {
	return &I2C{bus: bus, chain: chain, heap: heap}
}

func (d *I2C) raise(errno Errno, op string, err error) {
	d.chain.Raise(&OSError{Errno: errno, Op: op, Err: err})
}

func (d *I2C) checkAddr(addr uint16, op string) {
	if addr > maxAddr {
		d.raise(EINVAL, op, nil)
	}
}

// ReadFrom fills dst from the device at addr.
func (d *I2C) ReadFrom(addr uint16, dst []byte) {
	d.checkAddr(addr, "i2c.readfrom")
	if err := d.bus.Tx(addr, nil, dst); err != nil {
		d.raise(EIO, "i2c.readfrom", err)
	}
}

// WriteTo sends src to the device at addr.
func (d *I2C) WriteTo(addr uint16, src []byte) {
	d.checkAddr(addr, "i2c.writeto")
	if err := d.bus.Tx(addr, src, nil); err != nil {
		d.raise(EIO, "i2c.writeto", err)
	}
}

// ReadReg reads len(dst) bytes starting at register reg.
func (d *I2C) ReadReg(addr uint16, reg uint8, dst []byte) {
	d.checkAddr(addr, "i2c.readfrom_mem")
	w := [1]byte{reg}
	if err := d.bus.Tx(addr, w[:], dst); err != nil {
		d.raise(EIO, "i2c.readfrom_mem", err)
	}
}

// WriteReg writes data starting at register reg as one transaction. The
// register byte and payload are assembled in arena scratch, which is
// released before any raise.
func (d *I2C) WriteReg(addr uint16, reg uint8, data []byte) {
	d.checkAddr(addr, "i2c.writeto_mem")
	p := d.heap.Alloc(len(data) + 1)
	if p == tinymalloc.Nil {
		d.raise(ENOMEM, "i2c.writeto_mem", nil)
	}
	buf := d.heap.Bytes(p)[:len(data)+1]
	buf[0] = reg
	copy(buf[1:], data)
	err := d.bus.Tx(addr, buf, nil)
	d.heap.Free(p)
	if err != nil {
		d.raise(EIO, "i2c.writeto_mem", err)
	}
}

// Scan probes every non-reserved 7-bit address with a one-byte read and
// returns the ones that answered.
func (d *I2C) Scan() []uint16 {
	var found []uint16
	var probe [1]byte
	for addr := uint16(scanFirst); addr <= scanLast; addr++ {
		if d.bus.Tx(addr, nil, probe[:]) == nil {
			found = append(found, addr)
		}
	}
	return found
}
