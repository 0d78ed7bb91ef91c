//go:build !(rp2040 || rp2350)

package fmtx

import "fmt"

func Appendf(dst []byte, format string, a ...any) []byte { return fmt.Appendf(dst, format, a...) }

// Bprintf formats into buf and returns the number of bytes written. Output
// that does not fit is cut off; buf is never grown.
func Bprintf(buf []byte, format string, a ...any) int {
	w := bounded{buf: buf[:0:len(buf)]}
	_, _ = fmt.Fprintf(&w, format, a...)
	return len(w.buf)
}

type bounded struct{ buf []byte }

func (b *bounded) Write(p []byte) (int, error) {
	n := copy(b.buf[len(b.buf):cap(b.buf)], p)
	b.buf = b.buf[:len(b.buf)+n]
	return len(p), nil
}
