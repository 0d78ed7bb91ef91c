//go:build rp2040 || rp2350

package fmtx

// Appendf appends to dst like fmt.Appendf, using the small formatter.
func Appendf(dst []byte, format string, a ...any) []byte {
	b := builder{buf: dst, limit: -1}
	b.format(format, a...)
	return b.buf
}

// Bprintf formats into buf and returns the number of bytes written. Output
// that does not fit is cut off; buf is never grown.
func Bprintf(buf []byte, format string, a ...any) int {
	b := builder{buf: buf[:0], limit: len(buf)}
	b.format(format, a...)
	return len(b.buf)
}
