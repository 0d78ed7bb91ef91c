//go:build rp2040 || rp2350

package strconvx

// Same signatures as strconv, without pulling strconv's tables into the
// image. Bases 2..36; anything else formats in base 10.

func Itoa(i int) string { return FormatInt(int64(i), 10) }

func FormatInt(i int64, base int) string {
	var b [65]byte
	return string(appendInt(b[:0], i, base))
}

func FormatUint(u uint64, base int) string {
	var b [64]byte
	return string(appendUint(b[:0], u, base))
}

func AppendInt(dst []byte, i int64, base int) []byte   { return appendInt(dst, i, base) }
func AppendUint(dst []byte, u uint64, base int) []byte { return appendUint(dst, u, base) }

// AppendFloat always uses the 'f' form.
func AppendFloat(dst []byte, f float64, _ byte, prec, _ int) []byte {
	return appendFloat(dst, f, prec)
}
