package strconvx

import "math"

const digits = "0123456789abcdefghijklmnopqrstuvwxyz"

func appendInt(dst []byte, i int64, base int) []byte {
	if i < 0 {
		return appendUint(append(dst, '-'), uint64(-i), base)
	}
	return appendUint(dst, uint64(i), base)
}

func appendUint(dst []byte, u uint64, base int) []byte {
	if base < 2 || base > 36 {
		base = 10
	}
	var tmp [64]byte
	i := len(tmp)
	b := uint64(base)
	for {
		i--
		tmp[i] = digits[u%b]
		u /= b
		if u == 0 {
			break
		}
	}
	return append(dst, tmp[i:]...)
}

// appendFloat writes f with prec fractional digits, rounding half up.
// Precision is capped at 9 digits; magnitudes that do not fit in a uint64
// once scaled print as "big".
func appendFloat(dst []byte, f float64, prec int) []byte {
	switch {
	case math.IsNaN(f):
		return append(dst, "NaN"...)
	case math.IsInf(f, 1):
		return append(dst, "+Inf"...)
	case math.IsInf(f, -1):
		return append(dst, "-Inf"...)
	}
	if prec < 0 {
		prec = 6
	}
	prec = min(prec, 9)
	if f < 0 {
		dst = append(dst, '-')
		f = -f
	}
	p10 := uint64(1)
	for i := 0; i < prec; i++ {
		p10 *= 10
	}
	scaled := f*float64(p10) + 0.5
	if scaled >= math.MaxUint64 {
		return append(dst, "big"...)
	}
	n := uint64(scaled)
	dst = appendUint(dst, n/p10, 10)
	if prec == 0 {
		return dst
	}
	frac := n % p10
	var tmp [9]byte
	for i := prec - 1; i >= 0; i-- {
		tmp[i] = byte('0' + frac%10)
		frac /= 10
	}
	dst = append(dst, '.')
	return append(dst, tmp[:prec]...)
}
