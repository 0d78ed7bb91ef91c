package fmtx

import (
	"unicode/utf8"

	"bspcore-go/x/strconvx"
)

// builder is the MCU formatter.
// Supports: %s %q %v %d %x %X %c %t %f %% with a '0' flag, width and
// precision. Named integer types need a conversion at the call site; errors
// and Stringers are honoured for %s and %v.
//
// With limit >= 0 nothing is written past limit bytes and buf never grows.
type builder struct {
	buf   []byte
	limit int
}

func (b *builder) room(n int) int {
	if b.limit < 0 {
		return n
	}
	return max(0, min(n, b.limit-len(b.buf)))
}

func (b *builder) byte(c byte) {
	if b.room(1) == 1 {
		b.buf = append(b.buf, c)
	}
}

func (b *builder) str(s string)   { b.buf = append(b.buf, s[:b.room(len(s))]...) }
func (b *builder) bytes(p []byte) { b.buf = append(b.buf, p[:b.room(len(p))]...) }

func (b *builder) pad(n int, c byte) {
	for ; n > 0; n-- {
		b.byte(c)
	}
}

func (b *builder) format(format string, args ...any) {
	ai := 0
	for i := 0; i < len(format); {
		if format[i] != '%' {
			b.byte(format[i])
			i++
			continue
		}
		i++
		if i < len(format) && format[i] == '%' {
			b.byte('%')
			i++
			continue
		}
		zero := false
		if i < len(format) && format[i] == '0' {
			zero = true
			i++
		}
		width, prec := 0, -1
		i = parseNum(format, i, &width)
		if i < len(format) && format[i] == '.' {
			prec = 0
			i = parseNum(format, i+1, &prec)
		}
		if i >= len(format) {
			b.str("%!(NOVERB)")
			return
		}
		verb := format[i]
		i++
		if ai >= len(args) {
			b.byte('%')
			b.byte(verb)
			b.str("(MISSING)")
			continue
		}
		b.arg(args[ai], verb, width, prec, zero)
		ai++
	}
}

func (b *builder) arg(arg any, verb byte, width, prec int, zero bool) {
	switch verb {
	case 's', 'v', 'q':
		s, ok := text(arg)
		if !ok {
			if p, isBytes := arg.([]byte); isBytes && verb != 'q' {
				b.bytes(p)
			} else {
				b.value(arg)
			}
			return
		}
		if prec >= 0 && prec < len(s) {
			s = s[:prec]
		}
		if verb == 'q' {
			b.quote(s)
			return
		}
		b.pad(width-utf8.RuneCountInString(s), ' ')
		b.str(s)
	case 'd', 'x', 'X', 'c':
		u, neg, ok := integer(arg)
		if !ok {
			b.bad(verb)
			return
		}
		var tmp [72]byte
		d := tmp[:0]
		switch verb {
		case 'd':
			d = strconvx.AppendUint(d, u, 10)
		case 'c':
			d = utf8.AppendRune(d, rune(u))
		default:
			d = strconvx.AppendUint(d, u, 16)
			if verb == 'X' {
				for j, c := range d {
					if 'a' <= c && c <= 'f' {
						d[j] = c - ('a' - 'A')
					}
				}
			}
		}
		b.number(d, neg, width, zero)
	case 't':
		v, ok := arg.(bool)
		if !ok {
			b.bad(verb)
			return
		}
		b.bool(v)
	case 'f':
		f, ok := float(arg)
		if !ok {
			b.bad(verb)
			return
		}
		if prec < 0 {
			prec = 6
		}
		var tmp [32]byte
		b.bytes(strconvx.AppendFloat(tmp[:0], f, 'f', prec, 64))
	default:
		// Unknown verb: write it literally to aid debugging.
		b.byte('%')
		b.byte(verb)
	}
}

func (b *builder) number(d []byte, neg bool, width int, zero bool) {
	n := len(d)
	if neg {
		n++
	}
	if !zero {
		b.pad(width-n, ' ')
	}
	if neg {
		b.byte('-')
	}
	if zero {
		b.pad(width-n, '0')
	}
	b.bytes(d)
}

func (b *builder) value(v any) {
	switch x := v.(type) {
	case nil:
		b.str("<nil>")
	case bool:
		b.bool(x)
	case []byte:
		b.bytes(x)
	default:
		if s, ok := text(v); ok {
			b.str(s)
			return
		}
		if u, neg, ok := integer(v); ok {
			var tmp [24]byte
			b.number(strconvx.AppendUint(tmp[:0], u, 10), neg, 0, false)
			return
		}
		if f, ok := float(v); ok {
			var tmp [32]byte
			b.bytes(strconvx.AppendFloat(tmp[:0], f, 'f', 6, 64))
			return
		}
		b.str("<unk>")
	}
}

func (b *builder) bool(v bool) {
	if v {
		b.str("true")
	} else {
		b.str("false")
	}
}

func (b *builder) bad(verb byte) {
	b.str("%!")
	b.byte(verb)
	b.str("(BADTYPE)")
}

func (b *builder) quote(s string) {
	b.byte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\', '"':
			b.byte('\\')
			b.byte(c)
		case '\n':
			b.str(`\n`)
		case '\r':
			b.str(`\r`)
		case '\t':
			b.str(`\t`)
		default:
			b.byte(c)
		}
	}
	b.byte('"')
}

func text(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case error:
		return x.Error(), true
	case interface{ String() string }:
		return x.String(), true
	}
	return "", false
}

func integer(v any) (u uint64, neg, ok bool) {
	var i int64
	switch x := v.(type) {
	case int:
		i = int64(x)
	case int8:
		i = int64(x)
	case int16:
		i = int64(x)
	case int32:
		i = int64(x)
	case int64:
		i = x
	case uint:
		return uint64(x), false, true
	case uint8:
		return uint64(x), false, true
	case uint16:
		return uint64(x), false, true
	case uint32:
		return uint64(x), false, true
	case uint64:
		return x, false, true
	case uintptr:
		return uint64(x), false, true
	default:
		return 0, false, false
	}
	if i < 0 {
		return uint64(-i), true, true
	}
	return uint64(i), false, true
}

func float(v any) (float64, bool) {
	switch x := v.(type) {
	case float32:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}

func parseNum(s string, i int, out *int) int {
	n := 0
	start := i
	for i < len(s) && '0' <= s[i] && s[i] <= '9' {
		n = n*10 + int(s[i]-'0')
		i++
	}
	if i > start {
		*out = n
	}
	return i
}
