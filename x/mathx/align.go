package mathx

import "golang.org/x/exp/constraints"

// AlignUp rounds v up to the next multiple of align. align <= 1 returns v.
// Overflow wraps; callers bound v first.
func AlignUp[T constraints.Unsigned](v, align T) T {
	if align <= 1 {
		return v
	}
	if r := v % align; r != 0 {
		return v + (align - r)
	}
	return v
}

// IsPow2 reports whether v is a non-zero power of two.
func IsPow2[T constraints.Unsigned](v T) bool {
	return v != 0 && v&(v-1) == 0
}
