package utils

import (
	"golang.org/x/exp/constraints"
)

// IsAligned reports whether addr is a multiple of alignment. A zero
// alignment counts as aligned.
func IsAligned[T constraints.Unsigned](addr T, alignment T) bool {
	if alignment == 0 {
		return true
	}
	return addr%alignment == 0
}

// AlignUp rounds addr up to the next multiple of alignment.
func AlignUp[T constraints.Unsigned](addr T, alignment T) T {
	if alignment == 0 {
		return addr
	}
	remainder := addr % alignment
	if remainder == 0 {
		return addr
	}
	return addr + (alignment - remainder)
}
