// Package bits provides helpers for manipulating individual
// bits of unsigned integers.
package bits

import "golang.org/x/exp/constraints"

// Val returns the value of the bit at the given index.
func Val[T constraints.Unsigned](b T, i uint8) T {
	return (b >> i) & 1
}

// Reset resets the bit at the given index.
func Reset[T constraints.Unsigned](b T, i uint8) T {
	return b &^ (1 << i)
}

// Set sets the bit at the given index.
func Set[T constraints.Unsigned](b T, i uint8) T {
	return b | (1 << i)
}

// Test tests the bit at the given index.
func Test[T constraints.Unsigned](b T, i uint8) bool {
	return (b>>i)&1 != 0
}

// Assign sets or resets the bit at the given index
// depending on v.
func Assign[T constraints.Unsigned](b T, i uint8, v bool) T {
	if v {
		return Set(b, i)
	}
	return Reset(b, i)
}

// Lowest returns the index of the lowest set bit, and
// false if no bit is set.
func Lowest[T constraints.Unsigned](b T) (uint8, bool) {
	for i := uint8(0); b != 0; i++ {
		if b&1 == 1 {
			return i, true
		}
		b >>= 1
	}
	return 0, false
}
