package internal

import (
	"golang.org/x/exp/constraints"
)

// SignExtend replicates bit (width-1) of value into all higher bits.
// A width of zero, or one wider than T, returns value unchanged.
func SignExtend[T constraints.Signed](value T, width uint) T {
	bits := uint(8 * sizeOf[T]())
	if width == 0 || width >= bits {
		return value
	}
	shift := bits - width
	return (value << shift) >> shift
}

// Reinterpret converts between integer types of the same width, keeping the bit
// pattern and wrapping like a C cast.
func Reinterpret[T constraints.Integer, U constraints.Integer](value T) U {
	return U(value)
}

// sizeOf returns the size in bytes of the signed integer type T.
func sizeOf[T constraints.Signed]() int {
	var probe T = 1
	n := 0
	for probe != 0 {
		probe <<= 8
		n++
	}
	return n
}
