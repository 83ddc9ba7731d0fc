// Package lane provides the value types the decoder runs on. A value is either a
// single soft value (width 1) or a fixed-width array carrying the same structural
// position of several independent codewords, one per lane. Both back-ends share
// the element kernels in this package so a lane computes exactly what the scalar
// back-end computes for the same input.
package lane

import (
	"golang.org/x/exp/constraints"
)

// Element is a numeric type usable as a soft value.
// Integer elements saturate on QAdd/QSub and quantize results of Dup and Map.
type Element interface {
	~int8 | ~int16 | ~int32 | constraints.Float
}

// Array is a fixed-width lane of elements.
type Array[E Element] interface {
	~[4]E | ~[8]E | ~[16]E | ~[32]E | ~[64]E
}

// Mask holds one bit per lane, bit i for lane i.
type Mask uint64

// MaxWidth is the widest lane supported by Mask.
const MaxWidth = 64

// Ops is the arithmetic capability a value type T exposes to the codec.
type Ops[T any] interface {
	Width() int
	Integer() bool

	Zero() T
	Dup(v float64) T

	Add(a, b T) T
	QAdd(a, b T) T
	Sub(a, b T) T
	QSub(a, b T) T
	Mul(a, b T) T
	Abs(a T) T
	QAbs(a T) T
	Min(a, b T) T
	// Sign returns a, -a or zero following the sign of b.
	Sign(a, b T) T
	// Map applies f to every lane.
	Map(a T, f func(float64) float64) T

	GreaterThanZero(a T) Mask
	LessThanZero(a T) Mask
	EqualZero(a T) Mask
	LessThan(a, b T) Mask
	// Select takes a where the mask bit is set and b elsewhere.
	Select(m Mask, a, b T) T

	Get(v T, lane int) float64
	Set(v *T, lane int, x float64)
}

// Active returns the mask of the first blocks lanes of a width wide value.
// Out of range block counts select every lane.
func Active(blocks, width int) Mask {
	if blocks <= 0 || blocks > width {
		blocks = width
	}
	if blocks >= MaxWidth {
		return ^Mask(0)
	}
	return Mask(1)<<uint(blocks) - 1
}

// Bad reports whether any of the first blocks lanes of v is not strictly positive.
// Padding lanes past blocks are never inspected.
func Bad[T any](ops Ops[T], v T, blocks int) bool {
	active := Active(blocks, ops.Width())
	return ops.GreaterThanZero(v)&active != active
}

// Has reports whether lane i is set.
func (m Mask) Has(i int) bool {
	return m&(Mask(1)<<uint(i)) != 0
}
