package ldpc

import (
	"fmt"

	"github.com/nathanhack/ldpc/lane"
)

//Encoder computes the parity of a systematic codeword in the bipolar domain,
// +1 is bit 0 and -1 is bit 1. T is a scalar soft value or a lane of them.
type Encoder[T any] struct {
	ops  lane.Ops[T]
	bits BitIterator
	k, r int
}

//NewEncoder returns an encoder for d. An encoder owns an iterator so it must not
// be shared between goroutines.
func NewEncoder[T any](d Descriptor, ops lane.Ops[T]) *Encoder[T] {
	if d == nil || ops == nil {
		panic("descriptor and ops are required")
	}
	return &Encoder[T]{
		ops:  ops,
		bits: d.Bits(),
		k:    d.DataLen(),
		r:    d.CodeLen() - d.DataLen(),
	}
}

//Encode writes the parity of data into parity. data is only read.
func (e *Encoder[T]) Encode(data, parity []T) {
	if len(data) != e.k || len(parity) != e.r {
		panic(fmt.Sprintf("data and parity must have lengths %v and %v but found %v and %v", e.k, e.r, len(data), len(parity)))
	}

	one := e.ops.Dup(1)
	for i := range parity {
		parity[i] = one
	}

	e.bits.First()
	for j := 0; j < e.k; j++ {
		for _, i := range e.bits.Pos() {
			parity[i] = e.ops.Sign(parity[i], data[j])
		}
		e.bits.Next()
	}

	//accumulate
	for i := 1; i < e.r; i++ {
		parity[i] = e.ops.Sign(parity[i], parity[i-1])
	}
}

//EncodeCodeword fills the parity region of a buffer holding the data followed by the parity.
func (e *Encoder[T]) EncodeCodeword(code []T) {
	if len(code) != e.k+e.r {
		panic(fmt.Sprintf("codeword must have length %v but found %v", e.k+e.r, len(code)))
	}
	e.Encode(code[:e.k], code[e.k:])
}
