package softdecision

import (
	"fmt"

	"github.com/nathanhack/ldpc/lane"
	"github.com/nathanhack/ldpc/ldpc"
)

//Batch decodes float64 LLR codewords with a decoder of any element type and width.
// Decode handles at most Lanes codewords per call, corrects them in place and
// returns the result of every codeword as Decode of a Scheduler would.
type Batch interface {
	Lanes() int
	Decode(codewords [][]float64, trials int) []int
}

// scalarBatch decodes one codeword after the other.
type scalarBatch[E lane.Element] struct {
	ops       lane.ScalarOps[E]
	dec       Scheduler[E]
	buf       []E
	precision float64
}

func newScalarBatch[E lane.Element](d ldpc.Descriptor, kind Kind, params Params, schedule string, precision float64) (Batch, error) {
	ops := lane.Scalar[E]()
	alg, err := NewAlgorithm[E](kind, ops, params)
	if err != nil {
		return nil, err
	}
	dec, err := newScheduler[E](d, alg, schedule)
	if err != nil {
		return nil, err
	}
	return &scalarBatch[E]{ops: ops, dec: dec, buf: make([]E, d.CodeLen()), precision: precision}, nil
}

func (b *scalarBatch[E]) Lanes() int { return 1 }

func (b *scalarBatch[E]) Decode(codewords [][]float64, trials int) []int {
	results := make([]int, len(codewords))
	for c, cw := range codewords {
		if len(cw) != len(b.buf) {
			panic(fmt.Sprintf("codeword %v must have length %v but found %v", c, len(b.buf), len(cw)))
		}
		for i, v := range cw {
			b.buf[i] = b.ops.Dup(v * b.precision)
		}
		results[c] = b.dec.Decode(b.buf, trials, 1)
		for i, v := range b.buf {
			cw[i] = float64(v) / b.precision
		}
	}
	return results
}

// vectorBatch decodes up to Width codewords in one call, one per lane.
type vectorBatch[E lane.Element, A lane.Array[E]] struct {
	d         ldpc.Descriptor
	ops       lane.VectorOps[E, A]
	dec       Scheduler[A]
	buf       []A
	precision float64
}

func newVectorBatch[E lane.Element, A lane.Array[E]](d ldpc.Descriptor, kind Kind, params Params, schedule string, precision float64) (Batch, error) {
	ops := lane.Vector[E, A]()
	alg, err := NewAlgorithm[A](kind, ops, params)
	if err != nil {
		return nil, err
	}
	dec, err := newScheduler[A](d, alg, schedule)
	if err != nil {
		return nil, err
	}
	return &vectorBatch[E, A]{d: d, ops: ops, dec: dec, buf: make([]A, d.CodeLen()), precision: precision}, nil
}

func (b *vectorBatch[E, A]) Lanes() int { return b.ops.Width() }

//Decode runs the lanes together until all of them converge. When the budget runs
// out, codewords whose lane still ended up satisfying every check report 0 and
// the others -1.
func (b *vectorBatch[E, A]) Decode(codewords [][]float64, trials int) []int {
	if len(codewords) > b.ops.Width() {
		panic(fmt.Sprintf("at most %v codewords per call but found %v", b.ops.Width(), len(codewords)))
	}
	for c, cw := range codewords {
		if len(cw) != len(b.buf) {
			panic(fmt.Sprintf("codeword %v must have length %v but found %v", c, len(b.buf), len(cw)))
		}
	}

	if len(codewords) == 0 {
		return []int{}
	}

	zero := b.ops.Zero()
	for i := range b.buf {
		b.buf[i] = zero
		for l, cw := range codewords {
			b.ops.Set(&b.buf[i], l, cw[i]*b.precision)
		}
	}

	remaining := b.dec.Decode(b.buf, trials, len(codewords))

	for i, v := range b.buf {
		for l, cw := range codewords {
			cw[i] = b.ops.Get(v, l) / b.precision
		}
	}

	results := make([]int, len(codewords))
	satisfied := lane.Mask(0)
	if !Converged(remaining) {
		satisfied = Satisfied[A](b.d, b.ops, b.buf)
	}
	for l := range results {
		switch {
		case Converged(remaining):
			results[l] = remaining
		case satisfied.Has(l):
			results[l] = 0
		default:
			results[l] = -1
		}
	}
	return results
}

func newScheduler[T any](d ldpc.Descriptor, alg Algorithm[T], schedule string) (Scheduler[T], error) {
	switch schedule {
	case Flooding:
		return NewDecoder(d, alg), nil
	case LayeredSchedule:
		return NewLayered(d, alg), nil
	}
	return nil, fmt.Errorf("%w: schedule %q, expected %v or %v", ErrUnknownKind, schedule, Flooding, LayeredSchedule)
}
