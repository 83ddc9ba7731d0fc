package softdecision

import (
	"fmt"

	"github.com/nathanhack/ldpc/internal/reduce"
	"github.com/nathanhack/ldpc/lane"
	"github.com/nathanhack/ldpc/ldpc"
	"github.com/sirupsen/logrus"
)

// DefaultTrials is the iteration budget used when none is configured.
const DefaultTrials = 50

//Scheduler decodes a soft value buffer holding the data followed by the parity in
// place. Decode returns the trials left when every check of the first blocks lanes
// is satisfied, or a negative number when the budget ran out.
type Scheduler[T any] interface {
	Decode(code []T, trials, blocks int) int
	Iterations() int
}

//Converged reports whether a value returned by Decode means success.
func Converged(remaining int) bool {
	return remaining >= 0
}

//Decoder is the flooding schedule: all bit nodes are updated, then all check nodes.
type Decoder[T any] struct {
	alg        Algorithm[T]
	bits       ldpc.BitIterator
	k, r       int
	cnlMax     int
	bnl        []T // bit to check messages, parity links first
	bnv        []T // posteriors, parity first
	cnl        []T // check to bit messages, cnlMax slots per check
	cnv        []T // check parity signs
	cnc        []int
	inp, out   []T
	iterations int
}

//NewDecoder allocates the working state for d. The returned decoder must not be
// used by more than one goroutine at a time.
func NewDecoder[T any](d ldpc.Descriptor, alg Algorithm[T]) *Decoder[T] {
	if d == nil || alg == nil {
		panic("descriptor and algorithm are required")
	}
	n, k := d.CodeLen(), d.DataLen()
	r := n - k
	dec := &Decoder[T]{
		alg:    alg,
		bits:   d.Bits(),
		k:      k,
		r:      r,
		cnlMax: d.LinksMaxCN(),
		bnl:    make([]T, d.LinksTotal()),
		bnv:    make([]T, n),
		cnl:    make([]T, r*d.LinksMaxCN()),
		cnv:    make([]T, r),
		cnc:    make([]int, r),
		inp:    make([]T, d.MaxBitDeg()),
		out:    make([]T, d.MaxBitDeg()),
	}
	logrus.Debugf("flooding decoder: N=%v K=%v links=%v", n, k, d.LinksTotal())
	return dec
}

//Iterations returns the bit node updates performed by the last Decode.
func (d *Decoder[T]) Iterations() int {
	return d.iterations
}

func (d *Decoder[T]) Decode(code []T, trials, blocks int) int {
	if len(code) != d.k+d.r {
		panic(fmt.Sprintf("code must have length %v but found %v", d.k+d.r, len(code)))
	}
	data, parity := code[:d.k], code[d.k:]

	d.iterations = 0
	d.bitNodeInit(data, parity)
	d.checkNodeUpdate()
	for d.hardDecision(blocks) {
		trials--
		if trials < 0 {
			break
		}
		d.bitNodeUpdate(data, parity)
		d.checkNodeUpdate()
		d.iterations++
	}

	if d.iterations > 0 {
		copy(parity, d.bnv[:d.r])
		copy(data, d.bnv[d.r:])
	}
	return trials
}

func (d *Decoder[T]) bitNodeInit(data, parity []T) {
	copy(d.bnv, parity)
	copy(d.bnv[d.r:], data)

	bl := 0
	for i := 0; i < d.r-1; i++ {
		d.bnl[bl] = parity[i]
		d.bnl[bl+1] = parity[i]
		bl += 2
	}
	d.bnl[bl] = parity[d.r-1]
	bl++

	d.bits.First()
	for j := 0; j < d.k; j++ {
		for n := d.bits.Deg(); n > 0; n-- {
			d.bnl[bl] = data[j]
			bl++
		}
		d.bits.Next()
	}
}

func (d *Decoder[T]) checkNodeUpdate() {
	alg, c := d.alg, d.cnlMax
	one := alg.One()

	d.cnv[0] = alg.Sign(one, d.bnv[0])
	for i := 1; i < d.r; i++ {
		d.cnv[i] = alg.Sign(alg.Sign(one, d.bnv[i-1]), d.bnv[i])
	}

	bl := 0
	d.cnl[0] = d.bnl[bl]
	bl++
	d.cnc[0] = 1
	for i := 1; i < d.r; i++ {
		d.cnl[c*i] = d.bnl[bl]
		d.cnl[c*i+1] = d.bnl[bl+1]
		bl += 2
		d.cnc[i] = 2
	}

	d.bits.First()
	for j := 0; j < d.k; j++ {
		for _, i := range d.bits.Pos() {
			d.cnv[i] = alg.Sign(d.cnv[i], d.bnv[j+d.r])
			d.cnl[c*i+d.cnc[i]] = d.bnl[bl]
			d.cnc[i]++
			bl++
		}
		d.bits.Next()
	}

	for i := 0; i < d.r; i++ {
		alg.Finalp(d.cnl[c*i : c*i+d.cnc[i]])
	}
}

func (d *Decoder[T]) bitNodeUpdate(data, parity []T) {
	alg, c, r := d.alg, d.cnlMax, d.r

	d.bnv[0] = alg.Add(parity[0], alg.Add(d.cnl[0], d.cnl[c]))
	for i := 1; i < r-1; i++ {
		d.bnv[i] = alg.Add(parity[i], alg.Add(d.cnl[c*i+1], d.cnl[c*(i+1)]))
	}
	d.bnv[r-1] = alg.Add(parity[r-1], d.cnl[c*(r-1)+1])

	d.cnc[0] = 1
	for i := 1; i < r; i++ {
		d.cnc[i] = 2
	}

	// parity i sends to check i what it heard from check i+1 and the other way round
	bl := 0
	d.bnl[bl] = alg.Update(d.bnl[bl], alg.Add(parity[0], d.cnl[c]))
	d.bnl[bl+1] = alg.Update(d.bnl[bl+1], alg.Add(parity[0], d.cnl[0]))
	bl += 2
	for i := 1; i < r-1; i++ {
		d.bnl[bl] = alg.Update(d.bnl[bl], alg.Add(parity[i], d.cnl[c*(i+1)]))
		d.bnl[bl+1] = alg.Update(d.bnl[bl+1], alg.Add(parity[i], d.cnl[c*i+1]))
		bl += 2
	}
	d.bnl[bl] = alg.Update(d.bnl[bl], parity[r-1])
	bl++

	zero := alg.Zero()
	d.bits.First()
	for j := 0; j < d.k; j++ {
		pos := d.bits.Pos()
		inp, out := d.inp[:len(pos)], d.out[:len(pos)]
		for n, i := range pos {
			inp[n] = d.cnl[c*i+d.cnc[i]]
			d.cnc[i]++
		}
		reduce.Exclusive(inp, out, alg.Add, zero)

		d.bnv[j+r] = alg.Add(data[j], alg.Add(out[0], inp[0]))
		for n := range out {
			d.bnl[bl] = alg.Update(d.bnl[bl], alg.Add(data[j], out[n]))
			bl++
		}
		d.bits.Next()
	}
}

func (d *Decoder[T]) hardDecision(blocks int) bool {
	for _, v := range d.cnv {
		if d.alg.Bad(v, blocks) {
			return true
		}
	}
	return false
}

//Satisfied returns the lanes whose hard decisions in code satisfy every check of d.
func Satisfied[T any](d ldpc.Descriptor, ops lane.Ops[T], code []T) lane.Mask {
	k := d.DataLen()
	r := d.CodeLen() - k
	one := ops.Dup(1)

	cnv := make([]T, r)
	cnv[0] = ops.Sign(one, code[k])
	for i := 1; i < r; i++ {
		cnv[i] = ops.Sign(ops.Sign(one, code[k+i-1]), code[k+i])
	}

	it := d.Bits()
	it.First()
	for j := 0; j < k; j++ {
		for _, i := range it.Pos() {
			cnv[i] = ops.Sign(cnv[i], code[j])
		}
		it.Next()
	}

	ok := lane.Active(ops.Width(), ops.Width())
	for _, v := range cnv {
		ok &= ops.GreaterThanZero(v)
	}
	return ok
}
