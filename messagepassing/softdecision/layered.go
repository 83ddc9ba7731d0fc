package softdecision

import (
	"fmt"

	"github.com/nathanhack/ldpc/ldpc"
	"github.com/sirupsen/logrus"
)

//Layered is the row by row schedule. Checks are visited in layers i, i+q, i+2q, ...
// for i in [0,q) and every check updates the posteriors in place before the next
// one reads them, so a sweep usually converges in fewer trials than flooding.
type Layered[T any] struct {
	alg        Algorithm[T]
	n          int
	order      []int   // checks in visiting order
	rows       [][]int // code positions of each check, data first then parity
	offsets    []int   // first message of each check in cnl
	cnl        []T
	inp, out   []T
	iterations int
}

//NewLayered allocates the working state for d. The returned decoder must not be
// used by more than one goroutine at a time.
func NewLayered[T any](d ldpc.Descriptor, alg Algorithm[T]) *Layered[T] {
	if d == nil || alg == nil {
		panic("descriptor and algorithm are required")
	}
	n, k, m := d.CodeLen(), d.DataLen(), d.GroupLen()
	r := n - k
	q := r / m

	rows := make([][]int, r)
	it := d.Bits()
	it.First()
	for j := 0; j < k; j++ {
		for _, i := range it.Pos() {
			rows[i] = append(rows[i], j)
		}
		it.Next()
	}

	offsets := make([]int, r)
	total, widest := 0, 0
	for i := range rows {
		if i > 0 {
			rows[i] = append(rows[i], k+i-1)
		}
		rows[i] = append(rows[i], k+i)
		offsets[i] = total
		total += len(rows[i])
		if len(rows[i]) > widest {
			widest = len(rows[i])
		}
	}

	order := make([]int, 0, r)
	for i := 0; i < q; i++ {
		for j := 0; j < m; j++ {
			order = append(order, i+q*j)
		}
	}

	logrus.Debugf("layered decoder: N=%v K=%v layers=%v links=%v", n, k, q, total)
	return &Layered[T]{
		alg:     alg,
		n:       n,
		order:   order,
		rows:    rows,
		offsets: offsets,
		cnl:     make([]T, total),
		inp:     make([]T, widest),
		out:     make([]T, widest),
	}
}

//Iterations returns the sweeps performed by the last Decode.
func (l *Layered[T]) Iterations() int {
	return l.iterations
}

func (l *Layered[T]) Decode(code []T, trials, blocks int) int {
	if len(code) != l.n {
		panic(fmt.Sprintf("code must have length %v but found %v", l.n, len(code)))
	}

	zero := l.alg.Zero()
	for i := range l.cnl {
		l.cnl[i] = zero
	}

	l.iterations = 0
	for l.bad(code, blocks) {
		trials--
		if trials < 0 {
			break
		}
		l.sweep(code)
		l.iterations++
	}
	return trials
}

func (l *Layered[T]) bad(code []T, blocks int) bool {
	one := l.alg.One()
	for _, row := range l.rows {
		cnv := one
		for _, p := range row {
			cnv = l.alg.Sign(cnv, code[p])
		}
		if l.alg.Bad(cnv, blocks) {
			return true
		}
	}
	return false
}

func (l *Layered[T]) sweep(code []T) {
	alg := l.alg
	for _, i := range l.order {
		row := l.rows[i]
		msgs := l.cnl[l.offsets[i] : l.offsets[i]+len(row)]
		inp, out := l.inp[:len(row)], l.out[:len(row)]

		for d, p := range row {
			inp[d] = alg.Sub(code[p], msgs[d])
		}
		copy(out, inp)
		alg.Finalp(out)

		for d, p := range row {
			code[p] = alg.Add(inp[d], out[d])
			msgs[d] = alg.Update(msgs[d], out[d])
		}
	}
}
