package lane

import "fmt"

// VectorOps runs on arrays of elements, one independent codeword per lane.
// Every method applies the scalar kernel lane by lane; no lane reads another.
type VectorOps[E Element, A Array[E]] struct {
	t traits[E]
}

// Vector returns the back-end for lanes of type A.
func Vector[E Element, A Array[E]]() VectorOps[E, A] {
	return VectorOps[E, A]{t: traitsOf[E]()}
}

func (o VectorOps[E, A]) Width() int {
	var a A
	return len(a)
}

func (o VectorOps[E, A]) Integer() bool { return o.t.integer }

func (o VectorOps[E, A]) Zero() A {
	var r A
	return r
}

func (o VectorOps[E, A]) Dup(v float64) A {
	var r A
	e := o.t.clamp(v)
	for i := 0; i < len(r); i++ {
		r[i] = e
	}
	return r
}

func (o VectorOps[E, A]) Add(a, b A) A {
	var r A
	for i := 0; i < len(r); i++ {
		r[i] = a[i] + b[i]
	}
	return r
}

func (o VectorOps[E, A]) QAdd(a, b A) A {
	var r A
	for i := 0; i < len(r); i++ {
		r[i] = o.t.qadd(a[i], b[i])
	}
	return r
}

func (o VectorOps[E, A]) Sub(a, b A) A {
	var r A
	for i := 0; i < len(r); i++ {
		r[i] = a[i] - b[i]
	}
	return r
}

func (o VectorOps[E, A]) QSub(a, b A) A {
	var r A
	for i := 0; i < len(r); i++ {
		r[i] = o.t.qsub(a[i], b[i])
	}
	return r
}

func (o VectorOps[E, A]) Mul(a, b A) A {
	var r A
	for i := 0; i < len(r); i++ {
		r[i] = a[i] * b[i]
	}
	return r
}

func (o VectorOps[E, A]) Abs(a A) A {
	var r A
	for i := 0; i < len(r); i++ {
		r[i] = abs(a[i])
	}
	return r
}

func (o VectorOps[E, A]) QAbs(a A) A {
	var r A
	for i := 0; i < len(r); i++ {
		r[i] = o.t.qabs(a[i])
	}
	return r
}

func (o VectorOps[E, A]) Min(a, b A) A {
	var r A
	for i := 0; i < len(r); i++ {
		r[i] = lesser(a[i], b[i])
	}
	return r
}

func (o VectorOps[E, A]) Sign(a, b A) A {
	var r A
	for i := 0; i < len(r); i++ {
		r[i] = sign(a[i], b[i])
	}
	return r
}

func (o VectorOps[E, A]) Map(a A, f func(float64) float64) A {
	var r A
	for i := 0; i < len(r); i++ {
		r[i] = o.t.apply(a[i], f)
	}
	return r
}

func (o VectorOps[E, A]) GreaterThanZero(a A) Mask {
	var m Mask
	for i := 0; i < len(a); i++ {
		if a[i] > 0 {
			m |= 1 << uint(i)
		}
	}
	return m
}

func (o VectorOps[E, A]) LessThanZero(a A) Mask {
	var m Mask
	for i := 0; i < len(a); i++ {
		if a[i] < 0 {
			m |= 1 << uint(i)
		}
	}
	return m
}

func (o VectorOps[E, A]) EqualZero(a A) Mask {
	var m Mask
	for i := 0; i < len(a); i++ {
		if a[i] == 0 {
			m |= 1 << uint(i)
		}
	}
	return m
}

func (o VectorOps[E, A]) LessThan(a, b A) Mask {
	var m Mask
	for i := 0; i < len(a); i++ {
		if a[i] < b[i] {
			m |= 1 << uint(i)
		}
	}
	return m
}

func (o VectorOps[E, A]) Select(m Mask, a, b A) A {
	var r A
	for i := 0; i < len(r); i++ {
		if m.Has(i) {
			r[i] = a[i]
		} else {
			r[i] = b[i]
		}
	}
	return r
}

func (o VectorOps[E, A]) Get(v A, lane int) float64 {
	return float64(v[lane])
}

func (o VectorOps[E, A]) Set(v *A, lane int, x float64) {
	(*v)[lane] = o.t.clamp(x)
}

//Pack transposes up to Width codewords into dst so that dst[i] holds position i
// of every codeword. Lanes without a codeword are zero filled.
func (o VectorOps[E, A]) Pack(dst []A, codewords [][]E) {
	if len(codewords) > o.Width() {
		panic(fmt.Sprintf("at most %v codewords per lane value but found %v", o.Width(), len(codewords)))
	}
	for i := range dst {
		var v A
		for l, cw := range codewords {
			v[l] = cw[i]
		}
		dst[i] = v
	}
}

//Unpack is the inverse of Pack, filling one codeword per lane.
func (o VectorOps[E, A]) Unpack(codewords [][]E, src []A) {
	if len(codewords) > o.Width() {
		panic(fmt.Sprintf("at most %v codewords per lane value but found %v", o.Width(), len(codewords)))
	}
	for i, v := range src {
		for l, cw := range codewords {
			cw[i] = v[l]
		}
	}
}
