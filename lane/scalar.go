package lane

// ScalarOps runs on single soft values.
type ScalarOps[E Element] struct {
	t traits[E]
}

// Scalar returns the width one back-end for E.
func Scalar[E Element]() ScalarOps[E] {
	return ScalarOps[E]{t: traitsOf[E]()}
}

func (o ScalarOps[E]) Width() int    { return 1 }
func (o ScalarOps[E]) Integer() bool { return o.t.integer }
func (o ScalarOps[E]) Zero() E       { return 0 }

func (o ScalarOps[E]) Dup(v float64) E { return o.t.clamp(v) }

func (o ScalarOps[E]) Add(a, b E) E  { return a + b }
func (o ScalarOps[E]) QAdd(a, b E) E { return o.t.qadd(a, b) }
func (o ScalarOps[E]) Sub(a, b E) E  { return a - b }
func (o ScalarOps[E]) QSub(a, b E) E { return o.t.qsub(a, b) }
func (o ScalarOps[E]) Mul(a, b E) E  { return a * b }
func (o ScalarOps[E]) Abs(a E) E     { return abs(a) }
func (o ScalarOps[E]) QAbs(a E) E    { return o.t.qabs(a) }
func (o ScalarOps[E]) Min(a, b E) E  { return lesser(a, b) }
func (o ScalarOps[E]) Sign(a, b E) E { return sign(a, b) }

func (o ScalarOps[E]) Map(a E, f func(float64) float64) E {
	return o.t.apply(a, f)
}

func (o ScalarOps[E]) GreaterThanZero(a E) Mask { return bit(a > 0) }
func (o ScalarOps[E]) LessThanZero(a E) Mask    { return bit(a < 0) }
func (o ScalarOps[E]) EqualZero(a E) Mask       { return bit(a == 0) }
func (o ScalarOps[E]) LessThan(a, b E) Mask     { return bit(a < b) }

func (o ScalarOps[E]) Select(m Mask, a, b E) E {
	if m&1 != 0 {
		return a
	}
	return b
}

func (o ScalarOps[E]) Get(v E, lane int) float64 {
	return float64(v)
}

func (o ScalarOps[E]) Set(v *E, lane int, x float64) {
	*v = o.t.clamp(x)
}

func bit(b bool) Mask {
	if b {
		return 1
	}
	return 0
}
