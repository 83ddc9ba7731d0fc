package lane

import "math"

// traits describes the numeric range of an element type.
type traits[E Element] struct {
	integer bool
	lo, hi  E
}

func traitsOf[E Element]() traits[E] {
	if E(1)/E(2) != 0 {
		return traits[E]{}
	}
	// grow 1, 3, 7, ... until the next step wraps around
	hi := E(1)
	for {
		next := hi*2 + 1
		if next < hi {
			break
		}
		hi = next
	}
	return traits[E]{integer: true, lo: -hi - 1, hi: hi}
}

func (t traits[E]) clamp(x float64) E {
	if !t.integer {
		return E(x)
	}
	x = math.RoundToEven(x)
	if x < float64(t.lo) {
		return t.lo
	}
	if x > float64(t.hi) {
		return t.hi
	}
	return E(x)
}

func (t traits[E]) qadd(a, b E) E {
	if !t.integer {
		return a + b
	}
	return t.wide(int64(a) + int64(b))
}

func (t traits[E]) qsub(a, b E) E {
	if !t.integer {
		return a - b
	}
	return t.wide(int64(a) - int64(b))
}

func (t traits[E]) wide(x int64) E {
	if x < int64(t.lo) {
		return t.lo
	}
	if x > int64(t.hi) {
		return t.hi
	}
	return E(x)
}

func abs[E Element](a E) E {
	if a < 0 {
		return -a
	}
	return a
}

// qabs never overflows: the most negative integer maps to the maximum.
func (t traits[E]) qabs(a E) E {
	if t.integer && a < -t.hi {
		return t.hi
	}
	return abs(a)
}

func lesser[E Element](a, b E) E {
	if b < a {
		return b
	}
	return a
}

func sign[E Element](a, b E) E {
	if b < 0 {
		return -a
	}
	if b > 0 {
		return a
	}
	return 0
}

func (t traits[E]) apply(a E, f func(float64) float64) E {
	return t.clamp(f(float64(a)))
}
