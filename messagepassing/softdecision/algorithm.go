package softdecision

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/nathanhack/ldpc/internal/reduce"
	"github.com/nathanhack/ldpc/lane"
)

var (
	// ErrUnknownKind is returned for algorithm or schedule names that are not supported.
	ErrUnknownKind = errors.New("unknown kind")
	// ErrUnsupportedElement is returned when an algorithm can not run on the element type.
	ErrUnsupportedElement = errors.New("unsupported element")
)

//Algorithm is the arithmetic of one belief propagation variant. Finalp turns the
// messages entering a check into the extrinsic messages leaving it, in place.
// Implementations own scratch buffers and are not safe for concurrent use.
type Algorithm[T any] interface {
	Zero() T
	One() T
	Add(a, b T) T
	Sub(a, b T) T
	Sign(a, b T) T
	Finalp(links []T)
	Bad(v T, blocks int) bool
	Update(prev, next T) T
}

type Kind int

const (
	MinSum Kind = iota
	SelfCorrectedMinSum
	MinSumC
	LogDomainSPA
	LambdaMin
	SumProduct
)

var kindNames = []string{"min-sum", "self-corrected-min-sum", "min-sum-c", "log-domain-spa", "lambda-min", "sum-product"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

//ParseKind accepts the names printed by Kind.String, case insensitive.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: algorithm %q, expected one of %v", ErrUnknownKind, s, strings.Join(kindNames, ", "))
}

// float reports whether the kind needs a transcendental transform of the messages.
func (k Kind) float() bool {
	return k == LogDomainSPA || k == LambdaMin || k == SumProduct
}

//Params tunes the variants. Factor is the MinSumC correction, Lambda the number of
// magnitudes LambdaMin keeps. SelfCorrected swaps the normal update of any kind
// for the self-corrected one.
type Params struct {
	Factor        float64
	Lambda        int
	SelfCorrected bool
}

func DefaultParams() Params {
	return Params{Factor: 2, Lambda: 3}
}

//NewAlgorithm builds the variant kind on top of ops.
func NewAlgorithm[T any](kind Kind, ops lane.Ops[T], params Params) (Algorithm[T], error) {
	if ops == nil {
		panic("ops are required")
	}
	if kind.float() && ops.Integer() {
		return nil, fmt.Errorf("%w: %v needs floating point elements", ErrUnsupportedElement, kind)
	}

	b := base[T]{
		ops:           ops,
		one:           ops.Dup(1),
		zero:          ops.Zero(),
		selfCorrected: params.SelfCorrected || kind == SelfCorrectedMinSum,
	}

	switch kind {
	case MinSum, SelfCorrectedMinSum:
		return &minSum[T]{base: b, max: ops.Dup(math.Inf(1))}, nil
	case MinSumC:
		if params.Factor <= 0 {
			return nil, fmt.Errorf("factor > 0 required but found %v", params.Factor)
		}
		return newMinSumC(b, params.Factor), nil
	case LogDomainSPA:
		return &logDomainSPA[T]{base: b}, nil
	case LambdaMin:
		if params.Lambda < 1 {
			return nil, fmt.Errorf("lambda >= 1 required but found %v", params.Lambda)
		}
		return &lambdaMin[T]{base: b, lambda: params.Lambda}, nil
	case SumProduct:
		return &sumProduct[T]{base: b}, nil
	}
	return nil, fmt.Errorf("%w: algorithm %v", ErrUnknownKind, kind)
}

// base carries what every variant shares.
type base[T any] struct {
	ops           lane.Ops[T]
	one, zero     T
	selfCorrected bool
	scratch       [3][]T
}

func (b *base[T]) Zero() T       { return b.zero }
func (b *base[T]) One() T        { return b.one }
func (b *base[T]) Add(a, c T) T  { return b.ops.QAdd(a, c) }
func (b *base[T]) Sub(a, c T) T  { return b.ops.QSub(a, c) }
func (b *base[T]) Sign(a, c T) T { return b.ops.Sign(a, c) }

func (b *base[T]) Bad(v T, blocks int) bool {
	return lane.Bad(b.ops, v, blocks)
}

//Update erases a message that flipped sign since the last iteration when self
// correction is on, otherwise it returns next.
func (b *base[T]) Update(prev, next T) T {
	if !b.selfCorrected {
		return next
	}
	keep := b.ops.EqualZero(prev) | ^(b.ops.LessThanZero(prev) ^ b.ops.LessThanZero(next))
	return b.ops.Select(keep, next, b.zero)
}

// isolated handles checks with less than two links, they have nothing to send.
func (b *base[T]) isolated(links []T) bool {
	if len(links) > 1 {
		return false
	}
	for i := range links {
		links[i] = b.zero
	}
	return true
}

// buffers returns three scratch slices of length n.
func (b *base[T]) buffers(n int) ([]T, []T, []T) {
	if cap(b.scratch[0]) < n {
		for i := range b.scratch {
			b.scratch[i] = make([]T, n)
		}
	}
	return b.scratch[0][:n], b.scratch[1][:n], b.scratch[2][:n]
}

// signs writes into out the product of the signs of every other link.
// tmp is overwritten.
func (b *base[T]) signs(links, tmp, out []T) {
	for i, l := range links {
		tmp[i] = b.ops.Sign(b.one, l)
	}
	reduce.Exclusive(tmp, out, b.ops.Sign, b.one)
}

type minSum[T any] struct {
	base[T]
	max T
}

func (a *minSum[T]) Finalp(links []T) {
	if a.isolated(links) {
		return
	}
	mags, mins, signs := a.buffers(len(links))
	a.signs(links, mags, signs)

	for i, l := range links {
		mags[i] = a.ops.QAbs(l)
	}
	reduce.Exclusive(mags, mins, a.ops.Min, a.max)

	for i := range links {
		links[i] = a.ops.Sign(mins[i], signs[i])
	}
}

type minSumC[T any] struct {
	base[T]
	max       T
	threshold T
	plus      T
	minus     T
}

func newMinSumC[T any](b base[T], factor float64) *minSumC[T] {
	a := &minSumC[T]{base: b, max: b.ops.Dup(math.Inf(1))}
	if b.ops.Integer() {
		f := int(factor)
		a.threshold = b.ops.Dup(float64(2 * f))
		a.plus = b.ops.Dup(float64(f / 2))
		a.minus = b.ops.Dup(-float64(f / 2))
	} else {
		a.threshold = b.ops.Dup(2)
		a.plus = b.ops.Dup(factor / 2)
		a.minus = b.ops.Dup(-factor / 2)
	}
	return a
}

// correction approximates the difference of the two log terms of the exact check
// update with a constant.
func (a *minSumC[T]) correction(x, y T) T {
	o := a.ops
	apb := o.QAbs(o.QAdd(x, y))
	amb := o.QAbs(o.QSub(x, y))
	up := o.LessThan(apb, a.threshold) & o.LessThan(o.QAdd(apb, apb), amb)
	down := o.LessThan(amb, a.threshold) & o.LessThan(o.QAdd(amb, amb), apb)
	return o.Select(up, a.plus, o.Select(down, a.minus, a.zero))
}

func (a *minSumC[T]) min(x, y T) T {
	o := a.ops
	m := o.Min(o.QAbs(x), o.QAbs(y))
	return o.QAdd(o.Sign(o.Sign(m, x), y), a.correction(x, y))
}

func (a *minSumC[T]) Finalp(links []T) {
	if a.isolated(links) {
		return
	}
	in, out, _ := a.buffers(len(links))
	copy(in, links)
	reduce.Exclusive(in, out, a.min, a.max)
	copy(links, out)
}

const (
	phiLow  = 0.000001
	phiHigh = 14.5
)

// phi is its own inverse on the clamped range.
func phi(x float64) float64 {
	x = math.Min(math.Max(x, phiLow), phiHigh)
	return math.Log(math.Exp(x)+1) - math.Log(math.Exp(x)-1)
}

func absPhi(x float64) float64 { return phi(math.Abs(x)) }

type logDomainSPA[T any] struct {
	base[T]
}

func (a *logDomainSPA[T]) Finalp(links []T) {
	if a.isolated(links) {
		return
	}
	mags, sums, signs := a.buffers(len(links))
	a.signs(links, mags, signs)

	for i, l := range links {
		mags[i] = a.ops.Map(l, absPhi)
	}
	reduce.Exclusive(mags, sums, a.ops.Add, a.zero)

	for i := range links {
		links[i] = a.ops.Sign(a.ops.Map(sums[i], phi), signs[i])
	}
}

type magnitude struct {
	value float64
	index int
}

type lambdaMin[T any] struct {
	base[T]
	lambda int
	mags   []magnitude
}

// smallest moves the k smallest magnitudes to the front of mags in ascending order.
func smallest(mags []magnitude, k int) {
	for i := 0; i < k && i < len(mags); i++ {
		m := i
		for j := i + 1; j < len(mags); j++ {
			if mags[j].value < mags[m].value {
				m = j
			}
		}
		mags[i], mags[m] = mags[m], mags[i]
	}
}

func (a *lambdaMin[T]) Finalp(links []T) {
	if a.isolated(links) {
		return
	}
	n := len(links)
	tmp, signs, _ := a.buffers(n)
	a.signs(links, tmp, signs)

	lambda := a.lambda
	if lambda > n-1 {
		lambda = n - 1
	}
	if cap(a.mags) < n {
		a.mags = make([]magnitude, n)
	}
	mags := a.mags[:n]

	for l := 0; l < a.ops.Width(); l++ {
		for i, v := range links {
			mags[i] = magnitude{value: math.Abs(a.ops.Get(v, l)), index: i}
		}
		smallest(mags, lambda+1)

		for i := range links {
			sum := 0.0
			for j, taken := 0, 0; taken < lambda; j++ {
				if mags[j].index == i {
					continue
				}
				sum += phi(mags[j].value)
				taken++
			}
			s := a.ops.Get(signs[i], l)
			switch {
			case s > 0:
				a.ops.Set(&links[i], l, phi(sum))
			case s < 0:
				a.ops.Set(&links[i], l, -phi(sum))
			default:
				a.ops.Set(&links[i], l, 0)
			}
		}
	}
}

// atanhLimit keeps the product of tanh values away from the poles of atanh.
const atanhLimit = 1 - 1e-7

func halfTanh(x float64) float64 { return math.Tanh(0.5 * x) }

func doubleAtanh(x float64) float64 {
	return 2 * math.Atanh(math.Min(math.Max(x, -atanhLimit), atanhLimit))
}

type sumProduct[T any] struct {
	base[T]
}

func (a *sumProduct[T]) Finalp(links []T) {
	if a.isolated(links) {
		return
	}
	in, out, _ := a.buffers(len(links))
	for i, l := range links {
		in[i] = a.ops.Map(l, halfTanh)
	}
	reduce.Exclusive(in, out, a.ops.Mul, a.one)
	for i := range links {
		links[i] = a.ops.Map(out[i], doubleAtanh)
	}
}
