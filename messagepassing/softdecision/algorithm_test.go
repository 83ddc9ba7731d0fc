package softdecision

import (
	"errors"
	"math"
	"math/rand"
	"strconv"
	"testing"

	"github.com/nathanhack/ldpc/lane"
)

var allKinds = []Kind{MinSum, SelfCorrectedMinSum, MinSumC, LogDomainSPA, LambdaMin, SumProduct}

func TestParseKind(t *testing.T) {
	for _, k := range allKinds {
		actual, err := ParseKind(k.String())
		if err != nil {
			t.Fatal(err)
		}
		if actual != k {
			t.Fatalf("expected %v but found %v", k, actual)
		}
	}
	if k, err := ParseKind(" Min-Sum "); err != nil || k != MinSum {
		t.Fatalf("expected %v but found %v %v", MinSum, k, err)
	}
	if _, err := ParseKind("belief"); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected %v but found %v", ErrUnknownKind, err)
	}
}

func TestNewAlgorithm_Errors(t *testing.T) {
	tests := []struct {
		kind     Kind
		params   Params
		expected error
	}{
		{LogDomainSPA, DefaultParams(), ErrUnsupportedElement},
		{LambdaMin, DefaultParams(), ErrUnsupportedElement},
		{SumProduct, DefaultParams(), ErrUnsupportedElement},
		{Kind(42), DefaultParams(), ErrUnknownKind},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			_, err := NewAlgorithm[int8](test.kind, lane.Scalar[int8](), test.params)
			if !errors.Is(err, test.expected) {
				t.Fatalf("expected %v but found %v", test.expected, err)
			}
		})
	}

	if _, err := NewAlgorithm[float32](MinSumC, lane.Scalar[float32](), Params{}); err == nil {
		t.Fatalf("expected an error for a zero factor")
	}
	if _, err := NewAlgorithm[float32](LambdaMin, lane.Scalar[float32](), Params{}); err == nil {
		t.Fatalf("expected an error for a zero lambda")
	}
}

func finalp[T any](t *testing.T, kind Kind, ops lane.Ops[T], params Params, links ...T) []T {
	alg, err := NewAlgorithm(kind, ops, params)
	if err != nil {
		t.Fatal(err)
	}
	alg.Finalp(links)
	return links
}

func TestFinalp(t *testing.T) {
	f64 := lane.Scalar[float64]()
	tests := []struct {
		kind     Kind
		links    []float64
		expected []float64
	}{
		{MinSum, []float64{3, -1, 2}, []float64{-1, 2, -1}},
		{MinSum, []float64{0, 3, -2}, []float64{-2, 0, 0}},
		{MinSum, []float64{-5}, []float64{0}},
		{MinSumC, []float64{1, 1.5, 4}, []float64{1.5, 1, 0}},
		{MinSumC, []float64{1, -0.5, 4}, []float64{-0.5, 1, 0.5}},
		{SelfCorrectedMinSum, []float64{3, -1, 2}, []float64{-1, 2, -1}},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			actual := finalp(t, test.kind, lane.Ops[float64](f64), DefaultParams(), test.links...)
			for j := range actual {
				if actual[j] != test.expected[j] {
					t.Fatalf("expected %v but found %v", test.expected, actual)
				}
			}
		})
	}
}

func TestFinalp_Int8(t *testing.T) {
	i8 := lane.Scalar[int8]()
	actual := finalp(t, MinSum, lane.Ops[int8](i8), DefaultParams(), -128, 5, 100)
	expected := []int8{5, -100, -5}
	for j := range actual {
		if actual[j] != expected[j] {
			t.Fatalf("expected %v but found %v", expected, actual)
		}
	}

	//the correction threshold is 2*factor for integers
	actual = finalp(t, MinSumC, lane.Ops[int8](i8), Params{Factor: 2}, 1, 2, 100)
	expected = []int8{2, 1, 0}
	for j := range actual {
		if actual[j] != expected[j] {
			t.Fatalf("expected %v but found %v", expected, actual)
		}
	}
}

func TestFinalp_SumProductFamily(t *testing.T) {
	f64 := lane.Ops[float64](lane.Scalar[float64]())
	links := []float64{1, -2, 3, 0.5}

	exact := make([]float64, len(links))
	for i := range links {
		p := 1.0
		for j, l := range links {
			if j != i {
				p *= math.Tanh(l / 2)
			}
		}
		exact[i] = 2 * math.Atanh(p)
	}

	tests := []struct {
		kind   Kind
		params Params
	}{
		{SumProduct, DefaultParams()},
		{LogDomainSPA, DefaultParams()},
		{LambdaMin, Params{Lambda: 3}},
		{LambdaMin, Params{Lambda: 10}},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			actual := finalp(t, test.kind, f64, test.params, append([]float64(nil), links...)...)
			for j := range actual {
				if math.Abs(actual[j]-exact[j]) > 1e-6 {
					t.Fatalf("expected %v but found %v", exact, actual)
				}
			}
		})
	}
}

func TestLambdaMin_Truncates(t *testing.T) {
	f64 := lane.Ops[float64](lane.Scalar[float64]())
	actual := finalp(t, LambdaMin, f64, Params{Lambda: 1}, 1, -2, 3, 0.5)

	//with one magnitude left the update is min-sum in the phi domain
	expected := []float64{-0.5, 0.5, -0.5, -1}
	for j := range actual {
		if math.Abs(actual[j]-expected[j]) > 1e-9 {
			t.Fatalf("expected %v but found %v", expected, actual)
		}
	}
}

func TestUpdate(t *testing.T) {
	f64 := lane.Ops[float64](lane.Scalar[float64]())
	normal, _ := NewAlgorithm(MinSum, f64, DefaultParams())
	corrected, _ := NewAlgorithm(MinSum, f64, Params{SelfCorrected: true})

	tests := []struct {
		prev, next float64
		expected   float64
	}{
		{0, 5, 5},
		{3, 2, 2},
		{-3, -2, -2},
		{3, -2, 0},
		{-3, 2, 0},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			if actual := normal.Update(test.prev, test.next); actual != test.next {
				t.Fatalf("expected %v but found %v", test.next, actual)
			}
			if actual := corrected.Update(test.prev, test.next); actual != test.expected {
				t.Fatalf("expected %v but found %v", test.expected, actual)
			}
		})
	}
}

func TestFinalp_LanesMatchScalar(t *testing.T) {
	scalar := lane.Ops[float32](lane.Scalar[float32]())
	vector := lane.Ops[[4]float32](lane.Vector[float32, [4]float32]())
	r := rand.New(rand.NewSource(11))

	for _, kind := range allKinds {
		t.Run(kind.String(), func(t *testing.T) {
			salg, err := NewAlgorithm(kind, scalar, DefaultParams())
			if err != nil {
				t.Fatal(err)
			}
			valg, err := NewAlgorithm(kind, vector, DefaultParams())
			if err != nil {
				t.Fatal(err)
			}

			for trial := 0; trial < 20; trial++ {
				n := 2 + r.Intn(8)
				packed := make([][4]float32, n)
				lanes := make([][]float32, 4)
				for l := range lanes {
					lanes[l] = make([]float32, n)
					for i := range lanes[l] {
						lanes[l][i] = float32(math.Round(r.NormFloat64()*8) / 2)
						packed[i][l] = lanes[l][i]
					}
				}

				valg.Finalp(packed)
				for l, links := range lanes {
					salg.Finalp(links)
					for i := range links {
						if packed[i][l] != links[i] {
							t.Fatalf("lane %v: expected %v but found %v", l, links[i], packed[i][l])
						}
					}
				}
			}
		})
	}
}
