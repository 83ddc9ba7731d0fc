package ldpc

import (
	"fmt"
	"math/rand"
	"strconv"
	"testing"

	"github.com/nathanhack/ldpc/lane"
)

func bipolar(bits []int) []float64 {
	v := make([]float64, len(bits))
	for i, b := range bits {
		v[i] = float64(1 - 2*b)
	}
	return v
}

func TestEncoder_ParitySatisfied(t *testing.T) {
	for _, name := range Tables() {
		c, err := Lookup(name)
		if err != nil {
			t.Fatal(err)
		}
		h := ParityCheck(c)
		enc := NewEncoder[float64](c, lane.Scalar[float64]())
		r := rand.New(rand.NewSource(int64(len(name))))

		for i := 0; i < 10; i++ {
			t.Run(name+"/"+strconv.Itoa(i), func(t *testing.T) {
				data := make([]int, c.DataLen())
				for j := range data {
					data[j] = r.Intn(2)
				}
				code := append(bipolar(data), make([]float64, c.CodeLen()-c.DataLen())...)
				enc.EncodeCodeword(code)

				s := Syndrome(h, HardDecision(code))
				if !s.IsZero() {
					t.Fatalf("expected a zero syndrome but found %v", s)
				}
				for j, b := range data {
					if int(HardDecision(code).At(j)) != b {
						t.Fatalf("expected data bit %v to be %v", j, b)
					}
				}
			})
		}
	}
}

func TestEncoder_Tiny(t *testing.T) {
	c, err := New(Tiny)
	if err != nil {
		t.Fatal(err)
	}
	enc := NewEncoder[float64](c, lane.Scalar[float64]())

	tests := []struct {
		data   []int
		parity []int
	}{
		{[]int{0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, []int{0, 0, 0, 0, 0, 0, 0, 0, 0, 0}},
		{[]int{1, 0, 0, 0, 0, 0, 0, 0, 0, 0}, []int{1, 1, 1, 0, 0, 0, 0, 1, 1, 1}},
		{[]int{0, 0, 0, 0, 0, 1, 0, 0, 0, 0}, []int{0, 1, 1, 1, 0, 0, 0, 0, 1, 1}},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			parity := make([]float64, 10)
			enc.Encode(bipolar(test.data), parity)
			expected := bipolar(test.parity)
			for j := range parity {
				if parity[j] != expected[j] {
					t.Fatalf("expected %v but found %v", expected, parity)
				}
			}
		})
	}
}

func TestEncoder_VectorMatchesScalar(t *testing.T) {
	c, err := New(Short)
	if err != nil {
		t.Fatal(err)
	}
	scalar := NewEncoder[int8](c, lane.Scalar[int8]())
	vops := lane.Vector[int8, [8]int8]()
	vector := NewEncoder[[8]int8](c, vops)

	r := rand.New(rand.NewSource(3))
	codewords := make([][]int8, 8)
	for l := range codewords {
		codewords[l] = make([]int8, c.CodeLen())
		for j := 0; j < c.DataLen(); j++ {
			codewords[l][j] = int8(1 - 2*r.Intn(2))
		}
	}

	packed := make([][8]int8, c.CodeLen())
	vops.Pack(packed, codewords)
	vector.EncodeCodeword(packed)

	for l, code := range codewords {
		scalar.EncodeCodeword(code)
		for j := range code {
			if packed[j][l] != code[j] {
				t.Fatalf("lane %v position %v: expected %v but found %v", l, j, code[j], packed[j][l])
			}
		}
	}
}

func ExampleEncoder_Encode() {
	c, _ := New(Tiny)
	enc := NewEncoder[float64](c, lane.Scalar[float64]())

	data := []float64{-1, 1, 1, 1, 1, 1, 1, 1, 1, 1}
	parity := make([]float64, 10)
	enc.Encode(data, parity)
	fmt.Println(parity)
	// Output: [-1 -1 -1 1 1 1 1 -1 -1 -1]
}
