package lane

import (
	"math"
	"math/rand"
	"strconv"
	"testing"
)

func TestTraits(t *testing.T) {
	i8 := traitsOf[int8]()
	if !i8.integer || i8.lo != -128 || i8.hi != 127 {
		t.Fatalf("expected int8 range [-128,127] but found %v", i8)
	}
	i16 := traitsOf[int16]()
	if !i16.integer || i16.lo != math.MinInt16 || i16.hi != math.MaxInt16 {
		t.Fatalf("expected int16 range but found %v", i16)
	}
	if traitsOf[float32]().integer {
		t.Fatalf("expected float32 not to be an integer element")
	}
}

func TestScalarInt8(t *testing.T) {
	o := Scalar[int8]()
	tests := []struct {
		actual, expected int8
	}{
		{o.QAdd(100, 100), 127},
		{o.QAdd(-100, -100), -128},
		{o.QSub(-100, 100), -128},
		{o.QSub(100, -100), 127},
		{o.QAbs(-128), 127},
		{o.QAbs(-5), 5},
		{o.Sign(5, -3), -5},
		{o.Sign(5, 0), 0},
		{o.Sign(-5, 2), -5},
		{o.Dup(300), 127},
		{o.Dup(-2.5), -2},
		{o.Map(10, func(x float64) float64 { return x / 4 }), 2},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			if test.actual != test.expected {
				t.Fatalf("expected %v but found %v", test.expected, test.actual)
			}
		})
	}
}

func TestActive(t *testing.T) {
	tests := []struct {
		blocks, width int
		expected      Mask
	}{
		{1, 1, 1},
		{0, 8, 0xff},
		{3, 8, 0x7},
		{9, 8, 0xff},
		{64, 64, ^Mask(0)},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			actual := Active(test.blocks, test.width)
			if actual != test.expected {
				t.Fatalf("expected %b but found %b", test.expected, actual)
			}
		})
	}
}

func TestBad_IgnoresPadding(t *testing.T) {
	o := Vector[float32, [8]float32]()
	v := o.Dup(1)
	v[5] = -1
	if Bad[[8]float32](o, v, 5) {
		t.Fatalf("expected padding lane 5 to be ignored")
	}
	if !Bad[[8]float32](o, v, 6) {
		t.Fatalf("expected lane 5 to be inspected")
	}
	v[0] = 0
	if !Bad[[8]float32](o, v, 1) {
		t.Fatalf("expected zero to count as bad")
	}
}

// every vector op must equal the scalar op lane by lane
func TestVectorMatchesScalar(t *testing.T) {
	s := Scalar[int8]()
	v := Vector[int8, [16]int8]()

	var a, b [16]int8
	for i := range a {
		a[i] = int8(rand.Intn(256) - 128)
		b[i] = int8(rand.Intn(256) - 128)
	}
	a[3], b[4] = 0, 0
	a[7] = -128

	binary := []struct {
		name   string
		vector func(a, b [16]int8) [16]int8
		scalar func(a, b int8) int8
	}{
		{"QAdd", v.QAdd, s.QAdd},
		{"QSub", v.QSub, s.QSub},
		{"Min", v.Min, s.Min},
		{"Sign", v.Sign, s.Sign},
		{"Add", v.Add, s.Add},
	}
	for _, op := range binary {
		t.Run(op.name, func(t *testing.T) {
			r := op.vector(a, b)
			for i := range r {
				if expected := op.scalar(a[i], b[i]); r[i] != expected {
					t.Fatalf("lane %v expected %v but found %v", i, expected, r[i])
				}
			}
		})
	}

	q := v.QAbs(a)
	gtz := v.GreaterThanZero(a)
	eqz := v.EqualZero(a)
	for i := range a {
		if q[i] != s.QAbs(a[i]) {
			t.Fatalf("lane %v expected %v but found %v", i, s.QAbs(a[i]), q[i])
		}
		if gtz.Has(i) != (s.GreaterThanZero(a[i]) == 1) {
			t.Fatalf("lane %v greater than zero mismatch", i)
		}
		if eqz.Has(i) != (a[i] == 0) {
			t.Fatalf("lane %v equal zero mismatch", i)
		}
	}
}

func TestPackUnpack(t *testing.T) {
	o := Vector[float32, [4]float32]()
	codewords := [][]float32{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 9},
	}
	packed := make([][4]float32, 3)
	o.Pack(packed, codewords)
	if packed[1] != [4]float32{2, 5, 8, 0} {
		t.Fatalf("expected %v but found %v", [4]float32{2, 5, 8, 0}, packed[1])
	}

	out := [][]float32{make([]float32, 3), make([]float32, 3), make([]float32, 3)}
	o.Unpack(out, packed)
	for l := range out {
		for i := range out[l] {
			if out[l][i] != codewords[l][i] {
				t.Fatalf("expected %v but found %v", codewords, out)
			}
		}
	}
}

func TestPreferredWidth(t *testing.T) {
	for _, size := range []int{1, 2, 4, 8} {
		w := PreferredWidth(size)
		found := false
		for _, s := range Widths[1:] {
			if s == w {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected a supported width for %v byte elements but found %v", size, w)
		}
	}
	if Register() == "" {
		t.Fatalf("expected a register name")
	}
}
