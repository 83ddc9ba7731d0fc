package harddecision

import (
	"strconv"
	"testing"

	"github.com/nathanhack/ldpc/ldpc"
	mat "github.com/nathanhack/sparsemat"
)

func TestGallager_SingleErrors(t *testing.T) {
	code, err := ldpc.Lookup("tiny")
	if err != nil {
		t.Fatalf("expected no error but found: %v", err)
	}
	alg := NewGallager(code)

	// a codeword of tiny with data bit 0 set
	expected := mat.CSRVec(20)
	for _, i := range []int{0, 10, 11, 12, 17, 18, 19} {
		expected.Set(i, 1)
	}

	for i := 0; i < code.CodeLen(); i++ {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			codeword := mat.CSRVecCopy(expected)
			codeword.Set(i, (codeword.At(i)+1)%2)

			actual, remaining := alg.Decode(codeword, 20)

			if !actual.Equals(expected) {
				t.Fatalf("expected %v but found %v", expected, actual)
			}
			if remaining != 19 {
				t.Fatalf("expected %v but found %v", 19, remaining)
			}
		})
	}
}

func TestGallager_Valid(t *testing.T) {
	code, _ := ldpc.Lookup("tiny")
	alg := NewGallager(code)

	actual, remaining := alg.Decode(mat.CSRVec(20), 7)
	if !actual.IsZero() || remaining != 7 {
		t.Fatalf("expected %v but found %v", 7, remaining)
	}
}

func TestGallager_Exhausted(t *testing.T) {
	code, _ := ldpc.Lookup("tiny")
	alg := NewGallager(code)

	codeword := mat.CSRVec(20)
	for _, i := range []int{0, 5, 9} {
		codeword.Set(i, 1)
	}

	_, remaining := alg.Decode(codeword, 0)
	if remaining != -1 {
		t.Fatalf("expected %v but found %v", -1, remaining)
	}
}

func BenchmarkGallager_BitFlipping(b *testing.B) {
	code, _ := ldpc.Lookup("short")
	g := NewGallager(code)
	input := mat.CSRVec(code.CodeLen())
	input.Set(3, 1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.Decode(input, 10)
	}
}
