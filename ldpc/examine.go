package ldpc

import (
	"fmt"
	"math"

	mat "github.com/nathanhack/sparsemat"
	"github.com/sirupsen/logrus"
)

//Examine walks every data column of d and checks it against the declared link
// counts. It is an audit, decoders never call it.
func Examine(d Descriptor) error {
	k := d.DataLen()
	r := d.CodeLen() - k
	if k <= 0 || r <= 0 {
		return malformed("code length %v and data length %v", d.CodeLen(), k)
	}

	perCheck := make([]int, r)
	perCheck[0] = 1
	for i := 1; i < r; i++ {
		perCheck[i] = 2
	}
	edges := 2*r - 1
	maxDeg := 0

	seen := make(map[int]bool, d.MaxBitDeg())
	it := d.Bits()
	it.First()
	for j := 0; j < k; j++ {
		if it.Deg() == 0 {
			return malformed("column %v has no rows, the table ends after %v columns", j, j)
		}
		for key := range seen {
			delete(seen, key)
		}
		for _, i := range it.Pos() {
			if i < 0 || i >= r {
				return malformed("column %v uses row %v outside [0,%v)", j, i, r)
			}
			if seen[i] {
				return malformed("column %v uses row %v twice", j, i)
			}
			seen[i] = true
			perCheck[i]++
		}
		if it.Deg() > maxDeg {
			maxDeg = it.Deg()
		}
		edges += it.Deg()
		it.Next()
	}
	if it.Deg() != 0 {
		return malformed("table has more than %v columns", k)
	}
	if maxDeg > d.MaxBitDeg() {
		return malformed("column degree %v exceeds the declared maximum %v", maxDeg, d.MaxBitDeg())
	}
	if edges != d.LinksTotal() {
		return malformed("found %v links but %v are declared", edges, d.LinksTotal())
	}

	maxCN, minCN := 0, math.MaxInt
	for i, n := range perCheck {
		if n > d.LinksMaxCN() {
			return malformed("check %v has %v links but at most %v are declared", i, n, d.LinksMaxCN())
		}
		if n > maxCN {
			maxCN = n
		}
		if n < minCN {
			minCN = n
		}
	}

	logrus.Debugf("examined N=%v K=%v: %v links, max bit degree %v, check degrees %v..%v",
		d.CodeLen(), k, edges, maxDeg, minCN, maxCN)
	return nil
}

//ParityCheck materializes the parity check matrix of d. Rows are checks, the columns
// hold the data bits followed by the parity bits.
func ParityCheck(d Descriptor) mat.SparseMat {
	n, k := d.CodeLen(), d.DataLen()
	r := n - k
	h := mat.DOKMat(r, n)

	it := d.Bits()
	it.First()
	for j := 0; j < k; j++ {
		for _, i := range it.Pos() {
			h.Set(i, j, 1)
		}
		it.Next()
	}
	for i := 0; i < r; i++ {
		h.Set(i, k+i, 1)
		if i > 0 {
			h.Set(i, k+i-1, 1)
		}
	}
	return mat.CSRMatCopy(h)
}

//Syndrome returns H*codeword over GF(2). A codeword has a zero syndrome.
func Syndrome(h mat.SparseMat, codeword mat.SparseVector) mat.SparseVector {
	rows, cols := h.Dims()
	if codeword.Len() != cols {
		panic(fmt.Sprintf("codeword must have length %v but found %v", cols, codeword.Len()))
	}
	s := mat.CSRVec(rows)
	s.MatMul(h, codeword)
	return s
}

//HardDecision maps soft values to bits, negative values become 1.
func HardDecision(soft []float64) mat.SparseVector {
	bits := mat.CSRVec(len(soft))
	for i, v := range soft {
		if v < 0 {
			bits.Set(i, 1)
		}
	}
	return bits
}

//CheckFinite returns an error naming the first NaN or infinite soft value.
func CheckFinite(code []float64) error {
	for i, v := range code {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("soft value %v at index %v is not finite", v, i)
		}
	}
	return nil
}
