package harddecision

import (
	"sort"

	"github.com/nathanhack/ldpc/ldpc"
	mat "github.com/nathanhack/sparsemat"
	"github.com/sirupsen/logrus"
)

func argMaxInt(values []int) int {
	result := 0
	max := values[0]
	for i := 1; i < len(values); i++ {
		v := values[i]
		if max < v {
			result = i
			max = v
		}
	}
	return result
}

//Gallager flips the one bit with the most unsatisfied checks each iteration.
// A Gallager is not safe for concurrent use.
type Gallager struct {
	H      mat.SparseMat
	votes  []int
	checks [][]int
}

func NewGallager(d ldpc.Descriptor) *Gallager {
	g := &Gallager{H: ldpc.ParityCheck(d)}
	_, cols := g.H.Dims()
	g.votes = make([]int, cols)
	g.checks = make([][]int, cols)
	for n := 0; n < cols; n++ {
		g.checks[n] = g.H.Column(n).NonzeroArray()
		sort.Ints(g.checks[n])
	}
	logrus.Debugf("gallager bit flipping over %v bits", cols)
	return g
}

//Decode repairs codeword with at most maxIter flips, see BitFlipping.
func (g *Gallager) Decode(codeword mat.SparseVector, maxIter int) (mat.SparseVector, int) {
	return BitFlipping(g, g.H, codeword, maxIter)
}

func (g *Gallager) Flip(currentSyndromes mat.SparseVector, currentCodeword mat.SparseVector) (nextCodeword mat.SparseVector) {
	g.vote(currentSyndromes)

	n := argMaxInt(g.votes)

	// and we flip that bit
	nextCodeword = mat.CSRVecCopy(currentCodeword)
	nextCodeword.Set(n, (nextCodeword.At(n)+1)%2)

	return nextCodeword
}

// vote computes E_n = -sum(1-2*s_m) over the checks m of bit n.
func (g *Gallager) vote(syndromes mat.SparseVector) {
	synIndices := syndromes.NonzeroArray()
	sort.Ints(synIndices)
	synIndicesLen := len(synIndices)
	for n := 0; n < len(g.votes); n++ {
		sum := 0
		indices := g.checks[n]
		indicesLen := len(indices)
		for i, j := 0, 0; i < indicesLen && j < synIndicesLen; {
			if indices[i] == synIndices[j] {
				sum++
				i++
				j++
			} else if indices[i] < synIndices[j] {
				i++
			} else {
				j++
			}
		}

		g.votes[n] = -indicesLen + 2*sum
	}
}
