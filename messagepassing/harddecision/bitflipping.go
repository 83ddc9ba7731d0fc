package harddecision

import (
	mat "github.com/nathanhack/sparsemat"
)

type BitFlippingAlg interface {
	Flip(currentSyndromes mat.SparseVector, currentCodeword mat.SparseVector) (nextCodeword mat.SparseVector)
}

//BitFlipping repairs a hard decision codeword. It returns the result and the
// iterations left over like the soft decision decoders do: maxIter when the
// codeword was already valid and -1 when it ran out of iterations.
func BitFlipping(bitFlippingAlg BitFlippingAlg, H mat.SparseMat, codeword mat.SparseVector, maxIter int) (result mat.SparseVector, remaining int) {
	rows, _ := H.Dims()
	result = mat.CSRVecCopy(codeword)
	syndrome := mat.CSRVec(rows)
	for i := 0; i < maxIter; i++ {
		syndrome.MatMul(H, result)
		if syndrome.IsZero() {
			return result, maxIter - i
		}
		result = bitFlippingAlg.Flip(syndrome, result)
	}

	syndrome.MatMul(H, result)
	if syndrome.IsZero() {
		return result, 0
	}
	return result, -1
}
