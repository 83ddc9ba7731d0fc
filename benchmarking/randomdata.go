package benchmarking

import (
	mat "github.com/nathanhack/sparsemat"
	"golang.org/x/exp/rand"
	mat2 "gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// RandomMessage creates a random message of length len drawn from src.
func RandomMessage(src rand.Source, len int) mat.SparseVector {
	r := rand.New(src)
	message := mat.CSRVec(len)
	for i := 0; i < len; i++ {
		message.Set(i, r.Intn(2))
	}
	return message
}

// RandomNoiseBPSK adds gaussian noise with standard deviation sigma drawn from src to a copy of bpsk.
func RandomNoiseBPSK(src rand.Source, bpsk mat2.Vector, sigma float64) *mat2.VecDense {
	noise := distuv.Normal{Mu: 0, Sigma: sigma, Src: src}
	result := mat2.NewVecDense(bpsk.Len(), nil)
	for i := 0; i < bpsk.Len(); i++ {
		result.SetVec(i, noise.Rand())
	}
	result.AddVec(result, bpsk)
	return result
}
