package reduce

import "fmt"

//Exclusive writes into out[i] the combination of every in[j] with j != i, keeping
// the left to right order of the operands so op does not need to be commutative.
// It runs one suffix pass and one prefix pass, using out as the suffix scratch.
// A single input yields identity. in and out must not overlap.
func Exclusive[T any](in, out []T, op func(a, b T) T, identity T) {
	n := len(in)
	if len(out) < n {
		panic(fmt.Sprintf("output length >= %v required but found %v", n, len(out)))
	}
	switch n {
	case 0:
		return
	case 1:
		out[0] = identity
		return
	}

	// suffixes: out[i] = in[i] op ... op in[n-1]
	out[n-1] = in[n-1]
	for i := n - 2; i > 0; i-- {
		out[i] = op(in[i], out[i+1])
	}

	out[0] = out[1]
	prefix := in[0]
	for i := 1; i < n-1; i++ {
		out[i] = op(prefix, out[i+1])
		prefix = op(prefix, in[i])
	}
	out[n-1] = prefix
}
