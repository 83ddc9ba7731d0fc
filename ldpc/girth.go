package ldpc

import (
	"context"
	"math"
	"sync"

	mat "github.com/nathanhack/sparsemat"
	"github.com/nathanhack/threadpool"
	"github.com/sirupsen/logrus"
)

// tanner caches the adjacency of the Tanner graph so the BFS does not go back
// to the sparse matrix for every hop.
type tanner struct {
	checks [][]int // bits of each check
	bits   [][]int // checks of each bit
}

func newTanner(h mat.SparseMat) *tanner {
	rows, cols := h.Dims()
	t := &tanner{checks: make([][]int, rows), bits: make([][]int, cols)}
	for i := 0; i < rows; i++ {
		t.checks[i] = h.Row(i).NonzeroArray()
	}
	for j := 0; j < cols; j++ {
		t.bits[j] = h.Column(j).NonzeroArray()
	}
	return t
}

//Girth returns the length of the shortest cycle of the Tanner graph of d not longer
// than limit, or -1 when there is none. A limit of -1 searches without bound.
// threads specifies the number of threads to use if <=0 will use runtime.NumCPU()
func Girth(ctx context.Context, d Descriptor, limit, threads int) int {
	if limit != -1 && (limit < 4 || limit%2 != 0) {
		panic("limit == -1 or limit must be a even number >=4")
	}

	g := newTanner(ParityCheck(d))
	pool := threadpool.New(ctx, threads)
	found := -1
	mux := sync.RWMutex{}
	for i := range g.checks {
		check := i
		pool.Add(func() {
			mux.RLock()
			bound := limit
			mux.RUnlock()

			c := g.cycleFrom(check, bound)

			mux.Lock()
			if c > 0 && (c <= limit || limit == -1) {
				limit = c
				found = c
			}
			mux.Unlock()
		})
	}
	pool.Wait()

	logrus.Debugf("girth of N=%v K=%v is %v", d.CodeLen(), d.DataLen(), found)
	return found
}

// cycleFrom runs a BFS from a check node for at most limit/2 hops and returns the
// length of the first cycle it closes, or -1.
func (g *tanner) cycleFrom(check, limit int) int {
	if limit == -1 {
		limit = math.MaxInt
	}

	// node -> parent, alternating between bit and check nodes per level
	frontier := make(map[int]int)
	for _, b := range g.checks[check] {
		frontier[b] = check
	}
	if len(frontier) <= 1 {
		return -1
	}

	maxLevel := 2 * (len(g.checks) + len(g.bits))
	for level := 1; level < maxLevel && level < limit/2+1; level++ {
		toCheck := level%2 == 1
		next := make(map[int]int)
		for v, parent := range frontier {
			var adj []int
			if toCheck {
				adj = g.bits[v]
			} else {
				adj = g.checks[v]
			}
			for _, u := range adj {
				if u == parent {
					continue
				}
				if _, has := next[u]; has || (toCheck && u == check) {
					return (level + 1) * 2
				}
				next[u] = v
			}
		}
		if len(next) == 0 {
			return -1
		}
		frontier = next
	}
	return -1
}
