package ldpc

import (
	"errors"
	"fmt"
)

// ErrMalformedTable is wrapped by every structural table error.
var ErrMalformedTable = errors.New("malformed table")

//Table is the raw structural description of a quasi-cyclic parity check matrix.
// The data columns are split into groups sharing one degree. Len[g] counts the blocks
// of M consecutive columns in group g and Pos lists Deg[g] check rows for the first
// column of every block. Inside a block each following column adds q=(N-K)/M to the
// rows of the previous column, modulo N-K.
//
// LinksTotal and LinksMaxCN may be left zero and are then derived by New.
type Table struct {
	Name       string `json:"name"`
	N          int    `json:"n"`
	K          int    `json:"k"`
	M          int    `json:"m"`
	Deg        []int  `json:"deg"`
	Len        []int  `json:"len"`
	Pos        []int  `json:"pos"`
	LinksTotal int    `json:"links_total,omitempty"`
	LinksMaxCN int    `json:"links_max_cn,omitempty"`
}

func malformed(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %v", ErrMalformedTable, fmt.Sprintf(format, args...))
}

//Validate checks the shape of the table. It does not look at row collisions,
// Examine does that.
func (t *Table) Validate() error {
	if t.K <= 0 || t.N <= t.K {
		return malformed("0 < K < N required but found N=%v K=%v", t.N, t.K)
	}
	r := t.N - t.K
	if t.M <= 0 || r%t.M != 0 {
		return malformed("N-K=%v must be a positive multiple of M=%v", r, t.M)
	}
	if len(t.Deg) == 0 || len(t.Deg) != len(t.Len) {
		return malformed("one degree per group required but found %v degrees and %v lengths", len(t.Deg), len(t.Len))
	}

	blocks, positions := 0, 0
	for g := range t.Deg {
		if t.Deg[g] <= 0 || t.Len[g] <= 0 {
			return malformed("group %v has degree %v and length %v", g, t.Deg[g], t.Len[g])
		}
		blocks += t.Len[g]
		positions += t.Len[g] * t.Deg[g]
	}
	if blocks*t.M != t.K {
		return malformed("groups cover %v columns but K=%v", blocks*t.M, t.K)
	}
	if positions != len(t.Pos) {
		return malformed("groups need %v positions but found %v", positions, len(t.Pos))
	}
	for i, p := range t.Pos {
		if p < 0 || p >= r {
			return malformed("position %v at index %v outside [0,%v)", p, i, r)
		}
	}
	return nil
}
