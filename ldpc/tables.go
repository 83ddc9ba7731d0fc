package ldpc

import (
	"fmt"
	"sort"
)

//Tiny is a rate 1/2 code small enough to trace by hand: N=20, K=10, M=5, q=2.
var Tiny = Table{
	Name: "tiny",
	N:    20,
	K:    10,
	M:    5,
	Deg:  []int{3},
	Len:  []int{2},
	Pos: []int{
		0, 3, 7,
		1, 4, 8,
	},
}

//Short is a rate 1/2 code with N=720, K=360, M=36, q=10 and two degree groups.
// Its Tanner graph has girth 8.
var Short = Table{
	Name: "short",
	N:    720,
	K:    360,
	M:    36,
	Deg:  []int{4, 3},
	Len:  []int{2, 8},
	Pos: []int{
		239, 108, 57, 216,
		7, 304, 198, 99,
		166, 61, 64,
		158, 73, 99,
		310, 171, 342,
		347, 70, 202,
		296, 154, 107,
		342, 29, 325,
		163, 235, 121,
		183, 250, 355,
	},
}

var registry = map[string]Table{
	Tiny.Name:  Tiny,
	Short.Name: Short,
}

//Tables returns the names of the built-in tables in sorted order.
func Tables() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

//Lookup builds the built-in code with the given name.
func Lookup(name string) (*Code, error) {
	t, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown table %q, expected one of %v", name, Tables())
	}
	return New(t)
}
