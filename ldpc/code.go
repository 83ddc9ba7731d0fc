package ldpc

import (
	"github.com/sirupsen/logrus"
)

//BitIterator walks the data columns of a code in order. First resets to column 0,
// Next advances one column; Pos holds the check rows of the current column and is
// only valid until the next call.
type BitIterator interface {
	First()
	Next()
	Deg() int
	Pos() []int
}

//Descriptor is the read-only structure of a code. Parity column i is always
// linked to check rows i and i+1 on top of what Bits enumerates.
type Descriptor interface {
	CodeLen() int
	DataLen() int
	GroupLen() int
	LinksTotal() int
	LinksMaxCN() int
	MaxBitDeg() int
	Bits() BitIterator
}

//Code is the Descriptor built from a Table. It is immutable and safe to share
// between goroutines; every consumer takes its own iterator from Bits.
type Code struct {
	table      Table
	r, q       int
	maxDeg     int
	linksTotal int
	linksMaxCN int
}

//New validates the table and derives the link counts it does not declare.
// Declared counts may only be larger than the derived ones.
func New(t Table) (*Code, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	c := &Code{
		table: t,
		r:     t.N - t.K,
		q:     (t.N - t.K) / t.M,
	}
	for _, d := range t.Deg {
		if d > c.maxDeg {
			c.maxDeg = d
		}
	}

	total, maxCN := c.countLinks()
	c.linksTotal, c.linksMaxCN = total, maxCN
	if t.LinksTotal > 0 {
		if t.LinksTotal < total {
			return nil, malformed("declared %v links but the table has %v", t.LinksTotal, total)
		}
		c.linksTotal = t.LinksTotal
	}
	if t.LinksMaxCN > 0 {
		if t.LinksMaxCN < maxCN {
			return nil, malformed("declared at most %v links per check but the table has %v", t.LinksMaxCN, maxCN)
		}
		c.linksMaxCN = t.LinksMaxCN
	}

	logrus.Debugf("code %v: N=%v K=%v M=%v q=%v links=%v max links per check=%v",
		t.Name, t.N, t.K, t.M, c.q, c.linksTotal, c.linksMaxCN)
	return c, nil
}

// countLinks walks the table once. Every check carries two accumulator links
// except check 0 which only has one.
func (c *Code) countLinks() (total, maxCN int) {
	perCheck := make([]int, c.r)
	perCheck[0] = 1
	for i := 1; i < c.r; i++ {
		perCheck[i] = 2
	}
	total = 2*c.r - 1

	it := c.Bits()
	it.First()
	for j := 0; j < c.table.K; j++ {
		for _, i := range it.Pos() {
			perCheck[i]++
		}
		total += it.Deg()
		it.Next()
	}

	for _, n := range perCheck {
		if n > maxCN {
			maxCN = n
		}
	}
	return
}

func (c *Code) Name() string     { return c.table.Name }
func (c *Code) Table() Table     { return c.table }
func (c *Code) CodeLen() int     { return c.table.N }
func (c *Code) DataLen() int     { return c.table.K }
func (c *Code) GroupLen() int    { return c.table.M }
func (c *Code) LinksTotal() int  { return c.linksTotal }
func (c *Code) LinksMaxCN() int  { return c.linksMaxCN }
func (c *Code) MaxBitDeg() int   { return c.maxDeg }
func (c *Code) CodeRate() float64 { return float64(c.table.K) / float64(c.table.N) }

func (c *Code) Bits() BitIterator {
	return &cursor{c: c, pos: make([]int, 0, c.maxDeg)}
}

type cursor struct {
	c      *Code
	pos    []int
	ptr    int
	grpNum int
	grpLen int
	grpCnt int
	rowCnt int
}

func (it *cursor) First() {
	it.ptr = 0
	it.grpNum = 0
	it.grpLen = 0
	it.grpCnt = 0
	it.rowCnt = 0
	it.pos = it.pos[:0]
	it.nextBlock()
}

func (it *cursor) Next() {
	it.rowCnt++
	if it.rowCnt < it.c.table.M {
		for i := range it.pos {
			it.pos[i] += it.c.q
			if it.pos[i] >= it.c.r {
				it.pos[i] -= it.c.r
			}
		}
		return
	}
	it.nextBlock()
	it.rowCnt = 0
}

// nextBlock loads the rows of the first column of the next block, moving on to
// the next group once the current one is used up. Past the last column the
// iterator is empty.
func (it *cursor) nextBlock() {
	t := &it.c.table
	deg := len(it.pos)
	if it.grpCnt >= it.grpLen {
		if it.grpNum >= len(t.Len) {
			it.pos = it.pos[:0]
			return
		}
		it.grpLen = t.Len[it.grpNum]
		deg = t.Deg[it.grpNum]
		it.grpCnt = 0
		it.grpNum++
	}
	it.pos = append(it.pos[:0], t.Pos[it.ptr:it.ptr+deg]...)
	it.ptr += deg
	it.grpCnt++
}

func (it *cursor) Deg() int   { return len(it.pos) }
func (it *cursor) Pos() []int { return it.pos }
