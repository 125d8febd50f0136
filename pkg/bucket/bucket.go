// Package bucket implements the gain-indexed doubly-linked bucket
// lists the F-M pass engine uses for O(1) insert/remove and an
// amortized-O(1) find-max over the unlocked cells of one side.
//
// Design note (see spec.md §9): rather than a pointer-linked node per
// cell, the list lives as two parallel prev/next index arrays sized
// over every cell plus a fixed set of sentinels, one per (side, gain)
// bucket. A cell's own dense ID doubles as its node index, so there is
// no separate node object to allocate or free.
package bucket

import (
	"fmt"

	"github.com/xlab/treeprint"

	"github.com/hgpart/fm-partitioner/pkg/hypergraph"
)

const none = -1

// List is a pair of gain-indexed doubly-linked lists, one per side.
type List struct {
	n int // number of real cell nodes
	p int // P, max pin count for this pass

	prev []int
	next []int

	// maxGain[s] caches the highest gain with a non-empty bucket on
	// side s, or caches nothing useful if stale — FindMaxOnSide always
	// re-validates it before trusting it, so staleness only costs a
	// few wasted probes, never correctness.
	maxGain [2]int
}

// New builds an empty bucket list sized for n cells and gains in
// [-p, +p]. Call Insert for every cell once to populate it.
func New(n, p int) *List {
	total := n + 2*(2*p+1)
	l := &List{
		n:    n,
		p:    p,
		prev: make([]int, total),
		next: make([]int, total),
	}
	for i := range l.prev {
		l.prev[i] = none
		l.next[i] = none
	}
	l.maxGain[hypergraph.SideA] = -p - 1
	l.maxGain[hypergraph.SideB] = -p - 1
	return l
}

func (l *List) sentinel(side hypergraph.Side, gain int) int {
	width := 2*l.p + 1
	return l.n + int(side)*width + (gain + l.p)
}

// Insert attaches c to the head of its (side, gain) bucket.
func (l *List) Insert(c *hypergraph.Cell) {
	node := int(c.ID())
	s := l.sentinel(c.Side(), c.Gain())

	l.next[node] = l.next[s]
	l.prev[node] = s
	if l.next[s] != none {
		l.prev[l.next[s]] = node
	}
	l.next[s] = node

	if c.Gain() > l.maxGain[c.Side()] {
		l.maxGain[c.Side()] = c.Gain()
	}
}

// Remove unlinks c from whatever bucket it currently occupies. The
// node's own prev/next pointers are enough to splice it out; the
// caller does not need to know which bucket c was in.
func (l *List) Remove(c *hypergraph.Cell) {
	node := int(c.ID())
	p, nx := l.prev[node], l.next[node]
	if p != none {
		l.next[p] = nx
	}
	if nx != none {
		l.prev[nx] = p
	}
	l.prev[node] = none
	l.next[node] = none
}

// Move is Remove followed by Insert, for when c's gain changes while
// its side stays fixed.
func (l *List) Move(c *hypergraph.Cell) {
	l.Remove(c)
	l.Insert(c)
}

// FindMaxOnSide returns the cell ID at the head of the highest
// non-empty bucket on side s, and false if side s has no unlocked
// cells. Tie-break is the most-recently-inserted cell, which is
// exactly the head of the list since Insert always attaches at the
// head (spec.md §4.2).
func (l *List) FindMaxOnSide(s hypergraph.Side) (hypergraph.Index, bool) {
	gain := l.maxGain[s]
	if gain > l.p {
		gain = l.p
	}
	for ; gain >= -l.p; gain-- {
		head := l.next[l.sentinel(s, gain)]
		if head != none {
			l.maxGain[s] = gain
			return hypergraph.Index(head), true
		}
	}
	l.maxGain[s] = -l.p - 1
	return 0, false
}

// Dump renders the live bucket contents as a side -> gain -> cell
// tree, the structured replacement for the original source's
// reportBList() nested cout loops, used by the CLI's --debug flag.
// cellName looks up a cell's display name by ID.
func (l *List) Dump(cellName func(hypergraph.Index) string) string {
	tree := treeprint.New()
	for _, s := range [2]hypergraph.Side{hypergraph.SideA, hypergraph.SideB} {
		sideBranch := tree.AddBranch(s.String())
		for gain := l.p; gain >= -l.p; gain-- {
			head := l.next[l.sentinel(s, gain)]
			if head == none {
				continue
			}
			gainBranch := sideBranch.AddBranch(fmt.Sprintf("gain %d", gain))
			for node := head; node != none; node = l.next[node] {
				gainBranch.AddNode(cellName(hypergraph.Index(node)))
			}
		}
	}
	return tree.String()
}
