package fm

import (
	"github.com/hgpart/fm-partitioner/pkg/bucket"
	"github.com/hgpart/fm-partitioner/pkg/hypergraph"
)

// initGain computes gain(c) = FS(c) - TE(c) for every cell from
// scratch, per spec.md §4.3, and returns the unlocked count per side.
func initGain(hg *hypergraph.Hypergraph) (unlockedA, unlockedB int) {
	hg.ForEachCell(func(c *hypergraph.Cell) {
		c.SetGain(0)
		c.Unlock()
		s := c.Side()
		for _, nid := range c.Nets() {
			n := hg.Net(nid)
			if n.Count(s) == 1 {
				c.IncGain()
			}
			if n.Count(s.Other()) == 0 {
				c.DecGain()
			}
		}
		if s == hypergraph.SideA {
			unlockedA++
		} else {
			unlockedB++
		}
	})
	return
}

// updateGain applies the incremental two-phase rule of spec.md §4.3
// for moving cell c from its current side to the opposite side. bl is
// the bucket list to keep in sync. Returns the pre-move gain of c,
// which the caller accumulates into accGain.
//
// c is locked before any net is examined, not after: every net's
// critical-state transition would otherwise count c itself among the
// "unlocked bystander" cells whose gains it adjusts. Locking c up front
// makes every forEachUnlocked / forEachUnlockedOnSide check skip it
// uniformly. Net counts are committed net by net inside the loop; c's
// own side is flipped once, after all of its nets have been processed.
func updateGain(hg *hypergraph.Hypergraph, bl *bucket.List, c *hypergraph.Cell) int {
	preMoveGain := c.Gain()
	from := c.Side()
	to := from.Other()

	c.Lock()

	for _, nid := range c.Nets() {
		n := hg.Net(nid)

		// Phase 1: before the count update, using the to side.
		switch n.Count(to) {
		case 0:
			forEachUnlocked(hg, n, func(x *hypergraph.Cell) {
				x.IncGain()
				bl.Move(x)
			})
		case 1:
			forEachUnlockedOnSide(hg, n, to, func(x *hypergraph.Cell) {
				x.DecGain()
				bl.Move(x)
			})
		}

		n.DecCount(from)
		n.IncCount(to)

		// Phase 2: after the count update, using the from side.
		switch n.Count(from) {
		case 0:
			forEachUnlocked(hg, n, func(x *hypergraph.Cell) {
				x.DecGain()
				bl.Move(x)
			})
		case 1:
			forEachUnlockedOnSide(hg, n, from, func(x *hypergraph.Cell) {
				x.IncGain()
				bl.Move(x)
			})
		}
	}

	c.SetSide(to)
	bl.Remove(c)

	return preMoveGain
}

func forEachUnlocked(hg *hypergraph.Hypergraph, n *hypergraph.Net, fn func(*hypergraph.Cell)) {
	for _, cid := range n.Cells() {
		x := hg.Cell(cid)
		if !x.Locked() {
			fn(x)
		}
	}
}

func forEachUnlockedOnSide(hg *hypergraph.Hypergraph, n *hypergraph.Net, s hypergraph.Side, fn func(*hypergraph.Cell)) {
	for _, cid := range n.Cells() {
		x := hg.Cell(cid)
		if !x.Locked() && x.Side() == s {
			fn(x)
		}
	}
}
