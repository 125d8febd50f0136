package fm

import (
	"math"

	"github.com/hgpart/fm-partitioner/pkg/bucket"
	"github.com/hgpart/fm-partitioner/pkg/hypergraph"
)

// passState holds everything that is reset at the start of every pass:
// size/unlocked counts, cumulative gain, the best-prefix bookmark, and
// the move stack (spec.md §3, "Partition state").
type passState struct {
	size        [2]int
	unlocked    [2]int
	accGain     int
	maxAccGain  int
	bestMoveNum int
	moveNum     int
	moveStack   []hypergraph.Index
}

func newPassState(hg *hypergraph.Hypergraph, unlockedA, unlockedB int) *passState {
	st := &passState{
		unlocked:  [2]int{unlockedA, unlockedB},
		moveStack: make([]hypergraph.Index, 0, hg.NumCells()),
	}
	hg.ForEachCell(func(c *hypergraph.Cell) {
		st.size[c.Side()]++
	})
	return st
}

// balanced reports whether moving a cell away from side s is
// admissible under the strict-inequality balance window of spec.md
// §4.4: |size[s] - size[¬s] - 2| < r*N.
func (st *passState) balanced(s hypergraph.Side, r float64, n int) bool {
	delta := st.size[s] - st.size[s.Other()] - 2
	return math.Abs(float64(delta)) < r*float64(n)
}

func (st *passState) commit(hg *hypergraph.Hypergraph, bl *bucket.List, c *hypergraph.Cell) {
	from := c.Side()
	preMoveGain := updateGain(hg, bl, c)

	st.accGain += preMoveGain
	st.moveStack = append(st.moveStack, c.ID())

	st.size[from]--
	st.size[from.Other()]++
	st.unlocked[from]--

	if st.accGain > st.maxAccGain {
		st.maxAccGain = st.accGain
		st.bestMoveNum = st.moveNum + 1
	}
	st.moveNum++
}

// runPass drives a single F-M pass to completion (spec.md §4.4): it
// repeatedly selects the admissible highest-gain candidate and commits
// it, until every cell has moved or no admissible move remains on
// either side.
func runPass(hg *hypergraph.Hypergraph, bl *bucket.List, st *passState, r float64) {
	n := hg.NumCells()

	for st.moveNum < n {
		switch {
		case st.unlocked[hypergraph.SideA] == 0:
			candidate, have := bl.FindMaxOnSide(hypergraph.SideB)
			if !have || !st.balanced(hypergraph.SideB, r, n) {
				return
			}
			st.commit(hg, bl, hg.Cell(candidate))

		case st.unlocked[hypergraph.SideB] == 0:
			candidate, have := bl.FindMaxOnSide(hypergraph.SideA)
			if !have || !st.balanced(hypergraph.SideA, r, n) {
				return
			}
			st.commit(hg, bl, hg.Cell(candidate))

		default:
			maxA, haveA := bl.FindMaxOnSide(hypergraph.SideA)
			maxB, haveB := bl.FindMaxOnSide(hypergraph.SideB)
			if !haveA || !haveB {
				return
			}
			gainA := hg.Cell(maxA).Gain()
			gainB := hg.Cell(maxB).Gain()

			// Ties go to side A, per spec.md §4.4. If the preferred
			// side's candidate violates balance, fall back to the
			// other side's candidate before giving up on this pass.
			primary, secondary := maxB, maxA
			primarySide, secondarySide := hypergraph.SideB, hypergraph.SideA
			if gainA >= gainB {
				primary, secondary = maxA, maxB
				primarySide, secondarySide = hypergraph.SideA, hypergraph.SideB
			}

			switch {
			case st.balanced(primarySide, r, n):
				st.commit(hg, bl, hg.Cell(primary))
			case st.balanced(secondarySide, r, n):
				st.commit(hg, bl, hg.Cell(secondary))
			default:
				return
			}
		}
	}
}
