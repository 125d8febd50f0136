package fm

import (
	"github.com/hgpart/fm-partitioner/pkg/bucket"
	"github.com/hgpart/fm-partitioner/pkg/hypergraph"
	"go.uber.org/zap"
)

// Controller drives the pass engine to completion (spec.md §4.5):
// repeat passes until one of them fails to find positive cumulative
// gain, rolling back to the best prefix found at the end of every
// pass. A pass without positive gain has an empty best prefix, so its
// moves are all undone and the cut it started from is kept.
type Controller struct {
	hg  *hypergraph.Hypergraph
	r   float64
	log *zap.Logger

	passCount int
}

// NewController builds a controller for hg with balance factor r. hg
// is assumed well-formed per spec.md §4.7 (N>=2, every net has >=1
// cell, 0<r<1) — violations are the caller's bug, not ours, and are
// not checked here (Build/BuildWithLogger assert them). log may be
// nil; the controller never does I/O to satisfy its own correctness,
// only to surface the per-pass trace the original source printed to
// stdout (SPEC_FULL.md's SUPPLEMENTED FEATURES).
func NewController(hg *hypergraph.Hypergraph, r float64, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{hg: hg, r: r, log: log}
}

// Run seeds an initial partition, repairs it to balance, then drives
// passes until no improving pass exists. It panics if the repair loop
// cannot reach a balanced partition (spec.md §7, "infeasible balance").
func (ctl *Controller) Run() {
	seedInitialPartition(ctl.hg)
	repairBalance(ctl.hg, ctl.r)
	ctl.runPasses()
}

// Resume drives passes to completion starting from the cell sides
// already present on hg, skipping the initial seed/repair step — the
// continuation half of LoadCheckpoint's save/restore pair, for
// resuming a long run interrupted mid-pass (spec.md §7's millions-of-
// cells case).
func (ctl *Controller) Resume() {
	ctl.runPasses()
}

func (ctl *Controller) runPasses() {
	for {
		bl, st := ctl.beginPass()
		if ck := ctl.log.Check(zap.DebugLevel, "fm bucket state at pass start"); ck != nil {
			ck.Write(zap.String("dump", bl.Dump(ctl.hg.CellName)))
		}
		runPass(ctl.hg, bl, st, ctl.r)
		ctl.passCount++

		ctl.log.Debug("fm pass complete",
			zap.Int("pass", ctl.passCount),
			zap.Int("maxAccGain", st.maxAccGain),
			zap.Int("accGain", st.accGain),
			zap.Int("moves", st.moveNum),
		)

		rollbackToBestPrefix(ctl.hg, st)
		if st.maxAccGain <= 0 {
			break
		}
	}
}

// PassCount returns how many F-M passes this controller has run so
// far, across Run and Resume calls and including any pass count
// restored by LoadCheckpoint.
func (ctl *Controller) PassCount() int { return ctl.passCount }

// beginPass resets locks and gains, rebuilds the bucket list, and
// returns a fresh passState — the per-pass reset of spec.md §4.5.
func (ctl *Controller) beginPass() (*bucket.List, *passState) {
	unlockedA, unlockedB := initGain(ctl.hg)
	p := ctl.hg.MaxPinCount()
	bl := bucket.New(ctl.hg.NumCells(), p)
	ctl.hg.ForEachCell(func(c *hypergraph.Cell) {
		bl.Insert(c)
	})
	return bl, newPassState(ctl.hg, unlockedA, unlockedB)
}

// rollbackToBestPrefix undoes moveStack[bestMoveNum:] by flipping each
// cell's side back, then recomputes every net's counts from scratch
// from the now-current cell sides (spec.md §4.4 — cheaper and simpler
// than undoing per-net counts move by move).
func rollbackToBestPrefix(hg *hypergraph.Hypergraph, st *passState) {
	for i := len(st.moveStack) - 1; i >= st.bestMoveNum; i-- {
		c := hg.Cell(st.moveStack[i])
		c.SetSide(c.Side().Other())
	}
	hg.RecomputeNetCounts()
}

// seedInitialPartition groups cells by first-seen net, alternating
// sides at each net boundary — any deterministic seeding that the
// repair loop can balance is acceptable per spec.md §4.5.
func seedInitialPartition(hg *hypergraph.Hypergraph) {
	side := hypergraph.SideA
	var prevNet hypergraph.Index
	havePrev := false

	hg.ForEachCell(func(c *hypergraph.Cell) {
		nets := c.Nets()
		if len(nets) == 0 {
			c.SetSide(side)
			return
		}
		first := nets[0]
		if havePrev && first != prevNet {
			side = side.Other()
		}
		prevNet = first
		havePrev = true
		c.SetSide(side)
	})

	hg.RecomputeNetCounts()
}

// repairBalance flips cells from the larger side to the smaller one
// until the balance window of spec.md §3 is satisfied, the repair
// loop spec.md §4.5 and §7 require the controller to always run.
// Panics if n is too small for r to admit any balanced split at all
// (spec.md §7's "infeasible balance" is otherwise undetectable without
// an unbounded loop).
func repairBalance(hg *hypergraph.Hypergraph, r float64) {
	n := hg.NumCells()
	lo := (1 - r) / 2 * float64(n)
	hi := (1 + r) / 2 * float64(n)

	balanced := func() bool {
		a := float64(hg.SideSize(hypergraph.SideA))
		b := float64(hg.SideSize(hypergraph.SideB))
		return a >= lo && a <= hi && b >= lo && b <= hi
	}

	attempts := 0
	for !balanced() {
		attempts++
		if attempts > n+1 {
			panic("fm: initial partition cannot be balanced for the given r")
		}
		a := hg.SideSize(hypergraph.SideA)
		b := hg.SideSize(hypergraph.SideB)
		bigger, smaller := hypergraph.SideA, hypergraph.SideB
		if b > a {
			bigger, smaller = hypergraph.SideB, hypergraph.SideA
		}
		diff := a - b
		if diff < 0 {
			diff = -diff
		}

		hg.ForEachCell(func(c *hypergraph.Cell) {
			if diff <= 0 {
				return
			}
			if c.Side() == bigger {
				c.SetSide(smaller)
				diff -= 2
			}
		})
	}
	hg.RecomputeNetCounts()
}
