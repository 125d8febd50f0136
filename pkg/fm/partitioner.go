// Package fm implements the Fiduccia-Mattheyses two-way move engine:
// the gain model, the bucket-backed pass engine, and the pass
// controller that drives passes to a local optimum under a balance
// constraint (spec.md §4). Everything outside this package — parsing,
// result writing, the CLI/HTTP surface — is an external collaborator
// that only ever sees Partitioner's exported methods.
package fm

import (
	"github.com/hgpart/fm-partitioner/pkg/hypergraph"
	"go.uber.org/zap"
)

// Partitioner is the core API of spec.md §6: build, partition,
// finalCutSize, sideOf, sideSize. It owns no I/O beyond the optional
// debug trace threaded in through Build/BuildWithLogger.
type Partitioner struct {
	hg  *hypergraph.Hypergraph
	r   float64
	ctl *Controller

	cutSize int
	done    bool
}

// Build wires a parsed hypergraph and balance factor into a
// Partitioner, ready for Partition. r must be in (0,1); hg must have
// at least 2 cells and every net at least one cell (spec.md §4.7) —
// violating either is a programming error and panics rather than
// returning an error, per spec.md §7.
func Build(hg *hypergraph.Hypergraph, r float64) *Partitioner {
	return BuildWithLogger(hg, r, nil)
}

// BuildWithLogger is Build with an optional debug-level trace sink —
// a non-nil log receives one "fm pass complete" entry per pass
// (SPEC_FULL.md's SUPPLEMENTED FEATURES console trace). Passing nil is
// equivalent to Build.
func BuildWithLogger(hg *hypergraph.Hypergraph, r float64, log *zap.Logger) *Partitioner {
	if hg.NumCells() < 2 {
		panic("fm: hypergraph must have at least 2 cells")
	}
	if !(r > 0 && r < 1) {
		panic("fm: balance factor r must be in (0,1)")
	}
	hg.ForEachNet(func(n *hypergraph.Net) {
		if n.Degree() < 1 {
			panic("fm: every net must have at least one cell")
		}
	})
	return &Partitioner{hg: hg, r: r, ctl: NewController(hg, r, log)}
}

// Partition runs the pass controller to completion (spec.md §4.5) and
// records the final cut size. Safe to call only once per Partitioner.
func (p *Partitioner) Partition() {
	p.ctl.Run()
	p.cutSize = p.hg.CutSize()
	p.done = true
}

// FinalCutSize returns the number of cut nets after Partition has run.
func (p *Partitioner) FinalCutSize() int {
	if !p.done {
		panic("fm: FinalCutSize called before Partition")
	}
	return p.cutSize
}

// SideOf returns the side cell id currently occupies.
func (p *Partitioner) SideOf(id hypergraph.Index) hypergraph.Side {
	return p.hg.Cell(id).Side()
}

// SideSize returns the number of cells on side s.
func (p *Partitioner) SideSize(s hypergraph.Side) int {
	return p.hg.SideSize(s)
}

// PassCount returns the number of F-M passes the controller ran.
func (p *Partitioner) PassCount() int { return p.ctl.PassCount() }

// Hypergraph exposes the underlying store, mainly so writer/viz
// collaborators can walk cell names and net adjacency after the run.
func (p *Partitioner) Hypergraph() *hypergraph.Hypergraph { return p.hg }
