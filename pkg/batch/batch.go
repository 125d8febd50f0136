// Package batch runs N independent F-M partitioning trials concurrently
// and keeps the best result, using the generic worker pool the teacher
// repo carries in pkg/concurrent. Each trial is a fully serial
// fm.Partitioner run; the pool only ever parallelizes whole, independent
// trials, never the move loop inside any single run.
package batch

import (
	"golang.org/x/exp/rand"

	"github.com/hgpart/fm-partitioner/pkg/concurrent"
	"github.com/hgpart/fm-partitioner/pkg/fm"
	"github.com/hgpart/fm-partitioner/pkg/hypergraph"
)

// trial is one unit of work handed to the worker pool: a hypergraph
// clone and the seed that perturbed its initial cell ordering.
type trial struct {
	hg   *hypergraph.Hypergraph
	r    float64
	seed uint64
}

// Result is one trial's outcome.
type Result struct {
	Partitioner *fm.Partitioner
	Seed        uint64
}

// Run launches n trials of hg/r across workers goroutines and returns
// the result with the smallest final cut size. n must be >= 1. Trial i
// gets its own deterministic RNG seeded from baseSeed+i, so the whole
// batch is reproducible given the same baseSeed.
func Run(hg *hypergraph.Hypergraph, r float64, n, workers int, baseSeed uint64) *Result {
	if n < 1 {
		panic("batch: n must be >= 1")
	}
	if workers < 1 {
		workers = 1
	}

	pool := concurrent.NewWorkerPool[trial, Result](workers, n)
	pool.Start(runTrial)

	for i := 0; i < n; i++ {
		pool.AddJob(trial{
			hg:   cloneWithShuffledOrder(hg, baseSeed+uint64(i)),
			r:    r,
			seed: baseSeed + uint64(i),
		})
	}
	pool.Close()
	pool.Wait()

	var best *Result
	for res := range pool.CollectResults() {
		res := res
		if best == nil || res.Partitioner.FinalCutSize() < best.Partitioner.FinalCutSize() {
			best = &res
		}
	}
	return best
}

func runTrial(t trial) Result {
	p := fm.Build(t.hg, t.r)
	p.Partition()
	return Result{Partitioner: p, Seed: t.seed}
}

// cloneWithShuffledOrder rebuilds hg with its nets added in an order
// shuffled by an independent RNG seeded by seed, which reorders every
// cell's net adjacency list and the cells' ID order, so
// seedInitialPartition's first-net grouping differs run to run without
// touching the F-M algorithm itself. Each net keeps its own cell order.
func cloneWithShuffledOrder(hg *hypergraph.Hypergraph, seed uint64) *hypergraph.Hypergraph {
	clone := hypergraph.NewHypergraph()
	rng := rand.New(rand.NewSource(seed))

	// Rebuild nets in a shuffled order, translating cell names so the
	// new store assigns its own dense IDs (and its own cell-side
	// defaults) independent of hg's. Net order, not net contents,
	// drives seedInitialPartition's first-net grouping.
	order := rng.Perm(hg.NumNets())
	for _, nid := range order {
		n := hg.Net(hypergraph.Index(nid))
		cellIDs := make([]hypergraph.Index, n.Degree())
		for i, cid := range n.Cells() {
			cellIDs[i] = clone.CellID(hg.CellName(cid))
		}
		clone.AddNet(n.Name(), cellIDs)
	}
	return clone
}
