package fm_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"golang.org/x/exp/rand"

	"github.com/hgpart/fm-partitioner/pkg/fm"
	"github.com/hgpart/fm-partitioner/pkg/hypergraph"
)

// randomHypergraph builds a connected random hypergraph of n cells and
// m nets, each net spanning 2 to maxDegree cells, seeded for
// reproducibility.
func randomHypergraph(seed uint64, n, m, maxDegree int) *hypergraph.Hypergraph {
	src := rand.New(rand.NewSource(seed))
	hg := hypergraph.NewHypergraph()
	ids := make([]hypergraph.Index, n)
	for i := 0; i < n; i++ {
		ids[i] = hg.CellID(string(rune('a'+i%26)) + string(rune('0'+i/26)))
	}
	for j := 0; j < m; j++ {
		degree := 2 + src.Intn(maxDegree-1)
		seen := map[hypergraph.Index]bool{}
		var pins []hypergraph.Index
		for len(pins) < degree {
			c := ids[src.Intn(n)]
			if seen[c] {
				continue
			}
			seen[c] = true
			pins = append(pins, c)
		}
		hg.AddNet(string(rune('A'+j%26))+string(rune('0'+j/26)), pins)
	}
	return hg
}

var _ = Describe("Partition", func() {
	DescribeTable("random hypergraphs under a range of balance factors",
		func(seed uint64, n, m, maxDegree int, r float64) {
			hg := randomHypergraph(seed, n, m, maxDegree)
			p := fm.Build(hg, r)
			p.Partition()

			By("covering every cell exactly once across both sides")
			Expect(p.SideSize(hypergraph.SideA) + p.SideSize(hypergraph.SideB)).To(Equal(n))

			By("satisfying the balance window")
			lo := (1 - r) / 2 * float64(n)
			hi := (1 + r) / 2 * float64(n)
			a := float64(p.SideSize(hypergraph.SideA))
			Expect(a).To(BeNumerically(">=", lo))
			Expect(a).To(BeNumerically("<=", hi))

			By("reporting a cut size that never exceeds the net count")
			Expect(p.FinalCutSize()).To(BeNumerically(">=", 0))
			Expect(p.FinalCutSize()).To(BeNumerically("<=", m))

			By("agreeing with a from-scratch cut recount")
			hg.RecomputeNetCounts()
			Expect(p.FinalCutSize()).To(Equal(hg.CutSize()))
		},
		Entry("small dense", uint64(1), 12, 20, 4, 0.5),
		Entry("small sparse", uint64(2), 12, 8, 3, 0.5),
		Entry("medium, tight balance", uint64(3), 60, 90, 5, 0.2),
		Entry("medium, loose balance", uint64(4), 60, 90, 5, 0.9),
		Entry("larger, wide nets", uint64(5), 150, 120, 8, 0.4),
		Entry("many small nets", uint64(6), 40, 200, 2, 0.3),
	)

	It("never increases the cut size pass over pass", func() {
		hg := randomHypergraph(42, 80, 100, 6)
		// start the passes from a balanced alternating split whose net
		// counts are current, so before is the cut the passes begin from.
		hg.ForEachCell(func(c *hypergraph.Cell) {
			c.SetSide(hypergraph.Side(c.ID() % 2))
		})
		hg.RecomputeNetCounts()
		ctl := fm.NewController(hg, 0.4, nil)

		before := hg.CutSize()
		ctl.Resume()
		after := hg.CutSize()

		Expect(after).To(BeNumerically("<=", before))
	})

	It("is deterministic for a fixed seed and balance factor", func() {
		r := 0.5
		hg1 := randomHypergraph(99, 30, 40, 4)
		p1 := fm.Build(hg1, r)
		p1.Partition()

		hg2 := randomHypergraph(99, 30, 40, 4)
		p2 := fm.Build(hg2, r)
		p2.Partition()

		Expect(p1.FinalCutSize()).To(Equal(p2.FinalCutSize()))
	})
})
