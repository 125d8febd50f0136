package hypergraph_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hgpart/fm-partitioner/pkg/hypergraph"
)

func buildTriangle(t *testing.T) *hypergraph.Hypergraph {
	t.Helper()
	hg := hypergraph.NewHypergraph()
	a := hg.CellID("a")
	b := hg.CellID("b")
	c := hg.CellID("c")
	hg.AddNet("n1", []hypergraph.Index{a, b})
	hg.AddNet("n2", []hypergraph.Index{b, c})
	hg.AddNet("n3", []hypergraph.Index{a, c})
	return hg
}

func TestCellIDImplicitDeclaration(t *testing.T) {
	hg := hypergraph.NewHypergraph()
	a1 := hg.CellID("a")
	a2 := hg.CellID("a")
	require.Equal(t, a1, a2)
	require.Equal(t, 1, hg.NumCells())
}

func TestAddNetUpdatesAdjacencyAndPinCount(t *testing.T) {
	hg := buildTriangle(t)
	require.Equal(t, 3, hg.NumCells())
	require.Equal(t, 3, hg.NumNets())
	require.Equal(t, 2, hg.MaxPinCount())

	a := hg.CellID("a")
	require.Len(t, hg.Cell(a).Nets(), 2)
}

func TestDuplicateCellInNetAddsExtraPin(t *testing.T) {
	hg := hypergraph.NewHypergraph()
	a := hg.CellID("a")
	b := hg.CellID("b")
	hg.AddNet("n1", []hypergraph.Index{a, a, b})

	require.Equal(t, 3, hg.Net(0).Degree())
	require.Equal(t, 2, hg.Cell(a).PinCount())
}

func TestRecomputeNetCountsMatchesSides(t *testing.T) {
	hg := buildTriangle(t)
	a := hg.CellID("a")
	hg.Cell(a).SetSide(hypergraph.SideB)
	hg.RecomputeNetCounts()

	n1 := hg.Net(0) // a, b
	require.Equal(t, 1, n1.Count(hypergraph.SideA))
	require.Equal(t, 1, n1.Count(hypergraph.SideB))
	require.True(t, n1.IsCut())
}

func TestCutSizeCountsStraddlingNetsOnly(t *testing.T) {
	hg := buildTriangle(t)
	// everyone starts on side A: no net is cut.
	hg.RecomputeNetCounts()
	require.Equal(t, 0, hg.CutSize())

	hg.Cell(hg.CellID("a")).SetSide(hypergraph.SideB)
	hg.RecomputeNetCounts()
	// n1 (a,b) and n3 (a,c) now straddle; n2 (b,c) does not.
	require.Equal(t, 2, hg.CutSize())
}

func TestSideOtherIsInvolution(t *testing.T) {
	require.Equal(t, hypergraph.SideA, hypergraph.SideB.Other())
	require.Equal(t, hypergraph.SideB, hypergraph.SideA.Other())
}

func TestSideSizeCountsCurrentAssignment(t *testing.T) {
	hg := buildTriangle(t)
	require.Equal(t, 3, hg.SideSize(hypergraph.SideA))
	require.Equal(t, 0, hg.SideSize(hypergraph.SideB))
}
