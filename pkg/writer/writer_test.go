package writer_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hgpart/fm-partitioner/pkg/fm"
	"github.com/hgpart/fm-partitioner/pkg/hypergraph"
	"github.com/hgpart/fm-partitioner/pkg/writer"
)

func buildPartitioned(t *testing.T) *fm.Partitioner {
	t.Helper()
	hg := hypergraph.NewHypergraph()
	ids := make([]hypergraph.Index, 6)
	for i := range ids {
		ids[i] = hg.CellID(string(rune('a' + i)))
	}
	for i := range ids {
		hg.AddNet(string(rune('A'+i)), []hypergraph.Index{ids[i], ids[(i+1)%len(ids)]})
	}
	p := fm.Build(hg, 0.5)
	p.Partition()
	return p
}

func TestWriteTextProducesCutsizeAndGroups(t *testing.T) {
	p := buildPartitioned(t)
	var buf bytes.Buffer
	require.NoError(t, writer.WriteText(&buf, p))

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "Cutsize = "))
	require.Contains(t, out, "G1 ")
	require.Contains(t, out, "G2 ")
}

func TestWriteTextGroupSizesMatchSideSizes(t *testing.T) {
	p := buildPartitioned(t)
	var buf bytes.Buffer
	require.NoError(t, writer.WriteText(&buf, p))

	lines := strings.Split(buf.String(), "\n")
	require.Equal(t, fmt.Sprintf("G1 %d", p.SideSize(hypergraph.SideA)), lines[1])
	require.Equal(t, fmt.Sprintf("G2 %d", p.SideSize(hypergraph.SideB)), lines[3])
}

func TestBuildSummaryPartitionsAllCells(t *testing.T) {
	p := buildPartitioned(t)
	s := writer.BuildSummary(p)

	require.Equal(t, p.FinalCutSize(), s.Cutsize)
	require.Equal(t, p.Hypergraph().NumCells(), len(s.G1)+len(s.G2))
}

func TestWriteJSONRoundTrips(t *testing.T) {
	p := buildPartitioned(t)
	var buf bytes.Buffer
	require.NoError(t, writer.WriteJSON(&buf, p))

	var s writer.Summary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &s))
	require.Equal(t, p.FinalCutSize(), s.Cutsize)
}
