// Package viz renders a finished bipartition as a Graphviz diagram:
// cells colored by side, cut nets highlighted, the "pretty-printing"
// layer spec.md §1 keeps out of the core engine entirely.
package viz

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
	"github.com/pkg/errors"

	"github.com/hgpart/fm-partitioner/pkg/fm"
	"github.com/hgpart/fm-partitioner/pkg/hypergraph"
)

const (
	colorA   = "#9ecae1"
	colorB   = "#fdae6b"
	colorCut = "#de2d26"
	colorNet = "#999999"
)

// ToDOT renders p's hypergraph as a bipartite DOT graph: cell nodes
// colored by final side, net nodes colored red when cut and grey
// otherwise, with edges from each net to its incident cells.
func ToDOT(p *fm.Partitioner) string {
	hg := p.Hypergraph()

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=sfdp;\n")
	buf.WriteString("  node [style=filled, fontsize=10];\n\n")

	hg.ForEachCell(func(c *hypergraph.Cell) {
		color := colorA
		if c.Side() == hypergraph.SideB {
			color = colorB
		}
		fmt.Fprintf(&buf, "  %q [shape=box, fillcolor=%q, label=%q];\n", cellNode(c.ID()), color, c.Name())
	})

	buf.WriteString("\n")
	hg.ForEachNet(func(n *hypergraph.Net) {
		color := colorNet
		if n.IsCut() {
			color = colorCut
		}
		fmt.Fprintf(&buf, "  %q [shape=point, fillcolor=%q];\n", netNode(n.ID()), color)
		for _, cid := range n.Cells() {
			fmt.Fprintf(&buf, "  %q -- %q [color=%q];\n", netNode(n.ID()), cellNode(cid), color)
		}
	})

	buf.WriteString("}\n")
	return buf.String()
}

func cellNode(id hypergraph.Index) string { return fmt.Sprintf("c%d", id) }
func netNode(id hypergraph.Index) string  { return fmt.Sprintf("n%d", id) }

// RenderSVG renders p's bipartition to SVG.
func RenderSVG(p *fm.Partitioner) ([]byte, error) {
	return render(p, graphviz.SVG)
}

// RenderPNG renders p's bipartition to PNG.
func RenderPNG(p *fm.Partitioner) ([]byte, error) {
	return render(p, graphviz.PNG)
}

func render(p *fm.Partitioner, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "viz: init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(ToDOT(p)))
	if err != nil {
		return nil, errors.Wrap(err, "viz: parse dot")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, errors.Wrap(err, "viz: render")
	}
	return buf.Bytes(), nil
}
