package hypergraph

import (
	"fmt"
	"io"
)

// DumpCells writes one line per cell: its name, side, lock state, gain
// and incident net names — the Go-idiom replacement for the original
// source's reportCell() cout dump, enabled by the CLI's --debug flag.
func (h *Hypergraph) DumpCells(w io.Writer) {
	h.ForEachCell(func(c *Cell) {
		fmt.Fprintf(w, "cell %s side=%s locked=%t gain=%d nets=[", c.Name(), c.Side(), c.Locked(), c.Gain())
		for i, nid := range c.Nets() {
			if i > 0 {
				fmt.Fprint(w, " ")
			}
			fmt.Fprint(w, h.nets[nid].Name())
		}
		fmt.Fprintln(w, "]")
	})
}

// DumpNets writes one line per net: its name, per-side incidence
// counts, and incident cell names — the Go-idiom replacement for the
// original source's reportNet() cout dump.
func (h *Hypergraph) DumpNets(w io.Writer) {
	h.ForEachNet(func(n *Net) {
		fmt.Fprintf(w, "net %s countA=%d countB=%d cut=%t cells=[", n.Name(), n.Count(SideA), n.Count(SideB), n.IsCut())
		for i, cid := range n.Cells() {
			if i > 0 {
				fmt.Fprint(w, " ")
			}
			fmt.Fprint(w, h.cells[cid].Name())
		}
		fmt.Fprintln(w, "]")
	})
}
