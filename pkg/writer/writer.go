// Package writer produces the result artifacts spec.md §6 defines as
// external to the core: the plain-text Cutsize/G1/G2 format, and a
// JSON rendering of the same information for the HTTP service.
package writer

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/hgpart/fm-partitioner/pkg/fm"
	"github.com/hgpart/fm-partitioner/pkg/hypergraph"
)

// WriteText writes the spec.md §6 output format:
//
//	Cutsize = <integer>
//	G1 <size[A]>
//	<cellName> <cellName> ... ;
//	G2 <size[B]>
//	<cellName> <cellName> ... ;
//
// Cells within each group are listed in ID order.
func WriteText(w io.Writer, p *fm.Partitioner) error {
	hg := p.Hypergraph()

	if _, err := fmt.Fprintf(w, "Cutsize = %d\n", p.FinalCutSize()); err != nil {
		return errors.Wrap(err, "writer: cutsize")
	}
	if err := writeGroup(w, hg, p, hypergraph.SideA, "G1"); err != nil {
		return err
	}
	if err := writeGroup(w, hg, p, hypergraph.SideB, "G2"); err != nil {
		return err
	}
	return nil
}

func writeGroup(w io.Writer, hg *hypergraph.Hypergraph, p *fm.Partitioner, side hypergraph.Side, label string) error {
	if _, err := fmt.Fprintf(w, "%s %d\n", label, p.SideSize(side)); err != nil {
		return errors.Wrapf(err, "writer: %s header", label)
	}
	hg.ForEachCell(func(c *hypergraph.Cell) {
		if c.Side() == side {
			fmt.Fprintf(w, "%s ", c.Name())
		}
	})
	if _, err := fmt.Fprint(w, ";\n"); err != nil {
		return errors.Wrapf(err, "writer: %s trailer", label)
	}
	return nil
}

// Summary is the JSON-friendly shape of a partitioning result, used
// by the HTTP service and the run-history store.
type Summary struct {
	Cutsize   int      `json:"cutsize"`
	PassCount int      `json:"passCount"`
	G1        []string `json:"g1"`
	G2        []string `json:"g2"`
}

// BuildSummary collects the final partition into a Summary.
func BuildSummary(p *fm.Partitioner) Summary {
	hg := p.Hypergraph()
	s := Summary{Cutsize: p.FinalCutSize(), PassCount: p.PassCount()}
	hg.ForEachCell(func(c *hypergraph.Cell) {
		if c.Side() == hypergraph.SideA {
			s.G1 = append(s.G1, c.Name())
		} else {
			s.G2 = append(s.G2, c.Name())
		}
	})
	return s
}

// WriteJSON marshals the result summary to w.
func WriteJSON(w io.Writer, p *fm.Partitioner) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(BuildSummary(p)); err != nil {
		return errors.Wrap(err, "writer: encode json")
	}
	return nil
}
