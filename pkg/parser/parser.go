// Package parser reads the textual hypergraph format of spec.md §6:
//
//	<balance-factor>
//	NET <netName> <cellName1> <cellName2> ... ;
//	NET <netName> ... ;
//
// This is the "external parser" spec.md's core treats as a
// collaborator: it produces a *hypergraph.Hypergraph and a balance
// factor, and the fm package never parses text itself.
package parser

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/pkg/errors"

	"github.com/hgpart/fm-partitioner/pkg/hypergraph"
)

// Result is what a successful parse hands back to the driver.
type Result struct {
	Hypergraph *hypergraph.Hypergraph
	Balance    float64
}

// ParseFile reads path, transparently decompressing it first if the
// name ends in ".bz2" — large textual hypergraphs, like the large OSM
// extracts the teacher's store decompresses, often arrive compressed.
func ParseFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "parser: open %s", path)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".bz2") {
		bz, err := bzip2.NewReader(f, nil)
		if err != nil {
			return nil, errors.Wrapf(err, "parser: bzip2 reader for %s", path)
		}
		r = bz
	}

	return Parse(r)
}

// Parse reads the balance factor line followed by zero or more NET
// lines from r. Whitespace-insensitive; each NET declaration ends
// with a bare ";" token. Cell names are declared implicitly by first
// occurrence (spec.md §6). A cell repeated within one NET's cell list
// is recorded as a second pin on that net, per spec.md §8's boundary
// behavior for duplicated cell entries.
func Parse(r io.Reader) (*Result, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	sc.Split(bufio.ScanWords)

	nextToken := func() (string, bool) {
		if sc.Scan() {
			return sc.Text(), true
		}
		return "", false
	}

	balTok, ok := nextToken()
	if !ok {
		return nil, errors.New("parser: empty input, expected balance factor")
	}
	balance, err := strconv.ParseFloat(balTok, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "parser: invalid balance factor %q", balTok)
	}

	hg := hypergraph.NewHypergraph()

	for {
		tok, ok := nextToken()
		if !ok {
			break
		}
		if tok != "NET" {
			return nil, errors.Errorf("parser: expected NET, got %q", tok)
		}

		netName, ok := nextToken()
		if !ok {
			return nil, errors.New("parser: NET missing name")
		}

		var cellIDs []hypergraph.Index
		for {
			tok, ok := nextToken()
			if !ok {
				return nil, errors.Errorf("parser: NET %q missing terminating ;", netName)
			}
			if tok == ";" {
				break
			}
			cellIDs = append(cellIDs, hg.CellID(tok))
		}
		if len(cellIDs) == 0 {
			return nil, errors.Errorf("parser: NET %q has no cells", netName)
		}
		hg.AddNet(netName, cellIDs)
	}

	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "parser: scan")
	}

	return &Result{Hypergraph: hg, Balance: balance}, nil
}
