package fm

import (
	"bufio"
	"encoding/gob"
	"io"
	"os"

	"github.com/golang/snappy"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/hgpart/fm-partitioner/pkg/hypergraph"
)

// checkpoint is the serializable slice of state a long run (millions
// of cells, per spec.md §7) needs to resume from mid-pass: every
// cell's current side and the controller's pass count. Gain, lock and
// bucket-list state are cheap to recompute (initGain / beginPass), so
// they are not part of the snapshot.
type checkpoint struct {
	PassCount int
	Sides     []hypergraph.Side
}

// SaveCheckpoint snapshots the controller's progress to w, snappy-
// compressed, mirroring gazette's codecs.NewCodecWriter use of the
// same codec for wire/record compression.
func (ctl *Controller) SaveCheckpoint(w io.Writer) error {
	sw := snappy.NewBufferedWriter(w)
	defer sw.Close()

	ck := checkpoint{PassCount: ctl.passCount}
	ctl.hg.ForEachCell(func(c *hypergraph.Cell) {
		ck.Sides = append(ck.Sides, c.Side())
	})

	if err := gob.NewEncoder(sw).Encode(ck); err != nil {
		return errors.Wrap(err, "fm: encode checkpoint")
	}
	return sw.Flush()
}

// SaveCheckpointFile is SaveCheckpoint against a path, creating or
// truncating the file.
func (ctl *Controller) SaveCheckpointFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "fm: create checkpoint %s", path)
	}
	defer f.Close()
	bw := bufio.NewWriter(f)
	if err := ctl.SaveCheckpoint(bw); err != nil {
		return err
	}
	return bw.Flush()
}

// LoadCheckpoint restores cell sides and the pass counter from r onto
// hg, returning a Controller ready for Resume (Run would reseed and
// discard the restored sides). The caller is
// responsible for ensuring hg is the exact same hypergraph the
// checkpoint was taken from — cell count and ID assignment must match.
func LoadCheckpoint(r io.Reader, hg *hypergraph.Hypergraph, balanceFactor float64, log *zap.Logger) (*Controller, error) {
	sr := snappy.NewReader(r)

	var ck checkpoint
	if err := gob.NewDecoder(sr).Decode(&ck); err != nil {
		return nil, errors.Wrap(err, "fm: decode checkpoint")
	}
	if len(ck.Sides) != hg.NumCells() {
		return nil, errors.Errorf("fm: checkpoint has %d cells, hypergraph has %d", len(ck.Sides), hg.NumCells())
	}

	hg.ForEachCell(func(c *hypergraph.Cell) {
		c.SetSide(ck.Sides[c.ID()])
	})
	hg.RecomputeNetCounts()

	ctl := NewController(hg, balanceFactor, log)
	ctl.passCount = ck.PassCount
	return ctl, nil
}
