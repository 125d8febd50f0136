package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/hgpart/fm-partitioner/pkg/fm"
	"github.com/hgpart/fm-partitioner/pkg/parser"
	"github.com/hgpart/fm-partitioner/pkg/viz"
)

func (c *CLI) newVizCmd() *cobra.Command {
	var balance float64
	var outPath string
	var format string

	cmd := &cobra.Command{
		Use:   "viz <file>",
		Short: "Partition a hypergraph file and render the result to Graphviz",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("balance") {
				balance = c.Cfg.Balance
			}
			return c.runViz(args[0], balance, outPath, format)
		},
	}

	cmd.Flags().Float64Var(&balance, "balance", 0, "balance factor r in (0,1), overrides config")
	cmd.Flags().StringVarP(&outPath, "out", "o", "partition.svg", "output image path")
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "image format: svg or png")

	return cmd
}

func (c *CLI) runViz(path string, balance float64, outPath, format string) error {
	result, err := parser.ParseFile(path)
	if err != nil {
		return err
	}
	if balance <= 0 {
		balance = result.Balance
	}

	p := fm.BuildWithLogger(result.Hypergraph, balance, c.Log)
	p.Partition()

	var img []byte
	switch format {
	case "png":
		img, err = viz.RenderPNG(p)
	default:
		img, err = viz.RenderSVG(p)
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(outPath, img, 0o644); err != nil {
		return err
	}
	c.Log.Sugar().Infof("wrote %s", outPath)
	return nil
}
