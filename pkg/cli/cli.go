// Package cli implements the fmpart command-line interface: partition
// (run the core engine against a hypergraph file), serve (expose it
// over HTTP), and viz (render a finished partition to Graphviz).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hgpart/fm-partitioner/pkg/config"
	"github.com/hgpart/fm-partitioner/pkg/logger"
)

// CLI holds state shared by every subcommand.
type CLI struct {
	Log *zap.Logger
	Cfg config.Config
}

// Execute builds the root command and runs it against os.Args.
func Execute() error {
	var cfgPath string
	var debug bool

	c := &CLI{}

	root := &cobra.Command{
		Use:          "fmpart",
		Short:        "fmpart partitions a hypergraph into two balanced halves",
		Long:         "fmpart runs the Fiduccia-Mattheyses heuristic to split a hypergraph's cells into two balanced sides while minimizing the number of nets that straddle both.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if debug {
				cfg.LogLevel = -1 // zapcore.DebugLevel
			}
			os.Setenv("LOG_LEVEL", fmt.Sprint(cfg.LogLevel))
			os.Setenv("LOG_TIME_FORMAT", cfg.LogTimeFormat)

			log, err := logger.New()
			if err != nil {
				return err
			}
			c.Log = log
			c.Cfg = cfg
			return nil
		},
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to a TOML config file")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug-level diagnostics (bucket dumps, per-pass trace)")

	root.AddCommand(c.newPartitionCmd(&debug))
	root.AddCommand(c.newServeCmd())
	root.AddCommand(c.newVizCmd())

	return root.Execute()
}
