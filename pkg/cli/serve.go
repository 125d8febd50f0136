package cli

import (
	"context"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/hgpart/fm-partitioner/pkg/cache"
	"github.com/hgpart/fm-partitioner/pkg/history"
	"github.com/hgpart/fm-partitioner/pkg/httpapi"
)

func (c *CLI) newServeCmd() *cobra.Command {
	var addr string
	var l1Size int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expose the partitioner over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.Cfg.HTTPAddr
			}
			return c.runServe(addr, l1Size)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides config")
	cmd.Flags().IntVar(&l1Size, "cache-size", 256, "in-process LRU cache size")

	return cmd
}

func (c *CLI) runServe(addr string, l1Size int) error {
	ch, err := cache.New(l1Size, c.Cfg.RedisAddr, time.Duration(c.Cfg.CacheTTLSeconds)*time.Second)
	if err != nil {
		return err
	}

	srv := &httpapi.Server{Log: c.Log, Cache: ch}

	if c.Cfg.MongoURI != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		h, err := history.Connect(ctx, c.Cfg.MongoURI, "fmpart")
		if err != nil {
			return err
		}
		srv.History = h
	}

	c.Log.Sugar().Infof("listening on %s", addr)
	return http.ListenAndServe(addr, srv.Router())
}
