package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pdrpinto/pathfinder/internal/vizweb"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the step-through web visualizer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	return cmd
}

func (a *app) serve(ctx context.Context, addr string) error {
	if addr == "" {
		addr = a.cfg.Server.Addr
	}
	server := vizweb.New(*a.cfg, a.observer)
	slog.Info("serving visualizer", "addr", addr)
	return server.ListenAndServe(ctx, addr)
}
