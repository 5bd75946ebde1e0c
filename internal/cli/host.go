package cli

import (
	"context"
	"fmt"
	"net"

	"LocalBoard/internal/config"
	lbnet "LocalBoard/internal/net"
	"LocalBoard/internal/ui"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func newHostCmd() *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "host",
		Short: "Host a new board and print its share link",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := configFromContext(ctx)
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			return runHost(ctx, cfg, loggerFromContext(ctx))
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", config.Default().Port, "port peers connect to (0 picks a free one)")
	return cmd
}

func runHost(ctx context.Context, cfg config.Config, logger *log.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s := newSession(cfg, logger)
	hub := lbnet.NewHub(logger.WithPrefix("hub"))
	hub.OnMessage = func(_ *lbnet.Peer, m lbnet.Message) { s.HandleRemote(m) }
	hub.Snapshot = s.Snapshot
	s.SetOutbox(hub)

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Port))
	if err != nil {
		return fmt.Errorf("listen on port %d: %w", cfg.Port, err)
	}
	port := ln.Addr().(*net.TCPAddr).Port

	go func() {
		if err := hub.Serve(ctx, ln); err != nil {
			logger.Error("host stopped", "err", err)
		}
	}()

	if cfg.Advertise {
		srv, err := lbnet.Advertise(cfg.Name, port)
		if err != nil {
			logger.Warn("mdns announcement disabled", "err", err)
		} else {
			defer func() { _ = srv.Shutdown() }()
		}
	}

	link := lbnet.ShareLink(lbnet.GetOutgoingIP(), port)
	logger.Info("hosting board", "link", link, "owner", s.Owner())

	ui.RunApp(ui.AppOptions{
		Title:     "Local Whiteboard (host)",
		Session:   s,
		ShareLink: link,
		Export:    cfg.Export,
		Logger:    logger,
		OnReady: func(b *ui.BoardWidget) {
			b.SetStatus("Hosting on " + link)
		},
	})
	return nil
}
