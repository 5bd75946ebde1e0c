package cli

import (
	"context"
	"fmt"

	"LocalBoard/internal/config"
	lbnet "LocalBoard/internal/net"
	"LocalBoard/internal/ui"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func newJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "join <share-link>",
		Short:   "Join a board hosted on the local network",
		Example: "  localboard join localboard://192.168.1.20:8888",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return runJoin(ctx, configFromContext(ctx), loggerFromContext(ctx), args[0])
		},
	}
}

func runJoin(ctx context.Context, cfg config.Config, logger *log.Logger, link string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	client, err := lbnet.Dial(ctx, link, logger.WithPrefix("client"))
	if err != nil {
		return fmt.Errorf("join %s: %w", link, err)
	}
	defer client.Close()

	s := newSession(cfg, logger)
	s.SetOutbox(client)
	s.Hello()
	logger.Info("joined board", "link", link, "local", client.LocalAddr(), "owner", s.Owner())

	ui.RunApp(ui.AppOptions{
		Title:   "Local Whiteboard",
		Session: s,
		Export:  cfg.Export,
		Logger:  logger,
		OnReady: func(b *ui.BoardWidget) {
			b.SetStatus("Connected to host as " + client.LocalAddr())
			go func() {
				err := client.Listen(ctx, s.HandleRemote)
				switch {
				case ctx.Err() != nil:
				case err != nil:
					logger.Warn("disconnected from host", "err", err)
					b.SetStatus(fmt.Sprintf("Disconnected from host: %v", err))
				default:
					logger.Info("host closed the board")
					b.SetStatus("Host closed the board")
				}
			}()
		},
	})
	return nil
}
