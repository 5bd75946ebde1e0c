package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"LocalBoard/internal/config"
	lbnet "LocalBoard/internal/net"

	"github.com/spf13/cobra"
)

var version = "dev"

// SetVersion sets the version printed by --version.
func SetVersion(v string) {
	version = v
}

// Execute runs the localboard command line until the command returns or
// ctx is cancelled.
func Execute(ctx context.Context) error {
	return NewRootCommand(os.Stderr).ExecuteContext(ctx)
}

// NewRootCommand builds the command tree. Logs go to logOut.
func NewRootCommand(logOut io.Writer) *cobra.Command {
	var (
		verbose    bool
		configPath string
		envPath    string
	)

	root := &cobra.Command{
		Use:   "localboard [share-link]",
		Short: "LocalBoard is a shared whiteboard for the local network",
		Long: `LocalBoard hosts or joins a whiteboard shared over the LAN.

With no arguments it hosts a new board and prints a share link.
Given a localboard:// link it joins that board.`,
		Version:      version,
		SilenceUsage: true,
		Args:         cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv(envPath); err != nil {
				return fmt.Errorf("load env: %w", err)
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := newLogger(logOut, levelFor(cfg.LogLevel, verbose))
			ctx := withConfig(withLogger(cmd.Context(), logger), cfg)
			cmd.SetContext(ctx)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if len(args) == 1 {
				if !strings.HasPrefix(args[0], lbnet.LinkScheme) {
					return fmt.Errorf("not a share link: %q", args[0])
				}
				return runJoin(ctx, configFromContext(ctx), loggerFromContext(ctx), args[0])
			}
			return runHost(ctx, configFromContext(ctx), loggerFromContext(ctx))
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "path to the YAML config file")
	root.PersistentFlags().StringVar(&envPath, "env", ".env", "path to an optional .env file")

	root.AddCommand(newHostCmd())
	root.AddCommand(newJoinCmd())
	root.AddCommand(newDiscoverCmd())
	root.AddCommand(newExportCmd())

	return root
}
