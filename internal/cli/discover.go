package cli

import (
	"fmt"
	"time"

	lbnet "LocalBoard/internal/net"

	"github.com/spf13/cobra"
)

func newDiscoverCmd() *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "discover",
		Short: "List boards announced on the local network",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			out := cmd.OutOrStdout()
			count := 0
			err := lbnet.Browse(cmd.Context(), timeout, func(b lbnet.Board) {
				count++
				fmt.Fprintf(out, "%s\t%s\n", b.Name, b.Link())
			})
			if err != nil {
				return err
			}
			logger.Info("discovery finished", "boards", count)
			return nil
		},
	}
	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 3*time.Second, "how long to listen for announcements")
	return cmd
}
