package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"LocalBoard/internal/export"
	"LocalBoard/internal/session"

	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var (
		format        string
		width, height int
	)
	cmd := &cobra.Command{
		Use:   "export <board.json> <output>",
		Short: "Render a saved board to PDF or PNG",
		Long: `Render a board saved from the File menu to a PDF or PNG file.

The format is taken from the output extension unless --format is given.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			cfg := configFromContext(cmd.Context())
			in, out := args[0], args[1]

			f, err := os.Open(in) //nolint:gosec // path comes from the command line
			if err != nil {
				return fmt.Errorf("open board: %w", err)
			}
			objs, err := session.ReadBoard(f)
			_ = f.Close()
			if err != nil {
				return err
			}

			if format == "" {
				format = strings.TrimPrefix(strings.ToLower(filepath.Ext(out)), ".")
			}
			if !cmd.Flags().Changed("width") {
				width = cfg.Export.Width
			}
			if !cmd.Flags().Changed("height") {
				height = cfg.Export.Height
			}

			switch format {
			case "pdf":
				err = export.PDF(out, objs)
			case "png":
				err = export.PNG(out, objs, width, height)
			default:
				return fmt.Errorf("unknown export format %q: want pdf or png", format)
			}
			if err != nil {
				return err
			}
			logger.Info("exported board", "strokes", len(objs), "format", format, "path", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: pdf or png")
	cmd.Flags().IntVar(&width, "width", 0, "PNG width in pixels (default from config)")
	cmd.Flags().IntVar(&height, "height", 0, "PNG height in pixels (default from config)")
	return cmd
}
