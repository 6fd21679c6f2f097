package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/esimov/countryflags/swatch"
	"github.com/esimov/countryflags/utils"
)

func newSwatchCmd() *cobra.Command {
	var (
		out           string
		width, height int
		list          bool
	)

	cmd := &cobra.Command{
		Use:   "swatch <code>",
		Short: "Render the color palette of a flag as an image strip",
		Long: `Render the color palette of a flag as an image strip.

The output format is chosen by the extension of --out (` + fmt.Sprint(swatch.Extensions) + `).
PNG is written when the strip is piped to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if out != pipeName && !utils.HasExtension(out, swatch.Extensions) {
				return fmt.Errorf("unsupported output file type %q", filepath.Ext(out))
			}

			flags, err := openFlags(cmd)
			if err != nil {
				return err
			}
			flag, ok, err := flags.Get(cmd.Context(), args[0], nil)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no flag found for %q", args[0])
			}

			colors := swatch.Extract(flag.SVG)
			if list {
				for _, c := range colors {
					fmt.Fprintf(cmd.OutOrStdout(), "#%02x%02x%02x\n", c.R, c.G, c.B)
				}
				return nil
			}

			img, err := swatch.Render(colors, width, height)
			if err != nil {
				return fmt.Errorf("flag %q: %w", flag.Code, err)
			}

			w, err := openOutput(cmd, out, true)
			if err != nil {
				return err
			}
			defer w.Close()

			ext := ""
			if out != pipeName {
				ext = filepath.Ext(out)
			}
			return swatch.Encode(w, img, ext)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", pipeName, "destination image")
	cmd.Flags().IntVar(&width, "width", 300, "strip width")
	cmd.Flags().IntVar(&height, "height", 40, "strip height")
	cmd.Flags().BoolVar(&list, "list", false, "print the colors as hex values instead of rendering them")
	return cmd
}
