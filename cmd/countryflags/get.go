package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/esimov/countryflags"
)

func newGetCmd() *cobra.Command {
	var (
		width, height float64
		dataURL       bool
		out           string
	)

	cmd := &cobra.Command{
		Use:   "get <code>",
		Short: "Print the SVG markup of a flag",
		Long: `Print the SVG markup of a flag, optionally resized.

When only --width is given the height is half of it, when only --height is
given the width is twice of it. --width wins when both are set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags, err := openFlags(cmd)
			if err != nil {
				return err
			}
			flag, ok, err := flags.Get(cmd.Context(), args[0], sizeOptions(width, height))
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no flag found for %q", args[0])
			}

			w, err := openOutput(cmd, out, false)
			if err != nil {
				return err
			}
			defer w.Close()

			if dataURL {
				_, err = fmt.Fprintln(w, countryflags.DataURL(flag.SVG))
			} else {
				_, err = io.WriteString(w, flag.SVG)
			}
			return err
		},
	}

	cmd.Flags().Float64Var(&width, "width", 0, "new width")
	cmd.Flags().Float64Var(&height, "height", 0, "new height")
	cmd.Flags().BoolVar(&dataURL, "data-url", false, "print a base64 data URI instead of the markup")
	cmd.Flags().StringVarP(&out, "out", "o", pipeName, "destination file")
	return cmd
}
