package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/esimov/countryflags"
	"github.com/esimov/countryflags/utils"
)

func newExportCmd() *cobra.Command {
	var (
		dst           string
		width, height float64
	)

	cmd := &cobra.Command{
		Use:   "export [code...]",
		Short: "Write flags as <code>.svg files into a directory",
		Long:  "Write the given flags, or every flag when no code is given, as <code>.svg files into a directory.",
		RunE: func(cmd *cobra.Command, args []string) error {
			flags, err := openFlags(cmd)
			if err != nil {
				return err
			}

			stderr := cmd.ErrOrStderr()
			spinnerText := fmt.Sprintf("%s %s",
				utils.DecorateText("⚑ FLAGS", utils.StatusMessage),
				utils.DecorateText("are being exported...", utils.DefaultMessage))
			spinner := utils.NewSpinner(stderr, spinnerText, 100*time.Millisecond, true)

			if term.IsTerminal(int(os.Stderr.Fd())) {
				spinner.Start()
			}

			total := len(args)
			if total == 0 {
				total = flags.Len()
			}
			var written, failed int
			start := time.Now()
			err = flags.Export(cmd.Context(), countryflags.ExportOps{
				Dst:     dst,
				Codes:   args,
				Size:    sizeOptions(width, height),
				Workers: cfg.Workers,
			}, func(res countryflags.ExportResult) {
				if res.Err != nil {
					failed++
					// The spinner would overwrite the error lines.
					spinner.Stop()
					fmt.Fprintln(stderr, utils.DecorateText(fmt.Sprintf("✘ %s: %v", res.Code, res.Err), utils.ErrorMessage))
					return
				}
				written++
				spinner.Update(fmt.Sprintf("%s %d/%d", spinnerText, written, total))
			})
			spinner.Stop()

			fmt.Fprintf(stderr, "%s %d flag(s) written to %s in %s\n",
				utils.DecorateText("✔", utils.SuccessMessage),
				written, dst,
				utils.DecorateText(utils.FormatTime(time.Since(start)), utils.SuccessMessage),
			)
			if err != nil {
				return fmt.Errorf("%d flag(s) failed, first error: %w", failed, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dst, "dir", "d", "flags", "destination directory")
	cmd.Flags().Float64Var(&width, "width", 0, "new width")
	cmd.Flags().Float64Var(&height, "height", 0, "new height")
	return cmd
}
