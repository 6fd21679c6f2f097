package main

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/esimov/countryflags"
	"github.com/esimov/countryflags/internal/config"
)

const HelpBanner = `
┌─┐┌─┐┬ ┬┌┐┌┌┬┐┬─┐┬ ┬  ┌─┐┬  ┌─┐┌─┐┌─┐
│  │ ││ ││││ │ ├┬┘└┬┘  ├┤ │  ├─┤│ ┬└─┐
└─┘└─┘└─┘┘└┘ ┴ ┴└─ ┴   └  ┴─┘┴ ┴└─┘└─┘

Country flag lookup, resize and export tool.
    Version: %s
`

// pipeName is the file name that indicates stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version = "dev"

var (
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:           "countryflags",
	Short:         "Look up, resize and export country flags",
	Long:          fmt.Sprintf(HelpBanner, Version),
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
		cfg, err = config.Load(viper.GetViper(), cfgFile)
		return err
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ./countryflags.yaml or ~/.config/countryflags/countryflags.yaml)")
	pf.StringP("source", "s", "", "directory of <code>.svg files or base URL (default: bundled flags)")
	pf.String("names", "", "file with \"code,name\" lines replacing the bundled names")
	pf.Bool("lazy", false, "load the flags on first use instead of up front")
	pf.IntP("conc", "j", runtime.NumCPU(), "number of flags loaded concurrently")

	_ = viper.BindPFlag("source", pf.Lookup("source"))
	_ = viper.BindPFlag("names", pf.Lookup("names"))
	_ = viper.BindPFlag("lazy", pf.Lookup("lazy"))
	_ = viper.BindPFlag("workers", pf.Lookup("conc"))

	rootCmd.AddCommand(
		newGetCmd(),
		newListCmd(),
		newSearchCmd(),
		newEmojiCmd(),
		newExportCmd(),
		newSwatchCmd(),
		newServeCmd(),
	)
}

// openFlags builds the flag set selected by the configuration.
func openFlags(cmd *cobra.Command) (*countryflags.Flags, error) {
	return cfg.Open(cmd.Context())
}

// sizeOptions returns nil when neither dimension was requested.
func sizeOptions(width, height float64) *countryflags.SizeOptions {
	if width == 0 && height == 0 {
		return nil
	}
	return &countryflags.SizeOptions{Width: width, Height: height}
}

// openOutput returns the destination writer. Binary output is refused on a terminal.
func openOutput(cmd *cobra.Command, dst string, binary bool) (io.WriteCloser, error) {
	if dst != pipeName {
		f, err := os.Create(dst)
		if err != nil {
			return nil, fmt.Errorf("unable to create the output file: %w", err)
		}
		return f, nil
	}
	if binary && term.IsTerminal(int(os.Stdout.Fd())) {
		return nil, fmt.Errorf("`-` should be used with a pipe for stdout")
	}
	return nopCloser{cmd.OutOrStdout()}, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
