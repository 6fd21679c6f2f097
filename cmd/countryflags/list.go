package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/esimov/countryflags"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags, err := openFlags(cmd)
			if err != nil {
				return err
			}
			return printCodes(cmd, flags, flags.Codes())
		},
	}
}

// printCodes writes one "code  emoji  name" row per code.
func printCodes(cmd *cobra.Command, flags *countryflags.Flags, codes []string) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, code := range codes {
		emoji, _ := countryflags.Emoji(code)
		fmt.Fprintf(tw, "%s\t%s\t%s\n", code, emoji, flags.Name(code))
	}
	return tw.Flush()
}
