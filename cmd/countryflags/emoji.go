package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/esimov/countryflags"
)

func newEmojiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "emoji <code>...",
		Short: "Print the emoji flag of two-letter country codes",
		Args:  cobra.MinimumNArgs(1),
		// The emoji is computed from the code alone, no flag set is needed.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, code := range args {
				emoji, ok := countryflags.Emoji(code)
				if !ok {
					return fmt.Errorf("%q is not a two-letter country code", code)
				}
				fmt.Fprintln(cmd.OutOrStdout(), emoji)
			}
			return nil
		},
	}
}
