package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/esimov/countryflags/utils"
)

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Find flags by country name or code",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags, err := openFlags(cmd)
			if err != nil {
				return err
			}
			query := strings.Join(args, " ")
			found, err := flags.Search(cmd.Context(), query)
			if err != nil {
				return err
			}
			if len(found) == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(),
					utils.DecorateText(fmt.Sprintf("No flags matching %q.", query), utils.StatusMessage))
				return nil
			}

			codes := make([]string, 0, len(found))
			for _, f := range found {
				codes = append(codes, f.Code)
			}
			return printCodes(cmd, flags, codes)
		},
	}
}
