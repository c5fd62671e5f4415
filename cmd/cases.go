package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/newhook/loggy/internal/cases"
)

func newCasesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cases",
		Short: "List the failure cases loggy recognizes",
		Args:  cobra.NoArgs,
		RunE:  runCases,
	}
}

func runCases(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for i, c := range cases.Registry() {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "%s\n", c.Title)
		fmt.Fprintf(out, "  pattern:     %s\n", c.Pattern.String())
		fmt.Fprintf(out, "  description: %s\n", c.Description)
	}
	return nil
}
