package cmd

import (
	"fmt"

	"bioskop-finder-cli/config"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Args:  cobra.NoArgs,
		// version needs neither config nor catalog
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {},
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s", config.AppName, Version)
			if Commit != "none" && Commit != "" {
				fmt.Fprintf(out, " (%s)", Commit)
			}
			fmt.Fprintln(out)
		},
	}
}
