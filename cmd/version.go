package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gomdm/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gomdm",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "gomdm v%s\n", version.Version)
		fmt.Fprintln(out, "Continuous Beam Analysis by the Moment Distribution Method")
		if verbose {
			fmt.Fprintf(out, "Commit: %s\nBuilt:  %s\n", version.GitCommit, version.BuildTime)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
