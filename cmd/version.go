package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cloverkit/cloverkit/pkg/version"
)

// versionCmd prints the version.
var versionCmd = &cobra.Command{
	Use:     "version",
	Short:   "Display the version of cloverkit you are running",
	Example: "cloverkit version\ncloverkit version --format json",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		if format == "" {
			fmt.Fprintln(cmd.OutOrStdout(), version.Get())
			return nil
		}
		return printStructured(cmd.OutOrStdout(), format, version.Get())
	},
}

func init() {
	versionCmd.Flags().StringP("format", "f", "", "Specify the output format: yaml or json")

	RootCmd.AddCommand(versionCmd)
}
