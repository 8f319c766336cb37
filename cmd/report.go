package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cloverkit/cloverkit/pkg/hooks"
)

// reportCmd generates the project's Clover report.
var reportCmd = &cobra.Command{
	Use:     "report",
	Aliases: []string{hooks.TaskGenerateReport},
	Short:   "Restore the original classes and generate the Clover report",
	Long: `Restore the original classes from their backups and render the enabled report
formats from the coverage database. Without a coverage database or backups there is
nothing to report and the command does nothing.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadProject(cmd)
		if err != nil {
			return err
		}
		return p.report(cmd.Context())
	},
}

func init() {
	RootCmd.AddCommand(reportCmd)
}
