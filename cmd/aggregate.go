package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cloverkit/cloverkit/pkg/hooks"
)

// aggregateCmd merges subproject coverage into the root project's report.
var aggregateCmd = &cobra.Command{
	Use:     "aggregate",
	Aliases: []string{hooks.TaskAggregateReports},
	Short:   "Merge the subprojects' coverage databases and report them",
	Long: `Merge the coverage databases of the subprojects into the root project's database
and render the enabled report formats from it. Only the root project aggregates.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadProject(cmd)
		if err != nil {
			return err
		}
		return p.aggregate(cmd.Context())
	},
}

func init() {
	RootCmd.AddCommand(aggregateCmd)
}
