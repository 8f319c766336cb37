package cmd

import (
	"github.com/spf13/cobra"
)

// instrumentCmd instruments the compiled classes without running anything.
var instrumentCmd = &cobra.Command{
	Use:   "instrument",
	Short: "Back up the compiled classes and replace them with instrumented ones",
	Long: `Move every source set's classes dir to its backup dir and recompile the sources
with Clover instrumentation. Run 'cloverkit report' or 'cloverkit restore' afterwards
to put the original classes back.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadProject(cmd)
		if err != nil {
			return err
		}
		return p.instrument(cmd.Context())
	},
}

func init() {
	RootCmd.AddCommand(instrumentCmd)
}
