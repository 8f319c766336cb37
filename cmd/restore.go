package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cloverkit/cloverkit/pkg/filesystem"
	log "github.com/cloverkit/cloverkit/pkg/logger"
	"github.com/cloverkit/cloverkit/pkg/report"
)

// restoreCmd puts the original classes back without reporting.
var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore the original classes from their backups",
	Long:  `Move every source set's backup dir back onto its classes dir. Source sets without a backup are left alone.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadProject(cmd)
		if err != nil {
			return err
		}
		if p.dryRun {
			log.Info("Dry run, not restoring classes")
			return nil
		}

		unlock, err := filesystem.Lock(cmd.Context(), p.paths.LockFile)
		if err != nil {
			return err
		}
		defer unlock()

		n, err := report.Restore(p.sets.All())
		if err != nil {
			return err
		}
		log.Info("Restored original classes", "source_sets", n)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(restoreCmd)
}
