package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cloverkit/cloverkit/pkg/config"
	"github.com/cloverkit/cloverkit/pkg/coverage"
)

// summaryCmd prints the totals of the XML report.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the coverage totals from the Clover XML report",
	Long: `Read <reportsDir>/clover/clover.xml and print the total percentage coverage per package.
With --fail-under (or clover.target_percentage) the command fails when the total is lower.`,
	Example: "cloverkit summary --fail-under 80\ncloverkit summary --format json",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadProject(cmd)
		if err != nil {
			return err
		}

		file, _ := cmd.Flags().GetString("file")
		if file == "" {
			file = filepath.Join(p.paths.CloverReportsDir, config.XMLReportFileName)
		}

		target, err := failUnder(cmd, p.cfg.Clover.TargetPercentage)
		if err != nil {
			return err
		}

		r, err := coverage.Load(file)
		if err != nil {
			return err
		}
		s := coverage.Summarize(r)

		format, _ := cmd.Flags().GetString("format")
		if format == formatTable {
			fmt.Fprintln(cmd.OutOrStdout(), s.Render(isTerminal(cmd.OutOrStdout()), target))
		} else if err := printStructured(cmd.OutOrStdout(), format, s); err != nil {
			return err
		}

		if target > 0 {
			return s.Check(target)
		}
		return nil
	},
}

// failUnder returns the --fail-under value, falling back to the configured target.
func failUnder(cmd *cobra.Command, configured string) (float64, error) {
	value, _ := cmd.Flags().GetString("fail-under")
	if value == "" {
		value = configured
	}
	if value == "" {
		return 0, nil
	}
	return config.ParseTargetPercentage(value)
}

func init() {
	summaryCmd.Flags().String("file", "", "Clover XML report to read (default <reportsDir>/clover/clover.xml)")
	summaryCmd.Flags().String("fail-under", "", "Fail when the total percentage coverage is lower, e.g. 80 or 80%")
	summaryCmd.Flags().StringP("format", "f", formatTable, "The output format: table, yaml or json")

	RootCmd.AddCommand(summaryCmd)
}
