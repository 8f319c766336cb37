package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cloverkit/cloverkit/pkg/sourceset"
)

// describeCmd groups the describe subcommands.
var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Show the effective configuration and the discovered source sets",
	Args:  cobra.NoArgs,
}

// describeConfigCmd prints the merged configuration.
var describeConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the final (merged) configuration",
	Long:  `This command shows the configuration after merging every cloverkit.yaml, environment variables and flags.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadProject(cmd)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		return printStructured(cmd.OutOrStdout(), format, p.cfg)
	},
}

type describedSourceSets struct {
	ProjectDir string               `yaml:"project_dir" json:"project_dir"`
	CoverageDB string               `yaml:"coverage_db" json:"coverage_db"`
	ReportsDir string               `yaml:"reports_dir" json:"reports_dir"`
	SourceSets []describedSourceSet `yaml:"source_sets" json:"source_sets"`
}

type describedSourceSet struct {
	Name         string   `yaml:"name" json:"name"`
	Test         bool     `yaml:"test" json:"test"`
	SrcDirs      []string `yaml:"src_dirs" json:"src_dirs"`
	ClassesDir   string   `yaml:"classes_dir" json:"classes_dir"`
	BackupDir    string   `yaml:"backup_dir" json:"backup_dir"`
	Sources      int      `yaml:"sources" json:"sources"`
	Instrumented bool     `yaml:"instrumented" json:"instrumented"`
}

// describeSourceSetsCmd prints the source sets cloverkit instruments.
var describeSourceSetsCmd = &cobra.Command{
	Use:     "sourcesets",
	Aliases: []string{"source-sets"},
	Short:   "Show the discovered source sets",
	Long: `This command shows every source set with its existing source dirs, classes dir and
backup dir, the number of sources matching the include patterns, and whether a backup is
pending (instrumented classes are in place).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadProject(cmd)
		if err != nil {
			return err
		}

		out := describedSourceSets{
			ProjectDir: p.paths.ProjectDir,
			CoverageDB: p.paths.CoverageDB,
			ReportsDir: p.paths.CloverReportsDir,
			SourceSets: []describedSourceSet{},
		}
		for _, d := range p.sets.All() {
			includes, excludes := p.cfg.Clover.Includes, p.cfg.Clover.Excludes
			if d.Test {
				includes, excludes = p.cfg.Clover.TestIncludes, p.cfg.Clover.TestExcludes
			}
			out.SourceSets = append(out.SourceSets, describedSourceSet{
				Name:         d.Name,
				Test:         d.Test,
				SrcDirs:      d.SrcDirs,
				ClassesDir:   d.ClassesDir,
				BackupDir:    d.BackupDir,
				Sources:      sourceset.CountSources(d, includes, excludes),
				Instrumented: d.Exists(),
			})
		}

		format, _ := cmd.Flags().GetString("format")
		return printStructured(cmd.OutOrStdout(), format, out)
	},
}

func init() {
	describeCmd.PersistentFlags().StringP("format", "f", formatYAML, "The output format: yaml or json")

	describeCmd.AddCommand(describeConfigCmd)
	describeCmd.AddCommand(describeSourceSetsCmd)
	RootCmd.AddCommand(describeCmd)
}
