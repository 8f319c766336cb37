package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/cloverkit/cloverkit/pkg/config"
	log "github.com/cloverkit/cloverkit/pkg/logger"
	"github.com/cloverkit/cloverkit/pkg/schema"
)

// newProvider builds the configuration provider from the global flags.
// Tests replace it.
var newProvider = config.NewProvider

// provider is set by the root command before any subcommand runs.
var provider config.Provider

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "cloverkit",
	Short: "Clover code coverage for JVM builds",
	Long: `cloverkit instruments compiled classes with Clover before the tests run, restores
the original classes afterwards, and renders XML, JSON, HTML and PDF coverage reports,
optionally merged across subprojects.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Do not print usage for errors once flags are parsed.
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true

		info := cliInfo(cmd)
		if info.LogsLevel != "" || info.LogsFile != "" {
			if err := log.Configure(schema.Logs{Level: defaultString(info.LogsLevel, log.LogLevelInfo), File: defaultString(info.LogsFile, "/dev/stderr")}); err != nil {
				return err
			}
		}
		provider = newProvider(info)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command with ctx.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute(ctx context.Context) error {
	return RootCmd.ExecuteContext(ctx)
}

func cliInfo(cmd *cobra.Command) config.CliInfo {
	flags := cmd.Flags()
	configPath, _ := flags.GetString("config")
	projectDir, _ := flags.GetString("project-dir")
	logsLevel, _ := flags.GetString("logs-level")
	logsFile, _ := flags.GetString("logs-file")
	return config.CliInfo{
		ConfigPath: configPath,
		ProjectDir: projectDir,
		LogsLevel:  logsLevel,
		LogsFile:   logsFile,
	}
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func init() {
	RootCmd.PersistentFlags().String("config", "", "Path to a cloverkit.yaml file, or a directory containing one")
	RootCmd.PersistentFlags().StringP("project-dir", "C", "", "Project directory. Relative paths in the configuration are resolved against it")
	RootCmd.PersistentFlags().String("logs-level", "", "Logs level. Supported log levels are Trace, Debug, Info, Warning, Off")
	RootCmd.PersistentFlags().String("logs-file", "", "The file to write logs to, including '/dev/stdout', '/dev/stderr' and '/dev/null'")
	RootCmd.PersistentFlags().Bool("dry-run", false, "Render the Ant build files and log the commands without running Ant or moving classes")
}
