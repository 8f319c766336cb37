package cmd

import (
	"al.essio.dev/pkg/shellescape"
	"github.com/spf13/cobra"

	errUtils "github.com/cloverkit/cloverkit/errors"
	"github.com/cloverkit/cloverkit/internal/exec"
	"github.com/cloverkit/cloverkit/pkg/hooks"
	log "github.com/cloverkit/cloverkit/pkg/logger"
	"github.com/cloverkit/cloverkit/pkg/report"
)

// testCmd runs the project's tests between instrumentation and reporting.
var testCmd = &cobra.Command{
	Use:   "test [-- <command>...]",
	Short: "Instrument, run the tests, then restore the classes and report coverage",
	Long: `Instrument the compiled classes, run the test command, then restore the original
classes and generate the requested reports. The test command comes after '--' or
from 'project.test_command' and runs in the project directory.`,
	Example: "cloverkit test -- ./gradlew test -x compileJava\ncloverkit test --aggregate -- mvn -o surefire:test",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadProject(cmd)
		if err != nil {
			return err
		}

		command := p.cfg.Project.TestCommand
		if len(args) > 0 {
			command = shellescape.QuoteCommand(args)
		}
		if command == "" {
			return errUtils.Build(errUtils.ErrMissingTestCommand).
				WithHint("Pass the command after '--', e.g. `cloverkit test -- ./gradlew test`, or set `project.test_command`").
				WithExitCode(2).
				Err()
		}

		plan := hooks.NewPlan(requestedTasks(cmd)...)
		h := lifecycle(cmd)
		ctx := cmd.Context()

		if err := h.RunAll(ctx, hooks.BeforeTest, plan); err != nil {
			return err
		}

		log.Info("Running tests", "command", command)
		if testErr := exec.ExecuteShell(ctx, command, "test", p.paths.ProjectDir, nil, p.dryRun); testErr != nil {
			if _, err := report.Restore(p.sets.All()); err != nil {
				log.Error("Failed to restore original classes", "error", err)
			}
			return errUtils.Wrap(testErr, errUtils.ErrTestCommandFailed, errUtils.ErrTestCommandFailed.Error()).
				WithContext("command", command).
				WithExitCode(errUtils.GetExitCode(testErr)).
				Err()
		}

		return h.RunAll(ctx, hooks.AfterTest, plan)
	},
}

func requestedTasks(cmd *cobra.Command) []string {
	var tasks []string
	if ok, _ := cmd.Flags().GetBool("report"); ok {
		tasks = append(tasks, hooks.TaskGenerateReport)
	}
	if ok, _ := cmd.Flags().GetBool("aggregate"); ok {
		tasks = append(tasks, hooks.TaskAggregateReports)
	}
	return tasks
}

func init() {
	testCmd.Flags().Bool("report", true, "Instrument and generate the Clover report ("+hooks.TaskGenerateReport+")")
	testCmd.Flags().Bool("aggregate", false, "Merge subproject coverage and report it ("+hooks.TaskAggregateReports+"), root project only")

	RootCmd.AddCommand(testCmd)
}
