package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/cloverkit/cloverkit/cmd"
	errUtils "github.com/cloverkit/cloverkit/errors"
	log "github.com/cloverkit/cloverkit/pkg/logger"
)

func main() {
	// Disable timestamp in logs so output is stable.
	log.Default().SetReportTimestamp(false)

	// Use errUtils.OsExit to allow test interception.
	errUtils.OsExit(run())
}

// run executes the main application logic and returns an exit code.
// This separation allows deferred cleanup to run before os.Exit in main().
func run() int {
	// SIGINT/SIGTERM cancel the context, which stops Ant and the test command.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := cmd.Execute(ctx)
	if err == nil {
		return 0
	}

	// Format and print error using centralized formatter.
	config := errUtils.DefaultFormatterConfig()
	config.Verbose = log.GetLevel() <= log.DebugLevel
	formatted := errUtils.Format(err, config)
	os.Stderr.WriteString(formatted + "\n")

	exitCode := errUtils.GetExitCode(err)
	if ctx.Err() != nil {
		// Exit with the POSIX code for SIGINT.
		exitCode = 130
	}
	log.Debug("Exiting with exit code", "code", exitCode)
	return exitCode
}
