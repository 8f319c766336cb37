package exec

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"al.essio.dev/pkg/shellescape"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	log "github.com/cloverkit/cloverkit/pkg/logger"
)

// ExecuteShellCommand prints and executes the provided command with args and flags.
// Stdout and stderr stream to the terminal unless redirectStdError names a file.
func ExecuteShellCommand(
	ctx context.Context,
	command string,
	args []string,
	dir string,
	env []string,
	dryRun bool,
	redirectStdError string,
) error {
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Env = append(os.Environ(), env...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	if redirectStdError == "" {
		cmd.Stderr = os.Stderr
	} else {
		f, err := os.OpenFile(redirectStdError, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}

		defer func(f *os.File) {
			if err := f.Close(); err != nil {
				log.Warn("Failed to close stderr redirect", "file", redirectStdError, "error", err)
			}
		}(f)

		cmd.Stderr = f
	}

	log.Debug("Executing", "command", shellescape.QuoteCommand(append([]string{command}, args...)), "dir", dir)

	if dryRun {
		return nil
	}

	return cmd.Run()
}

// ExecuteShell runs a shell script with the built-in POSIX interpreter, so
// test commands behave the same on every platform.
func ExecuteShell(
	ctx context.Context,
	command string,
	name string,
	dir string,
	env []string,
	dryRun bool,
) error {
	log.Debug("Executing", "command", command, "dir", dir)

	if dryRun {
		return nil
	}

	return shellRunner(ctx, command, name, dir, env, os.Stdout)
}

// shellRunner uses mvdan.cc/sh/v3's parser and interpreter to run a shell script and divert its stdout.
func shellRunner(ctx context.Context, command string, name string, dir string, env []string, out io.Writer) error {
	parser, err := syntax.NewParser().Parse(strings.NewReader(command), name)
	if err != nil {
		return err
	}

	environ := append(os.Environ(), env...)
	runner, err := interp.New(
		interp.Dir(dir),
		interp.Env(expand.ListEnviron(environ...)),
		interp.StdIO(os.Stdin, out, os.Stderr),
	)
	if err != nil {
		return err
	}

	return runner.Run(ctx, parser)
}
