package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	errUtils "github.com/cloverkit/cloverkit/errors"
	"github.com/cloverkit/cloverkit/internal/exec"
	"github.com/cloverkit/cloverkit/pkg/config"
	"github.com/cloverkit/cloverkit/pkg/filesystem"
	log "github.com/cloverkit/cloverkit/pkg/logger"
	"github.com/cloverkit/cloverkit/pkg/schema"
)

// RunFunc executes a process. It matches exec.ExecuteShellCommand.
type RunFunc func(ctx context.Context, command string, args []string, dir string, env []string, dryRun bool, redirectStdError string) error

// AntEngine renders tasks into a build file and runs it with Ant.
type AntEngine struct {
	executable      string
	args            []string
	env             []string
	classpath       []string
	licenseLocation string
	projectDir      string
	workDir         string
	stderrFile      string
	dryRun          bool

	seq atomic.Int64
	run RunFunc
}

// NewAntEngine builds an AntEngine from the configuration.
func NewAntEngine(cfg *schema.Configuration, paths config.Paths, dryRun bool) (*AntEngine, error) {
	classpath := config.ResolveAll(paths.ProjectDir, cfg.Clover.Classpath)
	if len(classpath) == 0 {
		return nil, errUtils.Build(errUtils.ErrMissingCloverClasspath).
			WithHint("Set `clover.classpath` to the Clover jar(s) in cloverkit.yaml").
			WithExitCode(2).
			Err()
	}

	executable := cfg.Clover.Ant.Executable
	if executable == "" {
		executable = config.DefaultAntExecutable
	}

	var env []string
	if cfg.Clover.JavaHome != "" {
		env = append(env, "JAVA_HOME="+config.ResolvePath(paths.ProjectDir, cfg.Clover.JavaHome))
	}
	if cfg.Clover.Ant.Home != "" {
		env = append(env, "ANT_HOME="+config.ResolvePath(paths.ProjectDir, cfg.Clover.Ant.Home))
	}

	return &AntEngine{
		executable:      executable,
		args:            cfg.Clover.Ant.Args,
		env:             env,
		classpath:       classpath,
		licenseLocation: config.ResolvePath(paths.ProjectDir, cfg.Clover.LicenseLocation),
		projectDir:      paths.ProjectDir,
		workDir:         paths.WorkDir,
		stderrFile:      config.ResolvePath(paths.ProjectDir, cfg.Clover.Ant.StderrFile),
		dryRun:          dryRun,
		run:             exec.ExecuteShellCommand,
	}, nil
}

// Execute writes one build file holding tasks and runs its target.
func (e *AntEngine) Execute(ctx context.Context, tasks []Task) error {
	if len(tasks) == 0 {
		return nil
	}

	data, err := Render(BuildFile{
		Classpath:       e.classpath,
		LicenseLocation: e.licenseLocation,
		BaseDir:         e.projectDir,
		Tasks:           tasks,
	})
	if err != nil {
		return err
	}

	buildFile := filepath.Join(e.workDir, fmt.Sprintf("%s-%d.xml", tasks[0].Name, e.seq.Add(1)))
	if err := filesystem.WriteFileAtomic(buildFile, data, 0o644); err != nil {
		return errUtils.Wrapf(err, errUtils.ErrRenderBuildFile, "write %s", buildFile).Err()
	}
	log.Debug("Rendered Ant build file", "file", buildFile, "tasks", len(tasks))
	log.Trace(string(data))

	if e.stderrFile != "" {
		if err := os.MkdirAll(filepath.Dir(e.stderrFile), 0o755); err != nil {
			return errUtils.Wrapf(err, errUtils.ErrEngineInvocation, "create %s", filepath.Dir(e.stderrFile)).Err()
		}
	}

	args := append(append([]string{}, e.args...), "-f", buildFile, TargetName)
	if err := e.run(ctx, e.executable, args, e.projectDir, e.env, e.dryRun, e.stderrFile); err != nil {
		return errUtils.Wrapf(err, errUtils.ErrEngineInvocation, "ant %s", tasks[0].Name).
			WithTitle("Clover failed").
			WithExplanation(fmt.Sprintf("Ant ran %s with tasks %s and reported a failure.", filepath.Base(buildFile), taskNames(tasks))).
			WithHint("Check the Ant output above; rerun with `--logs-level=Trace` to print the build file").
			WithContext("build_file", buildFile).
			WithContext("ant", e.executable).
			WithContext("stderr_file", e.stderrFile).
			WithExitCode(errUtils.GetExitCode(err)).
			Err()
	}
	return nil
}

func taskNames(tasks []Task) string {
	names := make([]string, len(tasks))
	for i, t := range tasks {
		names[i] = t.Name
	}
	return strings.Join(names, ",")
}
