package config

import (
	"os"
	"path/filepath"

	"github.com/cloverkit/cloverkit/pkg/schema"
)

// Paths holds the absolute locations every task must agree on.
type Paths struct {
	ProjectDir string
	BuildDir   string
	ReportsDir string
	// CoverageDB is <buildDir>/<initString>.
	CoverageDB string
	// CloverReportsDir is <reportsDir>/clover.
	CloverReportsDir string
	WorkDir          string
	LockFile         string
}

// ResolvePaths computes Paths from the configuration. It is called when a
// task executes, never when it is registered.
func ResolvePaths(cfg *schema.Configuration) (Paths, error) {
	projectDir, err := projectDir(cfg)
	if err != nil {
		return Paths{}, err
	}

	buildDir := ResolvePath(projectDir, cfg.Project.BuildDir)
	if cfg.Project.BuildDir == "" {
		buildDir = filepath.Join(projectDir, DefaultBuildDir)
	}

	reportsDir := filepath.Join(buildDir, DefaultReportsSubdir)
	if cfg.Project.ReportsDir != "" {
		reportsDir = ResolvePath(projectDir, cfg.Project.ReportsDir)
	}

	initString := cfg.Clover.InitString
	if initString == "" {
		initString = DefaultInitString
	}
	coverageDB := filepath.Join(buildDir, initString)

	workDir := filepath.Join(buildDir, "tmp", "cloverkit")
	if cfg.Clover.Ant.WorkDir != "" {
		workDir = ResolvePath(projectDir, cfg.Clover.Ant.WorkDir)
	}

	return Paths{
		ProjectDir:       projectDir,
		BuildDir:         buildDir,
		ReportsDir:       reportsDir,
		CoverageDB:       coverageDB,
		CloverReportsDir: filepath.Join(reportsDir, CloverReportsDirName),
		WorkDir:          workDir,
		LockFile:         filepath.Join(filepath.Dir(coverageDB), LockFileName),
	}, nil
}

// projectDir resolves project.dir: relative values are taken from the
// directory of the loaded cloverkit.yaml, or the working directory.
func projectDir(cfg *schema.Configuration) (string, error) {
	dir := cfg.Project.Dir
	if dir == "" {
		dir = "."
	}
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir), nil
	}
	if cfg.CliConfigPath != "" {
		return filepath.Join(filepath.Dir(cfg.CliConfigPath), dir), nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, dir), nil
}

// ResolvePath joins path onto base unless it is already absolute.
func ResolvePath(base, path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}

// ResolveAll joins every entry onto base, skipping empty entries.
func ResolveAll(base string, paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		out = append(out, ResolvePath(base, p))
	}
	return out
}
