// Package report restores the original classes and renders Clover reports,
// for one project or merged across subprojects.
package report

import (
	"context"

	errUtils "github.com/cloverkit/cloverkit/errors"
	"github.com/cloverkit/cloverkit/pkg/config"
	"github.com/cloverkit/cloverkit/pkg/engine"
	"github.com/cloverkit/cloverkit/pkg/filesystem"
	log "github.com/cloverkit/cloverkit/pkg/logger"
	"github.com/cloverkit/cloverkit/pkg/schema"
	"github.com/cloverkit/cloverkit/pkg/sourceset"
)

// Generator restores a project's classes and renders its reports.
type Generator struct {
	cfg    *schema.Configuration
	paths  config.Paths
	sets   sourceset.SourceSets
	engine engine.Engine
	dryRun bool
}

// NewGenerator returns a Generator for one project. In a dry run the classes
// are left in place and only the report build files are rendered.
func NewGenerator(cfg *schema.Configuration, paths config.Paths, sets sourceset.SourceSets, eng engine.Engine, dryRun bool) *Generator {
	return &Generator{cfg: cfg, paths: paths, sets: sets, engine: eng, dryRun: dryRun}
}

// Ready reports whether the coverage database and every classes and backup
// dir exist. The reason is empty when ready.
func (g *Generator) Ready() (bool, string) {
	if !filesystem.Exists(g.paths.CoverageDB) {
		return false, "coverage database does not exist"
	}
	for _, d := range g.sets.All() {
		if !d.Exists() {
			return false, "classes or backup dir of source set " + d.Name + " does not exist"
		}
	}
	return true, ""
}

// Run generates the reports. Missing prerequisites make it a no-op.
func (g *Generator) Run(ctx context.Context) error {
	if ok, reason := g.Ready(); !ok {
		log.Debug("Skipping Clover report", "reason", reason, "coverage_db", g.paths.CoverageDB)
		return nil
	}

	unlock, err := filesystem.Lock(ctx, g.paths.LockFile)
	if err != nil {
		return err
	}
	defer unlock()

	if g.dryRun {
		log.Info("Dry run, leaving instrumented classes and backups in place", "source_sets", len(g.sets.All()))
	} else if err := g.restoreClasses(); err != nil {
		return err
	}

	tasks, err := Tasks(g.cfg, g.paths, g.sets.TestSrcDirs())
	if err != nil {
		return err
	}
	if err := execute(ctx, g.engine, tasks); err != nil {
		return err
	}

	log.Info("Generated Clover report", "reports_dir", g.paths.CloverReportsDir)
	return nil
}

func (g *Generator) restoreClasses() error {
	all := g.sets.All()
	for _, d := range all {
		if err := filesystem.ClearDir(d.ClassesDir); err != nil {
			return errUtils.Wrapf(err, errUtils.ErrClearClasses, "clear %s", d.ClassesDir).
				WithTitle("Restore failed").
				WithExplanation("The instrumented classes could not be removed, so the original classes were not put back.").
				WithHint("Run `cloverkit restore` once the directory is writable").
				WithContext("source_set", d.Name).
				Err()
		}
	}
	_, err := Restore(all)
	return err
}
