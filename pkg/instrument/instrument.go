// Package instrument swaps a project's compiled classes for Clover-instrumented ones.
package instrument

import (
	"context"

	errUtils "github.com/cloverkit/cloverkit/errors"
	"github.com/cloverkit/cloverkit/pkg/config"
	"github.com/cloverkit/cloverkit/pkg/engine"
	"github.com/cloverkit/cloverkit/pkg/filesystem"
	log "github.com/cloverkit/cloverkit/pkg/logger"
	"github.com/cloverkit/cloverkit/pkg/report"
	"github.com/cloverkit/cloverkit/pkg/schema"
	"github.com/cloverkit/cloverkit/pkg/sourceset"
)

// Instrumenter backs up the compiled classes of every source set and
// recompiles them with Clover instrumentation.
type Instrumenter struct {
	cfg    *schema.Configuration
	paths  config.Paths
	sets   sourceset.SourceSets
	engine engine.Engine
	dryRun bool
}

// New returns an Instrumenter for the given source sets.
func New(cfg *schema.Configuration, paths config.Paths, sets sourceset.SourceSets, eng engine.Engine, dryRun bool) *Instrumenter {
	return &Instrumenter{cfg: cfg, paths: paths, sets: sets, engine: eng, dryRun: dryRun}
}

// Run instruments the project. If Clover fails, the original classes are put back.
func (i *Instrumenter) Run(ctx context.Context) error {
	all := i.sets.All()
	if len(all) == 0 {
		log.Info("No source sets to instrument", "project_dir", i.paths.ProjectDir)
		return nil
	}

	unlock, err := filesystem.Lock(ctx, i.paths.LockFile)
	if err != nil {
		return err
	}
	defer unlock()

	tasks := Tasks(i.cfg, i.paths, i.sets)
	if i.dryRun {
		log.Info("Dry run, leaving classes in place", "source_sets", len(all))
		return i.engine.Execute(ctx, tasks)
	}

	// A backup left by an earlier run holds the only pristine copy.
	for _, d := range all {
		if filesystem.Exists(d.BackupDir) {
			log.Warn("Found classes backup from an unfinished run, discarding the current classes and restoring it",
				"source_set", d.Name, "discarded_classes_dir", d.ClassesDir, "backup_dir", d.BackupDir)
		}
	}
	if _, err := report.Restore(all); err != nil {
		return err
	}

	var moved []sourceset.Descriptor
	for _, d := range all {
		if err := filesystem.Backup(d.ClassesDir, d.BackupDir); err != nil {
			rollback(moved)
			return errUtils.Wrapf(err, errUtils.ErrBackupClasses, "back up %s", d.ClassesDir).
				WithContext("source_set", d.Name).
				WithContext("backup_dir", d.BackupDir).
				Err()
		}
		log.Debug("Backed up classes", "source_set", d.Name, "classes_dir", d.ClassesDir, "backup_dir", d.BackupDir)
		moved = append(moved, d)
	}

	if err := i.engine.Execute(ctx, tasks); err != nil {
		rollback(moved)
		return err
	}

	log.Info("Instrumented classes", "source_sets", len(all), "coverage_db", i.paths.CoverageDB)
	return nil
}

func rollback(moved []sourceset.Descriptor) {
	if _, err := report.Restore(moved); err != nil {
		log.Error("Failed to restore original classes", "error", err)
	}
}
