package report

import (
	"context"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/samber/lo"

	errUtils "github.com/cloverkit/cloverkit/errors"
	"github.com/cloverkit/cloverkit/pkg/config"
	"github.com/cloverkit/cloverkit/pkg/engine"
	"github.com/cloverkit/cloverkit/pkg/filesystem"
	log "github.com/cloverkit/cloverkit/pkg/logger"
	"github.com/cloverkit/cloverkit/pkg/schema"
)

// Aggregator merges subproject coverage databases into the root project's
// database and renders reports from it.
type Aggregator struct {
	cfg    *schema.Configuration
	paths  config.Paths
	engine engine.Engine
}

// NewAggregator returns an Aggregator for the root project.
func NewAggregator(cfg *schema.Configuration, paths config.Paths, eng engine.Engine) *Aggregator {
	return &Aggregator{cfg: cfg, paths: paths, engine: eng}
}

// Databases returns the existing subproject coverage databases.
func (a *Aggregator) Databases() ([]string, error) {
	rel, err := filepath.Rel(a.paths.ProjectDir, a.paths.CoverageDB)
	if err != nil {
		return nil, err
	}

	var candidates []string
	if len(a.cfg.Project.Subprojects) > 0 {
		for _, sub := range config.ResolveAll(a.paths.ProjectDir, a.cfg.Project.Subprojects) {
			candidates = append(candidates, filepath.Join(sub, rel))
		}
	} else {
		matches, err := doublestar.Glob(os.DirFS(a.paths.ProjectDir), "**/"+filepath.ToSlash(rel), doublestar.WithFilesOnly())
		if err != nil {
			return nil, err
		}
		candidates = lo.Map(matches, func(m string, _ int) string {
			return filepath.Join(a.paths.ProjectDir, filepath.FromSlash(m))
		})
	}

	dbs := lo.Filter(lo.Uniq(candidates), func(db string, _ int) bool {
		return db != a.paths.CoverageDB && filesystem.Exists(db)
	})
	slices.Sort(dbs)
	return dbs, nil
}

// Run merges and reports. Only the root project aggregates; without any
// subproject database it is a no-op.
func (a *Aggregator) Run(ctx context.Context) error {
	if !a.cfg.Project.Root {
		return errUtils.Build(errUtils.ErrNotRootProject).
			WithHint("Run `cloverkit aggregate` from the root project, or set `project.root: true`").
			WithExitCode(2).
			Err()
	}

	dbs, err := a.Databases()
	if err != nil {
		return err
	}
	if len(dbs) == 0 {
		log.Debug("Skipping Clover aggregation, no subproject coverage databases", "project_dir", a.paths.ProjectDir)
		return nil
	}

	unlock, err := filesystem.Lock(ctx, a.paths.LockFile)
	if err != nil {
		return err
	}
	defer unlock()

	merge := engine.NewTask("clover-merge").With("initString", a.paths.CoverageDB)
	for _, db := range dbs {
		merge = merge.WithChild(engine.NewTask("cloverDb").With("initString", db))
	}
	if err := a.engine.Execute(ctx, []engine.Task{merge}); err != nil {
		return err
	}
	log.Debug("Merged coverage databases", "count", len(dbs), "coverage_db", a.paths.CoverageDB)

	tasks, err := Tasks(a.cfg, a.paths, nil)
	if err != nil {
		return err
	}
	if err := execute(ctx, a.engine, tasks); err != nil {
		return err
	}

	log.Info("Generated aggregated Clover report", "subprojects", len(dbs), "reports_dir", a.paths.CloverReportsDir)
	return nil
}
