package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/cloverkit/cloverkit/pkg/config"
	"github.com/cloverkit/cloverkit/pkg/engine"
	"github.com/cloverkit/cloverkit/pkg/hooks"
	"github.com/cloverkit/cloverkit/pkg/instrument"
	log "github.com/cloverkit/cloverkit/pkg/logger"
	"github.com/cloverkit/cloverkit/pkg/report"
	"github.com/cloverkit/cloverkit/pkg/schema"
	"github.com/cloverkit/cloverkit/pkg/sourceset"
)

// newEngine builds the Clover engine. Tests replace it.
var newEngine = func(cfg *schema.Configuration, paths config.Paths, dryRun bool) (engine.Engine, error) {
	return engine.NewAntEngine(cfg, paths, dryRun)
}

// project is the configuration of one invocation resolved at execution time.
type project struct {
	cfg    *schema.Configuration
	paths  config.Paths
	sets   sourceset.SourceSets
	dryRun bool
}

// loadProject reads the configuration, configures logging from it, and
// discovers the source sets.
func loadProject(cmd *cobra.Command) (*project, error) {
	cfg, err := provider()
	if err != nil {
		return nil, err
	}
	if err := log.Configure(cfg.Logs); err != nil {
		return nil, err
	}

	paths, err := config.ResolvePaths(cfg)
	if err != nil {
		return nil, err
	}
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	sets := sourceset.Discover(cfg, paths)
	log.Debug("Discovered source sets", "main", len(sets.Main), "test", len(sets.Test), "project_dir", paths.ProjectDir)

	return &project{cfg: cfg, paths: paths, sets: sets, dryRun: dryRun}, nil
}

func (p *project) engine() (engine.Engine, error) {
	return newEngine(p.cfg, p.paths, p.dryRun)
}

func (p *project) instrument(ctx context.Context) error {
	eng, err := p.engine()
	if err != nil {
		return err
	}
	return instrument.New(p.cfg, p.paths, p.sets, eng, p.dryRun).Run(ctx)
}

func (p *project) report(ctx context.Context) error {
	eng, err := p.engine()
	if err != nil {
		return err
	}
	return report.NewGenerator(p.cfg, p.paths, p.sets, eng, p.dryRun).Run(ctx)
}

func (p *project) aggregate(ctx context.Context) error {
	eng, err := p.engine()
	if err != nil {
		return err
	}
	return report.NewAggregator(p.cfg, p.paths, eng).Run(ctx)
}

// lifecycle registers the Clover hooks. Each action loads the project when
// it runs, so nothing is read from the configuration before it is needed.
func lifecycle(cmd *cobra.Command) *hooks.Hooks {
	action := func(name string, run func(*project, context.Context) error) hooks.Action {
		return hooks.Action{Name: name, Run: func(ctx context.Context) error {
			p, err := loadProject(cmd)
			if err != nil {
				return err
			}
			return run(p, ctx)
		}}
	}
	return hooks.Lifecycle(
		action("instrument", (*project).instrument),
		action("report", (*project).report),
		action("aggregate", (*project).aggregate),
	)
}
