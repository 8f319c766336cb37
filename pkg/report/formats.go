package report

import (
	"context"
	"path/filepath"

	"github.com/cloverkit/cloverkit/pkg/config"
	"github.com/cloverkit/cloverkit/pkg/engine"
	"github.com/cloverkit/cloverkit/pkg/schema"
)

// Format is one clover-report output type.
type Format struct {
	Type    string
	Enabled func(schema.Report) bool
	// Outfile is relative to <reportsDir>/clover.
	Outfile string
}

// Formats lists the clover-report outputs in emission order.
var Formats = []Format{
	{Type: "xml", Enabled: func(r schema.Report) bool { return r.XML }, Outfile: config.XMLReportFileName},
	{Type: "json", Enabled: func(r schema.Report) bool { return r.JSON }, Outfile: config.JSONReportDirName},
	{Type: "html", Enabled: func(r schema.Report) bool { return r.HTML }, Outfile: config.HTMLReportDirName},
}

// Title is the report title: clover.report.title, the project name, or the
// project directory name.
func Title(cfg *schema.Configuration, paths config.Paths) string {
	if cfg.Clover.Report.Title != "" {
		return cfg.Clover.Report.Title
	}
	if cfg.Project.Name != "" {
		return cfg.Project.Name
	}
	return filepath.Base(paths.ProjectDir)
}

// Tasks returns the report tasks for the enabled formats, one per engine
// invocation: clover-report per format, clover-pdf-report, then clover-check.
func Tasks(cfg *schema.Configuration, paths config.Paths, testSrcDirs []string) ([]engine.Task, error) {
	title := Title(cfg, paths)
	rc := cfg.Clover.Report

	var tasks []engine.Task
	for _, f := range Formats {
		if !f.Enabled(rc) {
			continue
		}
		current := engine.NewTask("current").
			With("outfile", filepath.Join(paths.CloverReportsDir, f.Outfile)).
			With("title", title).
			WithChild(engine.NewTask("format").With("type", f.Type).WithIf("filter", rc.Filter))
		for _, dir := range testSrcDirs {
			ts := engine.NewTask("testsources").With("dir", dir)
			for _, p := range cfg.Clover.TestIncludes {
				ts = ts.WithChild(engine.NewTask("include").With("name", p))
			}
			current = current.WithChild(ts)
		}
		tasks = append(tasks, engine.NewTask("clover-report").With("initString", paths.CoverageDB).WithChild(current))
	}

	if rc.PDF {
		tasks = append(tasks, engine.NewTask("clover-pdf-report").
			With("initString", paths.CoverageDB).
			With("outfile", filepath.Join(paths.CloverReportsDir, config.PDFReportFileName)).
			With("type", "current").
			With("title", title))
	}

	if cfg.Clover.TargetPercentage != "" {
		target, err := config.ParseTargetPercentage(cfg.Clover.TargetPercentage)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, engine.NewTask("clover-check").
			With("initString", paths.CoverageDB).
			With("target", config.FormatTargetPercentage(target)).
			With("haltOnFailure", "true"))
	}

	return tasks, nil
}

func execute(ctx context.Context, eng engine.Engine, tasks []engine.Task) error {
	for _, t := range tasks {
		if err := eng.Execute(ctx, []engine.Task{t}); err != nil {
			return err
		}
	}
	return nil
}
