package report

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	errUtils "github.com/cloverkit/cloverkit/errors"
	"github.com/cloverkit/cloverkit/pkg/engine"
	"github.com/cloverkit/cloverkit/pkg/schema"
)

func TestAggregator_RejectsSubproject(t *testing.T) {
	f := newFixture(t, schema.Report{XML: true})
	f.cfg.Project.Root = false

	ctrl := gomock.NewController(t)
	eng := engine.NewMockEngine(ctrl)

	err := NewAggregator(f.cfg, f.paths, eng).Run(context.Background())

	assert.ErrorIs(t, err, errUtils.ErrNotRootProject)
}

func TestAggregator_DiscoversDatabases(t *testing.T) {
	f := newFixture(t, schema.Report{XML: true})
	api := filepath.Join(f.paths.ProjectDir, "api", "build", ".clover", "clover.db")
	core := filepath.Join(f.paths.ProjectDir, "libs", "core", "build", ".clover", "clover.db")
	writeFile(t, api, "api")
	writeFile(t, core, "core")

	dbs, err := NewAggregator(f.cfg, f.paths, nil).Databases()

	require.NoError(t, err)
	assert.Equal(t, []string{api, core}, dbs)
}

func TestAggregator_ConfiguredSubprojectsSkipMissing(t *testing.T) {
	f := newFixture(t, schema.Report{XML: true})
	f.cfg.Project.Subprojects = []string{"api", "web"}
	api := filepath.Join(f.paths.ProjectDir, "api", "build", ".clover", "clover.db")
	writeFile(t, api, "api")
	writeFile(t, filepath.Join(f.paths.ProjectDir, "other", "build", ".clover", "clover.db"), "other")

	dbs, err := NewAggregator(f.cfg, f.paths, nil).Databases()

	require.NoError(t, err)
	assert.Equal(t, []string{api}, dbs)
}

func TestAggregator_NoDatabasesIsNoop(t *testing.T) {
	f := newFixture(t, schema.Report{XML: true})

	ctrl := gomock.NewController(t)
	eng := engine.NewMockEngine(ctrl)
	eng.EXPECT().Execute(gomock.Any(), gomock.Any()).Times(0)

	require.NoError(t, NewAggregator(f.cfg, f.paths, eng).Run(context.Background()))
}

func TestAggregator_MergesThenReports(t *testing.T) {
	f := newFixture(t, schema.Report{XML: true, PDF: true})
	api := filepath.Join(f.paths.ProjectDir, "api", "build", ".clover", "clover.db")
	web := filepath.Join(f.paths.ProjectDir, "web", "build", ".clover", "clover.db")
	writeFile(t, api, "api")
	writeFile(t, web, "web")

	var calls [][]engine.Task
	ctrl := gomock.NewController(t)
	eng := engine.NewMockEngine(ctrl)
	record(eng, &calls)

	require.NoError(t, NewAggregator(f.cfg, f.paths, eng).Run(context.Background()))

	require.Len(t, calls, 3)
	merge := calls[0][0]
	assert.Equal(t, "clover-merge", merge.Name)
	db, _ := merge.Attr("initString")
	assert.Equal(t, f.paths.CoverageDB, db)

	var merged []string
	for _, c := range merge.ChildrenNamed("cloverDb") {
		v, _ := c.Attr("initString")
		merged = append(merged, v)
	}
	assert.Equal(t, []string{api, web}, merged)

	assert.Equal(t, "clover-report", calls[1][0].Name)
	assert.Empty(t, calls[1][0].ChildrenNamed("current")[0].ChildrenNamed("testsources"))
	assert.Equal(t, "clover-pdf-report", calls[2][0].Name)
}
