package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloverkit/cloverkit/pkg/schema"
)

func TestResolvePaths_Defaults(t *testing.T) {
	project := t.TempDir()
	cfg := &schema.Configuration{Project: schema.Project{Dir: project}}

	paths, err := ResolvePaths(cfg)
	require.NoError(t, err)

	build := filepath.Join(project, "build")
	assert.Equal(t, project, paths.ProjectDir)
	assert.Equal(t, build, paths.BuildDir)
	assert.Equal(t, filepath.Join(build, "reports"), paths.ReportsDir)
	assert.Equal(t, filepath.Join(build, ".clover", "clover.db"), paths.CoverageDB)
	assert.Equal(t, filepath.Join(build, "reports", "clover"), paths.CloverReportsDir)
	assert.Equal(t, filepath.Join(build, "tmp", "cloverkit"), paths.WorkDir)
	assert.Equal(t, filepath.Join(build, ".clover", LockFileName), paths.LockFile)
}

func TestResolvePaths_Overrides(t *testing.T) {
	project := t.TempDir()
	cfg := &schema.Configuration{
		Project: schema.Project{Dir: project, BuildDir: "target", ReportsDir: "/var/reports"},
		Clover:  schema.Clover{InitString: "cov/db"},
	}

	paths, err := ResolvePaths(cfg)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(project, "target"), paths.BuildDir)
	assert.Equal(t, "/var/reports", paths.ReportsDir)
	assert.Equal(t, filepath.Join(project, "target", "cov", "db"), paths.CoverageDB)
}

func TestResolvePaths_RelativeToConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := &schema.Configuration{
		CliConfigPath: filepath.Join(dir, "cloverkit.yaml"),
		Project:       schema.Project{Dir: "app"},
	}

	paths, err := ResolvePaths(cfg)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "app"), paths.ProjectDir)
}

func TestResolveAll(t *testing.T) {
	assert.Equal(t, []string{"/p/a", "/abs"}, ResolveAll("/p", []string{"a", "", "/abs"}))
	assert.Empty(t, ResolveAll("/p", nil))
}
