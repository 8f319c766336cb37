package sourceset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloverkit/cloverkit/pkg/config"
	"github.com/cloverkit/cloverkit/pkg/schema"
)

func mkdirs(t *testing.T, root string, dirs ...string) {
	t.Helper()
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(root, d), 0o755))
	}
}

func touch(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("class X {}"), 0o644))
	}
}

func testConfig(project string, plugins ...string) *schema.Configuration {
	return &schema.Configuration{
		Project: schema.Project{
			Dir:     project,
			Plugins: plugins,
			SourceSets: map[string]schema.SourceSet{
				"main": {Java: []string{"src/main/java"}, Groovy: []string{"src/main/groovy"}, ClassesDir: "build/classes/main"},
				"test": {Java: []string{"src/test/java"}, Groovy: []string{"src/test/groovy"}, ClassesDir: "build/classes/test"},
			},
		},
	}
}

func discover(t *testing.T, cfg *schema.Configuration) SourceSets {
	t.Helper()
	paths, err := config.ResolvePaths(cfg)
	require.NoError(t, err)
	return Discover(cfg, paths)
}

func TestDiscover_JavaOnly(t *testing.T) {
	project := t.TempDir()
	mkdirs(t, project, "src/main/java", "src/main/groovy", "src/test/java")

	sets := discover(t, testConfig(project, "java"))

	require.Len(t, sets.Main, 1)
	require.Len(t, sets.Test, 1)
	assert.Equal(t, Descriptor{
		Name:       "main",
		SrcDirs:    []string{filepath.Join(project, "src/main/java")},
		ClassesDir: filepath.Join(project, "build/classes/main"),
		BackupDir:  filepath.Join(project, "build/classes/main-bak"),
	}, sets.Main[0])
	assert.True(t, sets.Test[0].Test)
	assert.Equal(t, filepath.Join(project, "build/classes/test-bak"), sets.Test[0].BackupDir)
}

func TestDiscover_GroovyAddsGroovyDirs(t *testing.T) {
	project := t.TempDir()
	mkdirs(t, project, "src/main/java", "src/main/groovy", "src/test/groovy")

	sets := discover(t, testConfig(project, "groovy"))

	require.Len(t, sets.Main, 1)
	assert.Equal(t, []string{
		filepath.Join(project, "src/main/java"),
		filepath.Join(project, "src/main/groovy"),
	}, sets.Main[0].SrcDirs)
	require.Len(t, sets.Test, 1)
	assert.Equal(t, []string{filepath.Join(project, "src/test/groovy")}, sets.Test[0].SrcDirs)
}

func TestDiscover_DropsSetsWithoutExistingSources(t *testing.T) {
	project := t.TempDir()
	mkdirs(t, project, "src/main/java")

	sets := discover(t, testConfig(project, "java"))

	assert.Len(t, sets.Main, 1)
	assert.Empty(t, sets.Test)
	assert.Len(t, sets.All(), 1)
}

func TestDiscover_AdditionalDirsAndSets(t *testing.T) {
	project := t.TempDir()
	mkdirs(t, project, "src/main/java", "src/generated/java", "src/test/java", "src/it/java")

	cfg := testConfig(project, "java")
	cfg.Clover.AdditionalSourceDirs = []string{"src/generated/java", "src/missing/java"}
	cfg.Clover.AdditionalSourceSets = []schema.AdditionalSourceSet{
		{Name: "integration", SrcDirs: []string{"src/it/java"}, ClassesDir: "build/classes/it", BackupDir: "build/it-backup"},
		{Name: "ghost", SrcDirs: []string{"src/ghost/java"}, ClassesDir: "build/classes/ghost"},
	}
	cfg.Clover.TestClassesBackupDir = "build/test-backup"

	sets := discover(t, cfg)

	require.Len(t, sets.Main, 2)
	assert.Equal(t, []string{
		filepath.Join(project, "src/main/java"),
		filepath.Join(project, "src/generated/java"),
	}, sets.Main[0].SrcDirs)
	assert.Equal(t, "integration", sets.Main[1].Name)
	assert.Equal(t, filepath.Join(project, "build/it-backup"), sets.Main[1].BackupDir)
	assert.False(t, sets.Main[1].Test)
	assert.Equal(t, filepath.Join(project, "build/test-backup"), sets.Test[0].BackupDir)

	assert.Equal(t, []string{
		filepath.Join(project, "build/classes/main"),
		filepath.Join(project, "build/classes/it"),
	}, sets.ClassesDirs())
	assert.Len(t, sets.SrcDirs(), 3)
	assert.Equal(t, []string{filepath.Join(project, "src/test/java")}, sets.TestSrcDirs())
}

func TestDescriptor_Exists(t *testing.T) {
	root := t.TempDir()
	d := Descriptor{ClassesDir: filepath.Join(root, "classes"), BackupDir: filepath.Join(root, "classes-bak")}

	assert.False(t, d.Exists())

	mkdirs(t, root, "classes")
	assert.False(t, d.Exists())

	mkdirs(t, root, "classes-bak")
	assert.True(t, d.Exists())
}

func TestDefaultBackupDir(t *testing.T) {
	assert.Equal(t, "/p/build/classes/main-bak", DefaultBackupDir("/p/build/classes/main/"))
}

func TestCountSources(t *testing.T) {
	root := t.TempDir()
	touch(t, root,
		"src/com/acme/Cart.java",
		"src/com/acme/CartTest.java",
		"src/com/acme/Util.groovy",
		"src/com/acme/gen/Stub.java",
		"src/README.md",
	)
	d := Descriptor{SrcDirs: []string{filepath.Join(root, "src")}}

	assert.Equal(t, 4, CountSources(d, []string{"**/*.java", "**/*.groovy"}, nil))
	assert.Equal(t, 3, CountSources(d, []string{"**/*.java", "**/*Test.java", "**/*.groovy"}, []string{"**/gen/**"}))
	assert.Equal(t, 1, CountSources(d, []string{"**/*Test.java"}, nil))
}
