package instrument

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	errUtils "github.com/cloverkit/cloverkit/errors"
	"github.com/cloverkit/cloverkit/pkg/config"
	"github.com/cloverkit/cloverkit/pkg/engine"
	log "github.com/cloverkit/cloverkit/pkg/logger"
	"github.com/cloverkit/cloverkit/pkg/schema"
	"github.com/cloverkit/cloverkit/pkg/sourceset"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newProject(t *testing.T, plugins ...string) (*schema.Configuration, config.Paths, sourceset.SourceSets) {
	t.Helper()
	dir := t.TempDir()
	build := filepath.Join(dir, "build")

	paths := config.Paths{
		ProjectDir: dir,
		BuildDir:   build,
		CoverageDB: filepath.Join(build, ".clover", "clover.db"),
		WorkDir:    filepath.Join(build, "tmp", "cloverkit"),
		LockFile:   filepath.Join(build, ".clover", "cloverkit.lock"),
	}

	main := sourceset.Descriptor{
		Name:       "main",
		SrcDirs:    []string{filepath.Join(dir, "src", "main", "java")},
		ClassesDir: filepath.Join(build, "classes", "main"),
		BackupDir:  filepath.Join(build, "classes", "main-bak"),
	}
	test := sourceset.Descriptor{
		Name:       "test",
		SrcDirs:    []string{filepath.Join(dir, "src", "test", "java")},
		ClassesDir: filepath.Join(build, "classes", "test"),
		BackupDir:  filepath.Join(build, "classes", "test-bak"),
		Test:       true,
	}
	writeFile(t, filepath.Join(main.ClassesDir, "Main.class"), "main")
	writeFile(t, filepath.Join(test.ClassesDir, "MainTest.class"), "test")

	cfg := &schema.Configuration{}
	cfg.Project.Plugins = plugins
	cfg.Project.SourceCompatibility = "17"
	cfg.Project.TargetCompatibility = "17"
	cfg.Project.Classpath = []string{"libs/guava.jar"}
	cfg.Project.TestClasspath = []string{"libs/junit.jar"}
	cfg.Project.GroovyClasspath = []string{"libs/groovy.jar"}
	cfg.Clover.Classpath = []string{"libs/clover.jar"}
	cfg.Clover.Includes = []string{"**/*.java"}
	cfg.Clover.Excludes = []string{"**/generated/**"}
	cfg.Clover.TestIncludes = []string{"**/*Test.java"}
	cfg.Clover.Compiler.Debug = true
	cfg.Clover.Compiler.Encoding = "UTF-8"
	cfg.Clover.Compiler.AdditionalArgs = []string{"-parameters"}

	return cfg, paths, sourceset.SourceSets{Main: []sourceset.Descriptor{main}, Test: []sourceset.Descriptor{test}}
}

func TestTasks_Java(t *testing.T) {
	cfg, paths, sets := newProject(t, config.PluginJava)
	cfg.Clover.FlushPolicy = "interval"
	cfg.Clover.FlushInterval = 500
	cfg.Clover.Contexts.Statements = []schema.StatementContext{{Name: "log", Regexp: `^LOG\..*`}}
	cfg.Clover.Contexts.Methods = []schema.MethodContext{{Name: "getter", Regexp: `public \w+ get\w+\(\)`, MaxStatements: 1}}

	tasks := Tasks(cfg, paths, sets)

	names := make([]string, 0, len(tasks))
	for _, task := range tasks {
		names = append(names, task.Name)
	}
	assert.Equal(t, []string{"clover-clean", "clover-setup", "javac", "javac"}, names)

	clean, _ := tasks[0].Attr("initString")
	assert.Equal(t, paths.CoverageDB, clean)

	setup := tasks[1]
	flush, _ := setup.Attr("flushpolicy")
	assert.Equal(t, "interval", flush)
	interval, _ := setup.Attr("flushinterval")
	assert.Equal(t, "500", interval)
	_, ok := setup.Attr("instrumentLambda")
	assert.False(t, ok)

	filesets := setup.ChildrenNamed("fileset")
	require.Len(t, filesets, 1)
	dir, _ := filesets[0].Attr("dir")
	assert.Equal(t, sets.Main[0].SrcDirs[0], dir)
	assert.Len(t, filesets[0].ChildrenNamed("include"), 1)
	assert.Len(t, filesets[0].ChildrenNamed("exclude"), 1)
	assert.Len(t, setup.ChildrenNamed("testsources"), 1)
	assert.Len(t, setup.ChildrenNamed("statementContext"), 1)
	method := setup.ChildrenNamed("methodContext")
	require.Len(t, method, 1)
	maxStatements, _ := method[0].Attr("maxStatements")
	assert.Equal(t, "1", maxStatements)

	mainJavac, testJavac := tasks[2], tasks[3]
	dest, _ := mainJavac.Attr("destdir")
	assert.Equal(t, sets.Main[0].ClassesDir, dest)
	for key, want := range map[string]string{"source": "17", "target": "17", "encoding": "UTF-8", "debug": "true", "includeAntRuntime": "false"} {
		got, _ := mainJavac.Attr(key)
		assert.Equal(t, want, got, key)
	}
	arg, _ := mainJavac.ChildrenNamed("compilerarg")[0].Attr("value")
	assert.Equal(t, "-parameters", arg)

	mainCP, _ := mainJavac.Attr("classpath")
	assert.NotContains(t, mainCP, sets.Main[0].ClassesDir)
	assert.Contains(t, mainCP, filepath.Join(paths.ProjectDir, "libs", "clover.jar"))

	testCP, _ := testJavac.Attr("classpath")
	entries := strings.Split(testCP, string(filepath.ListSeparator))
	assert.Contains(t, entries, sets.Main[0].ClassesDir)
	assert.Contains(t, entries, filepath.Join(paths.ProjectDir, "libs", "junit.jar"))
	assert.NotContains(t, entries, filepath.Join(paths.ProjectDir, "libs", "groovy.jar"))
}

func TestTasks_Groovy(t *testing.T) {
	cfg, paths, sets := newProject(t, config.PluginGroovy)

	tasks := Tasks(cfg, paths, sets)

	require.Len(t, tasks, 5)
	taskdef := tasks[2]
	assert.Equal(t, "taskdef", taskdef.Name)
	classname, _ := taskdef.Attr("classname")
	assert.Equal(t, "org.codehaus.groovy.ant.Groovyc", classname)

	groovyc := tasks[3]
	assert.Equal(t, "groovyc", groovyc.Name)
	require.Len(t, groovyc.ChildrenNamed("javac"), 1)
	inner := groovyc.ChildrenNamed("javac")[0]
	_, hasDest := inner.Attr("destdir")
	assert.False(t, hasDest)
	source, _ := inner.Attr("source")
	assert.Equal(t, "17", source)

	cp, _ := groovyc.Attr("classpath")
	assert.Contains(t, cp, filepath.Join(paths.ProjectDir, "libs", "groovy.jar"))
}

func TestRun_BacksUpAndInvokesEngineOnce(t *testing.T) {
	cfg, paths, sets := newProject(t, config.PluginJava)

	ctrl := gomock.NewController(t)
	eng := engine.NewMockEngine(ctrl)
	eng.EXPECT().Execute(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, tasks []engine.Task) error {
		assert.Equal(t, "clover-clean", tasks[0].Name)
		for _, d := range sets.All() {
			entries, err := os.ReadDir(d.ClassesDir)
			require.NoError(t, err)
			assert.Empty(t, entries)
		}
		return nil
	}).Times(1)

	require.NoError(t, New(cfg, paths, sets, eng, false).Run(context.Background()))

	assert.FileExists(t, filepath.Join(sets.Main[0].BackupDir, "Main.class"))
	assert.FileExists(t, filepath.Join(sets.Test[0].BackupDir, "MainTest.class"))
}

func TestRun_RollsBackOnEngineFailure(t *testing.T) {
	cfg, paths, sets := newProject(t, config.PluginJava)

	ctrl := gomock.NewController(t)
	eng := engine.NewMockEngine(ctrl)
	eng.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(errUtils.ErrEngineInvocation)

	err := New(cfg, paths, sets, eng, false).Run(context.Background())

	assert.ErrorIs(t, err, errUtils.ErrEngineInvocation)
	for _, d := range sets.All() {
		assert.NoDirExists(t, d.BackupDir)
	}
	assert.FileExists(t, filepath.Join(sets.Main[0].ClassesDir, "Main.class"))
	assert.FileExists(t, filepath.Join(sets.Test[0].ClassesDir, "MainTest.class"))
}

func TestRun_RestoresStaleBackupFirst(t *testing.T) {
	cfg, paths, sets := newProject(t, config.PluginJava)
	main := sets.Main[0]
	writeFile(t, filepath.Join(main.ClassesDir, "Stale.class"), "instrumented")
	writeFile(t, filepath.Join(main.BackupDir, "Pristine.class"), "original")

	ctrl := gomock.NewController(t)
	eng := engine.NewMockEngine(ctrl)
	eng.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(nil)

	original := log.Default()
	defer log.SetDefault(original)
	var buf bytes.Buffer
	log.SetDefault(log.NewLogger(&buf))

	require.NoError(t, New(cfg, paths, sets, eng, false).Run(context.Background()))

	assert.FileExists(t, filepath.Join(main.BackupDir, "Pristine.class"))
	assert.NoFileExists(t, filepath.Join(main.BackupDir, "Stale.class"))

	out := buf.String()
	assert.Contains(t, out, "unfinished run")
	assert.Contains(t, out, main.ClassesDir)
	assert.Contains(t, out, main.BackupDir)
	assert.Equal(t, 1, strings.Count(out, "unfinished run"), "only the source set with a backup is reported")
}

func TestRun_DryRunLeavesClasses(t *testing.T) {
	cfg, paths, sets := newProject(t, config.PluginJava)

	ctrl := gomock.NewController(t)
	eng := engine.NewMockEngine(ctrl)
	eng.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(nil)

	require.NoError(t, New(cfg, paths, sets, eng, true).Run(context.Background()))

	assert.NoDirExists(t, sets.Main[0].BackupDir)
	assert.FileExists(t, filepath.Join(sets.Main[0].ClassesDir, "Main.class"))
}

func TestRun_NoSourceSets(t *testing.T) {
	cfg, paths, _ := newProject(t, config.PluginJava)

	ctrl := gomock.NewController(t)
	eng := engine.NewMockEngine(ctrl)

	assert.NoError(t, New(cfg, paths, sourceset.SourceSets{}, eng, false).Run(context.Background()))
}
