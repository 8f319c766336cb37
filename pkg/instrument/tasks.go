package instrument

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/cloverkit/cloverkit/pkg/config"
	"github.com/cloverkit/cloverkit/pkg/engine"
	"github.com/cloverkit/cloverkit/pkg/schema"
	"github.com/cloverkit/cloverkit/pkg/sourceset"
)

const groovycClassname = "org.codehaus.groovy.ant.Groovyc"

// Tasks builds the single engine invocation that cleans the coverage
// database, configures Clover, and recompiles every source set into its
// (now empty) classes dir.
func Tasks(cfg *schema.Configuration, paths config.Paths, sets sourceset.SourceSets) []engine.Task {
	tasks := []engine.Task{
		engine.NewTask("clover-clean").With("initString", paths.CoverageDB),
		setupTask(cfg, paths, sets),
	}

	groovy := config.HasPlugin(cfg, config.PluginGroovy)
	if groovy {
		tasks = append(tasks, engine.NewTask("taskdef").
			With("name", "groovyc").
			With("classname", groovycClassname).
			With("classpath", joinPaths(config.ResolveAll(paths.ProjectDir, cfg.Project.GroovyClasspath))))
	}

	for _, d := range sets.All() {
		tasks = append(tasks, compileTask(cfg, paths, sets, d, groovy))
	}
	return tasks
}

func setupTask(cfg *schema.Configuration, paths config.Paths, sets sourceset.SourceSets) engine.Task {
	setup := engine.NewTask("clover-setup").
		With("initString", paths.CoverageDB).
		With("tmpDir", filepath.Join(paths.BuildDir, "tmp", "clover")).
		WithIf("flushpolicy", cfg.Clover.FlushPolicy).
		WithIf("instrumentLambda", cfg.Clover.InstrumentLambda)
	if cfg.Clover.FlushInterval > 0 {
		setup = setup.With("flushinterval", strconv.Itoa(cfg.Clover.FlushInterval))
	}

	for _, dir := range sets.SrcDirs() {
		setup = setup.WithChild(patternSet("fileset", dir, cfg.Clover.Includes, cfg.Clover.Excludes))
	}
	for _, dir := range sets.TestSrcDirs() {
		setup = setup.WithChild(patternSet("testsources", dir, cfg.Clover.TestIncludes, cfg.Clover.TestExcludes))
	}

	for _, c := range cfg.Clover.Contexts.Statements {
		setup = setup.WithChild(engine.NewTask("statementContext").With("name", c.Name).With("regexp", c.Regexp))
	}
	for _, c := range cfg.Clover.Contexts.Methods {
		ctx := engine.NewTask("methodContext").With("name", c.Name).With("regexp", c.Regexp)
		if c.MaxStatements > 0 {
			ctx = ctx.With("maxStatements", strconv.Itoa(c.MaxStatements))
		}
		setup = setup.WithChild(ctx)
	}
	return setup
}

func patternSet(name, dir string, includes, excludes []string) engine.Task {
	set := engine.NewTask(name).With("dir", dir)
	for _, p := range includes {
		set = set.WithChild(engine.NewTask("include").With("name", p))
	}
	for _, p := range excludes {
		set = set.WithChild(engine.NewTask("exclude").With("name", p))
	}
	return set
}

func compileTask(cfg *schema.Configuration, paths config.Paths, sets sourceset.SourceSets, d sourceset.Descriptor, groovy bool) engine.Task {
	javac := engine.NewTask("javac").
		WithIf("source", cfg.Project.SourceCompatibility).
		WithIf("target", cfg.Project.TargetCompatibility).
		WithIf("encoding", cfg.Clover.Compiler.Encoding).
		With("debug", strconv.FormatBool(cfg.Clover.Compiler.Debug)).
		With("includeAntRuntime", "false")
	if cfg.Clover.Compiler.Executable != "" {
		javac = javac.
			With("fork", "true").
			With("executable", config.ResolvePath(paths.ProjectDir, cfg.Clover.Compiler.Executable))
	}
	for _, arg := range cfg.Clover.Compiler.AdditionalArgs {
		javac = javac.WithChild(engine.NewTask("compilerarg").With("value", arg))
	}

	srcdir := joinPaths(d.SrcDirs)
	classpath := joinPaths(compileClasspath(cfg, paths, sets, d))

	if !groovy {
		return javac.
			With("srcdir", srcdir).
			With("destdir", d.ClassesDir).
			With("classpath", classpath)
	}

	return engine.NewTask("groovyc").
		With("srcdir", srcdir).
		With("destdir", d.ClassesDir).
		With("classpath", classpath).
		With("includeAntRuntime", "false").
		WithChild(javac)
}

// compileClasspath is the project classpath plus the Clover runtime. Test
// sets additionally see the production classes.
func compileClasspath(cfg *schema.Configuration, paths config.Paths, sets sourceset.SourceSets, d sourceset.Descriptor) []string {
	cp := config.ResolveAll(paths.ProjectDir, cfg.Project.Classpath)
	if d.Test {
		cp = append(cp, sets.ClassesDirs()...)
		cp = append(cp, config.ResolveAll(paths.ProjectDir, cfg.Project.TestClasspath)...)
	}
	if config.HasPlugin(cfg, config.PluginGroovy) {
		cp = append(cp, config.ResolveAll(paths.ProjectDir, cfg.Project.GroovyClasspath)...)
	}
	cp = append(cp, config.ResolveAll(paths.ProjectDir, cfg.Clover.Classpath)...)
	return lo.Uniq(cp)
}

func joinPaths(paths []string) string {
	return strings.Join(paths, string(filepath.ListSeparator))
}
