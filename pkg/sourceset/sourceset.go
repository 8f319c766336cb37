// Package sourceset turns the configured project layout into the normalized
// descriptors that instrumentation and reporting operate on.
package sourceset

import (
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/samber/lo"

	"github.com/cloverkit/cloverkit/pkg/config"
	log "github.com/cloverkit/cloverkit/pkg/logger"
	"github.com/cloverkit/cloverkit/pkg/schema"
)

// Descriptor is one logical source set: its source roots, the directory its
// compiled classes land in, and where the original classes are kept while
// the instrumented ones are in place.
type Descriptor struct {
	Name       string   `yaml:"name" json:"name"`
	SrcDirs    []string `yaml:"src_dirs" json:"src_dirs"`
	ClassesDir string   `yaml:"classes_dir" json:"classes_dir"`
	BackupDir  string   `yaml:"backup_dir" json:"backup_dir"`
	Test       bool     `yaml:"test" json:"test"`
}

// SourceSets groups the production and test descriptors of a project.
type SourceSets struct {
	Main []Descriptor `yaml:"main" json:"main"`
	Test []Descriptor `yaml:"test" json:"test"`
}

// All returns the production descriptors followed by the test descriptors.
func (s SourceSets) All() []Descriptor {
	all := make([]Descriptor, 0, len(s.Main)+len(s.Test))
	all = append(all, s.Main...)
	return append(all, s.Test...)
}

// SrcDirs returns every production source dir.
func (s SourceSets) SrcDirs() []string {
	return lo.FlatMap(s.Main, func(d Descriptor, _ int) []string { return d.SrcDirs })
}

// TestSrcDirs returns every test source dir.
func (s SourceSets) TestSrcDirs() []string {
	return lo.FlatMap(s.Test, func(d Descriptor, _ int) []string { return d.SrcDirs })
}

// ClassesDirs returns the classes dirs of the production descriptors.
func (s SourceSets) ClassesDirs() []string {
	return lo.Map(s.Main, func(d Descriptor, _ int) string { return d.ClassesDir })
}

// Discover builds the descriptors for cfg. Source dirs that do not exist are
// dropped, and so is a descriptor left without any source dir.
func Discover(cfg *schema.Configuration, paths config.Paths) SourceSets {
	var sets SourceSets

	main := cfg.Project.SourceSets[config.SourceSetMain]
	mainDirs := append(languageDirs(cfg, main), cfg.Clover.AdditionalSourceDirs...)
	if d, ok := newDescriptor(config.SourceSetMain, mainDirs, main.ClassesDir, cfg.Clover.ClassesBackupDir, false, paths); ok {
		sets.Main = append(sets.Main, d)
	}

	for _, extra := range cfg.Clover.AdditionalSourceSets {
		if d, ok := newDescriptor(extra.Name, extra.SrcDirs, extra.ClassesDir, extra.BackupDir, false, paths); ok {
			sets.Main = append(sets.Main, d)
		}
	}

	test := cfg.Project.SourceSets[config.SourceSetTest]
	testDirs := append(languageDirs(cfg, test), cfg.Clover.AdditionalTestSourceDirs...)
	if d, ok := newDescriptor(config.SourceSetTest, testDirs, test.ClassesDir, cfg.Clover.TestClassesBackupDir, true, paths); ok {
		sets.Test = append(sets.Test, d)
	}

	return sets
}

// languageDirs picks the source dirs of the enabled language plugins.
func languageDirs(cfg *schema.Configuration, set schema.SourceSet) []string {
	var dirs []string
	if config.HasPlugin(cfg, config.PluginJava) {
		dirs = append(dirs, set.Java...)
	}
	if config.HasPlugin(cfg, config.PluginGroovy) {
		dirs = append(dirs, set.Groovy...)
	}
	return dirs
}

func newDescriptor(name string, srcDirs []string, classesDir, backupDir string, test bool, paths config.Paths) (Descriptor, bool) {
	resolved := lo.Uniq(config.ResolveAll(paths.ProjectDir, srcDirs))
	existing := lo.Filter(resolved, func(dir string, _ int) bool { return isDir(dir) })

	if len(existing) == 0 || classesDir == "" {
		log.Debug("Skipping source set without sources", "source_set", name, "src_dirs", resolved)
		return Descriptor{}, false
	}

	classes := config.ResolvePath(paths.ProjectDir, classesDir)
	backup := config.ResolvePath(paths.ProjectDir, backupDir)
	if backup == "" {
		backup = DefaultBackupDir(classes)
	}

	return Descriptor{
		Name:       name,
		SrcDirs:    existing,
		ClassesDir: classes,
		BackupDir:  backup,
		Test:       test,
	}, true
}

// DefaultBackupDir is the sibling <classesDir>-bak.
func DefaultBackupDir(classesDir string) string {
	return filepath.Clean(classesDir) + config.BackupDirSuffix
}

// CountSources counts the files below the descriptor's source dirs matching
// any of includes and none of excludes.
func CountSources(d Descriptor, includes, excludes []string) int {
	count := 0
	for _, dir := range d.SrcDirs {
		var matched []string
		fsys := os.DirFS(dir)
		for _, pattern := range includes {
			matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
			if err != nil {
				log.Debug("Invalid include pattern", "pattern", pattern, "error", err)
				continue
			}
			matched = append(matched, matches...)
		}
		matched = lo.Reject(lo.Uniq(matched), func(m string, _ int) bool { return matchesAny(excludes, m) })
		count += len(matched)
	}
	return count
}

func matchesAny(patterns []string, name string) bool {
	return lo.SomeBy(patterns, func(p string) bool {
		ok, _ := doublestar.Match(p, name)
		return ok
	})
}

// Exists reports whether the descriptor's classes dir and backup dir are both present.
func (d Descriptor) Exists() bool {
	return isDir(d.ClassesDir) && isDir(d.BackupDir)
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
