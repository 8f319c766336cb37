package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	errUtils "github.com/cloverkit/cloverkit/errors"
	log "github.com/cloverkit/cloverkit/pkg/logger"
	"github.com/cloverkit/cloverkit/pkg/schema"
)

// CliInfo carries the command-line inputs that shape configuration loading.
type CliInfo struct {
	// ConfigPath is a cloverkit.yaml file or a directory containing one.
	ConfigPath string
	ProjectDir string
	LogsLevel  string
	LogsFile   string
}

// LoadConfig loads the configuration from the following locations (from lower to higher priority):
// system dir ($XDG_CONFIG_DIRS/cloverkit)
// home dir (~/.cloverkit)
// current directory
// CLOVERKIT_CLI_CONFIG_PATH
// --config
// ENV vars (CLOVERKIT_*)
// Command-line arguments
func LoadConfig(info CliInfo) (schema.Configuration, error) {
	v := viper.New()
	var cfg schema.Configuration
	v.SetConfigType("yaml")
	v.SetTypeByDefaultValue(true)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaultConfiguration(v)

	var used string
	readers := []func(*viper.Viper) (string, error){readSystemConfig, readHomeConfig, readWorkDirConfig, readEnvConfigPath}
	for _, read := range readers {
		path, err := read(v)
		if err != nil {
			return cfg, wrapLoadError(err)
		}
		if path != "" {
			used = path
		}
	}

	if info.ConfigPath != "" {
		path, err := readExplicitConfig(v, info.ConfigPath)
		if err != nil {
			return cfg, wrapLoadError(err)
		}
		used = path
	}

	if used == "" {
		log.Debug("'cloverkit.yaml' was not found, using the default configuration",
			"paths", "system dir, home dir, current dir, ENV vars")
	}

	err := v.Unmarshal(&cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToSliceHookFunc(","),
		mapstructure.StringToTimeDurationHookFunc(),
	)))
	if err != nil {
		return cfg, wrapLoadError(err)
	}

	if used != "" {
		abs, err := filepath.Abs(used)
		if err != nil {
			return cfg, wrapLoadError(err)
		}
		cfg.CliConfigPath = abs
	}

	if err := applyCliOverrides(&cfg, info); err != nil {
		return cfg, wrapLoadError(err)
	}

	if err := Validate(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func wrapLoadError(err error) error {
	return errUtils.Wrap(err, errUtils.ErrLoadConfig, errUtils.ErrLoadConfig.Error()).
		WithHint("Check the syntax of cloverkit.yaml").
		Err()
}

// setDefaultConfiguration sets the defaults of the viper instance.
func setDefaultConfiguration(v *viper.Viper) {
	v.SetDefault("logs.file", "/dev/stderr")
	v.SetDefault("logs.level", "Info")

	v.SetDefault("project.dir", ".")
	v.SetDefault("project.build_dir", DefaultBuildDir)
	v.SetDefault("project.root", true)
	v.SetDefault("project.plugins", []string{PluginJava})
	v.SetDefault("project.source_sets.main.java", []string{"src/main/java"})
	v.SetDefault("project.source_sets.main.groovy", []string{"src/main/groovy"})
	v.SetDefault("project.source_sets.main.classes_dir", "build/classes/java/main")
	v.SetDefault("project.source_sets.test.java", []string{"src/test/java"})
	v.SetDefault("project.source_sets.test.groovy", []string{"src/test/groovy"})
	v.SetDefault("project.source_sets.test.classes_dir", "build/classes/java/test")

	v.SetDefault("clover.init_string", DefaultInitString)
	v.SetDefault("clover.ant.executable", DefaultAntExecutable)
	v.SetDefault("clover.includes", []string{"**/*.java", "**/*.groovy"})
	v.SetDefault("clover.test_includes", []string{"**/*Test.java", "**/*Test.groovy"})
	v.SetDefault("clover.compiler.debug", true)
	v.SetDefault("clover.report.xml", true)
	v.SetDefault("clover.report.json", false)
	v.SetDefault("clover.report.html", false)
	v.SetDefault("clover.report.pdf", false)
}

// readSystemConfig loads config from the XDG system config dirs.
func readSystemConfig(v *viper.Viper) (string, error) {
	var used string
	for _, dir := range xdg.ConfigDirs {
		path, err := mergeConfigDir(v, filepath.Join(dir, SystemConfigDirName))
		if err != nil {
			return "", err
		}
		if path != "" {
			used = path
		}
	}
	return used, nil
}

// readHomeConfig loads config from the user's HOME dir.
func readHomeConfig(v *viper.Viper) (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return mergeConfigDir(v, filepath.Join(home, DotCliConfigDirName))
}

// readWorkDirConfig loads config from the current working directory.
func readWorkDirConfig(v *viper.Viper) (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return mergeConfigDir(v, wd)
}

func readEnvConfigPath(v *viper.Viper) (string, error) {
	path := os.Getenv(CliConfigPathEnvVar)
	if path == "" {
		return "", nil
	}
	log.Debug("Found config ENV", CliConfigPathEnvVar, path)
	return mergeConfigDir(v, path)
}

// readExplicitConfig loads the file or directory given with --config. It must exist.
func readExplicitConfig(v *viper.Viper, path string) (string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if !fi.IsDir() {
		return path, mergeConfigFile(v, path)
	}
	used, err := mergeConfigDir(v, path)
	if err != nil {
		return "", err
	}
	if used == "" {
		return "", errors.Newf("no %s.yaml found in %s", CliConfigFileName, path)
	}
	return used, nil
}

// mergeConfigDir merges cloverkit.yaml (or .yml) from dir and returns the
// merged file, or "" when the directory holds none.
func mergeConfigDir(v *viper.Viper, dir string) (string, error) {
	for _, ext := range []string{".yaml", ".yml"} {
		path := filepath.Join(dir, CliConfigFileName+ext)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := mergeConfigFile(v, path); err != nil {
			return "", err
		}
		log.Trace("Merged config", "file", path)
		return path, nil
	}
	return "", nil
}

func mergeConfigFile(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := v.MergeConfig(bytes.NewReader(data)); err != nil {
		return errors.Wrapf(err, "parse %s", path)
	}
	return nil
}

func applyCliOverrides(cfg *schema.Configuration, info CliInfo) error {
	if info.ProjectDir != "" {
		abs, err := filepath.Abs(info.ProjectDir)
		if err != nil {
			return err
		}
		cfg.Project.Dir = abs
	}
	if info.LogsLevel != "" {
		cfg.Logs.Level = info.LogsLevel
	}
	if info.LogsFile != "" {
		cfg.Logs.File = info.LogsFile
	}
	return nil
}
