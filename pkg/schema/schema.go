package schema

// Configuration is the effective cloverkit configuration: the layout of the
// JVM project being measured and the Clover settings applied to it.
type Configuration struct {
	Logs    Logs    `yaml:"logs" json:"logs" mapstructure:"logs"`
	Project Project `yaml:"project" json:"project" mapstructure:"project"`
	Clover  Clover  `yaml:"clover" json:"clover" mapstructure:"clover"`

	// CliConfigPath is the absolute path of the cloverkit.yaml that was loaded.
	CliConfigPath string `yaml:"cli_config_path,omitempty" json:"cli_config_path,omitempty" mapstructure:"cli_config_path"`
}

type Logs struct {
	File  string `yaml:"file" json:"file" mapstructure:"file"`
	Level string `yaml:"level" json:"level" mapstructure:"level"`
}

// Project describes the build being instrumented.
type Project struct {
	Name string `yaml:"name" json:"name" mapstructure:"name"`
	// Dir is the project directory; relative paths below are resolved against it.
	Dir        string `yaml:"dir" json:"dir" mapstructure:"dir"`
	BuildDir   string `yaml:"build_dir" json:"build_dir" mapstructure:"build_dir"`
	ReportsDir string `yaml:"reports_dir" json:"reports_dir" mapstructure:"reports_dir"`
	// Root marks the root of a multi-project build. Only the root aggregates.
	Root        bool     `yaml:"root" json:"root" mapstructure:"root"`
	Subprojects []string `yaml:"subprojects,omitempty" json:"subprojects,omitempty" mapstructure:"subprojects"`
	// Plugins lists the enabled language plugins: java, groovy.
	Plugins             []string             `yaml:"plugins" json:"plugins" mapstructure:"plugins"`
	SourceCompatibility string               `yaml:"source_compatibility,omitempty" json:"source_compatibility,omitempty" mapstructure:"source_compatibility"`
	TargetCompatibility string               `yaml:"target_compatibility,omitempty" json:"target_compatibility,omitempty" mapstructure:"target_compatibility"`
	Classpath           []string             `yaml:"classpath,omitempty" json:"classpath,omitempty" mapstructure:"classpath"`
	TestClasspath       []string             `yaml:"test_classpath,omitempty" json:"test_classpath,omitempty" mapstructure:"test_classpath"`
	GroovyClasspath     []string             `yaml:"groovy_classpath,omitempty" json:"groovy_classpath,omitempty" mapstructure:"groovy_classpath"`
	SourceSets          map[string]SourceSet `yaml:"source_sets" json:"source_sets" mapstructure:"source_sets"`
	TestCommand         string               `yaml:"test_command,omitempty" json:"test_command,omitempty" mapstructure:"test_command"`
}

// SourceSet is the configured layout of one logical source set.
type SourceSet struct {
	Java       []string `yaml:"java,omitempty" json:"java,omitempty" mapstructure:"java"`
	Groovy     []string `yaml:"groovy,omitempty" json:"groovy,omitempty" mapstructure:"groovy"`
	ClassesDir string   `yaml:"classes_dir" json:"classes_dir" mapstructure:"classes_dir"`
}

// AdditionalSourceSet is a user-declared source set instrumented as production code.
type AdditionalSourceSet struct {
	Name       string   `yaml:"name" json:"name" mapstructure:"name"`
	SrcDirs    []string `yaml:"src_dirs" json:"src_dirs" mapstructure:"src_dirs"`
	ClassesDir string   `yaml:"classes_dir" json:"classes_dir" mapstructure:"classes_dir"`
	BackupDir  string   `yaml:"backup_dir,omitempty" json:"backup_dir,omitempty" mapstructure:"backup_dir"`
}

// Clover holds the instrumentation and reporting settings.
type Clover struct {
	// Classpath holds the Clover jars; it backs the cloverlib.xml taskdef.
	Classpath       []string `yaml:"classpath" json:"classpath" mapstructure:"classpath"`
	LicenseLocation string   `yaml:"license_location,omitempty" json:"license_location,omitempty" mapstructure:"license_location"`
	Ant             Ant      `yaml:"ant" json:"ant" mapstructure:"ant"`
	JavaHome        string   `yaml:"java_home,omitempty" json:"java_home,omitempty" mapstructure:"java_home"`

	// InitString is the coverage database path relative to the build dir.
	InitString           string `yaml:"init_string" json:"init_string" mapstructure:"init_string"`
	ClassesBackupDir     string `yaml:"classes_backup_dir,omitempty" json:"classes_backup_dir,omitempty" mapstructure:"classes_backup_dir"`
	TestClassesBackupDir string `yaml:"test_classes_backup_dir,omitempty" json:"test_classes_backup_dir,omitempty" mapstructure:"test_classes_backup_dir"`

	Includes                 []string              `yaml:"includes" json:"includes" mapstructure:"includes"`
	Excludes                 []string              `yaml:"excludes,omitempty" json:"excludes,omitempty" mapstructure:"excludes"`
	TestIncludes             []string              `yaml:"test_includes" json:"test_includes" mapstructure:"test_includes"`
	TestExcludes             []string              `yaml:"test_excludes,omitempty" json:"test_excludes,omitempty" mapstructure:"test_excludes"`
	AdditionalSourceDirs     []string              `yaml:"additional_source_dirs,omitempty" json:"additional_source_dirs,omitempty" mapstructure:"additional_source_dirs"`
	AdditionalTestSourceDirs []string              `yaml:"additional_test_source_dirs,omitempty" json:"additional_test_source_dirs,omitempty" mapstructure:"additional_test_source_dirs"`
	AdditionalSourceSets     []AdditionalSourceSet `yaml:"additional_source_sets,omitempty" json:"additional_source_sets,omitempty" mapstructure:"additional_source_sets"`

	// TargetPercentage, e.g. "85%", fails the report when coverage is lower.
	TargetPercentage string `yaml:"target_percentage,omitempty" json:"target_percentage,omitempty" mapstructure:"target_percentage"`
	FlushPolicy      string `yaml:"flush_policy,omitempty" json:"flush_policy,omitempty" mapstructure:"flush_policy"`
	FlushInterval    int    `yaml:"flush_interval,omitempty" json:"flush_interval,omitempty" mapstructure:"flush_interval"`
	InstrumentLambda string `yaml:"instrument_lambda,omitempty" json:"instrument_lambda,omitempty" mapstructure:"instrument_lambda"`

	Compiler Compiler `yaml:"compiler" json:"compiler" mapstructure:"compiler"`
	Contexts Contexts `yaml:"contexts,omitempty" json:"contexts,omitempty" mapstructure:"contexts"`
	Report   Report   `yaml:"report" json:"report" mapstructure:"report"`
}

// Ant configures the launcher used to run Clover's Ant tasks.
type Ant struct {
	Executable string   `yaml:"executable" json:"executable" mapstructure:"executable"`
	Home       string   `yaml:"home,omitempty" json:"home,omitempty" mapstructure:"home"`
	Args       []string `yaml:"args,omitempty" json:"args,omitempty" mapstructure:"args"`
	// WorkDir receives the generated build files. Defaults to <buildDir>/tmp/cloverkit.
	WorkDir string `yaml:"work_dir,omitempty" json:"work_dir,omitempty" mapstructure:"work_dir"`
	// StderrFile, when set, collects Ant's stderr instead of the terminal.
	StderrFile string `yaml:"stderr_file,omitempty" json:"stderr_file,omitempty" mapstructure:"stderr_file"`
}

// Compiler configures the javac/groovyc run that produces instrumented classes.
type Compiler struct {
	Encoding       string   `yaml:"encoding,omitempty" json:"encoding,omitempty" mapstructure:"encoding"`
	Executable     string   `yaml:"executable,omitempty" json:"executable,omitempty" mapstructure:"executable"`
	Debug          bool     `yaml:"debug" json:"debug" mapstructure:"debug"`
	AdditionalArgs []string `yaml:"additional_args,omitempty" json:"additional_args,omitempty" mapstructure:"additional_args"`
}

// Contexts declares Clover statement and method contexts usable in report filters.
type Contexts struct {
	Statements []StatementContext `yaml:"statements,omitempty" json:"statements,omitempty" mapstructure:"statements"`
	Methods    []MethodContext    `yaml:"methods,omitempty" json:"methods,omitempty" mapstructure:"methods"`
}

type StatementContext struct {
	Name   string `yaml:"name" json:"name" mapstructure:"name"`
	Regexp string `yaml:"regexp" json:"regexp" mapstructure:"regexp"`
}

type MethodContext struct {
	Name   string `yaml:"name" json:"name" mapstructure:"name"`
	Regexp string `yaml:"regexp" json:"regexp" mapstructure:"regexp"`
	// MaxStatements limits the context to methods with at most this many statements.
	MaxStatements int `yaml:"max_statements,omitempty" json:"max_statements,omitempty" mapstructure:"max_statements"`
}

// Report selects the output formats.
type Report struct {
	XML  bool `yaml:"xml" json:"xml" mapstructure:"xml"`
	JSON bool `yaml:"json" json:"json" mapstructure:"json"`
	HTML bool `yaml:"html" json:"html" mapstructure:"html"`
	PDF  bool `yaml:"pdf" json:"pdf" mapstructure:"pdf"`
	// Filter is a comma-separated list of contexts excluded from every format.
	Filter string `yaml:"filter,omitempty" json:"filter,omitempty" mapstructure:"filter"`
	// Title defaults to the project name.
	Title string `yaml:"title,omitempty" json:"title,omitempty" mapstructure:"title"`
}
