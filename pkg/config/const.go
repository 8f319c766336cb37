package config

const (
	CliConfigFileName    = "cloverkit"
	DotCliConfigDirName  = ".cloverkit"
	CliConfigPathEnvVar  = "CLOVERKIT_CLI_CONFIG_PATH"
	EnvPrefix            = "CLOVERKIT"
	SystemConfigDirName  = "cloverkit"
	DefaultInitString    = ".clover/clover.db"
	DefaultBuildDir      = "build"
	DefaultReportsSubdir = "reports"
	DefaultAntExecutable = "ant"
	BackupDirSuffix      = "-bak"

	// CloverReportsDirName is the directory under the reports dir that receives every format.
	CloverReportsDirName = "clover"
	XMLReportFileName    = "clover.xml"
	JSONReportDirName    = "json"
	HTMLReportDirName    = "html"
	PDFReportFileName    = "clover.pdf"

	LockFileName = "cloverkit.lock"

	PluginJava   = "java"
	PluginGroovy = "groovy"

	SourceSetMain = "main"
	SourceSetTest = "test"
)
