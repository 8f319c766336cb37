package errors

import (
	"github.com/cockroachdb/errors"
)

// Configuration.
var (
	ErrLoadConfig              = errors.New("failed to load cloverkit configuration")
	ErrInvalidLogLevel         = errors.New("invalid log level")
	ErrInvalidTargetPercentage = errors.New("invalid target percentage")
	ErrMissingCloverClasspath  = errors.New("clover classpath is not configured")
	ErrUnknownPlugin           = errors.New("unknown plugin")
	ErrInvalidSourceSet        = errors.New("invalid source set")
)

// Lifecycle.
var (
	ErrNotRootProject     = errors.New("report aggregation is only available for the root project")
	ErrMissingTestCommand = errors.New("no test command given")
	ErrTestCommandFailed  = errors.New("test command failed")
	ErrLockBuildDir       = errors.New("failed to lock the build directory")
)

// Class bookkeeping.
var (
	ErrBackupClasses  = errors.New("failed to back up compiled classes")
	ErrRestoreClasses = errors.New("failed to restore original classes from backup")
	ErrClearClasses   = errors.New("failed to delete instrumented classes")
)

// External engine.
var (
	ErrEngineInvocation = errors.New("clover engine invocation failed")
	ErrRenderBuildFile  = errors.New("failed to render ant build file")
)

// Coverage data.
var (
	ErrCoverageReportNotFound = errors.New("clover XML report not found")
	ErrParseCoverageReport    = errors.New("failed to parse clover XML report")
	ErrCoverageBelowTarget    = errors.New("coverage is below the target percentage")
)
