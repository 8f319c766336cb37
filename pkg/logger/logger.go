package logger

import (
	"io"
	"os"
	"strings"

	charm "github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"

	errUtils "github.com/cloverkit/cloverkit/errors"
	"github.com/cloverkit/cloverkit/pkg/schema"
)

// Level aliases the charm log level so callers don't import charm directly.
type Level = charm.Level

const (
	// TraceLevel is one step more verbose than debug.
	TraceLevel = charm.DebugLevel - 1
	DebugLevel = charm.DebugLevel
	InfoLevel  = charm.InfoLevel
	WarnLevel  = charm.WarnLevel
	ErrorLevel = charm.ErrorLevel
	FatalLevel = charm.FatalLevel
	// OffLevel is above every level charm emits, silencing the logger.
	OffLevel = charm.FatalLevel + 1
)

// Configured log level names, as written in cloverkit.yaml and --logs-level.
const (
	LogLevelTrace   = "Trace"
	LogLevelDebug   = "Debug"
	LogLevelInfo    = "Info"
	LogLevelWarning = "Warning"
	LogLevelOff     = "Off"
)

// Logger wraps a charm logger and adds a trace level.
type Logger struct {
	*charm.Logger
}

// NewLogger creates a Logger writing to w.
func NewLogger(w io.Writer) *Logger {
	l := charm.NewWithOptions(w, charm.Options{ReportTimestamp: false})
	styles := charm.DefaultStyles()
	styles.Levels[TraceLevel] = styles.Levels[charm.DebugLevel].SetString("TRCE")
	l.SetStyles(styles)
	return &Logger{Logger: l}
}

// Trace logs a message at trace level.
func (l *Logger) Trace(msg interface{}, keyvals ...interface{}) {
	l.Log(TraceLevel, msg, keyvals...)
}

// GetLevelString returns the lowercase name of the current level.
func (l *Logger) GetLevelString() string {
	switch l.GetLevel() {
	case TraceLevel:
		return "trace"
	case OffLevel:
		return "off"
	default:
		return l.GetLevel().String()
	}
}

// ParseLogLevel converts a configured level name into a Level.
// An empty string means Info.
func ParseLogLevel(logLevel string) (Level, error) {
	switch logLevel {
	case "":
		return InfoLevel, nil
	case LogLevelTrace:
		return TraceLevel, nil
	case LogLevelDebug:
		return DebugLevel, nil
	case LogLevelInfo:
		return InfoLevel, nil
	case LogLevelWarning:
		return WarnLevel, nil
	case LogLevelOff:
		return OffLevel, nil
	default:
		return InfoLevel, errUtils.Build(errors.Wrapf(errUtils.ErrInvalidLogLevel, "%q", logLevel)).
			WithHintf("Supported log levels are %s", strings.Join([]string{LogLevelTrace, LogLevelDebug, LogLevelInfo, LogLevelWarning, LogLevelOff}, ", ")).
			Err()
	}
}

// openLogFile resolves the logs.file setting into a writer.
func openLogFile(file string) (io.Writer, error) {
	switch file {
	case "", "/dev/stderr":
		return os.Stderr, nil
	case "/dev/stdout":
		return os.Stdout, nil
	case "/dev/null":
		return io.Discard, nil
	default:
		f, err := os.OpenFile(file, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
		if err != nil {
			return nil, errors.Wrapf(err, "open log file %s", file)
		}
		return f, nil
	}
}

// NewLoggerFromConfig builds a Logger from the logs section of the configuration.
func NewLoggerFromConfig(logs schema.Logs) (*Logger, error) {
	level, err := ParseLogLevel(logs.Level)
	if err != nil {
		return nil, err
	}
	w, err := openLogFile(logs.File)
	if err != nil {
		return nil, err
	}
	l := NewLogger(w)
	l.SetLevel(level)
	return l, nil
}

// Configure replaces the default logger with one built from logs.
func Configure(logs schema.Logs) error {
	l, err := NewLoggerFromConfig(logs)
	if err != nil {
		return err
	}
	SetDefault(l)
	return nil
}
