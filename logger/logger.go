package logger

import (
	"fmt"
	"log"
	"os"
	"path"
	"regexp"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"github.com/xy-planning-network/dispatch"
)

// callerFrames counts the frames a DispatchLogger adds above the code calling it.
const callerFrames = 2

var modulePathRegex = regexp.MustCompile("dispatch/.*$")

// A Logger writes messages at a LogLevel, each optionally carrying a LogContext.
type Logger interface {
	Debug(msg string, ctx *LogContext)
	Error(msg string, ctx *LogContext)
	Fatal(msg string, ctx *LogContext)
	Info(msg string, ctx *LogContext)
	Warn(msg string, ctx *LogContext)

	LogLevel() LogLevel
}

// A SkipLogger reports the call site some number of frames above it.
// Wrappers add their own frames with AddSkip so logs point at their callers.
type SkipLogger interface {
	AddSkip(i int) SkipLogger
	Skip() int
	Logger
}

// A LogLevel orders messages by severity.
// Loggers drop messages below their own LogLevel.
type LogLevel int

const (
	LogLevelUnk LogLevel = iota
	LogLevelDebug
	LogLevelInfo
	LogLevelWarn
	LogLevelError
	LogLevelFatal
)

var levels = [...]struct {
	name  string
	paint func(string, ...any) string
}{
	LogLevelUnk:   {"UNK", fmt.Sprintf},
	LogLevelDebug: {"DEBUG", color.WhiteString},
	LogLevelInfo:  {"INFO", color.BlueString},
	LogLevelWarn:  {"WARN", color.YellowString},
	LogLevelError: {"ERROR", color.RedString},
	LogLevelFatal: {"FATAL", color.MagentaString},
}

// NewLogLevel parses val regardless of case or surrounding space.
// WARNING is read as WARN.
// Anything else unrecognized is LogLevelUnk.
func NewLogLevel(val string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(val)) {
	case "DEBUG":
		return LogLevelDebug
	case "INFO":
		return LogLevelInfo
	case "WARN", "WARNING":
		return LogLevelWarn
	case "ERROR":
		return LogLevelError
	case "FATAL":
		return LogLevelFatal
	default:
		return LogLevelUnk
	}
}

func (ll LogLevel) String() string {
	if ll < LogLevelUnk || ll > LogLevelFatal {
		ll = LogLevelUnk
	}

	return "[" + levels[ll].name + "]"
}

// DispatchLogger writes colorized lines through a *log.Logger.
// Each line names the level, the calling file and line, and the message,
// followed by the LogContext as JSON when one is given.
type DispatchLogger struct {
	env   dispatch.Environment
	l     *log.Logger
	level LogLevel
	skip  int
}

// NewLogger constructs a DispatchLogger writing to os.Stdout at LogLevelInfo.
// The environment is read from ENVIRONMENT, defaulting to DEVELOPMENT.
//
// When SENTRY_DSN is set, the DispatchLogger is wrapped in a SentryLogger.
func NewLogger(opts ...LoggerOptFn) Logger {
	l := &DispatchLogger{
		env:   dispatch.EnvVarOrEnv("ENVIRONMENT", dispatch.Development),
		l:     log.New(os.Stdout, "", log.LstdFlags),
		level: LogLevelInfo,
	}
	for _, opt := range opts {
		opt(l)
	}

	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		l.Info("SENTRY_DSN set, reporting to Sentry", nil)
		return NewSentryLogger(l, dsn)
	}

	return l
}

// AddSkip returns a copy of l reporting the call site i frames further up.
// i replaces, not adds to, the current skip; see Skip.
func (l *DispatchLogger) AddSkip(i int) SkipLogger {
	cp := *l
	cp.skip = i
	return &cp
}

func (l *DispatchLogger) Debug(msg string, ctx *LogContext) { l.write(LogLevelDebug, msg, ctx) }
func (l *DispatchLogger) Error(msg string, ctx *LogContext) { l.write(LogLevelError, msg, ctx) }
func (l *DispatchLogger) Fatal(msg string, ctx *LogContext) { l.write(LogLevelFatal, msg, ctx) }
func (l *DispatchLogger) Info(msg string, ctx *LogContext)  { l.write(LogLevelInfo, msg, ctx) }
func (l *DispatchLogger) Warn(msg string, ctx *LogContext)  { l.write(LogLevelWarn, msg, ctx) }

func (l *DispatchLogger) LogLevel() LogLevel { return l.level }

func (l *DispatchLogger) Skip() int { return l.skip }

// write must only be called directly by the exported level methods
// so callerFrames stays accurate.
func (l *DispatchLogger) write(level LogLevel, msg string, ctx *LogContext) {
	if l.level > level {
		return
	}

	caller := ""
	if ctx != nil {
		caller = ctx.Caller
	}

	if caller == "" {
		_, file, line, _ := runtime.Caller(callerFrames + l.skip)
		caller = fmt.Sprintf(callerTmpl, shortPath(file), line)
	}

	out := levels[level].paint("%s %s '%s'", level, caller, msg)
	if ctx == nil {
		l.l.Println(out)
		return
	}

	l.l.Println(out, "log_context:", ctx)
}

// shortPath trims file to the part rooted at this module,
// or else to the file and its parent directory.
//
//	/src/dispatch/http/resp/response.go => dispatch/http/resp/response.go
//	/home/me/app/internal/web.go         => internal/web.go
func shortPath(file string) string {
	if match := modulePathRegex.FindString(file); match != "" {
		return match
	}

	dir, name := path.Split(file)
	return path.Base(dir) + "/" + name
}
