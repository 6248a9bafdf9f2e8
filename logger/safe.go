package logger

import (
	"runtime/debug"
)

var _ Logger = SafeLogger{}

// A SafeLogger guards every call to the Logger it wraps,
// so a panic raised while logging is recovered and dropped.
//
// A zero-value SafeLogger discards all messages.
type SafeLogger struct {
	l Logger
}

// Safe wraps l in a SafeLogger.
// If l is already a SafeLogger, Safe returns it.
func Safe(l Logger) Logger {
	switch t := l.(type) {
	case SafeLogger:
		return t
	case SkipLogger:
		// NOTE: SafeLogger adds a frame between the caller and l
		return SafeLogger{l: t.AddSkip(t.Skip() + 1)}
	default:
		return SafeLogger{l: l}
	}
}

func (sl SafeLogger) Debug(msg string, ctx *LogContext) {
	defer swallow()
	if sl.l != nil {
		sl.l.Debug(msg, ctx)
	}
}

func (sl SafeLogger) Error(msg string, ctx *LogContext) {
	defer swallow()
	if sl.l != nil {
		sl.l.Error(msg, ctx)
	}
}

func (sl SafeLogger) Fatal(msg string, ctx *LogContext) {
	defer swallow()
	if sl.l != nil {
		sl.l.Fatal(msg, ctx)
	}
}

func (sl SafeLogger) Info(msg string, ctx *LogContext) {
	defer swallow()
	if sl.l != nil {
		sl.l.Info(msg, ctx)
	}
}

func (sl SafeLogger) Warn(msg string, ctx *LogContext) {
	defer swallow()
	if sl.l != nil {
		sl.l.Warn(msg, ctx)
	}
}

// LogLevel returns the LogLevel of the wrapped Logger,
// or LogLevelUnk if it has none or panics.
func (sl SafeLogger) LogLevel() (ll LogLevel) {
	defer func() {
		if recover() != nil {
			ll = LogLevelUnk
		}
	}()

	if sl.l == nil {
		return LogLevelUnk
	}

	return sl.l.LogLevel()
}

// Stack formats msg followed by the stack trace of the calling goroutine.
//
// Use Stack to diagnose a code path that ought not be reached,
// without panicking.
func Stack(msg string) string {
	return msg + "\n" + string(debug.Stack())
}

func swallow() { _ = recover() }
