package logger

import (
	"log"

	"github.com/xy-planning-network/dispatch"
)

// A LoggerOptFn configures a DispatchLogger built by NewLogger.
type LoggerOptFn func(*DispatchLogger)

// WithEnv tags logs, and any Sentry reports, with env.
func WithEnv(env dispatch.Environment) LoggerOptFn {
	return func(l *DispatchLogger) { l.env = env }
}

// WithLevel drops messages below level.
func WithLevel(level LogLevel) LoggerOptFn {
	return func(l *DispatchLogger) { l.level = level }
}

// WithLogger writes through std instead of a *log.Logger on os.Stdout.
func WithLogger(std *log.Logger) LoggerOptFn {
	return func(l *DispatchLogger) { l.l = std }
}

// WithSkip reports call sites skip frames above the code calling the DispatchLogger.
// Packages wrapping a Logger in helpers set this so logs name their callers.
func WithSkip(skip int) LoggerOptFn {
	return func(l *DispatchLogger) { l.skip = skip }
}
