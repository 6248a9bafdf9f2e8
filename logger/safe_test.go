package logger_test

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/dispatch/logger"
)

func TestSafe(t *testing.T) {
	t.Run("Nil", func(t *testing.T) {
		l := logger.Safe(nil)
		require.NotPanics(t, func() {
			l.Debug("msg", nil)
			l.Error("msg", nil)
			l.Fatal("msg", nil)
			l.Info("msg", nil)
			l.Warn("msg", nil)
		})
		require.Equal(t, logger.LogLevelUnk, l.LogLevel())
	})

	t.Run("Panicking", func(t *testing.T) {
		l := logger.Safe(panicLogger{})
		require.NotPanics(t, func() {
			l.Debug("msg", nil)
			l.Error("msg", nil)
			l.Fatal("msg", nil)
			l.Info("msg", nil)
			l.Warn("msg", nil)
		})
		require.Equal(t, logger.LogLevelUnk, l.LogLevel())
	})

	t.Run("Passthrough", func(t *testing.T) {
		b := new(bytes.Buffer)
		l := logger.Safe(logger.NewLogger(logger.WithLogger(log.New(b, "", 0))))

		l.Info("through", nil)

		require.Contains(t, b.String(), "'through'")
		require.Contains(t, b.String(), "logger/safe_test.go")
		require.Equal(t, logger.LogLevelInfo, l.LogLevel())
	})

	t.Run("Idempotent", func(t *testing.T) {
		l := logger.Safe(panicLogger{})
		require.Equal(t, l, logger.Safe(l))
	})
}

func TestStack(t *testing.T) {
	s := logger.Stack("late write")
	require.Contains(t, s, "late write\n")
	require.Contains(t, s, "goroutine")
}

type panicLogger struct{}

func (panicLogger) Debug(string, *logger.LogContext) { panic("not ready") }
func (panicLogger) Error(string, *logger.LogContext) { panic("not ready") }
func (panicLogger) Fatal(string, *logger.LogContext) { panic("not ready") }
func (panicLogger) Info(string, *logger.LogContext)  { panic("not ready") }
func (panicLogger) Warn(string, *logger.LogContext)  { panic("not ready") }
func (panicLogger) LogLevel() logger.LogLevel        { panic("not ready") }
