package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	logger.Info("hello")

	out := buf.String()
	if !strings.Contains(out, "hello") {
		t.Errorf("logger output missing message: %q", out)
	}
}

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name     string
		level    log.Level
		logAt    func(*log.Logger)
		expected bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("msg") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("msg") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("msg") }, true},
		{"warn at info level", log.InfoLevel, func(l *log.Logger) { l.Warn("msg") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level)
			tt.logAt(logger)

			got := strings.Contains(buf.String(), "msg")
			if got != tt.expected {
				t.Errorf("logged = %v, want %v (output %q)", got, tt.expected, buf.String())
			}
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	p := newProgress(logger)
	p.done("Routed 3 connectors")

	out := buf.String()
	if !strings.Contains(out, "Routed 3 connectors") {
		t.Errorf("progress output missing message: %q", out)
	}
	if !strings.Contains(out, "(") || !strings.Contains(out, ")") {
		t.Errorf("progress output missing elapsed duration: %q", out)
	}
}

func TestLoggerContext(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	ctx := withLogger(context.Background(), logger)
	if got := loggerFromContext(ctx); got != logger {
		t.Error("loggerFromContext did not return the attached logger")
	}

	if got := loggerFromContext(context.Background()); got == nil {
		t.Error("loggerFromContext without a logger should fall back to the default")
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)

	c.Logger.Debug("before")
	if strings.Contains(buf.String(), "before") {
		t.Error("debug message logged at info level")
	}

	c.SetLogLevel(LogDebug)
	c.Logger.Debug("after")
	if !strings.Contains(buf.String(), "after") {
		t.Error("debug message not logged after SetLogLevel(LogDebug)")
	}
}
