package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerFiltersByLevel(t *testing.T) {
	tests := []struct {
		name  string
		level log.Level
		emit  func(*log.Logger)
		want  bool
	}{
		{"info at info", log.InfoLevel, func(l *log.Logger) { l.Info("hello") }, true},
		{"debug at info", log.InfoLevel, func(l *log.Logger) { l.Debug("hello") }, false},
		{"debug at debug", log.DebugLevel, func(l *log.Logger) { l.Debug("hello") }, true},
		{"warn at info", log.InfoLevel, func(l *log.Logger) { l.Warn("hello") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.emit(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.want {
				t.Errorf("wrote output = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	prog.done("Applied %d passes", 3)

	out := buf.String()
	if !strings.Contains(out, "Applied 3 passes") {
		t.Errorf("output %q missing the message", out)
	}
	// The elapsed time is appended in parentheses.
	if !strings.Contains(out, "(") || !strings.Contains(out, ")") {
		t.Errorf("output %q missing the duration suffix", out)
	}
}

func TestLoggerContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)

	ctx := withLogger(context.Background(), custom)
	if got := loggerFromContext(ctx); got != custom {
		t.Error("loggerFromContext should return the attached logger")
	}

	if got := loggerFromContext(context.Background()); got == nil {
		t.Error("loggerFromContext should fall back to a non-nil default")
	}
}
