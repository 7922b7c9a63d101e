package logger

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  logrus.Level
	}{
		{name: "debug level", level: "debug", want: logrus.DebugLevel},
		{name: "warn level", level: "warn", want: logrus.WarnLevel},
		{name: "error level", level: "error", want: logrus.ErrorLevel},
		{name: "invalid level defaults to info", level: "invalid", want: logrus.InfoLevel},
		{name: "empty level defaults to info", level: "", want: logrus.InfoLevel},
		{name: "uppercase level", level: "DEBUG", want: logrus.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(tt.level, &bytes.Buffer{})
			if logger == nil || logger.log == nil {
				t.Fatal("Expected logger to be non-nil")
				return
			}
			assert.Equal(t, tt.want, logger.log.GetLevel())
		})
	}
}

func TestNew_NilOutput(t *testing.T) {
	logger := New("info", nil)
	if logger == nil || logger.log == nil {
		t.Fatal("Expected logger to be non-nil")
	}
}

func TestNop(t *testing.T) {
	logger := Nop()
	logger.Error().Msg("dropped")
	assert.False(t, logger.DebugEnabled())
}

func TestLogger_Levels(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := New("debug", buf)

	logger.Debug().Msg("debug message")
	logger.Info().Msg("info message")
	logger.Warn().Msg("warn message")
	logger.Error().Msg("error message")

	output := buf.String()
	for _, msg := range []string{"debug message", "info message", "warn message", "error message"} {
		if !strings.Contains(output, msg) {
			t.Errorf("Expected output to contain '%s', got: %s", msg, output)
		}
	}
	assert.Contains(t, output, "WARN")
	assert.Contains(t, output, "ERRO")
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name        string
		logLevel    string
		messageFunc func(*Logger)
		shouldLog   bool
	}{
		{
			name:        "debug message with debug level",
			logLevel:    "debug",
			messageFunc: func(l *Logger) { l.Debug().Msg("debug") },
			shouldLog:   true,
		},
		{
			name:        "debug message with info level",
			logLevel:    "info",
			messageFunc: func(l *Logger) { l.Debug().Msg("debug") },
			shouldLog:   false,
		},
		{
			name:        "info message with warn level",
			logLevel:    "warn",
			messageFunc: func(l *Logger) { l.Info().Msg("info") },
			shouldLog:   false,
		},
		{
			name:        "error message with error level",
			logLevel:    "error",
			messageFunc: func(l *Logger) { l.Error().Msg("error") },
			shouldLog:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			tt.messageFunc(New(tt.logLevel, buf))

			hasOutput := buf.Len() > 0
			assert.Equal(t, tt.shouldLog, hasOutput, "output: %s", buf.String())
		})
	}
}

func TestEntry_ChainedFields(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := New("info", buf)

	logger.Info().
		Str("command", "add").
		Strs("args", []string{"10", "20"}).
		Int("count", 2).
		Bool("flag", false).
		Dur("took", 1500*time.Microsecond).
		Err(errors.New("chain error")).
		Msg("chained message")

	output := buf.String()
	for _, want := range []string{"chained message", "command", "add", "10,20", "count", "flag", "1.5", "chain error"} {
		assert.Contains(t, output, want)
	}
}

func TestEntry_Err_Nil(t *testing.T) {
	buf := &bytes.Buffer{}
	New("error", buf).Error().Err(nil).Msg("no error")

	assert.Contains(t, buf.String(), "no error")
}

func TestLogger_With(t *testing.T) {
	buf := &bytes.Buffer{}
	base := New("info", buf)
	child := base.With("session", "abc123")

	child.Info().Msg("from child")
	assert.Contains(t, buf.String(), "abc123")

	buf.Reset()
	base.Info().Msg("from base")
	assert.NotContains(t, buf.String(), "abc123")
}

func TestLogger_SetLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := New("error", buf)
	assert.False(t, logger.DebugEnabled())

	logger.SetLevel("debug")
	assert.True(t, logger.DebugEnabled())
	logger.Debug().Msg("now visible")
	assert.Contains(t, buf.String(), "now visible")
}

type countingHook struct{ fired int }

func (h *countingHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h *countingHook) Fire(*logrus.Entry) error {
	h.fired++
	return nil
}

func TestLogger_RemoveHook(t *testing.T) {
	log := New("info", io.Discard)
	gone, kept := &countingHook{}, &countingHook{}
	log.AddHook(gone)
	log.AddHook(kept)

	log.RemoveHook(gone)
	log.Info().Msg("hello")

	assert.Equal(t, 0, gone.fired)
	assert.Equal(t, 1, kept.fired)
	for _, hooks := range log.log.Hooks {
		assert.Len(t, hooks, 1)
	}
}
