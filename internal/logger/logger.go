// Package logger provides structured logging for the console.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger wraps logrus logger with a set of fields attached to every entry
type Logger struct {
	log    *logrus.Logger
	fields logrus.Fields
}

// Entry wraps logrus entry for method chaining
type Entry struct {
	entry *logrus.Entry
	level logrus.Level
}

// New creates a new logger instance
func New(level string, output io.Writer) *Logger {
	if output == nil {
		output = os.Stderr
	}

	log := logrus.New()
	log.SetOutput(output)
	log.SetLevel(ParseLevel(level))

	// Use simple text formatter with colors
	log.SetFormatter(&logrus.TextFormatter{
		ForceColors:      true,
		DisableTimestamp: true,
		PadLevelText:     true,
	})

	return &Logger{log: log, fields: logrus.Fields{}}
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	l := New("panic", io.Discard)
	return l
}

// ParseLevel converts a level name, falling back to info for unknown names
func ParseLevel(level string) logrus.Level {
	lvl, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// With returns a child logger that adds key=value to every entry
func (l *Logger) With(key string, value interface{}) *Logger {
	fields := make(logrus.Fields, len(l.fields)+1)
	for k, v := range l.fields {
		fields[k] = v
	}
	fields[key] = value
	return &Logger{log: l.log, fields: fields}
}

// SetLevel changes the minimum level of the underlying logger
func (l *Logger) SetLevel(level string) {
	l.log.SetLevel(ParseLevel(level))
}

// AddHook attaches a logrus hook to the underlying logger
func (l *Logger) AddHook(hook logrus.Hook) {
	l.log.AddHook(hook)
}

// RemoveHook detaches every registration of hook from the underlying logger
func (l *Logger) RemoveHook(hook logrus.Hook) {
	kept := make(logrus.LevelHooks)
	for level, hooks := range l.log.ReplaceHooks(make(logrus.LevelHooks)) {
		for _, h := range hooks {
			if h != hook {
				kept[level] = append(kept[level], h)
			}
		}
	}
	l.log.ReplaceHooks(kept)
}

// DebugEnabled reports whether debug entries are emitted
func (l *Logger) DebugEnabled() bool {
	return l.log.IsLevelEnabled(logrus.DebugLevel)
}

func (l *Logger) newEntry(level logrus.Level) *Entry {
	return &Entry{entry: l.log.WithFields(l.fields), level: level}
}

// Debug starts a debug entry
func (l *Logger) Debug() *Entry { return l.newEntry(logrus.DebugLevel) }

// Info starts an info entry
func (l *Logger) Info() *Entry { return l.newEntry(logrus.InfoLevel) }

// Warn starts a warning entry
func (l *Logger) Warn() *Entry { return l.newEntry(logrus.WarnLevel) }

// Error starts an error entry
func (l *Logger) Error() *Entry { return l.newEntry(logrus.ErrorLevel) }

// Str adds a string field
func (e *Entry) Str(key, value string) *Entry {
	e.entry = e.entry.WithField(key, value)
	return e
}

// Strs adds a string slice field
func (e *Entry) Strs(key string, values []string) *Entry {
	e.entry = e.entry.WithField(key, strings.Join(values, ","))
	return e
}

// Int adds an int field
func (e *Entry) Int(key string, value int) *Entry {
	e.entry = e.entry.WithField(key, value)
	return e
}

// Bool adds a bool field
func (e *Entry) Bool(key string, value bool) *Entry {
	e.entry = e.entry.WithField(key, value)
	return e
}

// Err adds an error field
func (e *Entry) Err(err error) *Entry {
	if err != nil {
		e.entry = e.entry.WithError(err)
	}
	return e
}

// Dur adds a duration field (formatted in milliseconds)
func (e *Entry) Dur(key string, duration time.Duration) *Entry {
	ms := float64(duration.Microseconds()) / 1000.0
	e.entry = e.entry.WithField(key, ms)
	return e
}

// Msg logs the message with accumulated fields
func (e *Entry) Msg(msg string) {
	e.entry.Log(e.level, msg)
}
