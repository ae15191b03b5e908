// Package logger wraps zerolog behind the small structured-logging surface
// the application services use.
package logger

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger is a named, leveled, structured logger.
type Logger struct {
	zl zerolog.Logger
}

// Config controls logger construction.
type Config struct {
	// Level is one of debug, info, warn, error. Defaults to info.
	Level string
	// Pretty switches to the human-readable console writer.
	Pretty bool
}

// New builds a logger for the given component name.
func New(component string, cfg Config) *Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var zl zerolog.Logger
	if cfg.Pretty {
		zl = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		zl = zerolog.New(os.Stderr)
	}
	zl = zl.Level(level).With().Timestamp().Str("component", component).Logger()
	return &Logger{zl: zl}
}

// NewDefault builds an info-level JSON logger for the given component name.
func NewDefault(component string) *Logger {
	return New(component, Config{})
}

// Named returns a child logger with the component name replaced.
func (l *Logger) Named(component string) *Logger {
	return &Logger{zl: l.zl.With().Str("component", component).Logger()}
}

// WithField returns a child logger carrying an extra field.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{zl: l.zl.With().Interface(key, value).Logger()}
}

// WithError returns a child logger carrying the error field.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{zl: l.zl.With().AnErr("error", err).Logger()}
}

func (l *Logger) Debug(msg string) { l.zl.Debug().Msg(msg) }
func (l *Logger) Info(msg string)  { l.zl.Info().Msg(msg) }
func (l *Logger) Warn(msg string)  { l.zl.Warn().Msg(msg) }
func (l *Logger) Error(msg string) { l.zl.Error().Msg(msg) }

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.zl.Debug().Msg(fmt.Sprintf(format, args...))
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.zl.Info().Msg(fmt.Sprintf(format, args...))
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.zl.Warn().Msg(fmt.Sprintf(format, args...))
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.zl.Error().Msg(fmt.Sprintf(format, args...))
}

func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.zl.Fatal().Msg(fmt.Sprintf(format, args...))
}
