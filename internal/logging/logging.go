// Package logging provides the zerolog implementation of xmoney.Logger.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/fivetwenty-io/xmoney-go/pkg/xmoney"
)

// Options configures a Logger.
type Options struct {
	// Level is a level name; empty or unknown names mean info.
	Level   string
	Output  io.Writer
	Console bool
}

// Logger adapts a zerolog.Logger to xmoney.Logger.
type Logger struct {
	base zerolog.Logger
}

var _ xmoney.Logger = (*Logger)(nil)

// New creates a Logger. A nil Output writes to stderr.
func New(opts Options) *Logger {
	output := opts.Output
	if output == nil {
		output = os.Stderr
	}

	if opts.Console {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: "15:04:05",
		}
	}

	base := zerolog.New(output).
		With().
		Timestamp().
		Logger().
		Level(ParseLevel(opts.Level))

	return &Logger{base: base}
}

// NewStderr creates a Logger on stderr, human readable when stderr is a
// terminal.
func NewStderr(level string) *Logger {
	return New(Options{
		Level:   level,
		Output:  os.Stderr,
		Console: term.IsTerminal(int(os.Stderr.Fd())),
	})
}

// ParseLevel parses a level name, falling back to info.
func ParseLevel(value string) zerolog.Level {
	levelString := strings.ToLower(strings.TrimSpace(value))
	if levelString == "" {
		return zerolog.InfoLevel
	}

	if lvl, err := zerolog.ParseLevel(levelString); err == nil && lvl != zerolog.NoLevel {
		return lvl
	}

	return zerolog.InfoLevel
}

// Zerolog returns the underlying zerolog.Logger.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.base
}

func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.base.Debug().Fields(fields).Msg(msg)
}

func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.base.Info().Fields(fields).Msg(msg)
}

func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.base.Warn().Fields(fields).Msg(msg)
}

func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.base.Error().Fields(fields).Msg(msg)
}
