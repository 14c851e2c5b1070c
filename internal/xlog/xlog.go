// Package xlog configures the single zerolog logger this repository's
// packages log through, following the gnark-family convention of a
// package-level logger initialized once by the process entry point and
// handed out as named component sub-loggers (spec §9 AMBIENT STACK).
package xlog

import (
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu     sync.RWMutex
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger().
		Level(zerolog.InfoLevel)
)

// Init (re)configures the global logger's level and output format. console
// selects zerolog.ConsoleWriter (for cmd/compare's terminal output);
// otherwise the logger writes plain JSON lines, suitable for capture by a
// log aggregator.
func Init(level string, console bool) {
	var out zerolog.Logger
	if console {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	} else {
		out = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	zl, err := zerolog.ParseLevel(level)
	if err != nil {
		panic(fmt.Sprintf("xlog: invalid log level %q: %v", level, err))
	}

	mu.Lock()
	logger = out.Level(zl)
	mu.Unlock()
}

// Logger is a named handle onto the package-global logger. It resolves the
// current global logger on every call instead of snapshotting it at
// Component-construction time, so package-level `var logger =
// xlog.Component(...)` declarations — evaluated at init(), necessarily
// before main ever calls Init — still honor a later Init call.
type Logger struct {
	name string
}

// Component returns a handle tagged with the given component name (e.g.
// "vole", "gate", "sudoku"), the unit every package in this repository logs
// Debug-level tracing and Warn-level validation failures through.
func Component(name string) *Logger {
	return &Logger{name: name}
}

func (l *Logger) current() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger.With().Str("component", l.name).Logger()
}

// Debug starts a Debug-level event against the current global logger.
func (l *Logger) Debug() *zerolog.Event { return l.current().Debug() }

// Warn starts a Warn-level event against the current global logger.
func (l *Logger) Warn() *zerolog.Event { return l.current().Warn() }

// Info starts an Info-level event against the current global logger.
func (l *Logger) Info() *zerolog.Event { return l.current().Info() }

// Error starts an Error-level event against the current global logger.
func (l *Logger) Error() *zerolog.Event { return l.current().Error() }
