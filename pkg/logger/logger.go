// Package logger configures the process wide zerolog logger.
package logger

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu  sync.RWMutex
	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
)

// Init replaces the global logger. The default level is warn, verbose
// enables info and debug enables everything.
func Init(debug, verbose bool, w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	_, isFile := w.(*os.File)
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    !isFile,
	}

	mu.Lock()
	log = zerolog.New(output).With().Timestamp().Logger()
	mu.Unlock()

	switch {
	case debug:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case verbose:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
}

func get() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := log
	return &l
}

// With returns a child logger tagged with component.
func With(component string) zerolog.Logger {
	return get().With().Str("component", component).Logger()
}

func Debug() *zerolog.Event { return get().Debug() }

func Info() *zerolog.Event { return get().Info() }

func Warn() *zerolog.Event { return get().Warn() }

func Error() *zerolog.Event { return get().Error() }

// Fatal logs and exits the program.
func Fatal() *zerolog.Event { return get().Fatal() }
