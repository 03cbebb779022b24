// Package logging holds the process-wide structured logger for the CLI.
// Library packages do not log; commands configure this once from their
// flags and settings.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the process-wide logger. Init replaces it.
var Logger zerolog.Logger

// Level aliases the underlying level type.
type Level = zerolog.Level

// Levels accepted by Config and ParseLevel.
const (
	DebugLevel = zerolog.DebugLevel
	InfoLevel  = zerolog.InfoLevel
	WarnLevel  = zerolog.WarnLevel
	ErrorLevel = zerolog.ErrorLevel
)

// Config selects the logger's level and sink.
type Config struct {
	// Level is the minimum level written. Default InfoLevel.
	Level Level
	// Output receives the log stream. Default os.Stderr.
	Output io.Writer
	// Pretty switches from JSON lines to the human console format.
	Pretty bool
}

// Init replaces the process logger.
func Init(cfg Config) {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	out := cfg.Output
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: cfg.Output, TimeFormat: time.Kitchen}
	}
	Logger = zerolog.New(out).Level(cfg.Level).With().Timestamp().Logger()
}

// ParseLevel maps a settings-file level name onto a Level, defaulting to
// InfoLevel for anything unrecognized.
func ParseLevel(name string) Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// Debug starts a debug event on the process logger.
func Debug() *zerolog.Event { return Logger.Debug() }

// Info starts an info event on the process logger.
func Info() *zerolog.Event { return Logger.Info() }

// Warn starts a warn event on the process logger.
func Warn() *zerolog.Event { return Logger.Warn() }

// Error starts an error event on the process logger.
func Error() *zerolog.Event { return Logger.Error() }

func init() {
	Init(Config{Level: InfoLevel})
}
