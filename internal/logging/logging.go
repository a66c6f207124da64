// Package logging holds the process-wide zerolog logger shared by the loader
// packages and the CLI. Until Init or Setup runs, warnings and errors go to
// stderr, as console lines when stderr is a terminal and JSON otherwise.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// EnvLevel is the environment variable the CLI reads when --log-level is
// not given.
const EnvLevel = "YAMLCONFIG_LOG_LEVEL"

// Logger is the shared logger. Packages log through Debug, Info and Warn.
var Logger zerolog.Logger

// Level is a zerolog level.
type Level = zerolog.Level

const (
	DebugLevel = zerolog.DebugLevel
	InfoLevel  = zerolog.InfoLevel
	WarnLevel  = zerolog.WarnLevel
	ErrorLevel = zerolog.ErrorLevel
	Disabled   = zerolog.Disabled
)

// Config describes where and how the logger writes.
type Config struct {
	Level  Level
	Output io.Writer // nil means os.Stderr
	// Pretty writes console lines instead of JSON objects.
	Pretty bool
	// NoColor drops ANSI colours from console lines.
	NoColor bool
}

// DefaultConfig logs warnings and above to stderr, as console lines when
// stderr is a terminal.
func DefaultConfig() Config {
	return Config{
		Level:  WarnLevel,
		Output: os.Stderr,
		Pretty: IsTerminal(os.Stderr),
	}
}

// Init replaces the shared logger.
func Init(cfg Config) {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	var out io.Writer = cfg.Output
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{
			Out:        cfg.Output,
			NoColor:    cfg.NoColor,
			TimeFormat: time.TimeOnly,
		}
	}
	Logger = zerolog.New(out).Level(cfg.Level).With().Timestamp().Logger()
}

// Setup configures the logger for one CLI run from a level name as written
// in flags, the environment or the settings file.
func Setup(level string, noColor bool) {
	cfg := DefaultConfig()
	cfg.Level = ParseLevel(level)
	cfg.NoColor = noColor
	Init(cfg)
}

// ParseLevel maps debug, info, warn(ing), error and off/none/disabled, in
// any case, to a Level. Anything else is WarnLevel.
func ParseLevel(level string) Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	case "off", "none", "disabled":
		return Disabled
	default:
		return WarnLevel
	}
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func Debug() *zerolog.Event { return Logger.Debug() }
func Info() *zerolog.Event  { return Logger.Info() }
func Warn() *zerolog.Event  { return Logger.Warn() }

func init() {
	Init(DefaultConfig())
}
