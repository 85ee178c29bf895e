package logging

import (
	"io"
	"os"
	"runtime"
	"time"

	"cloud.google.com/go/logging"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config is the logging configuration.
type Config struct {
	Version string
	Debug   bool
	// Human writes colored console lines instead of JSON.
	Human bool
	// Output defaults to stdout.
	Output io.Writer
}

// SetupLogger configures the global logger. Every event carries a Google Cloud severity so the
// JSON output can be ingested by Cloud Logging as is.
func SetupLogger(cfg Config) {
	zerolog.TimestampFieldName = "timestamp"
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	log.Logger = New(cfg)
}

// New builds a logger with the configuration, without touching global state.
func New(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	if cfg.Human {
		out = zerolog.ConsoleWriter{Out: out}
	}

	return zerolog.New(out).
		Hook(googleSeverityHook{}).
		With().
		Timestamp().
		Str("version", cfg.Version).
		Str("goversion", runtime.Version()).
		Logger()
}

type googleSeverityHook struct{}

func (h googleSeverityHook) Run(e *zerolog.Event, level zerolog.Level, _ string) {
	e.Str("severity", levelToSeverity(level).String())
}

func levelToSeverity(level zerolog.Level) logging.Severity {
	switch level {
	case zerolog.TraceLevel, zerolog.DebugLevel:
		return logging.Debug
	case zerolog.WarnLevel:
		return logging.Warning
	case zerolog.ErrorLevel:
		return logging.Error
	case zerolog.FatalLevel:
		return logging.Alert
	case zerolog.PanicLevel:
		return logging.Emergency
	default:
		return logging.Info
	}
}
