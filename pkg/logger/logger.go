// Package logger provides the structured logging wrapper shared by every
// engine component, built on zerolog.
package logger

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	once   sync.Once
	logger zerolog.Logger
)

// Level is a zerolog level, re-exported so callers don't import zerolog
// directly.
type Level = zerolog.Level

const (
	DebugLevel = zerolog.DebugLevel
	InfoLevel  = zerolog.InfoLevel
	WarnLevel  = zerolog.WarnLevel
	ErrorLevel = zerolog.ErrorLevel
	FatalLevel = zerolog.FatalLevel
)

// Config controls where and how log output is written.
type Config struct {
	Level      string `yaml:"level" json:"level"`
	Format     string `yaml:"format" json:"format"` // json/console
	Output     string `yaml:"output" json:"output"` // stdout/stderr/file
	FilePath   string `yaml:"file_path,omitempty" json:"file_path,omitempty"`
	TimeFormat string `yaml:"time_format,omitempty" json:"time_format,omitempty"`
}

// DefaultConfig returns a console logger writing to stdout at info level.
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		Format:     "console",
		Output:     "stdout",
		TimeFormat: time.RFC3339,
	}
}

// Init configures the package-level logger. Safe to call multiple times;
// only the first call takes effect.
func Init(cfg Config) {
	once.Do(func() {
		level := parseLevel(cfg.Level)
		zerolog.SetGlobalLevel(level)

		var output io.Writer
		switch cfg.Output {
		case "stderr":
			output = os.Stderr
		case "file":
			if cfg.FilePath != "" {
				f, err := os.OpenFile(cfg.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
				if err == nil {
					output = f
				} else {
					output = os.Stdout
				}
			} else {
				output = os.Stdout
			}
		default:
			output = os.Stdout
		}

		if cfg.Format == "console" {
			output = zerolog.ConsoleWriter{
				Out:        output,
				TimeFormat: cfg.TimeFormat,
			}
		}

		logger = zerolog.New(output).With().Timestamp().Logger()
	})
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

// Get returns the package-level logger, initializing it with defaults on
// first use if Init was never called.
func Get() *zerolog.Logger {
	Init(DefaultConfig())
	return &logger
}

// WithContext derives a logger carrying a run identifier pulled from ctx,
// if present.
func WithContext(ctx context.Context) *zerolog.Logger {
	l := Get().With().Logger()

	if runID, ok := ctx.Value(runIDKey).(string); ok {
		l = l.With().Str("run_id", runID).Logger()
	}

	return &l
}

type contextKey string

const runIDKey contextKey = "run_id"

// WithRunID returns a context carrying runID for WithContext to pick up.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

func Debug() *zerolog.Event { return Get().Debug() }
func Info() *zerolog.Event  { return Get().Info() }
func Warn() *zerolog.Event  { return Get().Warn() }
func Error() *zerolog.Event { return Get().Error() }
func Fatal() *zerolog.Event { return Get().Fatal() }

// WithError returns an error-level event pre-populated with err.
func WithError(err error) *zerolog.Event {
	return Get().Error().Err(err)
}

// WithField returns a logger carrying a single extra field.
func WithField(key string, value interface{}) *zerolog.Logger {
	l := Get().With().Interface(key, value).Logger()
	return &l
}

// WithFields returns a logger carrying several extra fields.
func WithFields(fields map[string]interface{}) *zerolog.Logger {
	ctx := Get().With()
	for k, v := range fields {
		ctx = ctx.Interface(k, v)
	}
	l := ctx.Logger()
	return &l
}

// EngineLogger is a component-scoped logger used across the scheduling
// engine (rule network, scheduler). Each component
// gets its own instance tagged with its name rather than sharing one
// untagged logger.
type EngineLogger struct {
	base *zerolog.Logger
}

// NewEngineLogger creates a logger tagged with the given component name.
func NewEngineLogger(component string) *EngineLogger {
	l := Get().With().Str("component", component).Logger()
	return &EngineLogger{base: &l}
}

func (l *EngineLogger) Debug() *zerolog.Event { return l.base.Debug() }
func (l *EngineLogger) Info() *zerolog.Event  { return l.base.Info() }
func (l *EngineLogger) Warn() *zerolog.Event  { return l.base.Warn() }
func (l *EngineLogger) Error() *zerolog.Event { return l.base.Error() }

// RunStarted logs the start of a scheduling run over a date range.
func (l *EngineLogger) RunStarted(from, to string, people, duties int) {
	l.base.Info().
		Str("from", from).
		Str("to", to).
		Int("people", people).
		Int("duty_forms", duties).
		Msg("planning run started")
}

// Placed logs a successful placement.
func (l *EngineLogger) Placed(date, duty, person string) {
	l.base.Debug().
		Str("date", date).
		Str("duty", duty).
		Str("person", person).
		Msg("placed")
}

// Cascade logs a cascade removal triggered by a placement.
func (l *EngineLogger) Cascade(date, duty, person, reason string) {
	l.base.Debug().
		Str("date", date).
		Str("duty", duty).
		Str("person", person).
		Str("reason", reason).
		Msg("removed from candidate queue")
}

// Unfilled logs a slot the run could not fill.
func (l *EngineLogger) Unfilled(date, duty string) {
	l.base.Warn().
		Str("date", date).
		Str("duty", duty).
		Msg("slot left unfilled")
}

// RunComplete logs the end of a scheduling run.
func (l *EngineLogger) RunComplete(duration time.Duration, placed, unfilled int) {
	l.base.Info().
		Dur("duration", duration).
		Int("placed", placed).
		Int("unfilled", unfilled).
		Msg("planning run complete")
}
