package logger

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/nakamaio/create-iota-app/internal/constants"
)

// New builds a logger tagged with the app name. By default it writes
// console lines without timestamps to stderr at info level.
func New(opts ...Option) *zerolog.Logger {
	cfg := &config{
		output:  os.Stderr,
		level:   zerolog.InfoLevel,
		hidden:  []string{zerolog.TimestampFieldName},
		console: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	logger := zerolog.New(cfg.output).Level(cfg.level).With().Str("app", constants.AppName).Logger()
	if cfg.console {
		logger = logger.Output(zerolog.ConsoleWriter{
			Out:           cfg.output,
			PartsExclude:  cfg.hidden,
			FieldsExclude: []string{"app"},
		})
	}
	return &logger
}

// NewConsoleLogger returns the logger used by the CLI: human readable, on stderr,
// so it never mixes with the scaffold output printed on stdout.
func NewConsoleLogger(verbose bool) *zerolog.Logger {
	level := constants.DefaultLogLevel
	if verbose {
		level = "debug"
	}

	return New(
		WithLevel(level),
		WithOutput(os.Stderr),
		WithConsoleWriter(true),
	)
}
