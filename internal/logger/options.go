package logger

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
)

type config struct {
	output  io.Writer
	level   zerolog.Level
	hidden  []string
	console bool
}

// Option tunes the logger built by New.
type Option func(*config)

// WithLevel accepts zerolog level names in any case. Unknown names mean info.
func WithLevel(level string) Option {
	return func(c *config) {
		c.level = parseLevel(level)
	}
}

// WithConsoleWriter switches between human readable lines and JSON.
func WithConsoleWriter(console bool) Option {
	return func(c *config) {
		c.console = console
	}
}

func WithOutput(output io.Writer) Option {
	return func(c *config) {
		c.output = output
	}
}

// WithExcludedParts hides console parts such as the level or timestamp.
func WithExcludedParts(parts ...string) Option {
	return func(c *config) {
		c.hidden = parts
	}
}

func parseLevel(level string) zerolog.Level {
	name := strings.ToLower(strings.TrimSpace(level))
	if name == "" {
		return zerolog.InfoLevel
	}
	parsed, err := zerolog.ParseLevel(name)
	if err != nil || parsed == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return parsed
}
