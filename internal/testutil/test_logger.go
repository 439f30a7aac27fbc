package testutil

import (
	"os"

	"github.com/rs/zerolog"
)

// NewTestLogger logs everything down to debug on stdout, so `go test -v`
// shows the download trace next to the failing assertion.
func NewTestLogger() *zerolog.Logger {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, PartsExclude: []string{zerolog.TimestampFieldName}}).
		Level(zerolog.DebugLevel)
	return &logger
}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}
