package runtime

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/nakamaio/create-iota-app/internal/settings"
)

type Context struct {
	Logger   *zerolog.Logger
	Viper    *viper.Viper
	Settings *settings.Settings
}

func NewContext(logger *zerolog.Logger, viper *viper.Viper) *Context {
	return &Context{
		Logger: logger,
		Viper:  viper,
	}
}

// AttachSettings loads the settings and, in verbose mode, lowers the logger to debug.
func (ctx *Context) AttachSettings() error {
	var err error

	ctx.Settings, err = settings.New(ctx.Logger, ctx.Viper)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	if ctx.Settings.Verbose {
		newLogger := ctx.Logger.Level(zerolog.DebugLevel)
		ctx.Logger = &newLogger
	}

	return nil
}
