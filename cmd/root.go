package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/nakamaio/create-iota-app/cmd/createapp"
	"github.com/nakamaio/create-iota-app/cmd/version"
	"github.com/nakamaio/create-iota-app/internal/constants"
	"github.com/nakamaio/create-iota-app/internal/logger"
	"github.com/nakamaio/create-iota-app/internal/runtime"
	"github.com/nakamaio/create-iota-app/internal/ui"
	"github.com/nakamaio/create-iota-app/internal/update"
)

// RootCmd is the create-iota-app command
var RootCmd = newRootCommand()

func Execute() {
	err := RootCmd.Execute()
	printError(os.Stderr, err)
	if code := exitCode(err); code != 0 {
		os.Exit(code)
	}
}

// exitCode is 0 only when the project was created (or help/version was shown).
func exitCode(err error) int {
	if err != nil {
		return 1
	}
	return 0
}

// printError reports errors the command has not already explained to the user.
func printError(w io.Writer, err error) {
	switch {
	case err == nil, errors.Is(err, createapp.ErrProjectNotCreated):
		return
	case errors.Is(err, huh.ErrUserAborted):
		fmt.Fprintln(w, ui.RenderWarning("Operation cancelled."))
	default:
		fmt.Fprintln(w, ui.RenderError("✗ Error creating project: "+err.Error()))
	}
}

func newRootCommand() *cobra.Command {
	rootLogger := createLogger()
	rootViper := createViper()
	runtimeContext := runtime.NewContext(rootLogger, rootViper)

	rootCmd := createapp.New(runtimeContext)
	rootCmd.Version = version.Version
	rootCmd.DisableAutoGenTag = true
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return runtimeContext.AttachSettings()
	}

	// Runs only after a successful RunE
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if runtimeContext.Settings != nil && runtimeContext.Settings.NoUpdateCheck {
			runtimeContext.Logger.Debug().Msg("Update check disabled")
			return
		}
		update.CheckForUpdates(cmd.Context(), version.Version, runtimeContext.Logger)
	}

	cobra.AddTemplateFunc("wrappedFlagUsages", func(fs *pflag.FlagSet) string {
		// 100 = wrap width
		return strings.TrimRight(fs.FlagUsagesWrapped(100), "\n")
	})

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	rootCmd.SetHelpTemplate(`
{{- with (or .Long .Short)}}{{.}}{{end}}

Usage:
  {{.UseLine}}

{{- if .HasExample}}

Examples:
{{.Example}}
{{- end }}

{{- if .HasAvailableLocalFlags}}

Flags:
{{wrappedFlagUsages .LocalFlags}}
{{- end }}

💡 Tip: the project directory is created if it does not exist.
  Existing files with the same names are overwritten.

⚙️  Environment:
  ` + constants.EnvPrefix + `_TIMEOUT          download timeout, e.g. 45s (default 30s)
  ` + constants.GitHubTokenEnvVar + `                    token for private templates and higher rate limits
  ` + constants.EnvPrefix + `_VERBOSE          debug logging
  ` + constants.EnvPrefix + `_NO_UPDATE_CHECK  skip the new release check
`)

	return rootCmd
}

func createLogger() *zerolog.Logger {
	return logger.NewConsoleLogger(false)
}

func createViper() *viper.Viper {
	return viper.New() //nolint:forbidigo
}
