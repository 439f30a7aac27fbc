package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/nakamaio/create-iota-app/internal/constants"
)

// Keys read from the environment, each prefixed with CREATE_IOTA_APP_.
const (
	TimeoutKey       = "timeout"
	VerboseKey       = "verbose"
	GitHubTokenKey   = "github_token"
	NoUpdateCheckKey = "no_update_check"
	EnvFileKey       = "env_file"
)

const loadEnvErrorMessage = "Not able to load configuration from " + constants.DefaultEnvFileName +
	" file, skipping this optional step. Settings are read from exported environment variables only."

// ErrInvalidTimeout is returned when the configured download timeout is not a positive duration.
var ErrInvalidTimeout = errors.New("invalid download timeout")

// Settings holds the configuration of a single run.
type Settings struct {
	DownloadTimeout time.Duration
	Verbose         bool
	GitHubToken     string
	NoUpdateCheck   bool
}

// New loads the optional dotenv file, binds the environment and decodes the settings.
func New(logger *zerolog.Logger, v *viper.Viper) (*Settings, error) {
	if err := BindEnv(v); err != nil {
		return nil, err
	}

	if err := LoadEnv(v.GetString(EnvFileKey)); err != nil {
		// the dotenv file is optional
		logger.Debug().Err(err).Msg(loadEnvErrorMessage)
	}

	timeout, err := GetDownloadTimeout(v)
	if err != nil {
		return nil, err
	}

	s := &Settings{
		DownloadTimeout: timeout,
		Verbose:         v.GetBool(VerboseKey),
		GitHubToken:     strings.TrimSpace(v.GetString(GitHubTokenKey)),
		NoUpdateCheck:   v.GetBool(NoUpdateCheckKey),
	}

	logger.Debug().
		Dur("timeout", s.DownloadTimeout).
		Bool("verbose", s.Verbose).
		Bool("github_token_set", s.GitHubToken != "").
		Bool("no_update_check", s.NoUpdateCheck).
		Msg("Loaded settings")

	return s, nil
}

// BindEnv maps every setting to its CREATE_IOTA_APP_* variable. The GitHub token
// also falls back to the conventional GITHUB_TOKEN.
func BindEnv(v *viper.Viper) error {
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.SetDefault(TimeoutKey, constants.DefaultDownloadTimeout.String())

	if err := v.BindEnv(GitHubTokenKey, constants.EnvPrefix+"_GITHUB_TOKEN", constants.GitHubTokenEnvVar); err != nil {
		return fmt.Errorf("failed to bind environment variable: %s", constants.GitHubTokenEnvVar)
	}

	v.AutomaticEnv() // Ensure variables are picked up
	return nil
}

// GetDownloadTimeout reads the timeout setting. Bare integers are milliseconds,
// anything else must parse as a Go duration ("45s", "1m").
func GetDownloadTimeout(v *viper.Viper) (time.Duration, error) {
	raw := strings.TrimSpace(v.GetString(TimeoutKey))
	if raw == "" {
		return constants.DefaultDownloadTimeout, nil
	}

	var d time.Duration
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		d = time.Duration(ms) * time.Millisecond
	} else {
		d, err = time.ParseDuration(raw)
		if err != nil {
			return 0, fmt.Errorf("%w %q: %w", ErrInvalidTimeout, raw, err)
		}
	}

	if d <= 0 {
		return 0, fmt.Errorf("%w %q: must be positive", ErrInvalidTimeout, raw)
	}
	return d, nil
}

// LoadEnv loads envPath when it exists, otherwise the nearest dotenv file found
// walking up from the working directory. Variables already set are not overridden.
func LoadEnv(envPath string) error {
	if envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("error loading file from %s: %w", envPath, err)
			}
			return nil
		}
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("error getting working directory: %w", err)
	}

	foundEnvPath, err := findEnvFile(cwd, constants.DefaultEnvFileName)
	if err != nil {
		return fmt.Errorf("error loading environment: %w", err)
	}

	if err := godotenv.Load(foundEnvPath); err != nil {
		return fmt.Errorf("error loading file from %s: %w", foundEnvPath, err)
	}
	return nil
}

func findEnvFile(startDir, fileName string) (string, error) {
	dir := startDir

	for {
		filePath := filepath.Join(dir, fileName)

		if info, err := os.Stat(filePath); err == nil && !info.IsDir() {
			return filePath, nil
		}

		parentDir := filepath.Dir(dir)
		if parentDir == dir {
			break // Reached the root directory.
		}
		dir = parentDir
	}
	return "", fmt.Errorf("file %s not found in any parent directory starting from %s", fileName, startDir)
}
