package constants

import (
	"time"
)

const (
	AppName = "create-iota-app"

	// Default Values
	DefaultProjectName     = "my-iota-app"
	DefaultDownloadTimeout = 30 * time.Second
	DefaultLogLevel        = "info"

	// Config
	EnvPrefix          = "CREATE_IOTA_APP"
	DefaultEnvFileName = ".create-iota-app.env"
	GitHubTokenEnvVar  = "GITHUB_TOKEN"

	// GitHub
	GitHubAPIURL = "https://api.github.com"
	GitHubWebURL = "https://github.com"
	UserAgent    = AppName

	ReleasesRepoOwner = "nakamaio"
	ReleasesRepoName  = "create-iota-app"

	// Follow-up commands printed after a successful scaffold
	InstallCommand = "npm install"
	DevCommand     = "npm run dev"
)
