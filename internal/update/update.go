package update

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/rs/zerolog"

	"github.com/nakamaio/create-iota-app/internal/constants"
)

const (
	timeout            = 2 * time.Second
	developmentVersion = "development"
)

var (
	latestReleaseURL = fmt.Sprintf("%s/repos/%s/%s/releases/latest",
		constants.GitHubAPIURL, constants.ReleasesRepoOwner, constants.ReleasesRepoName)
	releasesPageURL = fmt.Sprintf("%s/%s/%s/releases",
		constants.GitHubWebURL, constants.ReleasesRepoOwner, constants.ReleasesRepoName)
)

// githubRelease is a minimal struct to parse the JSON response
// from the GitHub releases API.
type githubRelease struct {
	TagName string `json:"tag_name"`
}

// Checker compares the running version against the latest GitHub release.
type Checker struct {
	logger     *zerolog.Logger
	httpClient *http.Client
	releaseURL string
	out        io.Writer
}

type Option func(*Checker)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Checker) {
		c.httpClient = hc
	}
}

func WithReleaseURL(url string) Option {
	return func(c *Checker) {
		c.releaseURL = url
	}
}

// WithOutput sets where the update notice is printed. Defaults to stderr.
func WithOutput(w io.Writer) Option {
	return func(c *Checker) {
		c.out = w
	}
}

func NewChecker(logger *zerolog.Logger, opts ...Option) *Checker {
	c := &Checker{
		logger:     logger,
		httpClient: &http.Client{Timeout: timeout},
		releaseURL: latestReleaseURL,
		out:        os.Stderr,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// LatestVersion fetches the tag of the latest release.
func (c *Checker) LatestVersion(ctx context.Context) (*semver.Version, error) {
	c.logger.Debug().Msgf("Fetching latest release from %s", c.releaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.releaseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", constants.UserAgent+"-update-check")
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github API returned non-200 status: %s", resp.Status)
	}

	var release githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("failed to decode GitHub API response: %w", err)
	}

	if release.TagName == "" {
		return nil, errors.New("github API response contained no tag_name")
	}

	latest, err := semver.NewVersion(release.TagName)
	if err != nil {
		return nil, fmt.Errorf("failed to parse latest tag %q: %w", release.TagName, err)
	}

	c.logger.Debug().Msgf("Latest release tag found: %s", latest)
	return latest, nil
}

// Check prints a notice when a newer release exists and reports whether it did.
// Every failure is logged at debug level and swallowed.
func (c *Checker) Check(ctx context.Context, currentVersion string) bool {
	if currentVersion == developmentVersion {
		c.logger.Debug().Msg("Current version is 'development', skipping update check")
		return false
	}

	// The version string might be "version v0.7.3-alpha".
	cleanedVersion := strings.TrimSpace(strings.Replace(currentVersion, "version", "", 1))

	currentSemVer, err := semver.NewVersion(cleanedVersion)
	if err != nil {
		c.logger.Debug().Msgf("Failed to parse current version (original: '%s', cleaned: '%s'): %v", currentVersion, cleanedVersion, err)
		return false
	}

	latestSemVer, err := c.LatestVersion(ctx)
	if err != nil {
		c.logger.Debug().Msgf("Failed to fetch latest version: %v", err)
		return false
	}

	if !latestSemVer.GreaterThan(currentSemVer) {
		c.logger.Debug().Msgf("Current version %s is up-to-date.", currentSemVer)
		return false
	}

	// Stderr so the notice doesn't interfere with piped stdout
	fmt.Fprintf(c.out,
		"\n⚠️  Update available! You’re running %s, but %s is the latest.\n"+
			"Visit %s to upgrade.\n\n",
		currentSemVer,
		latestSemVer,
		releasesPageURL,
	)
	return true
}

// CheckForUpdates runs a Check against the public GitHub API.
func CheckForUpdates(ctx context.Context, currentVersion string, logger *zerolog.Logger) {
	NewChecker(logger).Check(ctx, currentVersion)
}
