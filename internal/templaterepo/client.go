package templaterepo

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/nakamaio/create-iota-app/internal/constants"
)

// standardIgnores are files/dirs always excluded when extracting templates.
var standardIgnores = []string{
	".git",
	"node_modules",
	".DS_Store",
}

// Client downloads template tarballs from GitHub and extracts them.
type Client struct {
	logger     *zerolog.Logger
	httpClient *http.Client
	apiBaseURL string
	token      string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the HTTP client used for downloads.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithAPIBaseURL points the client at a different GitHub API host.
func WithAPIBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.apiBaseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithToken authenticates requests with a GitHub token.
func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.token = token
	}
}

// NewClient creates a new GitHub template client.
// The client sets no request timeout of its own; callers bound it through Downloader.
func NewClient(logger *zerolog.Logger, opts ...ClientOption) *Client {
	c := &Client{
		logger:     logger,
		httpClient: &http.Client{},
		apiBaseURL: constants.GitHubAPIURL,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// TarballURL returns the GitHub API address of the source's tarball.
func (c *Client) TarballURL(source RepoSource) string {
	url := fmt.Sprintf("%s/repos/%s/%s/tarball", c.apiBaseURL, source.Owner, source.Repo)
	if source.Ref != "" {
		url += "/" + source.Ref
	}
	return url
}

// Materialize downloads the source tarball and extracts it into destDir,
// overwriting files that already exist there.
func (c *Client) Materialize(ctx context.Context, source RepoSource, destDir string, emit EmitFunc) error {
	if emit == nil {
		emit = func(Event) {}
	}

	tarballURL := c.TarballURL(source)
	c.logger.Debug().Msgf("Downloading tarball from %s", tarballURL)
	emit(infoEvent(fmt.Sprintf("fetching %s", tarballURL)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tarballURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.setAuthHeaders(req)
	req.Header.Set("User-Agent", constants.UserAgent)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("could not download %s: %w", source, err)
	}
	defer resp.Body.Close()

	if err := statusError(source, resp); err != nil {
		return err
	}

	if notEmpty(destDir) {
		emit(warnEvent(fmt.Sprintf("destination directory %s is not empty, existing files will be overwritten", destDir)))
	}

	emit(infoEvent(fmt.Sprintf("extracting %s into %s", source, destDir)))

	n, err := c.extractTarball(resp.Body, destDir)
	if err != nil {
		return err
	}

	emit(infoEvent(fmt.Sprintf("extracted %d files from %s", n, source)))
	return nil
}

// statusError turns a non-200 GitHub response into an error whose text
// can be classified by Classify.
func statusError(source RepoSource, resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("could not find repository %s (%s)", source, resp.Status)
	case resp.StatusCode == http.StatusTooManyRequests,
		resp.StatusCode == http.StatusForbidden && resp.Header.Get("X-RateLimit-Remaining") == "0":
		return fmt.Errorf("GitHub API rate limit exceeded while downloading %s (%s)", source, resp.Status)
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("could not checkout %s: access denied (%s)", source, resp.Status)
	default:
		return fmt.Errorf("tarball download failed with status: %s", resp.Status)
	}
}

// extractTarball reads a gzip+tar stream and extracts it to destDir.
// It returns the number of regular files written.
func (c *Client) extractTarball(r io.Reader, destDir string) (int, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return 0, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gz.Close()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create directory %s: %w", destDir, err)
	}

	tr := tar.NewReader(gz)

	// GitHub tarballs have a top-level directory like "owner-repo-sha/"
	var topLevelPrefix string
	files := 0

	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return files, fmt.Errorf("tar read error: %w", err)
		}

		// PAX global/extended headers are metadata records, not real files
		if header.Typeflag == tar.TypeXGlobalHeader || header.Typeflag == tar.TypeXHeader {
			continue
		}

		if topLevelPrefix == "" {
			topLevelPrefix = strings.SplitN(header.Name, "/", 2)[0] + "/"
		}

		relPath := strings.TrimPrefix(header.Name, topLevelPrefix)
		if relPath == "" || shouldIgnore(relPath, standardIgnores) {
			continue
		}

		targetPath, err := safeJoin(destDir, relPath)
		if err != nil {
			return files, fmt.Errorf("illegal file path in archive: %s", header.Name)
		}

		// Links extracted earlier may redirect a lexically safe path out of destDir.
		if !resolvesWithin(destDir, filepath.Dir(targetPath)) {
			return files, fmt.Errorf("illegal file path in archive: %s resolves outside %s", header.Name, destDir)
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if !resolvesWithin(destDir, targetPath) {
				return files, fmt.Errorf("illegal file path in archive: %s resolves outside %s", header.Name, destDir)
			}
			c.logger.Debug().Msgf("Extracting dir: %s -> %s", relPath, targetPath)
			if err := os.MkdirAll(targetPath, 0755); err != nil {
				return files, fmt.Errorf("failed to create directory %s: %w", targetPath, err)
			}
		case tar.TypeReg:
			c.logger.Debug().Msgf("Extracting file: %s -> %s", relPath, targetPath)
			if err := removeSymlink(targetPath); err != nil {
				return files, err
			}
			if err := writeFile(targetPath, tr, os.FileMode(header.Mode)&0755|0600); err != nil {
				return files, err
			}
			files++
		case tar.TypeSymlink:
			if !linkStaysInside(destDir, targetPath, header.Linkname) {
				c.logger.Debug().Msgf("Skipping symlink %s -> %s: points outside the project", relPath, header.Linkname)
				continue
			}
			c.logger.Debug().Msgf("Extracting symlink: %s -> %s", relPath, header.Linkname)
			if err := os.MkdirAll(filepath.Dir(targetPath), 0755); err != nil {
				return files, fmt.Errorf("failed to create parent directory: %w", err)
			}
			_ = os.Remove(targetPath)
			if err := os.Symlink(header.Linkname, targetPath); err != nil {
				return files, fmt.Errorf("failed to create symlink %s: %w", targetPath, err)
			}
		}
	}

	return files, nil
}

func writeFile(targetPath string, r io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(targetPath), 0755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	f, err := os.OpenFile(targetPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", targetPath, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return fmt.Errorf("failed to write file %s: %w", targetPath, err)
	}
	return f.Close()
}

// safeJoin joins relPath onto destDir and rejects results that escape destDir (Zip Slip).
func safeJoin(destDir, relPath string) (string, error) {
	targetPath := filepath.Join(destDir, relPath)
	if !within(destDir, targetPath) {
		return "", fmt.Errorf("%s escapes %s", relPath, destDir)
	}
	return targetPath, nil
}

func within(root, path string) bool {
	cleanRoot := filepath.Clean(root)
	cleanPath := filepath.Clean(path)
	if cleanPath == cleanRoot {
		return true
	}
	return strings.HasPrefix(cleanPath, cleanRoot+string(os.PathSeparator))
}

// linkStaysInside checks the link target both as written and as it resolves
// through links already on disk.
func linkStaysInside(destDir, targetPath, linkname string) bool {
	if filepath.IsAbs(linkname) || !within(destDir, filepath.Join(filepath.Dir(targetPath), linkname)) {
		return false
	}
	parent, err := resolveExisting(filepath.Dir(targetPath))
	if err != nil {
		return false
	}
	return resolvesWithin(destDir, filepath.Join(parent, linkname))
}

// resolvesWithin reports whether path stays inside root once every symlink
// that already exists along it is followed.
func resolvesWithin(root, path string) bool {
	realRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return false
	}
	realPath, err := resolveExisting(path)
	if err != nil {
		return false
	}
	return within(realRoot, realPath)
}

// resolveExisting follows symlinks in the longest existing prefix of path
// and appends the components that do not exist yet.
func resolveExisting(path string) (string, error) {
	existing := filepath.Clean(path)
	var missing []string
	for {
		if _, err := os.Lstat(existing); err == nil {
			break
		}
		parent := filepath.Dir(existing)
		if parent == existing {
			return "", fmt.Errorf("no existing ancestor of %s", path)
		}
		missing = append([]string{filepath.Base(existing)}, missing...)
		existing = parent
	}

	resolved, err := filepath.EvalSymlinks(existing)
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{resolved}, missing...)...), nil
}

// removeSymlink clears a link left at path so the file write cannot follow it.
func removeSymlink(path string) error {
	info, err := os.Lstat(path)
	if err != nil || info.Mode()&os.ModeSymlink == 0 {
		return nil
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to replace symlink %s: %w", path, err)
	}
	return nil
}

func notEmpty(dir string) bool {
	entries, err := os.ReadDir(dir)
	return err == nil && len(entries) > 0
}

func (c *Client) setAuthHeaders(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

// shouldIgnore checks if a relative path matches any of the ignore patterns.
func shouldIgnore(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}
		// Exact match on any path component
		for _, component := range strings.Split(relPath, "/") {
			if component == pattern {
				return true
			}
		}
		// Suffix match (e.g., "*.log")
		if strings.HasPrefix(pattern, "*") && strings.HasSuffix(relPath, strings.TrimPrefix(pattern, "*")) {
			return true
		}
	}
	return false
}
