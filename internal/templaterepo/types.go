package templaterepo

import (
	"fmt"
	"strings"

	"github.com/nakamaio/create-iota-app/internal/constants"
)

// RepoSource identifies a GitHub repository and an optional ref.
type RepoSource struct {
	Owner string
	Repo  string
	Ref   string // Branch, tag, or SHA. Empty means the default branch.
}

// String returns "owner/repo", or "owner/repo#ref" when a ref is pinned.
func (r RepoSource) String() string {
	if r.Ref == "" {
		return r.Owner + "/" + r.Repo
	}
	return r.Owner + "/" + r.Repo + "#" + r.Ref
}

// URL returns the repository's web address, for users to inspect it manually.
func (r RepoSource) URL() string {
	return fmt.Sprintf("%s/%s/%s", constants.GitHubWebURL, r.Owner, r.Repo)
}

// ParseRepoSource parses "owner/repo[#ref]" into a RepoSource.
func ParseRepoSource(s string) (RepoSource, error) {
	repoPath := strings.TrimSpace(s)
	ref := ""
	if idx := strings.LastIndex(repoPath, "#"); idx != -1 {
		ref = repoPath[idx+1:]
		repoPath = repoPath[:idx]
		if ref == "" {
			return RepoSource{}, fmt.Errorf("expected format: owner/repo[#ref], got %q", s)
		}
	}

	parts := strings.Split(repoPath, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return RepoSource{}, fmt.Errorf("expected format: owner/repo[#ref], got %q", s)
	}

	return RepoSource{
		Owner: parts[0],
		Repo:  parts[1],
		Ref:   ref,
	}, nil
}

// Template is a named entry of the catalog.
type Template struct {
	Title  string     // Human-readable display name, unique within a catalog
	Source RepoSource // Where the template tree is hosted
}
