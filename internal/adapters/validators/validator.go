package validators

import (
	"errors"
	"net/url"
	"regexp"
	"strings"

	"github.com/just-nibble/repo-dashboard/internal/core/domain/entities"
)

var ErrInvalidRepoURL = errors.New("invalid repository URL")

// One fixed pattern per platform: scheme, optional www, the platform's
// domain, and exactly two path segments. Replit requires a leading @ on
// the owner segment; Lovable serves from both lovable.dev and lovable.app.
var urlPatterns = map[entities.Platform]*regexp.Regexp{
	entities.PlatformGitHub:  regexp.MustCompile(`^https?://(www\.)?github\.com/[^/]+/[^/]+/?$`),
	entities.PlatformGitLab:  regexp.MustCompile(`^https?://(www\.)?gitlab\.com/[^/]+/[^/]+/?$`),
	entities.PlatformReplit:  regexp.MustCompile(`^https?://(www\.)?replit\.com/@[^/]+/[^/]+/?$`),
	entities.PlatformLovable: regexp.MustCompile(`^https?://(www\.)?lovable\.(dev|app)/[^/]+/[^/]+/?$`),
}

// ValidateRepoURL reports whether rawURL matches the fixed URL pattern for
// the given platform. No network access is performed.
func ValidateRepoURL(rawURL string, platform entities.Platform) bool {
	pattern, ok := urlPatterns[platform]
	if !ok {
		return false
	}
	return pattern.MatchString(rawURL)
}

// RepoPath is the (owner, name) pair extracted from a repository URL.
type RepoPath struct {
	Owner string
	Name  string
}

// ParseRepoURL extracts the owner and repository name from rawURL by
// splitting its path into non-empty segments. The leading @ on a Replit
// owner segment is stripped. A malformed URL and a path with fewer than two
// segments both return ErrInvalidRepoURL.
func ParseRepoURL(rawURL string) (*RepoPath, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, ErrInvalidRepoURL
	}

	var segments []string
	for _, part := range strings.Split(u.Path, "/") {
		if part != "" {
			segments = append(segments, part)
		}
	}

	if len(segments) < 2 {
		return nil, ErrInvalidRepoURL
	}

	return &RepoPath{
		Owner: strings.TrimPrefix(segments[0], "@"),
		Name:  segments[1],
	}, nil
}
