package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/just-nibble/repo-dashboard/internal/core/domain/entities"
)

const gitlabBaseURL = "https://gitlab.com/api/v4"

// GitLabClient is a simple client for interacting with GitLab's REST API
type GitLabClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewGitLabClient creates a new instance of GitLabClient with a timeout
func NewGitLabClient() *GitLabClient {
	return &GitLabClient{
		BaseURL:    gitlabBaseURL,
		HTTPClient: newHTTPClient(),
	}
}

// GitLabProject represents the JSON structure of a GitLab project
type GitLabProject struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	PathWithNamespace string `json:"path_with_namespace"`
	Visibility        string `json:"visibility"`
	Description       string `json:"description"`
	StarCount         int    `json:"star_count"`
	ForksCount        int    `json:"forks_count"`
	DefaultBranch     string `json:"default_branch"`
	LastActivityAt    string `json:"last_activity_at"`
}

// IsPrivate reports whether the project is anything other than public
// (GitLab also has an "internal" visibility).
func (p *GitLabProject) IsPrivate() bool {
	return p.Visibility != "public"
}

// gitlabError mirrors GitLab's error envelope, where message may be either
// a string or a list of strings.
type gitlabError struct {
	Message json.RawMessage `json:"message"`
	Err     string          `json:"error"`
}

func (e *gitlabError) text() string {
	if len(e.Message) > 0 {
		var single string
		if err := json.Unmarshal(e.Message, &single); err == nil {
			return single
		}
		var many []string
		if err := json.Unmarshal(e.Message, &many); err == nil {
			return strings.Join(many, ", ")
		}
	}
	return e.Err
}

func (c *GitLabClient) newRequest(url, token string) (*http.Request, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if token != "" {
		req.Header.Set("PRIVATE-TOKEN", token)
	}
	return req, nil
}

// projectPath is the URL-encoded "owner/repo" GitLab uses as a single path
// segment to address a project.
func projectPath(owner, repo string) string {
	return url.PathEscape(owner + "/" + repo)
}

// FetchProject fetches a single project by owner and name. The token is
// optional; without it private projects come back as a 404. Failures are
// classified into an *Error with a user-facing message.
func (c *GitLabClient) FetchProject(owner, repo, token string) (*GitLabProject, error) {
	req, err := c.newRequest(fmt.Sprintf("%s/projects/%s", c.BaseURL, projectPath(owner, repo)), token)
	if err != nil {
		return nil, &Error{Message: "Network error. Please check your connection."}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &Error{Message: "Network error. Please check your connection."}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		switch resp.StatusCode {
		case http.StatusNotFound:
			return nil, &Error{
				Message:   "Project not found. It may be private or doesn't exist.",
				IsPrivate: true,
			}
		case http.StatusUnauthorized:
			return nil, &Error{Message: "Invalid or expired GitLab token."}
		case http.StatusForbidden:
			return nil, &Error{Message: "Access denied. You may need to authenticate."}
		}

		var glErr gitlabError
		_ = json.NewDecoder(resp.Body).Decode(&glErr)
		if msg := glErr.text(); msg != "" {
			return nil, &Error{Message: msg}
		}
		return nil, &Error{Message: "Failed to fetch project"}
	}

	var project GitLabProject
	if err := json.NewDecoder(resp.Body).Decode(&project); err != nil {
		return nil, &Error{Message: "Network error. Please check your connection."}
	}

	return &project, nil
}

// FetchLanguages fetches the project's language histogram, a mapping from
// language name to how much of the project it accounts for. Any failure
// yields a nil map; the caller treats languages as best-effort.
func (c *GitLabClient) FetchLanguages(owner, repo, token string) (map[string]float64, error) {
	req, err := c.newRequest(fmt.Sprintf("%s/projects/%s/languages", c.BaseURL, projectPath(owner, repo)), token)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	var languages map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&languages); err != nil {
		return nil, err
	}

	return languages, nil
}

// FetchUserProjects lists the projects the token's user is a member of,
// most recently active first. A token is required.
func (c *GitLabClient) FetchUserProjects(token string, page, perPage int) ([]GitLabProject, error) {
	url := fmt.Sprintf("%s/projects?membership=true&page=%d&per_page=%d&order_by=last_activity_at", c.BaseURL, page, perPage)
	req, err := c.newRequest(url, token)
	if err != nil {
		return nil, &Error{Message: "Network error. Please check your connection."}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &Error{Message: "Network error. Please check your connection."}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusUnauthorized {
			return nil, &Error{Message: "Invalid or expired GitLab token."}
		}
		return nil, &Error{Message: "Failed to fetch projects"}
	}

	var projects []GitLabProject
	if err := json.NewDecoder(resp.Body).Decode(&projects); err != nil {
		return nil, &Error{Message: "Network error. Please check your connection."}
	}

	return projects, nil
}

// ValidateToken checks the token against the authenticated-user endpoint.
// A nil return means the token is usable.
func (c *GitLabClient) ValidateToken(token string) error {
	req, err := c.newRequest(c.BaseURL+"/user", token)
	if err != nil {
		return &Error{Message: "Network error"}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return &Error{Message: "Network error"}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		return &Error{Message: "Invalid GitLab token"}
	default:
		return &Error{Message: "Failed to validate token"}
	}
}

// GitLabProjectToMetadata maps a GitLab project onto the local metadata
// shape. The primary language is the histogram entry with the highest
// count; ties keep the alphabetically first language (stable sort over
// sorted keys).
func GitLabProjectToMetadata(project *GitLabProject, languages map[string]float64) entities.Metadata {
	stars := project.StarCount
	forks := project.ForksCount
	meta := entities.Metadata{
		Stars:         &stars,
		Forks:         &forks,
		Description:   project.Description,
		LastCommit:    project.LastActivityAt,
		DefaultBranch: project.DefaultBranch,
	}

	if len(languages) > 0 {
		names := make([]string, 0, len(languages))
		for name := range languages {
			names = append(names, name)
		}
		sort.Strings(names)
		sort.SliceStable(names, func(i, j int) bool {
			return languages[names[i]] > languages[names[j]]
		})
		meta.Language = names[0]
	}

	return meta
}
