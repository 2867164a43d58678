package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/just-nibble/repo-dashboard/internal/core/domain/entities"
)

const githubBaseURL = "https://api.github.com"

// GitHubClient is a simple client for interacting with GitHub's REST API
type GitHubClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewGitHubClient creates a new instance of GitHubClient with a timeout
func NewGitHubClient() *GitHubClient {
	return &GitHubClient{
		BaseURL:    githubBaseURL,
		HTTPClient: newHTTPClient(),
	}
}

// GitHubRepo represents the JSON structure of a GitHub repository
type GitHubRepo struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	FullName        string `json:"full_name"`
	Private         bool   `json:"private"`
	Description     string `json:"description"`
	StargazersCount int    `json:"stargazers_count"`
	ForksCount      int    `json:"forks_count"`
	Language        string `json:"language"`
	DefaultBranch   string `json:"default_branch"`
	PushedAt        string `json:"pushed_at"`
}

type githubError struct {
	Message string `json:"message"`
}

func (c *GitHubClient) newRequest(url, token string) (*http.Request, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", userAgent)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// FetchRepo fetches a single repository by owner and name. The token is
// optional; without it private repositories come back as a 404. Failures
// are classified into an *Error with a user-facing message.
func (c *GitHubClient) FetchRepo(owner, repo, token string) (*GitHubRepo, error) {
	req, err := c.newRequest(fmt.Sprintf("%s/repos/%s/%s", c.BaseURL, owner, repo), token)
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
				Message:   "Repository not found. It may be private or doesn't exist.",
				IsPrivate: true,
			}
		case http.StatusUnauthorized:
			return nil, &Error{Message: "Invalid or expired GitHub token."}
		case http.StatusForbidden:
			var ghErr githubError
			_ = json.NewDecoder(resp.Body).Decode(&ghErr)
			if strings.Contains(ghErr.Message, "rate limit") {
				return nil, &Error{Message: "GitHub API rate limit exceeded. Please try again later."}
			}
			return nil, &Error{Message: "Access denied. You may need to authenticate."}
		}

		var ghErr githubError
		_ = json.NewDecoder(resp.Body).Decode(&ghErr)
		if ghErr.Message != "" {
			return nil, &Error{Message: ghErr.Message}
		}
		return nil, &Error{Message: "Failed to fetch repository"}
	}

	var repository GitHubRepo
	if err := json.NewDecoder(resp.Body).Decode(&repository); err != nil {
		return nil, &Error{Message: "Network error. Please check your connection."}
	}

	return &repository, nil
}

// FetchUserRepos lists the repositories of the token's user, most recently
// updated first. A token is required.
func (c *GitHubClient) FetchUserRepos(token string, page, perPage int) ([]GitHubRepo, error) {
	url := fmt.Sprintf("%s/user/repos?page=%d&per_page=%d&sort=updated", c.BaseURL, page, perPage)
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
			return nil, &Error{Message: "Invalid or expired GitHub token."}
		}
		return nil, &Error{Message: "Failed to fetch repositories"}
	}

	var repos []GitHubRepo
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, &Error{Message: "Network error. Please check your connection."}
	}

	return repos, nil
}

// ValidateToken checks the token against the authenticated-user endpoint.
// A nil return means the token is usable.
func (c *GitHubClient) ValidateToken(token string) error {
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
		return &Error{Message: "Invalid GitHub token"}
	default:
		return &Error{Message: "Failed to validate token"}
	}
}

// GitHubRepoToMetadata maps a GitHub repository onto the local metadata shape
func GitHubRepoToMetadata(repo *GitHubRepo) entities.Metadata {
	stars := repo.StargazersCount
	forks := repo.ForksCount
	return entities.Metadata{
		Stars:         &stars,
		Forks:         &forks,
		Language:      repo.Language,
		Description:   repo.Description,
		LastCommit:    repo.PushedAt,
		DefaultBranch: repo.DefaultBranch,
	}
}
