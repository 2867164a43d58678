package entities

// Metadata holds the lightweight, best-effort information fetched from a
// platform API. Every field is optional; an empty Metadata is a valid state
// for platforms without an API adapter (Replit, Lovable) or after a failed
// fetch.
type Metadata struct {
	Stars         *int   `json:"stars,omitempty"`
	Forks         *int   `json:"forks,omitempty"`
	Language      string `json:"language,omitempty"`
	Description   string `json:"description,omitempty"`
	LastCommit    string `json:"last_commit,omitempty"`
	DefaultBranch string `json:"default_branch,omitempty"`

	// Replit specific
	LastRun string `json:"last_run,omitempty"`

	// Lovable specific
	Framework      string `json:"framework,omitempty"`
	LastDeployment string `json:"last_deployment,omitempty"`
}
