package dtos

import "github.com/just-nibble/repo-dashboard/internal/core/domain/entities"

// ConnectRepositoryInput is the body of POST /api/repositories
type ConnectRepositoryInput struct {
	Platform entities.Platform `json:"platform"`
	RepoURL  string            `json:"repo_url"`
}

// FetchMetadataInput is the body of POST /api/repositories/fetch-metadata
type FetchMetadataInput struct {
	Platform entities.Platform `json:"platform"`
	Owner    string            `json:"owner"`
	Repo     string            `json:"repo"`
}

// FetchMetadataOutput is the success body of the fetch-metadata endpoint
type FetchMetadataOutput struct {
	Metadata  entities.Metadata `json:"metadata"`
	IsPrivate bool              `json:"isPrivate"`
}

// FetchMetadataError carries a classified adapter failure. IsPrivate is
// only present when the platform reported a not-found that may be a
// private repository.
type FetchMetadataError struct {
	Error     string `json:"error"`
	IsPrivate *bool  `json:"isPrivate,omitempty"`
}
