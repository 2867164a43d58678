package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/just-nibble/repo-dashboard/internal/adapters/api"
	"github.com/just-nibble/repo-dashboard/internal/adapters/db"
	"github.com/just-nibble/repo-dashboard/internal/adapters/validators"
	"github.com/just-nibble/repo-dashboard/internal/core/domain/entities"
)

// RepositoryService runs the repository-connection workflow and the
// management operations around it (list, refresh, disconnect, stats).
type RepositoryService struct {
	repos  db.RepositoryStore
	tokens db.TokenStore
	github *api.GitHubClient
	gitlab *api.GitLabClient
	limit  int
}

func NewRepositoryService(repos db.RepositoryStore, tokens db.TokenStore, gh *api.GitHubClient, gl *api.GitLabClient, limit int) *RepositoryService {
	return &RepositoryService{
		repos:  repos,
		tokens: tokens,
		github: gh,
		gitlab: gl,
		limit:  limit,
	}
}

// RepositoryStats is the dashboard's stats bar
type RepositoryStats struct {
	Total     int64 `json:"total"`
	Connected int64 `json:"connected"`
	Failed    int64 `json:"failed"`
	Limit     int   `json:"limit"`
}

// ConnectRepository runs the single-pass connection workflow: cap check,
// URL validation, owner/name parse, duplicate check, best-effort metadata
// fetch, insert. Each step short-circuits on failure; a metadata-fetch
// failure is the exception and degrades the record to empty metadata
// instead of aborting.
func (s *RepositoryService) ConnectRepository(ctx context.Context, userID uuid.UUID, platform entities.Platform, repoURL string) (*entities.Repository, error) {
	count, err := s.repos.CountRepositories(ctx, userID)
	if err != nil {
		return nil, err
	}
	if count >= int64(s.limit) {
		return nil, ErrRepoLimit
	}

	if !platform.Valid() {
		return nil, ErrUnsupportedPlatform
	}
	if !validators.ValidateRepoURL(repoURL, platform) {
		return nil, ErrInvalidRepoURL
	}

	path, err := validators.ParseRepoURL(repoURL)
	if err != nil {
		return nil, ErrUnparsableRepoURL
	}

	existing, err := s.repos.GetRepositoryByURL(ctx, userID, repoURL)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateRepository
	}

	meta, isPrivate, fetchErr := s.fetchPlatformMetadata(ctx, userID, platform, path.Owner, path.Name)
	if fetchErr != nil {
		log.Warn().
			Err(fetchErr).
			Str("platform", string(platform)).
			Str("repo_url", repoURL).
			Msg("metadata fetch failed, connecting with empty metadata")
	}

	repo := &entities.Repository{
		UserID:    userID,
		Platform:  platform,
		RepoURL:   repoURL,
		RepoName:  path.Name,
		RepoOwner: path.Owner,
		IsPrivate: isPrivate,
		Status:    entities.StatusConnected,
		Metadata:  datatypes.NewJSONType(meta),
	}
	if fetchErr == nil {
		now := time.Now()
		repo.LastSyncedAt = &now
	}

	if err := s.repos.CreateRepository(ctx, repo); err != nil {
		// The unique index on (user_id, repo_url) closes the race between
		// the duplicate check above and this insert.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateRepository
		}
		return nil, err
	}

	return repo, nil
}

// FetchMetadata dispatches a metadata fetch for the given coordinates,
// using the caller's stored platform token when one exists. Unlike
// ConnectRepository it surfaces classified adapter failures to the caller.
func (s *RepositoryService) FetchMetadata(ctx context.Context, userID uuid.UUID, platform entities.Platform, owner, repo string) (entities.Metadata, bool, error) {
	if !platform.Valid() {
		return entities.Metadata{}, false, ErrUnsupportedPlatform
	}
	return s.fetchPlatformMetadata(ctx, userID, platform, owner, repo)
}

// RefreshRepository re-runs the metadata fetch for an existing repository.
// Adapter failures mark the row failed with the classified message; they do
// not delete or error the request.
func (s *RepositoryService) RefreshRepository(ctx context.Context, userID, id uuid.UUID) (*entities.Repository, error) {
	repo, err := s.repos.GetRepositoryByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRepositoryNotFound
		}
		return nil, err
	}

	meta, isPrivate, fetchErr := s.fetchPlatformMetadata(ctx, userID, repo.Platform, repo.RepoOwner, repo.RepoName)
	if fetchErr != nil {
		msg := fetchErr.Error()
		repo.Status = entities.StatusFailed
		repo.ErrorMessage = &msg
	} else {
		now := time.Now()
		repo.Status = entities.StatusConnected
		repo.ErrorMessage = nil
		repo.IsPrivate = isPrivate
		repo.Metadata = datatypes.NewJSONType(meta)
		repo.LastSyncedAt = &now
	}

	if err := s.repos.UpdateRepository(ctx, repo); err != nil {
		return nil, err
	}
	return repo, nil
}

// DisconnectRepository deletes the caller's repository by id. On a store
// error the row is untouched and the error surfaces to the caller.
func (s *RepositoryService) DisconnectRepository(ctx context.Context, userID, id uuid.UUID) error {
	err := s.repos.DeleteRepository(ctx, userID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRepositoryNotFound
	}
	return err
}

// ListRepositories returns the caller's repositories, newest first,
// optionally filtered by a search query and a platform.
func (s *RepositoryService) ListRepositories(ctx context.Context, userID uuid.UUID, query string, platform entities.Platform) ([]entities.Repository, error) {
	if platform != "" && !platform.Valid() {
		return nil, ErrUnsupportedPlatform
	}
	return s.repos.ListRepositories(ctx, userID, query, platform)
}

// Stats returns the counts behind the dashboard's stats bar
func (s *RepositoryService) Stats(ctx context.Context, userID uuid.UUID) (*RepositoryStats, error) {
	total, err := s.repos.CountRepositories(ctx, userID)
	if err != nil {
		return nil, err
	}
	connected, err := s.repos.CountRepositoriesByStatus(ctx, userID, entities.StatusConnected)
	if err != nil {
		return nil, err
	}
	failed, err := s.repos.CountRepositoriesByStatus(ctx, userID, entities.StatusFailed)
	if err != nil {
		return nil, err
	}
	return &RepositoryStats{
		Total:     total,
		Connected: connected,
		Failed:    failed,
		Limit:     s.limit,
	}, nil
}

// fetchPlatformMetadata fetches metadata for one repository. Replit and
// Lovable have no public API; they resolve to empty metadata without any
// outbound call.
func (s *RepositoryService) fetchPlatformMetadata(ctx context.Context, userID uuid.UUID, platform entities.Platform, owner, repo string) (entities.Metadata, bool, error) {
	switch platform {
	case entities.PlatformGitHub:
		token := s.lookupToken(ctx, userID, platform)
		data, err := s.github.FetchRepo(owner, repo, token)
		if err != nil {
			return entities.Metadata{}, apiErrIsPrivate(err), err
		}
		return api.GitHubRepoToMetadata(data), data.Private, nil

	case entities.PlatformGitLab:
		token := s.lookupToken(ctx, userID, platform)
		data, err := s.gitlab.FetchProject(owner, repo, token)
		if err != nil {
			return entities.Metadata{}, apiErrIsPrivate(err), err
		}
		languages, err := s.gitlab.FetchLanguages(owner, repo, token)
		if err != nil {
			log.Debug().Err(err).Str("owner", owner).Str("repo", repo).Msg("gitlab languages fetch failed")
		}
		return api.GitLabProjectToMetadata(data, languages), data.IsPrivate(), nil

	default:
		return entities.Metadata{}, false, nil
	}
}

// lookupToken returns the caller's stored token for the platform, or the
// empty string. A store failure here only downgrades the fetch to
// unauthenticated, it never aborts the caller's workflow.
func (s *RepositoryService) lookupToken(ctx context.Context, userID uuid.UUID, platform entities.Platform) string {
	token, err := s.tokens.GetToken(ctx, userID, platform)
	if err != nil {
		log.Warn().Err(err).Str("platform", string(platform)).Msg("token lookup failed")
		return ""
	}
	if token == nil {
		return ""
	}
	return token.AccessToken
}

func apiErrIsPrivate(err error) bool {
	var apiErr *api.Error
	return errors.As(err, &apiErr) && apiErr.IsPrivate
}
