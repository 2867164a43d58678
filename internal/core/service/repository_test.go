package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/just-nibble/repo-dashboard/internal/adapters/api"
	"github.com/just-nibble/repo-dashboard/internal/adapters/db/mocks"
	"github.com/just-nibble/repo-dashboard/internal/core/domain/entities"
)

func newTestService(t *testing.T, repos *mocks.RepositoryStore, tokens *mocks.TokenStore, handler http.Handler) *RepositoryService {
	t.Helper()

	gh := api.NewGitHubClient()
	gl := api.NewGitLabClient()
	if handler != nil {
		server := httptest.NewServer(handler)
		t.Cleanup(server.Close)
		gh.BaseURL = server.URL
		gl.BaseURL = server.URL
	} else {
		// any outbound call is a test failure
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Errorf("unexpected platform API call: %s", r.URL.Path)
		}))
		t.Cleanup(server.Close)
		gh.BaseURL = server.URL
		gl.BaseURL = server.URL
	}

	return NewRepositoryService(repos, tokens, gh, gl, 10)
}

func noToken(tokens *mocks.TokenStore) {
	tokens.On("GetToken", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
}

func TestConnectRepositoryLimitReached(t *testing.T) {
	repos := new(mocks.RepositoryStore)
	tokens := new(mocks.TokenStore)
	svc := newTestService(t, repos, tokens, nil)
	userID := uuid.New()

	repos.On("CountRepositories", mock.Anything, userID).Return(int64(10), nil)

	_, err := svc.ConnectRepository(context.Background(), userID, entities.PlatformGitHub, "https://github.com/acme/widgets")
	assert.ErrorIs(t, err, ErrRepoLimit)

	// the cap check runs before validation, duplicate check and insert
	repos.AssertNotCalled(t, "GetRepositoryByURL", mock.Anything, mock.Anything, mock.Anything)
	repos.AssertNotCalled(t, "CreateRepository", mock.Anything, mock.Anything)
}

func TestConnectRepositoryInvalidURL(t *testing.T) {
	repos := new(mocks.RepositoryStore)
	tokens := new(mocks.TokenStore)
	svc := newTestService(t, repos, tokens, nil)
	userID := uuid.New()

	repos.On("CountRepositories", mock.Anything, userID).Return(int64(0), nil)

	_, err := svc.ConnectRepository(context.Background(), userID, entities.PlatformGitHub, "https://gitlab.com/acme/widgets")
	assert.ErrorIs(t, err, ErrInvalidRepoURL)
	repos.AssertNotCalled(t, "CreateRepository", mock.Anything, mock.Anything)
}

func TestConnectRepositoryUnsupportedPlatform(t *testing.T) {
	repos := new(mocks.RepositoryStore)
	tokens := new(mocks.TokenStore)
	svc := newTestService(t, repos, tokens, nil)
	userID := uuid.New()

	repos.On("CountRepositories", mock.Anything, userID).Return(int64(0), nil)

	_, err := svc.ConnectRepository(context.Background(), userID, entities.Platform("bitbucket"), "https://bitbucket.org/acme/widgets")
	assert.ErrorIs(t, err, ErrUnsupportedPlatform)
}

func TestConnectRepositoryDuplicate(t *testing.T) {
	repos := new(mocks.RepositoryStore)
	tokens := new(mocks.TokenStore)
	svc := newTestService(t, repos, tokens, nil)
	userID := uuid.New()
	repoURL := "https://github.com/acme/widgets"

	repos.On("CountRepositories", mock.Anything, userID).Return(int64(3), nil)
	repos.On("GetRepositoryByURL", mock.Anything, userID, repoURL).
		Return(&entities.Repository{RepoURL: repoURL}, nil)

	_, err := svc.ConnectRepository(context.Background(), userID, entities.PlatformGitHub, repoURL)
	assert.ErrorIs(t, err, ErrDuplicateRepository)
	repos.AssertNotCalled(t, "CreateRepository", mock.Anything, mock.Anything)
}

func TestConnectRepositoryGitHubSuccess(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/repos/acme/widgets", r.URL.Path)
		_ = json.NewEncoder(w).Encode(api.GitHubRepo{
			Name:            "widgets",
			Private:         false,
			StargazersCount: 100,
			ForksCount:      42,
			Language:        "Go",
			DefaultBranch:   "main",
			PushedAt:        "2024-08-19T10:00:00Z",
		})
	})

	repos := new(mocks.RepositoryStore)
	tokens := new(mocks.TokenStore)
	svc := newTestService(t, repos, tokens, handler)
	userID := uuid.New()
	noToken(tokens)

	repos.On("CountRepositories", mock.Anything, userID).Return(int64(0), nil)
	repos.On("GetRepositoryByURL", mock.Anything, userID, mock.Anything).Return(nil, nil)
	repos.On("CreateRepository", mock.Anything, mock.Anything).Return(nil)

	repo, err := svc.ConnectRepository(context.Background(), userID, entities.PlatformGitHub, "https://github.com/acme/widgets")
	require.NoError(t, err)

	assert.Equal(t, "widgets", repo.RepoName)
	assert.Equal(t, "acme", repo.RepoOwner)
	assert.Equal(t, entities.StatusConnected, repo.Status)
	assert.False(t, repo.IsPrivate)
	assert.NotNil(t, repo.LastSyncedAt)

	meta := repo.Metadata.Data()
	require.NotNil(t, meta.Stars)
	assert.Equal(t, 100, *meta.Stars)
	assert.Equal(t, "Go", meta.Language)
}

func TestConnectRepositoryGitLabPicksDominantLanguage(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.EscapedPath() {
		case "/projects/acme%2Fwidgets":
			_ = json.NewEncoder(w).Encode(api.GitLabProject{
				Name:       "widgets",
				Visibility: "public",
			})
		case "/projects/acme%2Fwidgets/languages":
			_ = json.NewEncoder(w).Encode(map[string]float64{"Go": 100, "TypeScript": 300})
		default:
			t.Errorf("unexpected path %s", r.URL.EscapedPath())
		}
	})

	repos := new(mocks.RepositoryStore)
	tokens := new(mocks.TokenStore)
	svc := newTestService(t, repos, tokens, handler)
	userID := uuid.New()
	noToken(tokens)

	repos.On("CountRepositories", mock.Anything, userID).Return(int64(0), nil)
	repos.On("GetRepositoryByURL", mock.Anything, userID, mock.Anything).Return(nil, nil)
	repos.On("CreateRepository", mock.Anything, mock.Anything).Return(nil)

	repo, err := svc.ConnectRepository(context.Background(), userID, entities.PlatformGitLab, "https://gitlab.com/acme/widgets")
	require.NoError(t, err)
	assert.Equal(t, "TypeScript", repo.Metadata.Data().Language)
}

// A failed metadata fetch degrades the record instead of aborting: the
// repository is still connected, with empty metadata.
func TestConnectRepositoryToleratesFetchFailure(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Not Found"})
	})

	repos := new(mocks.RepositoryStore)
	tokens := new(mocks.TokenStore)
	svc := newTestService(t, repos, tokens, handler)
	userID := uuid.New()
	noToken(tokens)

	repos.On("CountRepositories", mock.Anything, userID).Return(int64(0), nil)
	repos.On("GetRepositoryByURL", mock.Anything, userID, mock.Anything).Return(nil, nil)
	repos.On("CreateRepository", mock.Anything, mock.Anything).Return(nil)

	repo, err := svc.ConnectRepository(context.Background(), userID, entities.PlatformGitHub, "https://github.com/acme/ghost")
	require.NoError(t, err)

	assert.Equal(t, entities.StatusConnected, repo.Status)
	assert.Equal(t, entities.Metadata{}, repo.Metadata.Data())
	// a 404 without credentials may be a private repository
	assert.True(t, repo.IsPrivate)
	assert.Nil(t, repo.LastSyncedAt)
}

func TestConnectRepositoryReplitSkipsFetch(t *testing.T) {
	repos := new(mocks.RepositoryStore)
	tokens := new(mocks.TokenStore)
	// nil handler: any outbound call fails the test
	svc := newTestService(t, repos, tokens, nil)
	userID := uuid.New()

	repos.On("CountRepositories", mock.Anything, userID).Return(int64(0), nil)
	repos.On("GetRepositoryByURL", mock.Anything, userID, mock.Anything).Return(nil, nil)
	repos.On("CreateRepository", mock.Anything, mock.Anything).Return(nil)

	repo, err := svc.ConnectRepository(context.Background(), userID, entities.PlatformReplit, "https://replit.com/@acme/widgets")
	require.NoError(t, err)

	assert.Equal(t, "acme", repo.RepoOwner)
	assert.Equal(t, "widgets", repo.RepoName)
	assert.False(t, repo.IsPrivate)
	assert.Equal(t, entities.Metadata{}, repo.Metadata.Data())
}

// Two connects racing past the duplicate check resolve at the unique index
func TestConnectRepositoryInsertRace(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(api.GitHubRepo{Name: "widgets"})
	})

	repos := new(mocks.RepositoryStore)
	tokens := new(mocks.TokenStore)
	svc := newTestService(t, repos, tokens, handler)
	userID := uuid.New()
	noToken(tokens)

	repos.On("CountRepositories", mock.Anything, userID).Return(int64(0), nil)
	repos.On("GetRepositoryByURL", mock.Anything, userID, mock.Anything).Return(nil, nil)
	repos.On("CreateRepository", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey)

	_, err := svc.ConnectRepository(context.Background(), userID, entities.PlatformGitHub, "https://github.com/acme/widgets")
	assert.ErrorIs(t, err, ErrDuplicateRepository)
}

func TestRefreshRepositorySuccess(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(api.GitHubRepo{
			Name:            "widgets",
			Private:         true,
			StargazersCount: 7,
		})
	})

	repos := new(mocks.RepositoryStore)
	tokens := new(mocks.TokenStore)
	svc := newTestService(t, repos, tokens, handler)
	userID := uuid.New()
	repoID := uuid.New()
	noToken(tokens)

	msg := "old failure"
	stored := &entities.Repository{
		ID:           repoID,
		UserID:       userID,
		Platform:     entities.PlatformGitHub,
		RepoOwner:    "acme",
		RepoName:     "widgets",
		Status:       entities.StatusFailed,
		ErrorMessage: &msg,
	}
	repos.On("GetRepositoryByID", mock.Anything, userID, repoID).Return(stored, nil)
	repos.On("UpdateRepository", mock.Anything, mock.Anything).Return(nil)

	repo, err := svc.RefreshRepository(context.Background(), userID, repoID)
	require.NoError(t, err)

	assert.Equal(t, entities.StatusConnected, repo.Status)
	assert.Nil(t, repo.ErrorMessage)
	assert.True(t, repo.IsPrivate)
	assert.NotNil(t, repo.LastSyncedAt)
	require.NotNil(t, repo.Metadata.Data().Stars)
	assert.Equal(t, 7, *repo.Metadata.Data().Stars)
}

func TestRefreshRepositoryFetchFailureMarksFailed(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Bad credentials"})
	})

	repos := new(mocks.RepositoryStore)
	tokens := new(mocks.TokenStore)
	svc := newTestService(t, repos, tokens, handler)
	userID := uuid.New()
	repoID := uuid.New()
	noToken(tokens)

	stored := &entities.Repository{
		ID:        repoID,
		UserID:    userID,
		Platform:  entities.PlatformGitHub,
		RepoOwner: "acme",
		RepoName:  "widgets",
		Status:    entities.StatusConnected,
	}
	repos.On("GetRepositoryByID", mock.Anything, userID, repoID).Return(stored, nil)
	repos.On("UpdateRepository", mock.Anything, mock.Anything).Return(nil)

	repo, err := svc.RefreshRepository(context.Background(), userID, repoID)
	require.NoError(t, err)

	assert.Equal(t, entities.StatusFailed, repo.Status)
	require.NotNil(t, repo.ErrorMessage)
	assert.Equal(t, "Invalid or expired GitHub token.", *repo.ErrorMessage)
}

func TestRefreshRepositoryNotFound(t *testing.T) {
	repos := new(mocks.RepositoryStore)
	tokens := new(mocks.TokenStore)
	svc := newTestService(t, repos, tokens, nil)
	userID := uuid.New()
	repoID := uuid.New()

	repos.On("GetRepositoryByID", mock.Anything, userID, repoID).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.RefreshRepository(context.Background(), userID, repoID)
	assert.ErrorIs(t, err, ErrRepositoryNotFound)
}

func TestDisconnectRepository(t *testing.T) {
	repos := new(mocks.RepositoryStore)
	tokens := new(mocks.TokenStore)
	svc := newTestService(t, repos, tokens, nil)
	userID := uuid.New()
	repoID := uuid.New()

	repos.On("DeleteRepository", mock.Anything, userID, repoID).Return(nil)

	assert.NoError(t, svc.DisconnectRepository(context.Background(), userID, repoID))
	repos.AssertExpectations(t)
}

func TestDisconnectRepositoryNotFound(t *testing.T) {
	repos := new(mocks.RepositoryStore)
	tokens := new(mocks.TokenStore)
	svc := newTestService(t, repos, tokens, nil)
	userID := uuid.New()
	repoID := uuid.New()

	repos.On("DeleteRepository", mock.Anything, userID, repoID).Return(gorm.ErrRecordNotFound)

	err := svc.DisconnectRepository(context.Background(), userID, repoID)
	assert.ErrorIs(t, err, ErrRepositoryNotFound)
}

func TestStats(t *testing.T) {
	repos := new(mocks.RepositoryStore)
	tokens := new(mocks.TokenStore)
	svc := newTestService(t, repos, tokens, nil)
	userID := uuid.New()

	repos.On("CountRepositories", mock.Anything, userID).Return(int64(5), nil)
	repos.On("CountRepositoriesByStatus", mock.Anything, userID, entities.StatusConnected).Return(int64(4), nil)
	repos.On("CountRepositoriesByStatus", mock.Anything, userID, entities.StatusFailed).Return(int64(1), nil)

	stats, err := svc.Stats(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), stats.Total)
	assert.Equal(t, int64(4), stats.Connected)
	assert.Equal(t, int64(1), stats.Failed)
	assert.Equal(t, 10, stats.Limit)
}
