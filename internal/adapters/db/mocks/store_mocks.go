package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/just-nibble/repo-dashboard/internal/core/domain/entities"
)

// RepositoryStore mock
type RepositoryStore struct {
	mock.Mock
}

func (m *RepositoryStore) CreateRepository(ctx context.Context, repo *entities.Repository) error {
	args := m.Called(ctx, repo)
	return args.Error(0)
}

func (m *RepositoryStore) GetRepositoryByID(ctx context.Context, userID, id uuid.UUID) (*entities.Repository, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Repository), args.Error(1)
}

func (m *RepositoryStore) GetRepositoryByURL(ctx context.Context, userID uuid.UUID, repoURL string) (*entities.Repository, error) {
	args := m.Called(ctx, userID, repoURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Repository), args.Error(1)
}

func (m *RepositoryStore) ListRepositories(ctx context.Context, userID uuid.UUID, query string, platform entities.Platform) ([]entities.Repository, error) {
	args := m.Called(ctx, userID, query, platform)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Repository), args.Error(1)
}

func (m *RepositoryStore) UpdateRepository(ctx context.Context, repo *entities.Repository) error {
	args := m.Called(ctx, repo)
	return args.Error(0)
}

func (m *RepositoryStore) DeleteRepository(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *RepositoryStore) CountRepositories(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RepositoryStore) CountRepositoriesByStatus(ctx context.Context, userID uuid.UUID, status entities.ConnectionStatus) (int64, error) {
	args := m.Called(ctx, userID, status)
	return args.Get(0).(int64), args.Error(1)
}

// TokenStore mock
type TokenStore struct {
	mock.Mock
}

func (m *TokenStore) UpsertToken(ctx context.Context, token *entities.PlatformToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *TokenStore) GetToken(ctx context.Context, userID uuid.UUID, platform entities.Platform) (*entities.PlatformToken, error) {
	args := m.Called(ctx, userID, platform)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PlatformToken), args.Error(1)
}

// ProfileStore mock
type ProfileStore struct {
	mock.Mock
}

func (m *ProfileStore) GetProfile(ctx context.Context, userID uuid.UUID) (*entities.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Profile), args.Error(1)
}
