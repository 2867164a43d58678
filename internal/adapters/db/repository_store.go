package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/just-nibble/repo-dashboard/internal/core/domain/entities"
	"gorm.io/gorm"
)

// RepositoryStore defines the database operations for connected
// repositories. Every query is scoped to the owning user; there is no way
// to read or mutate another user's rows through this interface.
type RepositoryStore interface {
	CreateRepository(ctx context.Context, repo *entities.Repository) error
	GetRepositoryByID(ctx context.Context, userID, id uuid.UUID) (*entities.Repository, error)
	GetRepositoryByURL(ctx context.Context, userID uuid.UUID, repoURL string) (*entities.Repository, error)
	ListRepositories(ctx context.Context, userID uuid.UUID, query string, platform entities.Platform) ([]entities.Repository, error)
	UpdateRepository(ctx context.Context, repo *entities.Repository) error
	DeleteRepository(ctx context.Context, userID, id uuid.UUID) error
	CountRepositories(ctx context.Context, userID uuid.UUID) (int64, error)
	CountRepositoriesByStatus(ctx context.Context, userID uuid.UUID, status entities.ConnectionStatus) (int64, error)
}

// GormRepositoryStore is a GORM-based implementation of RepositoryStore
type GormRepositoryStore struct {
	db *gorm.DB
}

// NewGormRepositoryStore initializes a new GormRepositoryStore
func NewGormRepositoryStore(db *gorm.DB) *GormRepositoryStore {
	return &GormRepositoryStore{db: db}
}

func (s *GormRepositoryStore) CreateRepository(ctx context.Context, repo *entities.Repository) error {
	return s.db.WithContext(ctx).Create(repo).Error
}

func (s *GormRepositoryStore) GetRepositoryByID(ctx context.Context, userID, id uuid.UUID) (*entities.Repository, error) {
	var repo entities.Repository
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&repo).Error
	if err != nil {
		return nil, err
	}
	return &repo, nil
}

// GetRepositoryByURL returns the user's repository with the given URL, or
// nil when none exists. It backs the duplicate check of the connection
// workflow.
func (s *GormRepositoryStore) GetRepositoryByURL(ctx context.Context, userID uuid.UUID, repoURL string) (*entities.Repository, error) {
	var repo entities.Repository
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND repo_url = ?", userID, repoURL).
		First(&repo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &repo, nil
}

// ListRepositories returns the user's repositories, newest first. The query
// matches repository name or owner case-insensitively; an empty platform
// means all platforms.
func (s *GormRepositoryStore) ListRepositories(ctx context.Context, userID uuid.UUID, query string, platform entities.Platform) ([]entities.Repository, error) {
	tx := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")

	if query != "" {
		like := "%" + query + "%"
		tx = tx.Where("repo_name ILIKE ? OR repo_owner ILIKE ?", like, like)
	}
	if platform != "" {
		tx = tx.Where("platform = ?", platform)
	}

	var repositories []entities.Repository
	if err := tx.Find(&repositories).Error; err != nil {
		return nil, err
	}
	return repositories, nil
}

func (s *GormRepositoryStore) UpdateRepository(ctx context.Context, repo *entities.Repository) error {
	return s.db.WithContext(ctx).
		Where("user_id = ?", repo.UserID).
		Save(repo).Error
}

func (s *GormRepositoryStore) DeleteRepository(ctx context.Context, userID, id uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&entities.Repository{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *GormRepositoryStore) CountRepositories(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&entities.Repository{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (s *GormRepositoryStore) CountRepositoriesByStatus(ctx context.Context, userID uuid.UUID, status entities.ConnectionStatus) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&entities.Repository{}).
		Where("user_id = ? AND status = ?", userID, status).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
