package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/just-nibble/repo-dashboard/internal/core/domain/entities"
	"gorm.io/gorm"
)

// ProfileStore defines read access to user profiles
type ProfileStore interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*entities.Profile, error)
}

// GormProfileStore is a GORM-based implementation of ProfileStore
type GormProfileStore struct {
	db *gorm.DB
}

// NewGormProfileStore initializes a new GormProfileStore
func NewGormProfileStore(db *gorm.DB) *GormProfileStore {
	return &GormProfileStore{db: db}
}

func (s *GormProfileStore) GetProfile(ctx context.Context, userID uuid.UUID) (*entities.Profile, error) {
	var profile entities.Profile
	if err := s.db.WithContext(ctx).First(&profile, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}
