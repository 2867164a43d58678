package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/just-nibble/repo-dashboard/internal/adapters/db"
	"github.com/just-nibble/repo-dashboard/internal/core/domain/entities"
	"gorm.io/gorm"
)

// ProfileService reads user display metadata. Profiles are created by the
// auth provider, never by this service.
type ProfileService struct {
	profiles db.ProfileStore
}

func NewProfileService(profiles db.ProfileStore) *ProfileService {
	return &ProfileService{profiles: profiles}
}

func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*entities.Profile, error) {
	profile, err := s.profiles.GetProfile(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}
