package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/just-nibble/repo-dashboard/internal/core/domain/entities"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TokenStore defines the database operations for platform access tokens,
// keyed by (user, platform) and scoped to the owning user.
type TokenStore interface {
	UpsertToken(ctx context.Context, token *entities.PlatformToken) error
	GetToken(ctx context.Context, userID uuid.UUID, platform entities.Platform) (*entities.PlatformToken, error)
}

// GormTokenStore is a GORM-based implementation of TokenStore
type GormTokenStore struct {
	db *gorm.DB
}

// NewGormTokenStore initializes a new GormTokenStore
func NewGormTokenStore(db *gorm.DB) *GormTokenStore {
	return &GormTokenStore{db: db}
}

// UpsertToken inserts the token or, when a row for (user, platform) already
// exists, overwrites its credential fields in place.
func (s *GormTokenStore) UpsertToken(ctx context.Context, token *entities.PlatformToken) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "platform"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"access_token", "token_type", "scopes", "expires_at", "updated_at",
			}),
		}).
		Create(token).Error
}

// GetToken returns the user's token for the platform, or nil when none is
// stored. A missing token is not an error; metadata fetches simply run
// unauthenticated.
func (s *GormTokenStore) GetToken(ctx context.Context, userID uuid.UUID, platform entities.Platform) (*entities.PlatformToken, error) {
	var token entities.PlatformToken
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND platform = ?", userID, platform).
		First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &token, nil
}
