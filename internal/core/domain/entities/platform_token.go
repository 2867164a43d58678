package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PlatformToken is the stored credential for metadata fetches against one
// platform. One row per (user, platform); saving again overwrites the
// previous token. Tokens are never verified against the platform or
// refreshed on expiry.
type PlatformToken struct {
	ID          uuid.UUID                    `json:"id" gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID                    `json:"user_id" gorm:"type:uuid;uniqueIndex:idx_user_platform"`
	Platform    Platform                     `json:"platform" gorm:"uniqueIndex:idx_user_platform"`
	AccessToken string                       `json:"access_token"`
	TokenType   string                       `json:"token_type"`
	Scopes      datatypes.JSONSlice[string]  `json:"scopes"`
	ExpiresAt   *time.Time                   `json:"expires_at"`
	CreatedAt   time.Time                    `json:"created_at"`
	UpdatedAt   time.Time                    `json:"updated_at"`
}

func (t *PlatformToken) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
