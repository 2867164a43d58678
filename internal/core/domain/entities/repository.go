package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Repository is a reference to a source-code repository hosted on an
// external platform, owned by a single user. The composite unique index on
// (user_id, repo_url) backs the duplicate check: two connects racing past
// the pre-check cannot both insert.
type Repository struct {
	ID           uuid.UUID                     `json:"id" gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID                     `json:"user_id" gorm:"type:uuid;index;uniqueIndex:idx_user_repo_url"`
	Platform     Platform                      `json:"platform" gorm:"index"`
	RepoURL      string                        `json:"repo_url" gorm:"uniqueIndex:idx_user_repo_url"`
	RepoName     string                        `json:"repo_name" gorm:"index"`
	RepoOwner    string                        `json:"repo_owner" gorm:"index"`
	IsPrivate    bool                          `json:"is_private"`
	Status       ConnectionStatus              `json:"status"`
	ErrorMessage *string                       `json:"error_message"`
	Metadata     datatypes.JSONType[Metadata]  `json:"metadata"`
	LastSyncedAt *time.Time                    `json:"last_synced_at"`
	CreatedAt    time.Time                     `json:"created_at"`
	UpdatedAt    time.Time                     `json:"updated_at"`
}

func (r *Repository) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
