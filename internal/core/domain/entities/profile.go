package entities

import (
	"time"

	"github.com/google/uuid"
)

// Profile holds a user's display metadata. It is created by the auth
// provider and read-only from the dashboard's perspective.
type Profile struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	AvatarURL string    `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
