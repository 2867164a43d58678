package storage

import (
	"github.com/just-nibble/repo-dashboard/internal/core/domain/entities"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB opens the PostgreSQL connection and migrates the schema.
// TranslateError lets callers match duplicate-key violations with
// gorm.ErrDuplicatedKey instead of driver-specific error codes.
func InitDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&entities.Profile{},
		&entities.Repository{},
		&entities.PlatformToken{},
	); err != nil {
		return nil, err
	}

	return db, nil
}
