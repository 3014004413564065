package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"cafewifi/internal/models"
)

// Connect opens the relational store. A non-empty dsn selects PostgreSQL;
// otherwise the embedded SQLite database at path is used.
func Connect(dsn, path string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if dsn != "" {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(path)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// Migrate creates or updates the cafe, user and favorite tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Cafe{}, &models.User{}, &models.Favorite{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
