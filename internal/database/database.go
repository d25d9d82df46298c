package database

import (
	"strings"

	"printflow/internal/domain"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the database behind the given URL. Postgres URLs get the
// pgx-backed driver; anything else is treated as a sqlite DSN, which is
// what the tests and local development use.
func Connect(databaseURL string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		dialector = postgres.Open(databaseURL)
	} else {
		dialector = sqlite.Open(databaseURL)
	}

	return gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
}

// Migrate creates or updates the schema for every workflow entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Lead{},
		&domain.Order{},
		&domain.Project{},
		&domain.Task{},
	)
}
