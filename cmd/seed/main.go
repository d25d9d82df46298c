package main

import (
	"time"

	"printflow/internal/config"
	"printflow/internal/database"
	"printflow/internal/domain"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm/clause"
)

// Seeds an admin account plus one active user per role so a fresh
// environment is immediately usable. Safe to run repeatedly.
func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		logrus.WithError(err).Fatal("failed to migrate database")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("changeme123"), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Fatal("failed to hash password")
	}

	users := []domain.User{
		{Email: "admin@printflow.local", Role: domain.RoleAdmin, FullName: "Admin"},
		{Email: "sales@printflow.local", Role: domain.RoleSales, FullName: "Sales Rep"},
		{Email: "pm@printflow.local", Role: domain.RoleProjectManager, FullName: "Project Manager"},
		{Email: "designer@printflow.local", Role: domain.RoleDesigner, FullName: "Designer"},
		{Email: "printing@printflow.local", Role: domain.RolePrinting, FullName: "Print Operator"},
		{Email: "logistics@printflow.local", Role: domain.RoleLogistics, FullName: "Logistics"},
		{Email: "accounts@printflow.local", Role: domain.RoleAccounts, FullName: "Accounts"},
		{Email: "hr@printflow.local", Role: domain.RoleHR, FullName: "HR"},
	}

	for i := range users {
		users[i].PasswordHash = string(hash)
		users[i].IsActive = true
		users[i].CreatedAt = time.Now().UTC()
	}

	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(&users)
	if result.Error != nil {
		logrus.WithError(result.Error).Fatal("failed to seed users")
	}

	logrus.WithField("created", result.RowsAffected).Info("seed complete")
}
