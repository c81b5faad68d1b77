package db

import (
	"cryptomarket/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"

	"golang.org/x/crypto/bcrypt" // Seed password hashing
	"gorm.io/driver/mysql"       // MySQL driver for GORM
	"gorm.io/gorm"               // GORM ORM library
	"gorm.io/gorm/clause"        // Conflict clause for idempotent seeding
)

// Migrate performs automatic migration for the database schema
func Migrate(dsn string) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{}) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	err = db.AutoMigrate(&domain.User{}, &domain.CryptoCurrency{})
	if err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	logrus.Info("Migration completed.") // Log successful migration
}

// Seed inserts a starter set of users, skipping any that already exist
func Seed(dsn string) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}
	users := []domain.User{
		{Name: "Admin User", Email: "admin@example.com", Password: mustHash("admin123"), Role: domain.RoleAdmin},
		{Name: "John Doe", Email: "john@example.com", Password: mustHash("admin123"), Role: domain.RoleCliente},
		{Name: "Jane Smith", Email: "jane@example.com", Password: mustHash("admin123"), Role: domain.RoleCliente},
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&users).Error; err != nil {
		logrus.Fatalf("seed failed: %v", err)
	}
	logrus.Info("Seed completed.")
}

// mustHash hashes a seed password at the signup cost factor
func mustHash(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		logrus.Fatalf("failed to hash seed password: %v", err)
	}
	return string(hash)
}
